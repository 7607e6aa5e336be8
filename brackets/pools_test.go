package brackets

import (
	"fmt"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func teamList(n int) []string {
	teams := make([]string, n)
	for i := range teams {
		teams[i] = fmt.Sprintf("team-%d", i+1)
	}
	return teams
}

func TestSplitIntoPoolsSnakeDraft(t *testing.T) {
	pools := SplitIntoPools(teamList(8), 2)

	assert.Equal(t, []string{"team-1", "team-4", "team-5", "team-8"}, pools[0])
	assert.Equal(t, []string{"team-2", "team-3", "team-6", "team-7"}, pools[1])
}

func TestSplitIntoPoolsPreservesEveryTeam(t *testing.T) {
	testCases := []struct {
		name      string
		teamCount int
		poolCount int
	}{
		{name: "even split", teamCount: 8, poolCount: 2},
		{name: "uneven split", teamCount: 7, poolCount: 3},
		{name: "more pools than teams", teamCount: 2, poolCount: 4},
		{name: "single pool", teamCount: 5, poolCount: 1},
		{name: "no teams", teamCount: 0, poolCount: 3},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			teams := teamList(tc.teamCount)
			pools := SplitIntoPools(teams, tc.poolCount)

			assert.Len(t, pools, tc.poolCount)

			var combined []string
			for _, pool := range pools {
				combined = append(combined, pool...)
			}
			assert.Len(t, combined, tc.teamCount, "no team duplicated or dropped")

			sort.Strings(combined)
			want := teamList(tc.teamCount)
			sort.Strings(want)
			if tc.teamCount == 0 {
				assert.Empty(t, combined)
			} else {
				assert.Equal(t, want, combined)
			}
		})
	}
}

func TestSplitIntoPoolsEmptyPoolsStayUsable(t *testing.T) {
	pools := SplitIntoPools(teamList(2), 4)

	assert.Equal(t, []string{"team-1"}, pools[0])
	assert.Equal(t, []string{"team-2"}, pools[1])
	assert.Empty(t, pools[2])
	assert.Empty(t, pools[3])
}

func TestSplitIntoPoolsNonPositivePoolCount(t *testing.T) {
	for _, poolCount := range []int{0, -1} {
		pools := SplitIntoPools(teamList(4), poolCount)

		assert.NotNil(t, pools)
		assert.Empty(t, pools)
	}
}
