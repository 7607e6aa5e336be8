package brackets

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pairKey(a, b string) string {
	if a > b {
		a, b = b, a
	}
	return a + "|" + b
}

func TestGeneratePoolScheduleFourTeams(t *testing.T) {
	entries := GeneratePoolSchedule(teamList(4))

	require.Len(t, entries, 6)

	rounds := make(map[int][]string)
	pairs := make(map[string]int)
	for _, e := range entries {
		rounds[e.Round] = append(rounds[e.Round], e.Team1ID, e.Team2ID)
		pairs[pairKey(e.Team1ID, e.Team2ID)]++
	}

	assert.Len(t, rounds, 3, "4 teams play 3 rounds")
	for round, teams := range rounds {
		seen := make(map[string]bool)
		for _, team := range teams {
			assert.False(t, seen[team], "team %s repeated in round %d", team, round)
			seen[team] = true
		}
	}

	assert.Len(t, pairs, 6)
	for pair, count := range pairs {
		assert.Equal(t, 1, count, "pair %s should meet exactly once", pair)
	}
}

func TestGeneratePoolScheduleOddTeams(t *testing.T) {
	entries := GeneratePoolSchedule(teamList(5))

	// 5 teams: 10 pairings over 5 rounds, one implicit bye per round.
	require.Len(t, entries, 10)

	perRound := make(map[int]int)
	pairs := make(map[string]int)
	for _, e := range entries {
		perRound[e.Round]++
		pairs[pairKey(e.Team1ID, e.Team2ID)]++
	}
	assert.Len(t, perRound, 5)
	for round, count := range perRound {
		assert.Equal(t, 2, count, "round %d", round)
	}
	assert.Len(t, pairs, 10)
}

func TestGeneratePoolScheduleDegenerateInputs(t *testing.T) {
	testCases := []struct {
		name  string
		teams []string
	}{
		{name: "no teams", teams: nil},
		{name: "one team", teams: []string{"team-1"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Empty(t, GeneratePoolSchedule(tc.teams))
		})
	}
}

func TestGeneratePoolScheduleEveryPairOnceLargerField(t *testing.T) {
	for _, n := range []int{6, 9, 12} {
		t.Run(fmt.Sprintf("%d teams", n), func(t *testing.T) {
			entries := GeneratePoolSchedule(teamList(n))
			require.Len(t, entries, n*(n-1)/2)

			pairs := make(map[string]int)
			for _, e := range entries {
				pairs[pairKey(e.Team1ID, e.Team2ID)]++
			}
			for pair, count := range pairs {
				assert.Equal(t, 1, count, "pair %s", pair)
			}
		})
	}
}
