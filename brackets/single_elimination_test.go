package brackets

import (
	"fmt"
	"testing"

	"github.com/rallypoint-app/rallypoint/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sequentialID gives deterministic slot identity for assertions.
func sequentialID() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("slot-%d", n)
	}
}

func slotAt(slots []*models.BracketSlot, round, position int) *models.BracketSlot {
	for _, s := range slots {
		if s.Round == round && s.Position == position {
			return s
		}
	}
	return nil
}

func TestGenerateBracketFourTeams(t *testing.T) {
	slots := GenerateBracket("t1", teamList(4), sequentialID())

	require.Len(t, slots, 3)

	first := slotAt(slots, 1, 0)
	require.NotNil(t, first)
	assert.Equal(t, "team-1", *first.Team1ID)
	assert.Equal(t, "team-4", *first.Team2ID)

	second := slotAt(slots, 1, 1)
	require.NotNil(t, second)
	assert.Equal(t, "team-2", *second.Team1ID)
	assert.Equal(t, "team-3", *second.Team2ID)

	final := slotAt(slots, 2, 0)
	require.NotNil(t, final)
	assert.Nil(t, final.Team1ID, "final is fed by advancement")
	assert.Nil(t, final.Team2ID)
	assert.Nil(t, final.NextSlotID)

	require.NotNil(t, first.NextSlotID)
	require.NotNil(t, second.NextSlotID)
	assert.Equal(t, final.ID, *first.NextSlotID)
	assert.Equal(t, final.ID, *second.NextSlotID)
}

func TestGenerateBracketSlotCounts(t *testing.T) {
	testCases := []struct {
		teamCount int
		slotCount int
		byeCount  int
	}{
		{teamCount: 2, slotCount: 1, byeCount: 0},
		{teamCount: 4, slotCount: 3, byeCount: 0},
		{teamCount: 6, slotCount: 7, byeCount: 2},
		{teamCount: 8, slotCount: 7, byeCount: 0},
		{teamCount: 13, slotCount: 15, byeCount: 3},
	}

	for _, tc := range testCases {
		t.Run(fmt.Sprintf("%d teams", tc.teamCount), func(t *testing.T) {
			slots := GenerateBracket("t1", teamList(tc.teamCount), sequentialID())

			require.Len(t, slots, tc.slotCount)

			byes := 0
			for _, s := range slots {
				if s.IsBye() {
					byes++
				}
			}
			assert.Equal(t, tc.byeCount, byes)
		})
	}
}

func TestGenerateBracketNextSlotWiring(t *testing.T) {
	slots := GenerateBracket("t1", teamList(8), sequentialID())

	for _, s := range slots {
		if s.Round == 3 {
			assert.Nil(t, s.NextSlotID, "final slot must not advance anywhere")
			continue
		}
		require.NotNil(t, s.NextSlotID, "round %d position %d", s.Round, s.Position)
		next := slotAt(slots, s.Round+1, s.Position/2)
		require.NotNil(t, next)
		assert.Equal(t, next.ID, *s.NextSlotID)
	}
}

func TestGenerateBracketDegenerateInputs(t *testing.T) {
	assert.Empty(t, GenerateBracket("t1", nil, sequentialID()))
	assert.Empty(t, GenerateBracket("t1", teamList(1), sequentialID()))

	// Two teams: the single slot is both first round and final.
	slots := GenerateBracket("t1", teamList(2), sequentialID())
	require.Len(t, slots, 1)
	assert.Equal(t, "team-1", *slots[0].Team1ID)
	assert.Equal(t, "team-2", *slots[0].Team2ID)
	assert.Nil(t, slots[0].NextSlotID)
}
