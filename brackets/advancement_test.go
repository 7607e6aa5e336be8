package brackets

import (
	"fmt"
	"testing"

	"github.com/rallypoint-app/rallypoint/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func twoRoundBracket() []models.BracketSlot {
	return []models.BracketSlot{
		{ID: "s1", Round: 1, Position: 0, Team1ID: strPtr("a"), Team2ID: strPtr("d"), NextSlotID: strPtr("s3")},
		{ID: "s2", Round: 1, Position: 1, Team1ID: strPtr("b"), Team2ID: strPtr("c"), NextSlotID: strPtr("s3")},
		{ID: "s3", Round: 2, Position: 0},
	}
}

func TestAdvanceWinnerPositionParity(t *testing.T) {
	slots := twoRoundBracket()

	fromEven := AdvanceWinner(slots[0], "a", slots)
	require.NotNil(t, fromEven)
	assert.Equal(t, "s3", fromEven.SlotID)
	assert.Equal(t, SlotFieldTeam1, fromEven.Field, "even position feeds team1")
	assert.Equal(t, "a", fromEven.WinnerID)

	fromOdd := AdvanceWinner(slots[1], "c", slots)
	require.NotNil(t, fromOdd)
	assert.Equal(t, "s3", fromOdd.SlotID)
	assert.Equal(t, SlotFieldTeam2, fromOdd.Field, "odd position feeds team2")
}

func TestAdvanceWinnerNoOps(t *testing.T) {
	slots := twoRoundBracket()

	assert.Nil(t, AdvanceWinner(slots[2], "a", slots), "final has nowhere to advance")

	dangling := slots[0]
	dangling.NextSlotID = strPtr("missing")
	assert.Nil(t, AdvanceWinner(dangling, "a", slots), "unknown target degrades to no-op")
}

func TestResolveByesSixTeamBracket(t *testing.T) {
	n := 0
	newID := func() string { n++; return fmt.Sprintf("slot-%d", n) }
	generated := GenerateBracket("t1", []string{"a", "b", "c", "d", "e", "f"}, newID)

	slots := make([]models.BracketSlot, len(generated))
	for i, s := range generated {
		slots[i] = *s
	}

	resolutions := ResolveByes(slots)
	require.Len(t, resolutions, 2, "six teams in a bracket of eight means two byes")

	// The top two seeds sit out round 1 and land on opposite sides of the
	// same round-2 slot.
	assert.Equal(t, "a", resolutions[0].WinnerID)
	require.NotNil(t, resolutions[0].Advance)
	assert.Equal(t, SlotFieldTeam1, resolutions[0].Advance.Field)
	assert.Equal(t, "a", resolutions[0].Advance.WinnerID)

	assert.Equal(t, "b", resolutions[1].WinnerID)
	require.NotNil(t, resolutions[1].Advance)
	assert.Equal(t, SlotFieldTeam2, resolutions[1].Advance.Field)

	assert.Equal(t, resolutions[0].Advance.SlotID, resolutions[1].Advance.SlotID)
}

func TestResolveByesNoOps(t *testing.T) {
	assert.Empty(t, ResolveByes(twoRoundBracket()), "full round 1 has no byes")

	decided := []models.BracketSlot{
		{ID: "s1", Round: 1, Position: 0, Team1ID: strPtr("a"), WinnerID: strPtr("a"), NextSlotID: strPtr("s3")},
		{ID: "s3", Round: 2, Position: 0, Team1ID: strPtr("a")},
	}
	assert.Empty(t, ResolveByes(decided), "decided byes stay decided")
}

func TestCheckRescoreSafety(t *testing.T) {
	testCases := []struct {
		name        string
		slot        models.BracketSlot
		newWinnerID string
		nextMatchID *string
		wantSafe    bool
	}{
		{
			name:        "same winner is always safe",
			slot:        models.BracketSlot{ID: "s1", Position: 0, WinnerID: strPtr("a"), NextSlotID: strPtr("s3")},
			newWinnerID: "a",
			nextMatchID: strPtr("m9"),
			wantSafe:    true,
		},
		{
			name:        "final slot is always safe to re-decide",
			slot:        models.BracketSlot{ID: "s3", Position: 0, WinnerID: strPtr("a")},
			newWinnerID: "b",
			wantSafe:    true,
		},
		{
			name:        "downstream not started",
			slot:        models.BracketSlot{ID: "s1", Position: 0, WinnerID: strPtr("a"), NextSlotID: strPtr("s3")},
			newWinnerID: "d",
			nextMatchID: nil,
			wantSafe:    true,
		},
		{
			name:        "downstream already underway",
			slot:        models.BracketSlot{ID: "s1", Round: 1, Position: 0, WinnerID: strPtr("a"), NextSlotID: strPtr("s3")},
			newWinnerID: "d",
			nextMatchID: strPtr("m9"),
			wantSafe:    false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			slots := []models.BracketSlot{
				tc.slot,
				{ID: "s3", Round: 2, Position: 0, MatchID: tc.nextMatchID},
			}

			check := CheckRescoreSafety(tc.slot, tc.newWinnerID, slots)

			assert.Equal(t, tc.wantSafe, check.Safe)
			if tc.wantSafe {
				assert.Empty(t, check.Message)
			} else {
				assert.NotEmpty(t, check.Message)
			}
		})
	}
}

func TestCheckRescoreSafetyMissingDownstreamSlot(t *testing.T) {
	slot := models.BracketSlot{ID: "s1", Position: 0, WinnerID: strPtr("a"), NextSlotID: strPtr("missing")}

	check := CheckRescoreSafety(slot, "d", []models.BracketSlot{slot})

	assert.True(t, check.Safe, "absent downstream slot cannot be invalidated")
}
