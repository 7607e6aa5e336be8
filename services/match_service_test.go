package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rallypoint-app/rallypoint/models"
)

func TestValidateResult(t *testing.T) {
	tests := []struct {
		name    string
		input   RecordResultInput
		wantErr error
	}{
		{
			name: "single game win",
			input: RecordResultInput{
				Games:       []models.GameScore{{Team1Points: 11, Team2Points: 7}},
				WinningSide: models.SideTeam1,
			},
		},
		{
			name: "best of three decided by team2",
			input: RecordResultInput{
				Games: []models.GameScore{
					{Team1Points: 11, Team2Points: 9},
					{Team1Points: 5, Team2Points: 11},
					{Team1Points: 8, Team2Points: 11},
				},
				WinningSide: models.SideTeam2,
			},
		},
		{
			name: "no games",
			input: RecordResultInput{
				Games:       nil,
				WinningSide: models.SideTeam1,
			},
			wantErr: ErrValidationFailed,
		},
		{
			name: "unknown winning side",
			input: RecordResultInput{
				Games:       []models.GameScore{{Team1Points: 11, Team2Points: 7}},
				WinningSide: models.MatchSide("draw"),
			},
			wantErr: ErrValidationFailed,
		},
		{
			name: "tied game rejected",
			input: RecordResultInput{
				Games:       []models.GameScore{{Team1Points: 10, Team2Points: 10}},
				WinningSide: models.SideTeam1,
			},
			wantErr: ErrValidationFailed,
		},
		{
			name: "negative points rejected",
			input: RecordResultInput{
				Games:       []models.GameScore{{Team1Points: -1, Team2Points: 11}},
				WinningSide: models.SideTeam2,
			},
			wantErr: ErrValidationFailed,
		},
		{
			name: "declared winner lost the games",
			input: RecordResultInput{
				Games: []models.GameScore{
					{Team1Points: 11, Team2Points: 3},
					{Team1Points: 11, Team2Points: 5},
				},
				WinningSide: models.SideTeam2,
			},
			wantErr: ErrMatchNotDecided,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateResult(tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestFindScheduleEntry(t *testing.T) {
	pools := []models.Pool{
		{
			ID: "pool-a",
			Schedule: []models.PoolScheduleEntry{
				{Round: 1, Team1ID: "t1", Team2ID: "t2"},
				{Round: 2, Team1ID: "t1", Team2ID: "t3"},
			},
		},
		{
			ID: "pool-b",
			Schedule: []models.PoolScheduleEntry{
				{Round: 1, Team1ID: "t4", Team2ID: "t5"},
			},
		},
	}

	t.Run("exact order", func(t *testing.T) {
		entry := findScheduleEntry(pools, "pool-a", 1, "t1", "t2")
		require.NotNil(t, entry)
		assert.Equal(t, "t1", entry.Team1ID)
	})

	t.Run("pairing is unordered", func(t *testing.T) {
		entry := findScheduleEntry(pools, "pool-a", 2, "t3", "t1")
		require.NotNil(t, entry)
		assert.Equal(t, 2, entry.Round)
	})

	t.Run("wrong round", func(t *testing.T) {
		assert.Nil(t, findScheduleEntry(pools, "pool-a", 3, "t1", "t2"))
	})

	t.Run("wrong pool", func(t *testing.T) {
		assert.Nil(t, findScheduleEntry(pools, "pool-b", 1, "t1", "t2"))
	})
}

func TestSlotForMatch(t *testing.T) {
	matchID := "m1"
	slots := []models.BracketSlot{
		{ID: "s1", Round: 1, Position: 0},
		{ID: "s2", Round: 1, Position: 1, MatchID: &matchID},
	}

	found := slotForMatch(slots, "m1")
	require.NotNil(t, found)
	assert.Equal(t, "s2", found.ID)

	assert.Nil(t, slotForMatch(slots, "missing"))
}

func TestMatchesForPool(t *testing.T) {
	m1, m2 := "m1", "m2"
	pool := models.Pool{
		ID: "pool-a",
		Schedule: []models.PoolScheduleEntry{
			{Round: 1, Team1ID: "t1", Team2ID: "t2", MatchID: &m1},
			{Round: 2, Team1ID: "t1", Team2ID: "t3"},
		},
	}
	all := []models.Match{
		{ID: m1, Team1ID: "t1", Team2ID: "t2"},
		{ID: m2, Team1ID: "t4", Team2ID: "t5"},
	}

	selected := matchesForPool(pool, all)
	require.Len(t, selected, 1)
	assert.Equal(t, m1, selected[0].ID)
}
