package brackets

import (
	"testing"

	"github.com/rallypoint-app/rallypoint/models"
	"github.com/stretchr/testify/assert"
)

func TestValidatePoolCompletion(t *testing.T) {
	scheduled := models.PoolScheduleEntry{Round: 1, Team1ID: "a", Team2ID: "b", MatchID: strPtr("m1")}
	pending := models.PoolScheduleEntry{Round: 1, Team1ID: "c", Team2ID: "d"}

	t.Run("all entries resolved", func(t *testing.T) {
		pools := []models.Pool{
			{Name: "Pool A", Schedule: []models.PoolScheduleEntry{scheduled}},
			{Name: "Pool B", Schedule: []models.PoolScheduleEntry{scheduled}},
		}

		result := ValidatePoolCompletion(pools)

		assert.True(t, result.Valid)
		assert.Empty(t, result.Message)
	})

	t.Run("unresolved entries name the pool", func(t *testing.T) {
		pools := []models.Pool{
			{Name: "Pool A", Schedule: []models.PoolScheduleEntry{scheduled}},
			{Name: "Pool B", Schedule: []models.PoolScheduleEntry{pending, pending}},
		}

		result := ValidatePoolCompletion(pools)

		assert.False(t, result.Valid)
		assert.Equal(t, "pool Pool B has 2 unresolved matches", result.Message)
	})

	t.Run("first offending pool wins in input order", func(t *testing.T) {
		pools := []models.Pool{
			{Name: "Pool B", Schedule: []models.PoolScheduleEntry{pending}},
			{Name: "Pool A", Schedule: []models.PoolScheduleEntry{pending, pending}},
		}

		result := ValidatePoolCompletion(pools)

		assert.Contains(t, result.Message, "Pool B")
	})

	t.Run("no pools is trivially complete", func(t *testing.T) {
		assert.True(t, ValidatePoolCompletion(nil).Valid)
	})
}

func TestValidateBracketCompletion(t *testing.T) {
	t.Run("empty bracket", func(t *testing.T) {
		result := ValidateBracketCompletion(nil)

		assert.False(t, result.Valid)
		assert.NotEmpty(t, result.Message)
	})

	t.Run("final undecided", func(t *testing.T) {
		slots := []models.BracketSlot{
			{ID: "s1", Round: 1, WinnerID: strPtr("a")},
			{ID: "s2", Round: 1, WinnerID: strPtr("c")},
			{ID: "s3", Round: 2},
		}

		result := ValidateBracketCompletion(slots)

		assert.False(t, result.Valid)
		assert.Equal(t, "final not yet completed", result.Message)
	})

	t.Run("champion decided", func(t *testing.T) {
		slots := []models.BracketSlot{
			{ID: "s1", Round: 1, WinnerID: strPtr("a")},
			{ID: "s2", Round: 1, WinnerID: strPtr("c")},
			{ID: "s3", Round: 2, WinnerID: strPtr("a")},
		}

		result := ValidateBracketCompletion(slots)

		assert.True(t, result.Valid)
		assert.Equal(t, "a", result.ChampionID)
		assert.Empty(t, result.Message)
	})
}
