package rating

import (
	"fmt"
	"testing"
	"time"

	"github.com/rallypoint-app/rallypoint/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resultAgainst(opponentID string) models.RecentResult {
	return models.RecentResult{
		Won:          true,
		OpponentID:   opponentID,
		OpponentTier: models.TierIntermediate,
		CompletedAt:  time.Now(),
	}
}

func TestHistoryPushKeepsMostRecentFirst(t *testing.T) {
	var h History
	h.Push(resultAgainst("o1"))
	h.Push(resultAgainst("o2"))
	h.Push(resultAgainst("o3"))

	got := h.Results()
	require.Len(t, got, 3)
	assert.Equal(t, "o3", got[0].OpponentID, "index 0 is the most recent")
	assert.Equal(t, "o2", got[1].OpponentID)
	assert.Equal(t, "o1", got[2].OpponentID)
}

func TestHistoryEvictsOldestAtCapacity(t *testing.T) {
	var h History
	for i := 0; i < HistoryCapacity+5; i++ {
		h.Push(resultAgainst(fmt.Sprintf("o%d", i)))
	}

	got := h.Results()
	require.Len(t, got, HistoryCapacity)
	assert.Equal(t, fmt.Sprintf("o%d", HistoryCapacity+4), got[0].OpponentID)
	assert.Equal(t, "o5", got[len(got)-1].OpponentID, "the five oldest were evicted")
}

func TestNewHistoryTruncatesOversizedInput(t *testing.T) {
	oversized := make([]models.RecentResult, HistoryCapacity+10)
	for i := range oversized {
		oversized[i] = resultAgainst(fmt.Sprintf("o%d", i))
	}

	h := NewHistory(oversized)

	assert.Equal(t, HistoryCapacity, h.Len())
	assert.Equal(t, "o0", h.Results()[0].OpponentID, "most-recent-first order preserved")
}

func TestHistoryUniqueOpponents(t *testing.T) {
	var h History
	h.Push(resultAgainst("o1"))
	h.Push(resultAgainst("o2"))
	h.Push(resultAgainst("o1"))

	assert.Equal(t, 2, h.UniqueOpponents())
	assert.Equal(t, 3, h.Len())
}
