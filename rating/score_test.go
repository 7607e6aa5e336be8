package rating

import (
	"fmt"
	"testing"

	"github.com/rallypoint-app/rallypoint/models"
	"github.com/stretchr/testify/assert"
)

func results(n int, won bool, opponentTier models.Tier) []models.RecentResult {
	out := make([]models.RecentResult, n)
	for i := range out {
		out[i] = models.RecentResult{
			Won:          won,
			OpponentID:   fmt.Sprintf("opp-%d", i),
			OpponentTier: opponentTier,
		}
	}
	return out
}

func TestComputeTierScoreEmptyHistoryIsPrior(t *testing.T) {
	assert.Equal(t, 0.25, ComputeTierScore(nil))
	assert.Equal(t, 0.25, ComputeTierScore([]models.RecentResult{}))
}

func TestComputeTierScoreAllWinsExceedsPromotionRange(t *testing.T) {
	// 15+ matches removes damping entirely; an all-win record against
	// intermediate opponents must clear the advanced->expert band.
	score := ComputeTierScore(results(15, true, models.TierIntermediate))

	assert.InDelta(t, 1.0, score, 1e-9, "undamped all-win rate is 1.0")
	assert.Greater(t, score, 0.7)
}

func TestComputeTierScoreDampedTowardPrior(t *testing.T) {
	// 3 wins: raw rate 1.0, damping 3/15 = 0.2 -> 0.25 + 0.75*0.2 = 0.4.
	score := ComputeTierScore(results(3, true, models.TierIntermediate))

	assert.InDelta(t, 0.4, score, 1e-9)
}

func TestComputeTierScoreAllLossesStaysAbovePriorFloor(t *testing.T) {
	// 15 losses: raw 0, fully undamped -> 0.25 + (0-0.25)*1 = 0.
	score := ComputeTierScore(results(15, false, models.TierIntermediate))

	assert.InDelta(t, 0.0, score, 1e-9)
	assert.GreaterOrEqual(t, score, 0.0)
}

func TestComputeTierScoreOpponentTierWeighting(t *testing.T) {
	// One win against an expert plus one loss to a beginner outweighs the
	// mirrored record, because expert wins carry a 1.3 multiplier.
	strongWin := []models.RecentResult{
		{Won: true, OpponentID: "o1", OpponentTier: models.TierExpert},
		{Won: false, OpponentID: "o2", OpponentTier: models.TierBeginner},
	}
	weakWin := []models.RecentResult{
		{Won: true, OpponentID: "o1", OpponentTier: models.TierBeginner},
		{Won: false, OpponentID: "o2", OpponentTier: models.TierExpert},
	}

	assert.Greater(t, ComputeTierScore(strongWin), ComputeTierScore(weakWin))
}

func TestComputeTierScoreRecencyWeighting(t *testing.T) {
	// Same 30-match record, but recent wins score higher than buried wins.
	recentWins := append(results(10, true, models.TierAdvanced), results(20, false, models.TierAdvanced)...)
	oldWins := append(results(20, false, models.TierAdvanced), results(10, true, models.TierAdvanced)...)

	assert.Greater(t, ComputeTierScore(recentWins), ComputeTierScore(oldWins))
}

func TestComputeTierScoreIdempotent(t *testing.T) {
	buffer := append(results(7, true, models.TierAdvanced), results(12, false, models.TierBeginner)...)

	first := ComputeTierScore(buffer)
	second := ComputeTierScore(buffer)

	assert.Equal(t, first, second, "unchanged buffer always recomputes the same score")
}

func TestComputeTierScoreUnknownOpponentTier(t *testing.T) {
	odd := []models.RecentResult{{Won: true, OpponentID: "o1", OpponentTier: models.Tier("mystery")}}

	score := ComputeTierScore(odd)

	assert.Greater(t, score, 0.0)
	assert.LessOrEqual(t, score, 1.0)
}
