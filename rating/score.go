package rating

import "github.com/rallypoint-app/rallypoint/models"

// priorScore is the neutral prior that small samples shrink toward.
const priorScore = 0.25

// dampingFullSample is the match count at which the prior stops dominating.
const dampingFullSample = 15.0

// opponentTierMultipliers weight results by opponent strength: beating a
// stronger opponent counts for more. An unknown tier falls back to the
// beginner weight.
var opponentTierMultipliers = map[models.Tier]float64{
	models.TierBeginner:     0.5,
	models.TierIntermediate: 0.8,
	models.TierAdvanced:     1.0,
	models.TierExpert:       1.3,
}

// recencyWeight discounts older results. Index 0 is the most recent entry.
func recencyWeight(index int) float64 {
	switch {
	case index < 10:
		return 1.0
	case index < 25:
		return 0.8
	default:
		return 0.6
	}
}

// ComputeTierScore computes a weighted win rate over the result buffer, then
// pulls it toward the prior by a damping factor of min(matchCount/15, 1.0) so
// a short history cannot swing the score hard. The result is clamped to
// [0, 1]; an empty buffer scores exactly the prior.
func ComputeTierScore(results []models.RecentResult) float64 {
	if len(results) == 0 {
		return priorScore
	}

	var numerator, denominator float64
	for i, r := range results {
		mult, ok := opponentTierMultipliers[r.OpponentTier]
		if !ok {
			mult = opponentTierMultipliers[models.TierBeginner]
		}
		weight := recencyWeight(i) * mult
		denominator += weight
		if r.Won {
			numerator += weight
		}
	}
	if denominator == 0 {
		return priorScore
	}

	raw := numerator / denominator
	damping := float64(len(results)) / dampingFullSample
	if damping > 1.0 {
		damping = 1.0
	}
	score := priorScore + (raw-priorScore)*damping

	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}
