package rating

import "github.com/rallypoint-app/rallypoint/models"

// tierBoundary holds the asymmetric hysteresis thresholds for one adjacent
// tier pair: promotion requires the score strictly above PromoteAbove, and
// demotion strictly below DemoteBelow. DemoteBelow < PromoteAbove, so each
// boundary has a dead zone where the tier holds.
type tierBoundary struct {
	PromoteAbove float64
	DemoteBelow  float64
}

// boundaries[i] separates TierOrder[i] from TierOrder[i+1].
var boundaries = []tierBoundary{
	{PromoteAbove: 0.33, DemoteBelow: 0.27}, // beginner <-> intermediate
	{PromoteAbove: 0.53, DemoteBelow: 0.47}, // intermediate <-> advanced
	{PromoteAbove: 0.73, DemoteBelow: 0.67}, // advanced <-> expert
}

// ComputeTier walks the tier ladder from currentTier, promoting while the
// score clears the next boundary's promotion threshold and demoting while it
// falls under the current boundary's demotion threshold. A large score jump
// cascades through multiple boundaries in one call. Thresholds are strict:
// landing exactly on one never moves the tier. An unrecognized current tier
// is treated as beginner.
func ComputeTier(score float64, currentTier models.Tier) models.Tier {
	idx := tierIndex(currentTier)

	for idx < len(boundaries) && score > boundaries[idx].PromoteAbove {
		idx++
	}
	for idx > 0 && score < boundaries[idx-1].DemoteBelow {
		idx--
	}
	return models.TierOrder[idx]
}

// ComputeTierConfidence labels how trustworthy a tier assignment is based on
// sample size and opponent variety.
func ComputeTierConfidence(matchCount, uniqueOpponents int) models.TierConfidence {
	if matchCount < 8 {
		return models.ConfidenceLow
	}
	if uniqueOpponents < 3 {
		return models.ConfidenceLow
	}
	if matchCount < 20 {
		return models.ConfidenceMedium
	}
	return models.ConfidenceHigh
}

func tierIndex(tier models.Tier) int {
	for i, t := range models.TierOrder {
		if t == tier {
			return i
		}
	}
	return 0 // unknown values rank as the lowest rung
}
