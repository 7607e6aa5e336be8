package rating

import (
	"testing"

	"github.com/rallypoint-app/rallypoint/models"
	"github.com/stretchr/testify/assert"
)

func TestComputeTierHysteresis(t *testing.T) {
	testCases := []struct {
		name    string
		score   float64
		current models.Tier
		want    models.Tier
	}{
		{name: "dead zone holds intermediate", score: 0.30, current: models.TierIntermediate, want: models.TierIntermediate},
		{name: "promotion above threshold", score: 0.34, current: models.TierBeginner, want: models.TierIntermediate},
		{name: "multi-level jump", score: 0.80, current: models.TierBeginner, want: models.TierExpert},
		{name: "multi-level fall", score: 0.10, current: models.TierExpert, want: models.TierBeginner},
		{name: "demotion below threshold", score: 0.26, current: models.TierIntermediate, want: models.TierBeginner},
		{name: "expert holds inside band", score: 0.70, current: models.TierExpert, want: models.TierExpert},
		{name: "advanced demotes under 0.47", score: 0.46, current: models.TierAdvanced, want: models.TierIntermediate},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ComputeTier(tc.score, tc.current))
		})
	}
}

func TestComputeTierBoundariesAreStrict(t *testing.T) {
	testCases := []struct {
		score   float64
		current models.Tier
	}{
		{score: 0.33, current: models.TierBeginner},     // exactly the promotion bound
		{score: 0.27, current: models.TierIntermediate}, // exactly the demotion bound
		{score: 0.53, current: models.TierIntermediate},
		{score: 0.67, current: models.TierExpert},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.current, ComputeTier(tc.score, tc.current),
			"score %.2f must not move %s", tc.score, tc.current)
	}
}

func TestComputeTierUnknownCurrentTier(t *testing.T) {
	assert.Equal(t, models.TierBeginner, ComputeTier(0.20, models.Tier("whatever")))
	assert.Equal(t, models.TierIntermediate, ComputeTier(0.40, models.Tier("")))
}

func TestComputeTierConfidence(t *testing.T) {
	testCases := []struct {
		name            string
		matchCount      int
		uniqueOpponents int
		want            models.TierConfidence
	}{
		{name: "thin history", matchCount: 7, uniqueOpponents: 7, want: models.ConfidenceLow},
		{name: "enough matches but same opponents", matchCount: 12, uniqueOpponents: 2, want: models.ConfidenceLow},
		{name: "medium sample", matchCount: 12, uniqueOpponents: 5, want: models.ConfidenceMedium},
		{name: "medium upper bound", matchCount: 19, uniqueOpponents: 4, want: models.ConfidenceMedium},
		{name: "high", matchCount: 20, uniqueOpponents: 6, want: models.ConfidenceHigh},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ComputeTierConfidence(tc.matchCount, tc.uniqueOpponents))
		})
	}
}
