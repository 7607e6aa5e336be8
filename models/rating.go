package models

import "time"

// Tier is a totally ordered skill ladder. Order matters: the rating engine
// indexes into TierOrder for threshold lookups.
type Tier string

const (
	TierBeginner     Tier = "beginner"
	TierIntermediate Tier = "intermediate"
	TierAdvanced     Tier = "advanced"
	TierExpert       Tier = "expert"
)

// TierOrder lists tiers from lowest to highest rung.
var TierOrder = []Tier{TierBeginner, TierIntermediate, TierAdvanced, TierExpert}

type TierConfidence string

const (
	ConfidenceLow    TierConfidence = "low"
	ConfidenceMedium TierConfidence = "medium"
	ConfidenceHigh   TierConfidence = "high"
)

// RecentResult is one entry of a player's rolling result history. OpponentTier
// is the opponent's tier at the time the match completed.
type RecentResult struct {
	Won          bool      `json:"won" db:"won"`
	OpponentID   string    `json:"opponent_id" db:"opponent_id"`
	OpponentTier Tier      `json:"opponent_tier" db:"opponent_tier"`
	GameType     GameType  `json:"game_type" db:"game_type"`
	CompletedAt  time.Time `json:"completed_at" db:"completed_at"`
}

// PlayerRating is the persisted output of the skill rating engine for one
// player. Results are ordered most recent first.
type PlayerRating struct {
	UserID     string         `json:"user_id" db:"user_id"`
	Score      float64        `json:"score" db:"score"`
	Tier       Tier           `json:"tier" db:"tier"`
	Confidence TierConfidence `json:"confidence" db:"confidence"`
	Results    []RecentResult `json:"results" db:"-"`
	UpdatedAt  time.Time      `json:"updated_at" db:"updated_at"`
}
