package models

// BracketSlot is one position of a single-elimination bracket. Round 1 is the
// first round, Position is 0-indexed within the round. A nil team field means
// a bye or a not-yet-determined entrant. WinnerID, when set, always equals
// Team1ID or Team2ID. NextSlotID points to the slot in round+1 that receives
// this slot's winner; it is nil for the final.
type BracketSlot struct {
	ID           string  `json:"id" db:"id"`
	TournamentID string  `json:"tournament_id" db:"tournament_id"`
	Round        int     `json:"round" db:"round"`
	Position     int     `json:"position" db:"position"`
	Team1ID      *string `json:"team1_id,omitempty" db:"team1_id"`
	Team2ID      *string `json:"team2_id,omitempty" db:"team2_id"`
	MatchID      *string `json:"match_id,omitempty" db:"match_id"`
	WinnerID     *string `json:"winner_id,omitempty" db:"winner_id"`
	NextSlotID   *string `json:"next_slot_id,omitempty" db:"next_slot_id"`
}

// IsBye reports whether the slot has exactly one entrant in round 1.
func (s BracketSlot) IsBye() bool {
	return s.Round == 1 && (s.Team1ID == nil) != (s.Team2ID == nil)
}
