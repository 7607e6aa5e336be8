package brackets

import (
	"fmt"

	"github.com/rallypoint-app/rallypoint/models"
)

// CompletionResult gates a phase transition. Message is empty when Valid.
type CompletionResult struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message,omitempty"`
}

// BracketCompletionResult additionally carries the champion once the final
// is decided.
type BracketCompletionResult struct {
	Valid      bool   `json:"valid"`
	Message    string `json:"message,omitempty"`
	ChampionID string `json:"champion_id,omitempty"`
}

// ValidatePoolCompletion is valid only when every schedule entry across every
// pool has a match attached. Pools are checked in input order, so the first
// offending pool reported is deterministic.
func ValidatePoolCompletion(pools []models.Pool) CompletionResult {
	for _, pool := range pools {
		unresolved := 0
		for _, entry := range pool.Schedule {
			if entry.MatchID == nil {
				unresolved++
			}
		}
		if unresolved > 0 {
			return CompletionResult{
				Valid:   false,
				Message: fmt.Sprintf("pool %s has %d unresolved matches", pool.Name, unresolved),
			}
		}
	}
	return CompletionResult{Valid: true}
}

// ValidateBracketCompletion locates the final (the slots with the maximum
// round number) and is valid once it carries a winner, which becomes the
// champion. An empty slot list is invalid.
func ValidateBracketCompletion(slots []models.BracketSlot) BracketCompletionResult {
	if len(slots) == 0 {
		return BracketCompletionResult{Valid: false, Message: "bracket has no slots"}
	}

	maxRound := 0
	for _, s := range slots {
		if s.Round > maxRound {
			maxRound = s.Round
		}
	}
	for _, s := range slots {
		if s.Round != maxRound {
			continue
		}
		if s.WinnerID == nil {
			return BracketCompletionResult{Valid: false, Message: "final not yet completed"}
		}
		return BracketCompletionResult{Valid: true, ChampionID: *s.WinnerID}
	}
	return BracketCompletionResult{Valid: false, Message: "final not yet completed"}
}
