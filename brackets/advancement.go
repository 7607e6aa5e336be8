package brackets

import (
	"fmt"

	"github.com/rallypoint-app/rallypoint/models"
)

// SlotField names which team field of a bracket slot receives a winner.
type SlotField string

const (
	SlotFieldTeam1 SlotField = "team1"
	SlotFieldTeam2 SlotField = "team2"
)

// Advancement is the instruction to write a winner into a downstream slot.
type Advancement struct {
	SlotID   string
	Field    SlotField
	WinnerID string
}

// RescoreCheck reports whether an already-decided slot can safely be
// re-decided with a different winner.
type RescoreCheck struct {
	Safe    bool   `json:"safe"`
	Message string `json:"message,omitempty"`
}

// AdvanceWinner resolves where winnerID goes after slot is decided. An even
// source position fills the target's team1 field, an odd position fills
// team2. Nil means no-op: the slot is the final, or the referenced next slot
// is absent from allSlots (treated as not yet persisted rather than an
// error).
func AdvanceWinner(slot models.BracketSlot, winnerID string, allSlots []models.BracketSlot) *Advancement {
	if slot.NextSlotID == nil {
		return nil
	}
	target := findSlot(allSlots, *slot.NextSlotID)
	if target == nil {
		return nil
	}

	field := SlotFieldTeam1
	if slot.Position%2 != 0 {
		field = SlotFieldTeam2
	}
	return &Advancement{SlotID: target.ID, Field: field, WinnerID: winnerID}
}

// ByeResolution is the automatic outcome of a first-round bye slot: the lone
// entrant wins the slot and Advance places it into the fed slot. Advance is
// nil only when the bye slot has no resolvable downstream slot.
type ByeResolution struct {
	SlotID   string
	WinnerID string
	Advance  *Advancement
}

// ResolveByes decides every undecided first-round bye slot. A bye is never
// played, so its lone entrant must be written as the winner and advanced as
// soon as the bracket exists; otherwise the fed slot waits on a match that
// can never be scheduled. Resolutions are returned in input order.
func ResolveByes(slots []models.BracketSlot) []ByeResolution {
	resolutions := []ByeResolution{}
	for _, slot := range slots {
		if !slot.IsBye() || slot.WinnerID != nil {
			continue
		}
		winnerID := ""
		if slot.Team1ID != nil {
			winnerID = *slot.Team1ID
		} else {
			winnerID = *slot.Team2ID
		}
		resolutions = append(resolutions, ByeResolution{
			SlotID:   slot.ID,
			WinnerID: winnerID,
			Advance:  AdvanceWinner(slot, winnerID, slots),
		})
	}
	return resolutions
}

// CheckRescoreSafety guards retroactive winner edits on a decided slot. The
// edit is safe when the winner is unchanged, when the slot is the final, or
// when the downstream slot has no match started yet. It is unsafe when the
// winner is changing and the downstream slot's match is already in progress
// or completed, since that match was played against the old bracket shape.
func CheckRescoreSafety(slot models.BracketSlot, newWinnerID string, allSlots []models.BracketSlot) RescoreCheck {
	if slot.WinnerID != nil && *slot.WinnerID == newWinnerID {
		return RescoreCheck{Safe: true}
	}
	if slot.NextSlotID == nil {
		return RescoreCheck{Safe: true}
	}
	next := findSlot(allSlots, *slot.NextSlotID)
	if next == nil || next.MatchID == nil {
		return RescoreCheck{Safe: true}
	}
	return RescoreCheck{
		Safe: false,
		Message: fmt.Sprintf(
			"changing the winner of round %d slot %d would invalidate a match already underway in the next round",
			slot.Round, slot.Position,
		),
	}
}

func findSlot(slots []models.BracketSlot, id string) *models.BracketSlot {
	for i := range slots {
		if slots[i].ID == id {
			return &slots[i]
		}
	}
	return nil
}
