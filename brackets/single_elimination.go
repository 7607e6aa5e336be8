package brackets

import (
	"math"

	"github.com/rallypoint-app/rallypoint/models"
)

// GenerateBracket builds a single-elimination bracket from a seeded team list
// (index 0 = top seed). The bracket size is the next power of two at or above
// the team count; missing entrants become byes (nil team). First-round slot i
// pairs seed i with seed size-1-i, so the top seed meets the weakest entrant
// and strength spreads evenly. Every non-final slot's NextSlotID points at
// position floor(i/2) of the following round; the final slot's NextSlotID is
// nil and its teams stay empty until advancement feeds them.
//
// Slot identity generation is injected through newID so persistence keeps
// ownership of record identity. Fewer than two teams yields an empty bracket.
func GenerateBracket(tournamentID string, teamIDs []string, newID func() string) []*models.BracketSlot {
	n := len(teamIDs)
	if n < 2 {
		return []*models.BracketSlot{}
	}

	rounds := int(math.Ceil(math.Log2(float64(n))))
	size := 1 << uint(rounds)

	seedAt := func(i int) *string {
		if i < n {
			id := teamIDs[i]
			return &id
		}
		return nil // bye
	}

	// Allocate every slot round by round, then wire winners forward.
	byRound := make([][]*models.BracketSlot, rounds+1)
	for r := 1; r <= rounds; r++ {
		count := size >> uint(r)
		byRound[r] = make([]*models.BracketSlot, count)
		for pos := 0; pos < count; pos++ {
			slot := &models.BracketSlot{
				ID:           newID(),
				TournamentID: tournamentID,
				Round:        r,
				Position:     pos,
			}
			if r == 1 {
				slot.Team1ID = seedAt(pos)
				slot.Team2ID = seedAt(size - 1 - pos)
			}
			byRound[r][pos] = slot
		}
	}

	slots := make([]*models.BracketSlot, 0, size-1)
	for r := 1; r <= rounds; r++ {
		for pos, slot := range byRound[r] {
			if r < rounds {
				next := byRound[r+1][pos/2].ID
				slot.NextSlotID = &next
			}
			slots = append(slots, slot)
		}
	}
	return slots
}
