package brackets

import "github.com/rallypoint-app/rallypoint/models"

// byePlaceholder pads an odd field so the circle method always rotates an
// even number of entrants. Entries touching it are dropped, which gives one
// implicit bye per round.
const byePlaceholder = ""

// GeneratePoolSchedule builds a full round-robin schedule for one pool using
// the circle method: the first team stays fixed while the rest rotate around
// it each round. Every unordered pair of teams meets exactly once, no team
// plays twice in the same round, and the round count is N-1 for even N and N
// for odd N. Zero or one team yields an empty schedule.
func GeneratePoolSchedule(teamIDs []string) []models.PoolScheduleEntry {
	if len(teamIDs) < 2 {
		return []models.PoolScheduleEntry{}
	}

	rotation := make([]string, len(teamIDs))
	copy(rotation, teamIDs)
	if len(rotation)%2 != 0 {
		rotation = append(rotation, byePlaceholder)
	}

	n := len(rotation)
	rounds := n - 1
	entries := make([]models.PoolScheduleEntry, 0, n*(n-1)/2)

	for round := 1; round <= rounds; round++ {
		for i := 0; i < n/2; i++ {
			t1, t2 := rotation[i], rotation[n-1-i]
			if t1 == byePlaceholder || t2 == byePlaceholder {
				continue
			}
			entries = append(entries, models.PoolScheduleEntry{
				Round:   round,
				Team1ID: t1,
				Team2ID: t2,
			})
		}

		// Rotate everything but the fixed first element one step clockwise.
		last := rotation[n-1]
		copy(rotation[2:], rotation[1:n-1])
		rotation[1] = last
	}

	return entries
}
