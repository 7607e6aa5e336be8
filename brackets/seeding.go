package brackets

import (
	"sort"

	"github.com/rallypoint-app/rallypoint/models"
)

// SeedFromStandings cross-pool seeds bracket entrants from per-pool standings
// (each already sorted by CalculateStandings' rule). For each rank up to
// advancePerPool it collects that rank's finisher from every pool, re-sorts
// the rank group by wins then point differential, and appends the group to
// the output. The result is ordered all first-place finishers, then all
// second-place finishers, and so on, ready to feed GenerateBracket. An empty
// pool list yields an empty output.
func SeedFromStandings(poolStandings [][]models.PoolStanding, advancePerPool int) []string {
	seeded := make([]string, 0, len(poolStandings)*advancePerPool)

	for rank := 0; rank < advancePerPool; rank++ {
		group := make([]models.PoolStanding, 0, len(poolStandings))
		for _, standings := range poolStandings {
			if rank < len(standings) {
				group = append(group, standings[rank])
			}
		}
		sort.SliceStable(group, func(i, j int) bool {
			if group[i].Wins != group[j].Wins {
				return group[i].Wins > group[j].Wins
			}
			return group[i].PointDiff > group[j].PointDiff
		})
		for _, row := range group {
			seeded = append(seeded, row.TeamID)
		}
	}
	return seeded
}
