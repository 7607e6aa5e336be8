package brackets

import (
	"sort"

	"github.com/rallypoint-app/rallypoint/models"
)

// TeamProjector maps a match to its two team identifiers, ordered as
// (team1, team2). It is injected so the same aggregation serves pool
// schedules and ad-hoc match records regardless of how the caller resolves
// team linkage.
type TeamProjector func(models.Match) (team1ID, team2ID string)

// CalculateStandings aggregates completed match results into a standings
// table for teamIDs. Matches that are not completed, or whose projected teams
// fall outside teamIDs, do not count. The result is sorted by wins descending
// then point differential descending; ties keep input order. Teams with no
// completed matches get all-zero rows, never omitted.
func CalculateStandings(teamIDs []string, matches []models.Match, project TeamProjector) []models.PoolStanding {
	rows := make(map[string]*models.PoolStanding, len(teamIDs))
	order := make([]string, 0, len(teamIDs))
	for _, id := range teamIDs {
		if _, ok := rows[id]; ok {
			continue
		}
		rows[id] = &models.PoolStanding{TeamID: id}
		order = append(order, id)
	}

	for _, m := range matches {
		if m.Status != models.MatchStatusCompleted || m.WinningSide == nil {
			continue
		}
		t1, t2 := project(m)
		r1, r2 := rows[t1], rows[t2]

		for _, g := range m.Games {
			if r1 != nil {
				r1.PointsFor += g.Team1Points
				r1.PointsAgainst += g.Team2Points
			}
			if r2 != nil {
				r2.PointsFor += g.Team2Points
				r2.PointsAgainst += g.Team1Points
			}
		}

		team1Won := *m.WinningSide == models.SideTeam1
		if r1 != nil {
			if team1Won {
				r1.Wins++
			} else {
				r1.Losses++
			}
		}
		if r2 != nil {
			if team1Won {
				r2.Losses++
			} else {
				r2.Wins++
			}
		}
	}

	standings := make([]models.PoolStanding, 0, len(order))
	for _, id := range order {
		row := rows[id]
		row.PointDiff = row.PointsFor - row.PointsAgainst
		standings = append(standings, *row)
	}

	sort.SliceStable(standings, func(i, j int) bool {
		if standings[i].Wins != standings[j].Wins {
			return standings[i].Wins > standings[j].Wins
		}
		return standings[i].PointDiff > standings[j].PointDiff
	})

	return standings
}
