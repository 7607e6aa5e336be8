package brackets

import (
	"testing"

	"github.com/rallypoint-app/rallypoint/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func side(s models.MatchSide) *models.MatchSide { return &s }

func completedMatch(t1, t2 string, games []models.GameScore, winner models.MatchSide) models.Match {
	return models.Match{
		Team1ID:     t1,
		Team2ID:     t2,
		Games:       games,
		WinningSide: side(winner),
		Status:      models.MatchStatusCompleted,
	}
}

func projectTeams(m models.Match) (string, string) { return m.Team1ID, m.Team2ID }

func TestCalculateStandingsAggregatesWinsAndPoints(t *testing.T) {
	teams := []string{"a", "b", "c"}
	matches := []models.Match{
		completedMatch("a", "b", []models.GameScore{{Team1Points: 11, Team2Points: 7}, {Team1Points: 11, Team2Points: 9}}, models.SideTeam1),
		completedMatch("b", "c", []models.GameScore{{Team1Points: 11, Team2Points: 5}}, models.SideTeam1),
		completedMatch("a", "c", []models.GameScore{{Team1Points: 8, Team2Points: 11}}, models.SideTeam2),
	}

	standings := CalculateStandings(teams, matches, projectTeams)
	require.Len(t, standings, 3)

	byTeam := make(map[string]models.PoolStanding)
	for _, row := range standings {
		byTeam[row.TeamID] = row
	}

	assert.Equal(t, 1, byTeam["a"].Wins)
	assert.Equal(t, 1, byTeam["a"].Losses)
	assert.Equal(t, 30, byTeam["a"].PointsFor)
	assert.Equal(t, 27, byTeam["a"].PointsAgainst)
	assert.Equal(t, 3, byTeam["a"].PointDiff)

	assert.Equal(t, 1, byTeam["b"].Wins)
	assert.Equal(t, 1, byTeam["b"].Losses)

	assert.Equal(t, 1, byTeam["c"].Wins)
	assert.Equal(t, 1, byTeam["c"].Losses)
	assert.Equal(t, 16, byTeam["c"].PointsFor)
	assert.Equal(t, 19, byTeam["c"].PointsAgainst)
}

func TestCalculateStandingsSortsByWinsThenDiff(t *testing.T) {
	teams := []string{"a", "b", "c", "d"}
	matches := []models.Match{
		completedMatch("a", "d", []models.GameScore{{Team1Points: 11, Team2Points: 1}}, models.SideTeam1),
		completedMatch("b", "d", []models.GameScore{{Team1Points: 11, Team2Points: 9}}, models.SideTeam1),
		completedMatch("c", "d", []models.GameScore{{Team1Points: 11, Team2Points: 5}}, models.SideTeam1),
	}

	standings := CalculateStandings(teams, matches, projectTeams)

	// a, b and c are all 1-0; point differential orders them.
	assert.Equal(t, "a", standings[0].TeamID)
	assert.Equal(t, "c", standings[1].TeamID)
	assert.Equal(t, "b", standings[2].TeamID)
	assert.Equal(t, "d", standings[3].TeamID)
}

func TestCalculateStandingsStableOnFullTie(t *testing.T) {
	teams := []string{"x", "y", "z"}

	standings := CalculateStandings(teams, nil, projectTeams)

	require.Len(t, standings, 3)
	assert.Equal(t, "x", standings[0].TeamID, "ties keep input order")
	assert.Equal(t, "y", standings[1].TeamID)
	assert.Equal(t, "z", standings[2].TeamID)
	for _, row := range standings {
		assert.Zero(t, row.Wins)
		assert.Zero(t, row.Losses)
		assert.Zero(t, row.PointDiff)
	}
}

func TestCalculateStandingsIgnoresUnfinishedMatches(t *testing.T) {
	teams := []string{"a", "b"}
	matches := []models.Match{
		{
			Team1ID: "a", Team2ID: "b",
			Games:  []models.GameScore{{Team1Points: 11, Team2Points: 3}},
			Status: models.MatchStatusInProgress,
		},
	}

	standings := CalculateStandings(teams, matches, projectTeams)

	for _, row := range standings {
		assert.Zero(t, row.Wins)
		assert.Zero(t, row.PointsFor)
	}
}
