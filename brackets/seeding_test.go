package brackets

import (
	"testing"

	"github.com/rallypoint-app/rallypoint/models"
	"github.com/stretchr/testify/assert"
)

func standingRow(teamID string, wins, diff int) models.PoolStanding {
	return models.PoolStanding{TeamID: teamID, Wins: wins, Losses: 3 - wins, PointDiff: diff}
}

func TestSeedFromStandingsCrossPoolOrder(t *testing.T) {
	poolA := []models.PoolStanding{
		standingRow("a1", 3, 10),
		standingRow("a2", 2, 5),
		standingRow("a3", 1, -15),
	}
	poolB := []models.PoolStanding{
		standingRow("b1", 3, 8),
		standingRow("b2", 2, 3),
		standingRow("b3", 0, -11),
	}

	seeded := SeedFromStandings([][]models.PoolStanding{poolA, poolB}, 2)

	assert.Equal(t, []string{"a1", "b1", "a2", "b2"}, seeded)
}

func TestSeedFromStandingsRankGroupResort(t *testing.T) {
	poolA := []models.PoolStanding{standingRow("a1", 2, 4)}
	poolB := []models.PoolStanding{standingRow("b1", 3, 2)}
	poolC := []models.PoolStanding{standingRow("c1", 2, 9)}

	seeded := SeedFromStandings([][]models.PoolStanding{poolA, poolB, poolC}, 1)

	// b1 leads on wins; c1 beats a1 on differential.
	assert.Equal(t, []string{"b1", "c1", "a1"}, seeded)
}

func TestSeedFromStandingsShortPools(t *testing.T) {
	poolA := []models.PoolStanding{standingRow("a1", 2, 1), standingRow("a2", 1, 0)}
	poolB := []models.PoolStanding{standingRow("b1", 2, 3)}

	seeded := SeedFromStandings([][]models.PoolStanding{poolA, poolB}, 2)

	// Pool B has no second-place finisher to contribute.
	assert.Equal(t, []string{"b1", "a1", "a2"}, seeded)
}

func TestSeedFromStandingsEmptyInput(t *testing.T) {
	assert.Empty(t, SeedFromStandings(nil, 2))
	assert.Empty(t, SeedFromStandings([][]models.PoolStanding{}, 2))
}
