package formation

import (
	"testing"

	"github.com/rallypoint-app/rallypoint/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reg(userID, name string) models.Registration {
	return models.Registration{UserID: userID, DisplayName: name, Status: models.RegistrationConfirmed}
}

func ratedReg(userID, name string, rating float64) models.Registration {
	r := reg(userID, name)
	r.SkillRating = &rating
	return r
}

func partnerReg(userID, name, partner string) models.Registration {
	r := reg(userID, name)
	r.PartnerName = &partner
	return r
}

func TestFormTeamsSingles(t *testing.T) {
	regs := []models.Registration{reg("u1", "Alice"), reg("u2", "Bob")}

	result := FormTeams(regs, ModeSingles)

	require.Len(t, result.Teams, 2)
	assert.Equal(t, "Alice", result.Teams[0].Name)
	assert.Equal(t, []string{"u1"}, result.Teams[0].PlayerIDs)
	assert.Equal(t, "Bob", result.Teams[1].Name)
	assert.Empty(t, result.Unmatched)
}

func TestFormTeamsAutoPairByRating(t *testing.T) {
	regs := []models.Registration{
		ratedReg("u1", "Alice", 3.5),
		ratedReg("u2", "Bob", 4.5),
		ratedReg("u3", "Cara", 4.0),
		ratedReg("u4", "Dan", 2.5),
	}

	result := FormTeams(regs, ModeAutoPair)

	require.Len(t, result.Teams, 2)
	assert.Equal(t, []string{"u2", "u3"}, result.Teams[0].PlayerIDs, "strongest pair forms first")
	assert.Equal(t, "Bob / Cara", result.Teams[0].Name)
	assert.Equal(t, []string{"u1", "u4"}, result.Teams[1].PlayerIDs)
	assert.Empty(t, result.Unmatched)
}

func TestFormTeamsAutoPairOddPlayerSurfaced(t *testing.T) {
	regs := []models.Registration{
		ratedReg("u1", "Alice", 4.0),
		ratedReg("u2", "Bob", 3.0),
		ratedReg("u3", "Cara", 2.0),
	}

	result := FormTeams(regs, ModeAutoPair)

	require.Len(t, result.Teams, 1)
	require.Len(t, result.Unmatched, 1)
	assert.Equal(t, "u3", result.Unmatched[0].UserID, "lowest-rated odd player reported, not dropped")
}

func TestFormTeamsAutoPairMissingRatingUsesDefault(t *testing.T) {
	regs := []models.Registration{
		ratedReg("u1", "Alice", 4.5),
		reg("u2", "Bob"), // no rating, sorts as DefaultSkillRating
		ratedReg("u3", "Cara", 2.0),
		ratedReg("u4", "Dan", 5.0),
	}

	result := FormTeams(regs, ModeAutoPair)

	require.Len(t, result.Teams, 2)
	assert.Equal(t, []string{"u4", "u1"}, result.Teams[0].PlayerIDs)
	assert.Equal(t, []string{"u2", "u3"}, result.Teams[1].PlayerIDs)
}

func TestFormTeamsAutoPairStableOnRatingTies(t *testing.T) {
	regs := []models.Registration{
		ratedReg("u1", "Alice", 3.0),
		ratedReg("u2", "Bob", 3.0),
		ratedReg("u3", "Cara", 3.0),
		ratedReg("u4", "Dan", 3.0),
	}

	result := FormTeams(regs, ModeAutoPair)

	require.Len(t, result.Teams, 2)
	assert.Equal(t, []string{"u1", "u2"}, result.Teams[0].PlayerIDs, "ties keep registration order")
	assert.Equal(t, []string{"u3", "u4"}, result.Teams[1].PlayerIDs)
}

func TestFormTeamsBYOPMutualConsent(t *testing.T) {
	regs := []models.Registration{
		partnerReg("u1", "Alice", "Bob"),
		partnerReg("u2", "Bob", "Alice"),
		partnerReg("u3", "Cara", "Alice"), // unilateral, Alice chose Bob
		reg("u4", "Dan"),
	}

	result := FormTeams(regs, ModeBYOP)

	require.Len(t, result.Teams, 1)
	assert.Equal(t, "Alice / Bob", result.Teams[0].Name)
	assert.Equal(t, []string{"u1", "u2"}, result.Teams[0].PlayerIDs)

	require.Len(t, result.Unmatched, 2)
	assert.Equal(t, "u3", result.Unmatched[0].UserID)
	assert.Equal(t, "u4", result.Unmatched[1].UserID)
}

func TestFormTeamsBYOPNobodyPairs(t *testing.T) {
	regs := []models.Registration{
		partnerReg("u1", "Alice", "Bob"),
		partnerReg("u2", "Bob", "Cara"),
		partnerReg("u3", "Cara", "Alice"),
	}

	result := FormTeams(regs, ModeBYOP)

	assert.Empty(t, result.Teams, "a preference cycle is not mutual consent")
	assert.Len(t, result.Unmatched, 3)
}

func TestFormTeamsEmptyInput(t *testing.T) {
	for _, mode := range []Mode{ModeSingles, ModeAutoPair, ModeBYOP} {
		result := FormTeams(nil, mode)
		assert.Empty(t, result.Teams)
		assert.Empty(t, result.Unmatched)
	}
}
