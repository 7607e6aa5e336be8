// Package formation turns confirmed registrations into teams. It is pure:
// callers persist the result and decide policy (e.g. blocking a phase
// transition when too few teams form).
package formation

import (
	"fmt"
	"sort"

	"github.com/rallypoint-app/rallypoint/models"
)

// DefaultSkillRating sorts registrations with no self-assessed rating into
// the middle of the 1-5 scale during auto-pairing.
const DefaultSkillRating = 3.0

// Mode selects how registrations become teams.
type Mode string

const (
	// ModeSingles creates one team per registration.
	ModeSingles Mode = "singles"
	// ModeAutoPair sorts doubles registrations by skill rating and pairs
	// them consecutively; partner preferences are ignored.
	ModeAutoPair Mode = "auto_pair"
	// ModeBYOP pairs two registrations only when each names the other as
	// partner. Unilateral requests do not pair.
	ModeBYOP Mode = "byop"
)

// NewTeam is a team produced by formation, before persistence assigns
// identity.
type NewTeam struct {
	Name      string
	PlayerIDs []string
}

// Result separates formed teams from registrations that could not be placed,
// so the organizer can be warned instead of players being dropped silently.
type Result struct {
	Teams     []NewTeam
	Unmatched []models.Registration
}

// FormTeams builds teams from registrations according to mode. Input order is
// preserved wherever the mode does not dictate an order of its own.
func FormTeams(regs []models.Registration, mode Mode) Result {
	switch mode {
	case ModeAutoPair:
		return autoPair(regs)
	case ModeBYOP:
		return pairByPartner(regs)
	default:
		return singles(regs)
	}
}

func singles(regs []models.Registration) Result {
	teams := make([]NewTeam, 0, len(regs))
	for _, reg := range regs {
		teams = append(teams, NewTeam{
			Name:      reg.DisplayName,
			PlayerIDs: []string{reg.UserID},
		})
	}
	return Result{Teams: teams, Unmatched: []models.Registration{}}
}

func autoPair(regs []models.Registration) Result {
	sorted := make([]models.Registration, len(regs))
	copy(sorted, regs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return ratingOf(sorted[i]) > ratingOf(sorted[j])
	})

	teams := make([]NewTeam, 0, len(sorted)/2)
	for i := 0; i+1 < len(sorted); i += 2 {
		teams = append(teams, pairTeam(sorted[i], sorted[i+1]))
	}

	unmatched := []models.Registration{}
	if len(sorted)%2 != 0 {
		unmatched = append(unmatched, sorted[len(sorted)-1])
	}
	return Result{Teams: teams, Unmatched: unmatched}
}

func pairByPartner(regs []models.Registration) Result {
	byName := make(map[string]int, len(regs))
	for i, reg := range regs {
		byName[reg.DisplayName] = i
	}

	paired := make([]bool, len(regs))
	teams := []NewTeam{}
	for i, reg := range regs {
		if paired[i] || reg.PartnerName == nil {
			continue
		}
		j, ok := byName[*reg.PartnerName]
		if !ok || j == i || paired[j] {
			continue
		}
		partner := regs[j]
		// Mutual consent only: the named partner must name this player back.
		if partner.PartnerName == nil || *partner.PartnerName != reg.DisplayName {
			continue
		}
		paired[i], paired[j] = true, true
		teams = append(teams, pairTeam(reg, partner))
	}

	unmatched := []models.Registration{}
	for i, reg := range regs {
		if !paired[i] {
			unmatched = append(unmatched, reg)
		}
	}
	return Result{Teams: teams, Unmatched: unmatched}
}

func pairTeam(a, b models.Registration) NewTeam {
	return NewTeam{
		Name:      fmt.Sprintf("%s / %s", a.DisplayName, b.DisplayName),
		PlayerIDs: []string{a.UserID, b.UserID},
	}
}

func ratingOf(reg models.Registration) float64 {
	if reg.SkillRating == nil {
		return DefaultSkillRating
	}
	return *reg.SkillRating
}
