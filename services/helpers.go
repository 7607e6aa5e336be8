package services

import (
	"github.com/rallypoint-app/rallypoint/formation"
	"github.com/rallypoint-app/rallypoint/models"
	"github.com/rallypoint-app/rallypoint/storage"
)

// phaseTransitions describes the lifecycle state machine. The registration
// phase advances into pool play or straight into a bracket depending on
// format; terminal phases have no exits.
var phaseTransitions = map[models.TournamentPhase][]models.TournamentPhase{
	models.PhaseRegistration: {models.PhasePoolPlay, models.PhaseBracket, models.PhaseCanceled},
	models.PhasePoolPlay:     {models.PhaseBracket, models.PhaseCompleted, models.PhaseCanceled},
	models.PhaseBracket:      {models.PhaseCompleted, models.PhaseCanceled},
	models.PhaseCompleted:    {},
	models.PhaseCanceled:     {},
}

func isValidPhaseTransition(current, next models.TournamentPhase, format models.TournamentFormat) bool {
	allowed := false
	for _, p := range phaseTransitions[current] {
		if p == next {
			allowed = true
			break
		}
	}
	if !allowed {
		return false
	}
	// Format constrains which path out of registration and pool play exists.
	switch {
	case current == models.PhaseRegistration && next == models.PhasePoolPlay:
		return format == models.FormatPoolPlay || format == models.FormatPoolPlayBracket
	case current == models.PhaseRegistration && next == models.PhaseBracket:
		return format == models.FormatSingleElimination
	case current == models.PhasePoolPlay && next == models.PhaseBracket:
		return format == models.FormatPoolPlayBracket
	case current == models.PhasePoolPlay && next == models.PhaseCompleted:
		return format == models.FormatPoolPlay
	}
	return true
}

// formationMode maps a tournament's game type and pairing mode onto the
// formation engine's modes.
func formationMode(t *models.Tournament) formation.Mode {
	if t.GameType == models.GameTypeSingles {
		return formation.ModeSingles
	}
	if t.PairingMode == models.PairingBYOP {
		return formation.ModeBYOP
	}
	return formation.ModeAutoPair
}

func populateTournamentLogoURL(t *models.Tournament, uploader storage.FileUploader) {
	if t == nil || uploader == nil || t.LogoKey == nil || *t.LogoKey == "" {
		return
	}
	if url := uploader.GetPublicURL(*t.LogoKey); url != "" {
		t.LogoURL = &url
	}
}

func populateUserDetails(u *models.User, uploader storage.FileUploader) {
	if u == nil {
		return
	}
	u.PasswordHash = ""
	if u.AvatarKey != nil && *u.AvatarKey != "" && uploader != nil {
		if url := uploader.GetPublicURL(*u.AvatarKey); url != "" {
			u.AvatarURL = &url
		}
	}
}

// projectMatchTeams adapts a stored match to the standings calculator.
func projectMatchTeams(m models.Match) (string, string) {
	return m.Team1ID, m.Team2ID
}
