package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rallypoint-app/rallypoint/formation"
	"github.com/rallypoint-app/rallypoint/models"
)

func TestIsValidPhaseTransition(t *testing.T) {
	tests := []struct {
		name    string
		current models.TournamentPhase
		next    models.TournamentPhase
		format  models.TournamentFormat
		want    bool
	}{
		{
			name:    "registration to pool play for pool format",
			current: models.PhaseRegistration,
			next:    models.PhasePoolPlay,
			format:  models.FormatPoolPlay,
			want:    true,
		},
		{
			name:    "registration to pool play for pool plus bracket format",
			current: models.PhaseRegistration,
			next:    models.PhasePoolPlay,
			format:  models.FormatPoolPlayBracket,
			want:    true,
		},
		{
			name:    "registration skips pools for single elimination",
			current: models.PhaseRegistration,
			next:    models.PhaseBracket,
			format:  models.FormatSingleElimination,
			want:    true,
		},
		{
			name:    "registration cannot enter pool play for single elimination",
			current: models.PhaseRegistration,
			next:    models.PhasePoolPlay,
			format:  models.FormatSingleElimination,
			want:    false,
		},
		{
			name:    "single elimination cannot jump straight from registration to completed",
			current: models.PhaseRegistration,
			next:    models.PhaseCompleted,
			format:  models.FormatSingleElimination,
			want:    false,
		},
		{
			name:    "pool play advances to bracket only for the combined format",
			current: models.PhasePoolPlay,
			next:    models.PhaseBracket,
			format:  models.FormatPoolPlayBracket,
			want:    true,
		},
		{
			name:    "pure pool play ends at completed",
			current: models.PhasePoolPlay,
			next:    models.PhaseCompleted,
			format:  models.FormatPoolPlay,
			want:    true,
		},
		{
			name:    "pool plus bracket format must play the bracket",
			current: models.PhasePoolPlay,
			next:    models.PhaseCompleted,
			format:  models.FormatPoolPlayBracket,
			want:    false,
		},
		{
			name:    "bracket completes",
			current: models.PhaseBracket,
			next:    models.PhaseCompleted,
			format:  models.FormatSingleElimination,
			want:    true,
		},
		{
			name:    "any active phase can cancel",
			current: models.PhasePoolPlay,
			next:    models.PhaseCanceled,
			format:  models.FormatPoolPlay,
			want:    true,
		},
		{
			name:    "completed is terminal",
			current: models.PhaseCompleted,
			next:    models.PhaseCanceled,
			format:  models.FormatSingleElimination,
			want:    false,
		},
		{
			name:    "canceled is terminal",
			current: models.PhaseCanceled,
			next:    models.PhaseRegistration,
			format:  models.FormatSingleElimination,
			want:    false,
		},
		{
			name:    "no going backwards",
			current: models.PhaseBracket,
			next:    models.PhasePoolPlay,
			format:  models.FormatPoolPlayBracket,
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := isValidPhaseTransition(tt.current, tt.next, tt.format)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormationMode(t *testing.T) {
	tests := []struct {
		name       string
		tournament models.Tournament
		want       formation.Mode
	}{
		{
			name:       "singles ignores pairing mode",
			tournament: models.Tournament{GameType: models.GameTypeSingles, PairingMode: models.PairingBYOP},
			want:       formation.ModeSingles,
		},
		{
			name:       "doubles with auto pairing",
			tournament: models.Tournament{GameType: models.GameTypeDoubles, PairingMode: models.PairingAuto},
			want:       formation.ModeAutoPair,
		},
		{
			name:       "doubles bring your own partner",
			tournament: models.Tournament{GameType: models.GameTypeDoubles, PairingMode: models.PairingBYOP},
			want:       formation.ModeBYOP,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formationMode(&tt.tournament))
		})
	}
}
