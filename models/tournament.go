package models

import "time"

// TournamentPhase values match the ENUM in the database.
type TournamentPhase string

const (
	PhaseRegistration TournamentPhase = "registration"
	PhasePoolPlay     TournamentPhase = "pool_play"
	PhaseBracket      TournamentPhase = "bracket"
	PhaseCompleted    TournamentPhase = "completed"
	PhaseCanceled     TournamentPhase = "canceled"
)

type TournamentFormat string

const (
	FormatSingleElimination TournamentFormat = "single_elimination"
	FormatPoolPlay          TournamentFormat = "pool_play"
	FormatPoolPlayBracket   TournamentFormat = "pool_play_bracket"
)

type GameType string

const (
	GameTypeSingles GameType = "singles"
	GameTypeDoubles GameType = "doubles"
)

// PairingMode selects how doubles teams are formed from registrations.
type PairingMode string

const (
	PairingAuto PairingMode = "auto"
	PairingBYOP PairingMode = "byop"
)

type Tournament struct {
	ID              string           `json:"id" db:"id"`
	Name            string           `json:"name" db:"name"`
	Description     *string          `json:"description,omitempty" db:"description"`
	OrganizerID     string           `json:"organizer_id" db:"organizer_id"`
	Format          TournamentFormat `json:"format" db:"format"`
	GameType        GameType         `json:"game_type" db:"game_type"`
	PairingMode     PairingMode      `json:"pairing_mode" db:"pairing_mode"`
	Phase           TournamentPhase  `json:"phase" db:"phase"`
	PoolCount       int              `json:"pool_count" db:"pool_count"`
	AdvancePerPool  int              `json:"advance_per_pool" db:"advance_per_pool"`
	MaxParticipants int              `json:"max_participants" db:"max_participants"`
	Location        *string          `json:"location,omitempty" db:"location"`
	StartDate       time.Time        `json:"start_date" db:"start_date"`
	CreatedAt       time.Time        `json:"created_at" db:"created_at"`

	LogoKey *string `json:"-" db:"logo_key"`
	LogoURL *string `json:"logo_url,omitempty" db:"-"`

	// Optional linked entities, populated by services.
	Organizer *User  `json:"organizer,omitempty" db:"-"`
	Teams     []Team `json:"teams,omitempty" db:"-"`
	Pools     []Pool `json:"pools,omitempty" db:"-"`
}
