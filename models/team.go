package models

import "time"

// Team is created by team formation and immutable afterwards, except for
// its pool assignment.
type Team struct {
	ID           string    `json:"id" db:"id"`
	TournamentID string    `json:"tournament_id" db:"tournament_id"`
	Name         string    `json:"name" db:"name"`
	PlayerIDs    []string  `json:"player_ids" db:"-"`
	Seed         *int      `json:"seed,omitempty" db:"seed"`
	PoolID       *string   `json:"pool_id,omitempty" db:"pool_id"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}
