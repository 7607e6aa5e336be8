package models

import "time"

type RegistrationStatus string

const (
	RegistrationPending   RegistrationStatus = "pending"
	RegistrationConfirmed RegistrationStatus = "confirmed"
	RegistrationDeclined  RegistrationStatus = "declined"
	RegistrationWithdrawn RegistrationStatus = "withdrawn"
	RegistrationExpired   RegistrationStatus = "expired"
)

// RegistrationTTL is how long a pending registration stays valid before the
// expiry sweep marks it expired.
const RegistrationTTL = 14 * 24 * time.Hour

type Registration struct {
	ID           string             `json:"id" db:"id"`
	TournamentID string             `json:"tournament_id" db:"tournament_id"`
	UserID       string             `json:"user_id" db:"user_id"`
	DisplayName  string             `json:"display_name" db:"display_name"`
	PartnerName  *string            `json:"partner_name,omitempty" db:"partner_name"`
	SkillRating  *float64           `json:"skill_rating,omitempty" db:"skill_rating"`
	Status       RegistrationStatus `json:"status" db:"status"`
	RegisteredAt time.Time          `json:"registered_at" db:"registered_at"`
}

// IsExpired reports whether the registration has outlived RegistrationTTL at
// the given instant. Only pending registrations expire.
func (r Registration) IsExpired(now time.Time) bool {
	if r.Status != RegistrationPending {
		return false
	}
	return now.After(r.RegisteredAt.Add(RegistrationTTL))
}
