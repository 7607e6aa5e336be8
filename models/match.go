package models

import "time"

type MatchStatus string

const (
	MatchStatusScheduled  MatchStatus = "scheduled"
	MatchStatusInProgress MatchStatus = "in_progress"
	MatchStatusCompleted  MatchStatus = "completed"
	MatchStatusCanceled   MatchStatus = "canceled"
)

// MatchSide identifies which of a match's two team fields won.
type MatchSide string

const (
	SideTeam1 MatchSide = "team1"
	SideTeam2 MatchSide = "team2"
)

// GameScore holds the points of one game, ordered as (team1, team2).
type GameScore struct {
	Team1Points int `json:"team1_points" db:"team1_points"`
	Team2Points int `json:"team2_points" db:"team2_points"`
}

type Match struct {
	ID           string      `json:"id" db:"id"`
	TournamentID string      `json:"tournament_id" db:"tournament_id"`
	Team1ID      string      `json:"team1_id" db:"team1_id"`
	Team2ID      string      `json:"team2_id" db:"team2_id"`
	Games        []GameScore `json:"games" db:"-"`
	WinningSide  *MatchSide  `json:"winning_side,omitempty" db:"winning_side"`
	Status       MatchStatus `json:"status" db:"status"`
	Court        *string     `json:"court,omitempty" db:"court"`
	ScheduledAt  *time.Time  `json:"scheduled_at,omitempty" db:"scheduled_at"`
	CompletedAt  *time.Time  `json:"completed_at,omitempty" db:"completed_at"`
}

// WinnerTeamID resolves the recorded winning side to a team identifier.
// Returns empty string while the match is undecided.
func (m Match) WinnerTeamID() string {
	if m.WinningSide == nil {
		return ""
	}
	if *m.WinningSide == SideTeam1 {
		return m.Team1ID
	}
	return m.Team2ID
}
