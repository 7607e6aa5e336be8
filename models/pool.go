package models

// PoolScheduleEntry is one scheduled matchup inside a pool. MatchID stays nil
// until a match record is created for the entry. Each unordered pair of teams
// in a pool appears in exactly one entry.
type PoolScheduleEntry struct {
	Round   int     `json:"round" db:"round"`
	Team1ID string  `json:"team1_id" db:"team1_id"`
	Team2ID string  `json:"team2_id" db:"team2_id"`
	MatchID *string `json:"match_id,omitempty" db:"match_id"`
	Court   *string `json:"court,omitempty" db:"court"`
}

type Pool struct {
	ID           string              `json:"id" db:"id"`
	TournamentID string              `json:"tournament_id" db:"tournament_id"`
	Name         string              `json:"name" db:"name"`
	TeamIDs      []string            `json:"team_ids" db:"-"`
	Schedule     []PoolScheduleEntry `json:"schedule" db:"-"`
}

// PoolStanding is one row of a pool's standings table. PointDiff is always
// recomputed from PointsFor and PointsAgainst, never stored independently.
type PoolStanding struct {
	TeamID        string `json:"team_id"`
	Wins          int    `json:"wins"`
	Losses        int    `json:"losses"`
	PointsFor     int    `json:"points_for"`
	PointsAgainst int    `json:"points_against"`
	PointDiff     int    `json:"point_diff"`
}
