package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/rallypoint-app/rallypoint/models"
)

var ErrMatchNotFound = errors.New("match not found")

type MatchRepository interface {
	Create(ctx context.Context, exec SQLExecutor, match *models.Match) error
	GetByID(ctx context.Context, id string) (*models.Match, error)
	ListByTournament(ctx context.Context, tournamentID string) ([]models.Match, error)
	RecordResult(ctx context.Context, exec SQLExecutor, match *models.Match) error
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

func (r *postgresMatchRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresMatchRepository) Create(ctx context.Context, exec SQLExecutor, m *models.Match) error {
	executor := r.getExecutor(exec)
	_, err := executor.ExecContext(ctx, `
		INSERT INTO matches (id, tournament_id, team1_id, team2_id, status, court, scheduled_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		m.ID, m.TournamentID, m.Team1ID, m.Team2ID, m.Status, m.Court, m.ScheduledAt,
	)
	return err
}

func (r *postgresMatchRepository) GetByID(ctx context.Context, id string) (*models.Match, error) {
	m := &models.Match{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, tournament_id, team1_id, team2_id, winning_side, status, court, scheduled_at, completed_at
		FROM matches WHERE id = $1`, id,
	).Scan(&m.ID, &m.TournamentID, &m.Team1ID, &m.Team2ID, &m.WinningSide, &m.Status, &m.Court, &m.ScheduledAt, &m.CompletedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	if err := r.loadGames(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (r *postgresMatchRepository) ListByTournament(ctx context.Context, tournamentID string) ([]models.Match, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, tournament_id, team1_id, team2_id, winning_side, status, court, scheduled_at, completed_at
		FROM matches WHERE tournament_id = $1
		ORDER BY scheduled_at NULLS LAST, id ASC`,
		tournamentID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	matches := []models.Match{}
	for rows.Next() {
		var m models.Match
		if err := rows.Scan(
			&m.ID, &m.TournamentID, &m.Team1ID, &m.Team2ID,
			&m.WinningSide, &m.Status, &m.Court, &m.ScheduledAt, &m.CompletedAt,
		); err != nil {
			return nil, err
		}
		matches = append(matches, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range matches {
		if err := r.loadGames(ctx, &matches[i]); err != nil {
			return nil, err
		}
	}
	return matches, nil
}

func (r *postgresMatchRepository) loadGames(ctx context.Context, m *models.Match) error {
	rows, err := r.db.QueryContext(ctx, `
		SELECT team1_points, team2_points
		FROM match_games WHERE match_id = $1
		ORDER BY game_number ASC`,
		m.ID,
	)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var g models.GameScore
		if err := rows.Scan(&g.Team1Points, &g.Team2Points); err != nil {
			return err
		}
		m.Games = append(m.Games, g)
	}
	return rows.Err()
}

// RecordResult replaces the game scores and final state of a match. Rescores
// overwrite the prior games, so the rows are cleared first.
func (r *postgresMatchRepository) RecordResult(ctx context.Context, exec SQLExecutor, m *models.Match) error {
	executor := r.getExecutor(exec)

	result, err := executor.ExecContext(ctx, `
		UPDATE matches SET winning_side = $1, status = $2, completed_at = $3
		WHERE id = $4`,
		m.WinningSide, m.Status, m.CompletedAt, m.ID,
	)
	if err != nil {
		return err
	}
	if err := checkAffectedRows(result, ErrMatchNotFound); err != nil {
		return err
	}

	if _, err := executor.ExecContext(ctx, `DELETE FROM match_games WHERE match_id = $1`, m.ID); err != nil {
		return err
	}
	for i, g := range m.Games {
		_, err := executor.ExecContext(ctx, `
			INSERT INTO match_games (match_id, game_number, team1_points, team2_points)
			VALUES ($1, $2, $3, $4)`,
			m.ID, i+1, g.Team1Points, g.Team2Points,
		)
		if err != nil {
			return err
		}
	}
	return nil
}
