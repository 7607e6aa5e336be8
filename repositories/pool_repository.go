package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/rallypoint-app/rallypoint/models"
)

var ErrPoolNotFound = errors.New("pool not found")

type PoolRepository interface {
	CreateBatch(ctx context.Context, exec SQLExecutor, pools []*models.Pool) error
	ListByTournament(ctx context.Context, tournamentID string) ([]models.Pool, error)
	AttachMatch(ctx context.Context, exec SQLExecutor, poolID string, round int, team1ID, team2ID, matchID string) error
}

type postgresPoolRepository struct {
	db *sql.DB
}

func NewPostgresPoolRepository(db *sql.DB) PoolRepository {
	return &postgresPoolRepository{db: db}
}

func (r *postgresPoolRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresPoolRepository) CreateBatch(ctx context.Context, exec SQLExecutor, pools []*models.Pool) error {
	executor := r.getExecutor(exec)

	for _, pool := range pools {
		_, err := executor.ExecContext(ctx,
			`INSERT INTO pools (id, tournament_id, name) VALUES ($1, $2, $3)`,
			pool.ID, pool.TournamentID, pool.Name,
		)
		if err != nil {
			return err
		}
		for _, entry := range pool.Schedule {
			_, err := executor.ExecContext(ctx, `
				INSERT INTO pool_schedule_entries (pool_id, round, team1_id, team2_id, match_id, court)
				VALUES ($1, $2, $3, $4, $5, $6)`,
				pool.ID, entry.Round, entry.Team1ID, entry.Team2ID, entry.MatchID, entry.Court,
			)
			if err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *postgresPoolRepository) ListByTournament(ctx context.Context, tournamentID string) ([]models.Pool, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, tournament_id, name FROM pools WHERE tournament_id = $1 ORDER BY name ASC`,
		tournamentID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	pools := []models.Pool{}
	for rows.Next() {
		var p models.Pool
		if err := rows.Scan(&p.ID, &p.TournamentID, &p.Name); err != nil {
			return nil, err
		}
		pools = append(pools, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range pools {
		if err := r.loadTeamIDs(ctx, &pools[i]); err != nil {
			return nil, err
		}
		if err := r.loadSchedule(ctx, &pools[i]); err != nil {
			return nil, err
		}
	}
	return pools, nil
}

func (r *postgresPoolRepository) loadTeamIDs(ctx context.Context, pool *models.Pool) error {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id FROM teams WHERE pool_id = $1 ORDER BY seed NULLS LAST, created_at ASC`,
		pool.ID,
	)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return err
		}
		pool.TeamIDs = append(pool.TeamIDs, id)
	}
	return rows.Err()
}

func (r *postgresPoolRepository) loadSchedule(ctx context.Context, pool *models.Pool) error {
	rows, err := r.db.QueryContext(ctx, `
		SELECT round, team1_id, team2_id, match_id, court
		FROM pool_schedule_entries
		WHERE pool_id = $1
		ORDER BY round ASC, team1_id ASC`,
		pool.ID,
	)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var e models.PoolScheduleEntry
		if err := rows.Scan(&e.Round, &e.Team1ID, &e.Team2ID, &e.MatchID, &e.Court); err != nil {
			return err
		}
		pool.Schedule = append(pool.Schedule, e)
	}
	return rows.Err()
}

func (r *postgresPoolRepository) AttachMatch(ctx context.Context, exec SQLExecutor, poolID string, round int, team1ID, team2ID, matchID string) error {
	executor := r.getExecutor(exec)
	result, err := executor.ExecContext(ctx, `
		UPDATE pool_schedule_entries SET match_id = $1
		WHERE pool_id = $2 AND round = $3
		  AND ((team1_id = $4 AND team2_id = $5) OR (team1_id = $5 AND team2_id = $4))`,
		matchID, poolID, round, team1ID, team2ID,
	)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrPoolNotFound)
}
