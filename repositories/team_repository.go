package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
	"github.com/rallypoint-app/rallypoint/models"
)

var ErrTeamNotFound = errors.New("team not found")

type TeamRepository interface {
	CreateBatch(ctx context.Context, exec SQLExecutor, teams []*models.Team) error
	GetByID(ctx context.Context, id string) (*models.Team, error)
	ListByTournament(ctx context.Context, tournamentID string) ([]models.Team, error)
	UpdateSeeds(ctx context.Context, exec SQLExecutor, teams []models.Team) error
	AssignPool(ctx context.Context, exec SQLExecutor, teamID, poolID string) error
}

type postgresTeamRepository struct {
	db *sql.DB
}

func NewPostgresTeamRepository(db *sql.DB) TeamRepository {
	return &postgresTeamRepository{db: db}
}

func (r *postgresTeamRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresTeamRepository) CreateBatch(ctx context.Context, exec SQLExecutor, teams []*models.Team) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO teams (id, tournament_id, name, player_ids, seed, pool_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`

	for _, team := range teams {
		err := executor.QueryRowContext(ctx, query,
			team.ID, team.TournamentID, team.Name, pq.Array(team.PlayerIDs), team.Seed, team.PoolID,
		).Scan(&team.CreatedAt)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *postgresTeamRepository) GetByID(ctx context.Context, id string) (*models.Team, error) {
	query := `
		SELECT id, tournament_id, name, player_ids, seed, pool_id, created_at
		FROM teams WHERE id = $1`

	t := &models.Team{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&t.ID, &t.TournamentID, &t.Name, pq.Array(&t.PlayerIDs), &t.Seed, &t.PoolID, &t.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	return t, nil
}

func (r *postgresTeamRepository) ListByTournament(ctx context.Context, tournamentID string) ([]models.Team, error) {
	query := `
		SELECT id, tournament_id, name, player_ids, seed, pool_id, created_at
		FROM teams WHERE tournament_id = $1
		ORDER BY seed NULLS LAST, created_at ASC`

	rows, err := r.db.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	teams := []models.Team{}
	for rows.Next() {
		var t models.Team
		if err := rows.Scan(
			&t.ID, &t.TournamentID, &t.Name, pq.Array(&t.PlayerIDs), &t.Seed, &t.PoolID, &t.CreatedAt,
		); err != nil {
			return nil, err
		}
		teams = append(teams, t)
	}
	return teams, rows.Err()
}

func (r *postgresTeamRepository) UpdateSeeds(ctx context.Context, exec SQLExecutor, teams []models.Team) error {
	executor := r.getExecutor(exec)
	for _, team := range teams {
		result, err := executor.ExecContext(ctx,
			`UPDATE teams SET seed = $1 WHERE id = $2`, team.Seed, team.ID)
		if err != nil {
			return err
		}
		if err := checkAffectedRows(result, ErrTeamNotFound); err != nil {
			return err
		}
	}
	return nil
}

func (r *postgresTeamRepository) AssignPool(ctx context.Context, exec SQLExecutor, teamID, poolID string) error {
	executor := r.getExecutor(exec)
	result, err := executor.ExecContext(ctx,
		`UPDATE teams SET pool_id = $1 WHERE id = $2`, poolID, teamID)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}
