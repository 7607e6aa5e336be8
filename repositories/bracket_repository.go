package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/rallypoint-app/rallypoint/models"
)

var ErrBracketSlotNotFound = errors.New("bracket slot not found")

type BracketRepository interface {
	CreateBatch(ctx context.Context, exec SQLExecutor, slots []*models.BracketSlot) error
	GetSlot(ctx context.Context, id string) (*models.BracketSlot, error)
	ListByTournament(ctx context.Context, tournamentID string) ([]models.BracketSlot, error)
	SetMatch(ctx context.Context, exec SQLExecutor, slotID, matchID string) error
	SetWinner(ctx context.Context, exec SQLExecutor, slotID, winnerID string) error
	SetSlotTeam(ctx context.Context, exec SQLExecutor, slotID string, field string, teamID string) error
}

type postgresBracketRepository struct {
	db *sql.DB
}

func NewPostgresBracketRepository(db *sql.DB) BracketRepository {
	return &postgresBracketRepository{db: db}
}

func (r *postgresBracketRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

const slotColumns = `id, tournament_id, round, position, team1_id, team2_id, match_id, winner_id, next_slot_id`

func (r *postgresBracketRepository) CreateBatch(ctx context.Context, exec SQLExecutor, slots []*models.BracketSlot) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO bracket_slots (id, tournament_id, round, position, team1_id, team2_id, next_slot_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	for _, s := range slots {
		_, err := executor.ExecContext(ctx, query,
			s.ID, s.TournamentID, s.Round, s.Position, s.Team1ID, s.Team2ID, s.NextSlotID,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *postgresBracketRepository) GetSlot(ctx context.Context, id string) (*models.BracketSlot, error) {
	s := &models.BracketSlot{}
	err := r.db.QueryRowContext(ctx,
		`SELECT `+slotColumns+` FROM bracket_slots WHERE id = $1`, id,
	).Scan(&s.ID, &s.TournamentID, &s.Round, &s.Position, &s.Team1ID, &s.Team2ID, &s.MatchID, &s.WinnerID, &s.NextSlotID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBracketSlotNotFound
		}
		return nil, err
	}
	return s, nil
}

func (r *postgresBracketRepository) ListByTournament(ctx context.Context, tournamentID string) ([]models.BracketSlot, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+slotColumns+` FROM bracket_slots WHERE tournament_id = $1 ORDER BY round ASC, position ASC`,
		tournamentID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	slots := []models.BracketSlot{}
	for rows.Next() {
		var s models.BracketSlot
		if err := rows.Scan(
			&s.ID, &s.TournamentID, &s.Round, &s.Position,
			&s.Team1ID, &s.Team2ID, &s.MatchID, &s.WinnerID, &s.NextSlotID,
		); err != nil {
			return nil, err
		}
		slots = append(slots, s)
	}
	return slots, rows.Err()
}

func (r *postgresBracketRepository) SetMatch(ctx context.Context, exec SQLExecutor, slotID, matchID string) error {
	executor := r.getExecutor(exec)
	result, err := executor.ExecContext(ctx,
		`UPDATE bracket_slots SET match_id = $1 WHERE id = $2`, matchID, slotID)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrBracketSlotNotFound)
}

func (r *postgresBracketRepository) SetWinner(ctx context.Context, exec SQLExecutor, slotID, winnerID string) error {
	executor := r.getExecutor(exec)
	result, err := executor.ExecContext(ctx,
		`UPDATE bracket_slots SET winner_id = $1 WHERE id = $2`, winnerID, slotID)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrBracketSlotNotFound)
}

// SetSlotTeam writes an advanced winner into team1_id or team2_id. The field
// name comes from brackets.SlotField and is mapped here, never interpolated.
func (r *postgresBracketRepository) SetSlotTeam(ctx context.Context, exec SQLExecutor, slotID string, field string, teamID string) error {
	executor := r.getExecutor(exec)

	var query string
	switch field {
	case "team1":
		query = `UPDATE bracket_slots SET team1_id = $1 WHERE id = $2`
	case "team2":
		query = `UPDATE bracket_slots SET team2_id = $1 WHERE id = $2`
	default:
		return errors.New("unknown bracket slot field: " + field)
	}

	result, err := executor.ExecContext(ctx, query, teamID, slotID)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrBracketSlotNotFound)
}
