package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"
	"github.com/rallypoint-app/rallypoint/models"
)

var (
	ErrRegistrationNotFound = errors.New("registration not found")
	ErrRegistrationConflict = errors.New("user is already registered for this tournament")
)

type RegistrationRepository interface {
	Create(ctx context.Context, reg *models.Registration) error
	GetByID(ctx context.Context, id string) (*models.Registration, error)
	ListByTournament(ctx context.Context, tournamentID string, status *models.RegistrationStatus) ([]models.Registration, error)
	UpdateStatus(ctx context.Context, id string, status models.RegistrationStatus) error
	// ExpirePending flips every pending registration older than the cutoff to
	// expired and returns how many rows changed.
	ExpirePending(ctx context.Context, cutoff time.Time) (int64, error)
}

type postgresRegistrationRepository struct {
	db *sql.DB
}

func NewPostgresRegistrationRepository(db *sql.DB) RegistrationRepository {
	return &postgresRegistrationRepository{db: db}
}

// Registrations join users for the display name: team formation names teams
// and resolves BYOP partners by display name.
const registrationColumns = `
	r.id, r.tournament_id, r.user_id, u.display_name, r.partner_name,
	r.skill_rating, r.status, r.registered_at`

func (r *postgresRegistrationRepository) Create(ctx context.Context, reg *models.Registration) error {
	query := `
		INSERT INTO registrations (id, tournament_id, user_id, partner_name, skill_rating, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING registered_at`

	err := r.db.QueryRowContext(ctx, query,
		reg.ID, reg.TournamentID, reg.UserID, reg.PartnerName, reg.SkillRating, reg.Status,
	).Scan(&reg.RegisteredAt)

	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
		return ErrRegistrationConflict
	}
	return err
}

func (r *postgresRegistrationRepository) GetByID(ctx context.Context, id string) (*models.Registration, error) {
	query := `
		SELECT ` + registrationColumns + `
		FROM registrations r JOIN users u ON u.id = r.user_id
		WHERE r.id = $1`

	reg := &models.Registration{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&reg.ID, &reg.TournamentID, &reg.UserID, &reg.DisplayName, &reg.PartnerName,
		&reg.SkillRating, &reg.Status, &reg.RegisteredAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRegistrationNotFound
		}
		return nil, err
	}
	return reg, nil
}

func (r *postgresRegistrationRepository) ListByTournament(ctx context.Context, tournamentID string, status *models.RegistrationStatus) ([]models.Registration, error) {
	query := `
		SELECT ` + registrationColumns + `
		FROM registrations r JOIN users u ON u.id = r.user_id
		WHERE r.tournament_id = $1`
	args := []interface{}{tournamentID}

	if status != nil {
		args = append(args, *status)
		query += ` AND r.status = $2`
	}
	query += ` ORDER BY r.registered_at ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	regs := []models.Registration{}
	for rows.Next() {
		var reg models.Registration
		if err := rows.Scan(
			&reg.ID, &reg.TournamentID, &reg.UserID, &reg.DisplayName, &reg.PartnerName,
			&reg.SkillRating, &reg.Status, &reg.RegisteredAt,
		); err != nil {
			return nil, err
		}
		regs = append(regs, reg)
	}
	return regs, rows.Err()
}

func (r *postgresRegistrationRepository) UpdateStatus(ctx context.Context, id string, status models.RegistrationStatus) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE registrations SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrRegistrationNotFound)
}

func (r *postgresRegistrationRepository) ExpirePending(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx, `
		UPDATE registrations SET status = $1
		WHERE status = $2 AND registered_at < $3`,
		models.RegistrationExpired, models.RegistrationPending, cutoff,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
