package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/rallypoint-app/rallypoint/models"
)

var ErrRatingNotFound = errors.New("player rating not found")

type RatingRepository interface {
	// Get returns the player's rating with the result buffer ordered most
	// recent first, or ErrRatingNotFound for a player with no history yet.
	Get(ctx context.Context, userID string) (*models.PlayerRating, error)
	// Save upserts the rating row and rewrites the result buffer.
	Save(ctx context.Context, rating *models.PlayerRating) error
}

type postgresRatingRepository struct {
	db *sql.DB
}

func NewPostgresRatingRepository(db *sql.DB) RatingRepository {
	return &postgresRatingRepository{db: db}
}

func (r *postgresRatingRepository) Get(ctx context.Context, userID string) (*models.PlayerRating, error) {
	rating := &models.PlayerRating{}
	err := r.db.QueryRowContext(ctx, `
		SELECT user_id, score, tier, confidence, updated_at
		FROM player_ratings WHERE user_id = $1`, userID,
	).Scan(&rating.UserID, &rating.Score, &rating.Tier, &rating.Confidence, &rating.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRatingNotFound
		}
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT won, opponent_id, opponent_tier, game_type, completed_at
		FROM rating_results WHERE user_id = $1
		ORDER BY buffer_index ASC`, userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var res models.RecentResult
		if err := rows.Scan(&res.Won, &res.OpponentID, &res.OpponentTier, &res.GameType, &res.CompletedAt); err != nil {
			return nil, err
		}
		rating.Results = append(rating.Results, res)
	}
	return rating, rows.Err()
}

func (r *postgresRatingRepository) Save(ctx context.Context, rating *models.PlayerRating) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO player_ratings (user_id, score, tier, confidence, updated_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (user_id) DO UPDATE
		SET score = EXCLUDED.score, tier = EXCLUDED.tier,
		    confidence = EXCLUDED.confidence, updated_at = now()`,
		rating.UserID, rating.Score, rating.Tier, rating.Confidence,
	)
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM rating_results WHERE user_id = $1`, rating.UserID); err != nil {
		return err
	}
	for i, res := range rating.Results {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO rating_results (user_id, buffer_index, won, opponent_id, opponent_tier, game_type, completed_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			rating.UserID, i, res.Won, res.OpponentID, res.OpponentTier, res.GameType, res.CompletedAt,
		)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}
