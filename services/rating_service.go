package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/rallypoint-app/rallypoint/models"
	"github.com/rallypoint-app/rallypoint/rating"
	"github.com/rallypoint-app/rallypoint/repositories"
)

type RatingService interface {
	GetPlayerRating(ctx context.Context, userID string) (*models.PlayerRating, error)
	// ApplyMatchResult records the outcome for every player on both teams and
	// recomputes their scores, tiers, and confidence.
	ApplyMatchResult(ctx context.Context, match *models.Match, team1, team2 *models.Team) error
}

type ratingService struct {
	ratingRepo repositories.RatingRepository
	logger     *slog.Logger
}

func NewRatingService(ratingRepo repositories.RatingRepository, logger *slog.Logger) RatingService {
	return &ratingService{ratingRepo: ratingRepo, logger: logger}
}

func (s *ratingService) GetPlayerRating(ctx context.Context, userID string) (*models.PlayerRating, error) {
	pr, err := s.ratingRepo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrRatingNotFound) {
			return nil, ErrRatingNotFound
		}
		return nil, err
	}
	return pr, nil
}

func (s *ratingService) ApplyMatchResult(ctx context.Context, match *models.Match, team1, team2 *models.Team) error {
	winnerID := match.WinnerTeamID()
	if winnerID == "" {
		return ErrMatchNotDecided
	}
	completedAt := time.Now()
	if match.CompletedAt != nil {
		completedAt = *match.CompletedAt
	}

	gameType := models.GameTypeSingles
	if len(team1.PlayerIDs) > 1 || len(team2.PlayerIDs) > 1 {
		gameType = models.GameTypeDoubles
	}

	for _, pair := range []struct {
		team, opponents *models.Team
	}{
		{team1, team2},
		{team2, team1},
	} {
		won := pair.team.ID == winnerID
		oppID, oppTier, err := s.representativeOpponent(ctx, pair.opponents)
		if err != nil {
			return err
		}
		result := models.RecentResult{
			Won:          won,
			OpponentID:   oppID,
			OpponentTier: oppTier,
			GameType:     gameType,
			CompletedAt:  completedAt,
		}
		for _, playerID := range pair.team.PlayerIDs {
			if err := s.applyResult(ctx, playerID, result); err != nil {
				return err
			}
		}
	}
	return nil
}

// representativeOpponent picks the strongest player on the opposing team.
// Singles teams have exactly one candidate; for doubles the higher tier
// dominates the difficulty of the matchup.
func (s *ratingService) representativeOpponent(ctx context.Context, opponents *models.Team) (string, models.Tier, error) {
	bestID := ""
	bestTier := models.TierBeginner
	bestIdx := -1
	for _, playerID := range opponents.PlayerIDs {
		tier := models.TierBeginner
		pr, err := s.ratingRepo.Get(ctx, playerID)
		switch {
		case err == nil:
			tier = pr.Tier
		case errors.Is(err, repositories.ErrRatingNotFound):
			// Unrated opponents count as beginners.
		default:
			return "", "", fmt.Errorf("failed to load opponent rating: %w", err)
		}
		if idx := tierRank(tier); idx > bestIdx {
			bestID, bestTier, bestIdx = playerID, tier, idx
		}
	}
	return bestID, bestTier, nil
}

func (s *ratingService) applyResult(ctx context.Context, playerID string, result models.RecentResult) error {
	current, err := s.ratingRepo.Get(ctx, playerID)
	if err != nil && !errors.Is(err, repositories.ErrRatingNotFound) {
		return fmt.Errorf("failed to load rating for player %s: %w", playerID, err)
	}

	currentTier := models.TierBeginner
	var history rating.History
	if current != nil {
		currentTier = current.Tier
		history = rating.NewHistory(current.Results)
	}
	history.Push(result)

	results := history.Results()
	score := rating.ComputeTierScore(results)
	updated := &models.PlayerRating{
		UserID:     playerID,
		Score:      score,
		Tier:       rating.ComputeTier(score, currentTier),
		Confidence: rating.ComputeTierConfidence(history.Len(), history.UniqueOpponents()),
		Results:    results,
	}
	if err := s.ratingRepo.Save(ctx, updated); err != nil {
		return fmt.Errorf("failed to save rating for player %s: %w", playerID, err)
	}

	if updated.Tier != currentTier {
		s.logger.InfoContext(ctx, "player tier changed",
			slog.String("user_id", playerID),
			slog.String("from", string(currentTier)),
			slog.String("to", string(updated.Tier)),
		)
	}
	return nil
}

func tierRank(tier models.Tier) int {
	for i, t := range models.TierOrder {
		if t == tier {
			return i
		}
	}
	return 0
}
