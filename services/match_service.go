package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/rallypoint-app/rallypoint/brackets"
	"github.com/rallypoint-app/rallypoint/models"
	"github.com/rallypoint-app/rallypoint/repositories"
)

type SchedulePoolMatchInput struct {
	PoolID  string  `json:"pool_id"`
	Round   int     `json:"round"`
	Team1ID string  `json:"team1_id"`
	Team2ID string  `json:"team2_id"`
	Court   *string `json:"court,omitempty"`
}

type RecordResultInput struct {
	Games       []models.GameScore `json:"games"`
	WinningSide models.MatchSide   `json:"winning_side"`
}

type MatchService interface {
	SchedulePoolMatch(ctx context.Context, tournamentID, actorID string, input SchedulePoolMatchInput) (*models.Match, error)
	ScheduleBracketMatch(ctx context.Context, tournamentID, actorID, slotID string) (*models.Match, error)
	RecordResult(ctx context.Context, matchID, actorID string, input RecordResultInput) (*models.Match, error)
	GetByID(ctx context.Context, id string) (*models.Match, error)
	ListByTournament(ctx context.Context, tournamentID string) ([]models.Match, error)
}

type matchService struct {
	db             *sql.DB
	tournamentRepo repositories.TournamentRepository
	teamRepo       repositories.TeamRepository
	poolRepo       repositories.PoolRepository
	bracketRepo    repositories.BracketRepository
	matchRepo      repositories.MatchRepository
	ratingService  RatingService
	hub            *brackets.Hub
	logger         *slog.Logger
}

func NewMatchService(
	db *sql.DB,
	tournamentRepo repositories.TournamentRepository,
	teamRepo repositories.TeamRepository,
	poolRepo repositories.PoolRepository,
	bracketRepo repositories.BracketRepository,
	matchRepo repositories.MatchRepository,
	ratingService RatingService,
	hub *brackets.Hub,
	logger *slog.Logger,
) MatchService {
	return &matchService{
		db:             db,
		tournamentRepo: tournamentRepo,
		teamRepo:       teamRepo,
		poolRepo:       poolRepo,
		bracketRepo:    bracketRepo,
		matchRepo:      matchRepo,
		ratingService:  ratingService,
		hub:            hub,
		logger:         logger,
	}
}

func (s *matchService) SchedulePoolMatch(ctx context.Context, tournamentID, actorID string, input SchedulePoolMatchInput) (*models.Match, error) {
	tournament, err := s.requireOrganizer(ctx, tournamentID, actorID)
	if err != nil {
		return nil, err
	}
	if tournament.Phase != models.PhasePoolPlay {
		return nil, ErrPhaseNotStarted
	}

	pools, err := s.poolRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pools: %w", err)
	}
	entry := findScheduleEntry(pools, input.PoolID, input.Round, input.Team1ID, input.Team2ID)
	if entry == nil {
		return nil, fmt.Errorf("%w: no schedule entry for this pairing", ErrValidationFailed)
	}
	if entry.MatchID != nil {
		return nil, ErrMatchAlreadyScheduled
	}

	match := &models.Match{
		ID:           uuid.NewString(),
		TournamentID: tournamentID,
		Team1ID:      entry.Team1ID,
		Team2ID:      entry.Team2ID,
		Status:       models.MatchStatusScheduled,
		Court:        input.Court,
	}

	err = s.withTx(ctx, func(tx *sql.Tx) error {
		if err := s.matchRepo.Create(ctx, tx, match); err != nil {
			return fmt.Errorf("failed to create match: %w", err)
		}
		return s.poolRepo.AttachMatch(ctx, tx, input.PoolID, entry.Round, entry.Team1ID, entry.Team2ID, match.ID)
	})
	if err != nil {
		return nil, err
	}
	return match, nil
}

func (s *matchService) ScheduleBracketMatch(ctx context.Context, tournamentID, actorID, slotID string) (*models.Match, error) {
	tournament, err := s.requireOrganizer(ctx, tournamentID, actorID)
	if err != nil {
		return nil, err
	}
	if tournament.Phase != models.PhaseBracket {
		return nil, ErrPhaseNotStarted
	}

	slot, err := s.bracketRepo.GetSlot(ctx, slotID)
	if err != nil {
		if errors.Is(err, repositories.ErrBracketSlotNotFound) {
			return nil, ErrSlotNotFound
		}
		return nil, err
	}
	if slot.TournamentID != tournamentID {
		return nil, ErrSlotNotFound
	}
	if slot.Team1ID == nil || slot.Team2ID == nil {
		return nil, ErrSlotNotReady
	}
	if slot.MatchID != nil {
		return nil, ErrMatchAlreadyScheduled
	}

	match := &models.Match{
		ID:           uuid.NewString(),
		TournamentID: tournamentID,
		Team1ID:      *slot.Team1ID,
		Team2ID:      *slot.Team2ID,
		Status:       models.MatchStatusScheduled,
	}

	err = s.withTx(ctx, func(tx *sql.Tx) error {
		if err := s.matchRepo.Create(ctx, tx, match); err != nil {
			return fmt.Errorf("failed to create match: %w", err)
		}
		return s.bracketRepo.SetMatch(ctx, tx, slotID, match.ID)
	})
	if err != nil {
		return nil, err
	}
	return match, nil
}

// RecordResult stores the final score of a match and runs everything the
// result touches: bracket advancement with the rescore guard, standings
// broadcasts, and skill rating updates on first completion.
func (s *matchService) RecordResult(ctx context.Context, matchID, actorID string, input RecordResultInput) (*models.Match, error) {
	match, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	if _, err := s.requireOrganizer(ctx, match.TournamentID, actorID); err != nil {
		return nil, err
	}
	if err := validateResult(input); err != nil {
		return nil, err
	}

	firstCompletion := match.Status != models.MatchStatusCompleted

	allSlots, err := s.bracketRepo.ListByTournament(ctx, match.TournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bracket slots: %w", err)
	}
	slot := slotForMatch(allSlots, matchID)

	winnerID := teamForSide(match, input.WinningSide)
	if slot != nil {
		if check := brackets.CheckRescoreSafety(*slot, winnerID, allSlots); !check.Safe {
			return nil, fmt.Errorf("%w: %s", ErrUnsafeRescore, check.Message)
		}
	}

	now := time.Now()
	match.Games = input.Games
	match.WinningSide = &input.WinningSide
	match.Status = models.MatchStatusCompleted
	match.CompletedAt = &now

	err = s.withTx(ctx, func(tx *sql.Tx) error {
		if err := s.matchRepo.RecordResult(ctx, tx, match); err != nil {
			return fmt.Errorf("failed to record result: %w", err)
		}
		if slot == nil {
			return nil
		}
		if err := s.bracketRepo.SetWinner(ctx, tx, slot.ID, winnerID); err != nil {
			return fmt.Errorf("failed to set slot winner: %w", err)
		}
		if adv := brackets.AdvanceWinner(*slot, winnerID, allSlots); adv != nil {
			if err := s.bracketRepo.SetSlotTeam(ctx, tx, adv.SlotID, string(adv.Field), adv.WinnerID); err != nil {
				return fmt.Errorf("failed to advance winner: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.broadcastResult(ctx, match, slot)

	if firstCompletion {
		if err := s.updateRatings(ctx, match); err != nil {
			// Ratings are derived data; a failure here does not undo the
			// recorded result.
			s.logger.ErrorContext(ctx, "failed to update ratings after match",
				slog.String("match_id", match.ID),
				slog.Any("error", err),
			)
		}
	}
	return match, nil
}

func (s *matchService) GetByID(ctx context.Context, id string) (*models.Match, error) {
	match, err := s.matchRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	return match, nil
}

func (s *matchService) ListByTournament(ctx context.Context, tournamentID string) ([]models.Match, error) {
	matches, err := s.matchRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	return matches, nil
}

func (s *matchService) broadcastResult(ctx context.Context, match *models.Match, slot *models.BracketSlot) {
	s.hub.Broadcast(match.TournamentID, brackets.EventMatchCompleted, match)

	if slot != nil {
		s.hub.Broadcast(match.TournamentID, brackets.EventBracketUpdated, map[string]string{"slot_id": slot.ID})
		return
	}

	// Pool match: push the recomputed standings of the affected pool.
	pools, err := s.poolRepo.ListByTournament(ctx, match.TournamentID)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to reload pools for standings broadcast", slog.Any("error", err))
		return
	}
	matches, err := s.matchRepo.ListByTournament(ctx, match.TournamentID)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to reload matches for standings broadcast", slog.Any("error", err))
		return
	}
	for _, pool := range pools {
		if !poolContainsMatch(pool, match.ID) {
			continue
		}
		standings := brackets.CalculateStandings(pool.TeamIDs, matchesForPool(pool, matches), projectMatchTeams)
		s.hub.Broadcast(match.TournamentID, brackets.EventStandingsUpdated, map[string]interface{}{
			"pool_id":   pool.ID,
			"standings": standings,
		})
		return
	}
}

func (s *matchService) updateRatings(ctx context.Context, match *models.Match) error {
	team1, err := s.teamRepo.GetByID(ctx, match.Team1ID)
	if err != nil {
		return fmt.Errorf("failed to load team %s: %w", match.Team1ID, err)
	}
	team2, err := s.teamRepo.GetByID(ctx, match.Team2ID)
	if err != nil {
		return fmt.Errorf("failed to load team %s: %w", match.Team2ID, err)
	}
	return s.ratingService.ApplyMatchResult(ctx, match, team1, team2)
}

func (s *matchService) requireOrganizer(ctx context.Context, tournamentID, actorID string) (*models.Tournament, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, tournamentID)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	if tournament.OrganizerID != actorID {
		return nil, ErrNotOrganizer
	}
	return tournament, nil
}

func (s *matchService) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			s.logger.Error("rollback failed", slog.Any("error", rbErr))
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// validateResult requires at least one game, no tied games, and a winning
// side that actually won the majority of games.
func validateResult(input RecordResultInput) error {
	if input.WinningSide != models.SideTeam1 && input.WinningSide != models.SideTeam2 {
		return fmt.Errorf("%w: winning side must be team1 or team2", ErrValidationFailed)
	}
	if len(input.Games) == 0 {
		return fmt.Errorf("%w: at least one game score is required", ErrValidationFailed)
	}
	team1Games, team2Games := 0, 0
	for i, g := range input.Games {
		if g.Team1Points < 0 || g.Team2Points < 0 {
			return fmt.Errorf("%w: game %d has negative points", ErrValidationFailed, i+1)
		}
		switch {
		case g.Team1Points > g.Team2Points:
			team1Games++
		case g.Team2Points > g.Team1Points:
			team2Games++
		default:
			return fmt.Errorf("%w: game %d is tied", ErrValidationFailed, i+1)
		}
	}
	winnerGames, loserGames := team1Games, team2Games
	if input.WinningSide == models.SideTeam2 {
		winnerGames, loserGames = team2Games, team1Games
	}
	if winnerGames <= loserGames {
		return ErrMatchNotDecided
	}
	return nil
}

func teamForSide(match *models.Match, side models.MatchSide) string {
	if side == models.SideTeam1 {
		return match.Team1ID
	}
	return match.Team2ID
}

func slotForMatch(slots []models.BracketSlot, matchID string) *models.BracketSlot {
	for i := range slots {
		if slots[i].MatchID != nil && *slots[i].MatchID == matchID {
			return &slots[i]
		}
	}
	return nil
}

func findScheduleEntry(pools []models.Pool, poolID string, round int, team1ID, team2ID string) *models.PoolScheduleEntry {
	for _, pool := range pools {
		if pool.ID != poolID {
			continue
		}
		for i := range pool.Schedule {
			entry := &pool.Schedule[i]
			if entry.Round != round {
				continue
			}
			samePair := (entry.Team1ID == team1ID && entry.Team2ID == team2ID) ||
				(entry.Team1ID == team2ID && entry.Team2ID == team1ID)
			if samePair {
				return entry
			}
		}
	}
	return nil
}

func poolContainsMatch(pool models.Pool, matchID string) bool {
	for _, entry := range pool.Schedule {
		if entry.MatchID != nil && *entry.MatchID == matchID {
			return true
		}
	}
	return false
}
