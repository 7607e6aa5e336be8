package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/rallypoint-app/rallypoint/brackets"
	"github.com/rallypoint-app/rallypoint/formation"
	"github.com/rallypoint-app/rallypoint/models"
	"github.com/rallypoint-app/rallypoint/repositories"
)

// PhaseChangeResult reports what a phase transition produced. Unmatched is
// populated when leaving registration so the organizer can see who could not
// be placed on a team. ChampionID is set when the transition completed a
// bracket tournament.
type PhaseChangeResult struct {
	Tournament *models.Tournament    `json:"tournament"`
	Unmatched  []models.Registration `json:"unmatched,omitempty"`
	ChampionID string                `json:"champion_id,omitempty"`
}

type LifecycleService interface {
	// AdvancePhase moves the tournament to the next phase, generating teams,
	// pools, and bracket structure as the transition requires.
	AdvancePhase(ctx context.Context, tournamentID, actorID string, next models.TournamentPhase) (*PhaseChangeResult, error)
	// PreviewTeams runs team formation without persisting anything.
	PreviewTeams(ctx context.Context, tournamentID string) (*formation.Result, error)
}

type lifecycleService struct {
	db               *sql.DB
	tournamentRepo   repositories.TournamentRepository
	registrationRepo repositories.RegistrationRepository
	teamRepo         repositories.TeamRepository
	poolRepo         repositories.PoolRepository
	bracketRepo      repositories.BracketRepository
	matchRepo        repositories.MatchRepository
	hub              *brackets.Hub
	logger           *slog.Logger
}

func NewLifecycleService(
	db *sql.DB,
	tournamentRepo repositories.TournamentRepository,
	registrationRepo repositories.RegistrationRepository,
	teamRepo repositories.TeamRepository,
	poolRepo repositories.PoolRepository,
	bracketRepo repositories.BracketRepository,
	matchRepo repositories.MatchRepository,
	hub *brackets.Hub,
	logger *slog.Logger,
) LifecycleService {
	return &lifecycleService{
		db:               db,
		tournamentRepo:   tournamentRepo,
		registrationRepo: registrationRepo,
		teamRepo:         teamRepo,
		poolRepo:         poolRepo,
		bracketRepo:      bracketRepo,
		matchRepo:        matchRepo,
		hub:              hub,
		logger:           logger,
	}
}

func (s *lifecycleService) AdvancePhase(ctx context.Context, tournamentID, actorID string, next models.TournamentPhase) (*PhaseChangeResult, error) {
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
	if !isValidPhaseTransition(tournament.Phase, next, tournament.Format) {
		return nil, fmt.Errorf("%w: %s -> %s for format %s",
			ErrInvalidPhaseTransition, tournament.Phase, next, tournament.Format)
	}

	var result *PhaseChangeResult
	switch {
	case tournament.Phase == models.PhaseRegistration && next == models.PhaseCanceled,
		tournament.Phase == models.PhasePoolPlay && next == models.PhaseCanceled,
		tournament.Phase == models.PhaseBracket && next == models.PhaseCanceled:
		err = s.tournamentRepo.UpdatePhase(ctx, nil, tournamentID, models.PhaseCanceled)
		result = &PhaseChangeResult{Tournament: tournament}
	case tournament.Phase == models.PhaseRegistration:
		result, err = s.startTournament(ctx, tournament, next)
	case tournament.Phase == models.PhasePoolPlay && next == models.PhaseBracket:
		result, err = s.poolPlayToBracket(ctx, tournament)
	default:
		result, err = s.complete(ctx, tournament)
	}
	if err != nil {
		return nil, err
	}

	result.Tournament.Phase = next
	s.hub.Broadcast(tournamentID, brackets.EventPhaseChanged, map[string]string{"phase": string(next)})
	if result.ChampionID != "" {
		s.hub.Broadcast(tournamentID, brackets.EventChampionDecided, map[string]string{"champion_id": result.ChampionID})
	}
	s.logger.InfoContext(ctx, "tournament phase advanced",
		slog.String("tournament_id", tournamentID),
		slog.String("phase", string(next)),
	)
	return result, nil
}

func (s *lifecycleService) PreviewTeams(ctx context.Context, tournamentID string) (*formation.Result, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, tournamentID)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	regs, err := s.confirmedRegistrations(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	result := formation.FormTeams(regs, formationMode(tournament))
	return &result, nil
}

// startTournament leaves the registration phase: it forms teams from the
// confirmed registrations and builds either the pools or the bracket.
func (s *lifecycleService) startTournament(ctx context.Context, tournament *models.Tournament, next models.TournamentPhase) (*PhaseChangeResult, error) {
	regs, err := s.confirmedRegistrations(ctx, tournament.ID)
	if err != nil {
		return nil, err
	}

	formed := formation.FormTeams(regs, formationMode(tournament))
	if len(formed.Teams) < 2 {
		return nil, fmt.Errorf("%w: formed %d teams from %d confirmed registrations",
			ErrNotEnoughTeams, len(formed.Teams), len(regs))
	}

	teams := make([]*models.Team, len(formed.Teams))
	for i, nt := range formed.Teams {
		seed := i + 1
		teams[i] = &models.Team{
			ID:           uuid.NewString(),
			TournamentID: tournament.ID,
			Name:         nt.Name,
			PlayerIDs:    nt.PlayerIDs,
			Seed:         &seed,
		}
	}

	err = s.withTx(ctx, func(tx *sql.Tx) error {
		if err := s.teamRepo.CreateBatch(ctx, tx, teams); err != nil {
			return fmt.Errorf("failed to persist teams: %w", err)
		}
		switch next {
		case models.PhasePoolPlay:
			if err := s.buildPools(ctx, tx, tournament, teams); err != nil {
				return err
			}
		case models.PhaseBracket:
			teamIDs := make([]string, len(teams))
			for i, t := range teams {
				teamIDs[i] = t.ID
			}
			if err := s.buildBracket(ctx, tx, tournament.ID, teamIDs); err != nil {
				return err
			}
		}
		return s.tournamentRepo.UpdatePhase(ctx, tx, tournament.ID, next)
	})
	if err != nil {
		return nil, err
	}

	return &PhaseChangeResult{Tournament: tournament, Unmatched: formed.Unmatched}, nil
}

// poolPlayToBracket validates pool completion, seeds the advancing teams from
// the final standings, and builds the elimination bracket.
func (s *lifecycleService) poolPlayToBracket(ctx context.Context, tournament *models.Tournament) (*PhaseChangeResult, error) {
	pools, err := s.poolRepo.ListByTournament(ctx, tournament.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pools: %w", err)
	}
	if check := brackets.ValidatePoolCompletion(pools); !check.Valid {
		return nil, fmt.Errorf("%w: %s", ErrPhaseIncomplete, check.Message)
	}

	matches, err := s.matchRepo.ListByTournament(ctx, tournament.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}

	poolStandings := make([][]models.PoolStanding, len(pools))
	for i, pool := range pools {
		poolStandings[i] = brackets.CalculateStandings(pool.TeamIDs, matchesForPool(pool, matches), projectMatchTeams)
	}

	seeded := brackets.SeedFromStandings(poolStandings, tournament.AdvancePerPool)
	if len(seeded) < 2 {
		return nil, fmt.Errorf("%w: only %d teams advance from pool play", ErrNotEnoughTeams, len(seeded))
	}

	seededTeams := make([]models.Team, len(seeded))
	for i, teamID := range seeded {
		seed := i + 1
		seededTeams[i] = models.Team{ID: teamID, Seed: &seed}
	}

	err = s.withTx(ctx, func(tx *sql.Tx) error {
		if err := s.teamRepo.UpdateSeeds(ctx, tx, seededTeams); err != nil {
			return fmt.Errorf("failed to update seeds: %w", err)
		}
		if err := s.buildBracket(ctx, tx, tournament.ID, seeded); err != nil {
			return err
		}
		return s.tournamentRepo.UpdatePhase(ctx, tx, tournament.ID, models.PhaseBracket)
	})
	if err != nil {
		return nil, err
	}
	return &PhaseChangeResult{Tournament: tournament}, nil
}

// complete closes out the tournament, checking that the current phase has no
// unresolved matches.
func (s *lifecycleService) complete(ctx context.Context, tournament *models.Tournament) (*PhaseChangeResult, error) {
	result := &PhaseChangeResult{Tournament: tournament}

	switch tournament.Phase {
	case models.PhasePoolPlay:
		pools, err := s.poolRepo.ListByTournament(ctx, tournament.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to list pools: %w", err)
		}
		if check := brackets.ValidatePoolCompletion(pools); !check.Valid {
			return nil, fmt.Errorf("%w: %s", ErrPhaseIncomplete, check.Message)
		}
	case models.PhaseBracket:
		slots, err := s.bracketRepo.ListByTournament(ctx, tournament.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to list bracket slots: %w", err)
		}
		check := brackets.ValidateBracketCompletion(slots)
		if !check.Valid {
			return nil, fmt.Errorf("%w: %s", ErrPhaseIncomplete, check.Message)
		}
		result.ChampionID = check.ChampionID
	}

	if err := s.tournamentRepo.UpdatePhase(ctx, nil, tournament.ID, models.PhaseCompleted); err != nil {
		return nil, fmt.Errorf("failed to complete tournament: %w", err)
	}
	return result, nil
}

// buildPools splits teams into pools, generates the round robin schedules,
// and assigns each team to its pool.
func (s *lifecycleService) buildPools(ctx context.Context, tx *sql.Tx, tournament *models.Tournament, teams []*models.Team) error {
	teamIDs := make([]string, len(teams))
	for i, t := range teams {
		teamIDs[i] = t.ID
	}

	split := brackets.SplitIntoPools(teamIDs, tournament.PoolCount)
	pools := make([]*models.Pool, len(split))
	for i, poolTeamIDs := range split {
		pools[i] = &models.Pool{
			ID:           uuid.NewString(),
			TournamentID: tournament.ID,
			Name:         fmt.Sprintf("Pool %c", 'A'+i),
			TeamIDs:      poolTeamIDs,
			Schedule:     brackets.GeneratePoolSchedule(poolTeamIDs),
		}
	}

	if err := s.poolRepo.CreateBatch(ctx, tx, pools); err != nil {
		return fmt.Errorf("failed to persist pools: %w", err)
	}
	for _, pool := range pools {
		for _, teamID := range pool.TeamIDs {
			if err := s.teamRepo.AssignPool(ctx, tx, teamID, pool.ID); err != nil {
				return fmt.Errorf("failed to assign team %s to pool %s: %w", teamID, pool.ID, err)
			}
		}
	}
	return nil
}

func (s *lifecycleService) buildBracket(ctx context.Context, tx *sql.Tx, tournamentID string, seededTeamIDs []string) error {
	slots := brackets.GenerateBracket(tournamentID, seededTeamIDs, uuid.NewString)
	if len(slots) == 0 {
		return fmt.Errorf("%w: bracket requires at least 2 teams", ErrNotEnoughTeams)
	}
	if err := s.bracketRepo.CreateBatch(ctx, tx, slots); err != nil {
		return fmt.Errorf("failed to persist bracket: %w", err)
	}

	// Byes are never played, so their winners advance as part of bracket
	// creation or the fed slots stay empty forever.
	values := make([]models.BracketSlot, len(slots))
	for i, slot := range slots {
		values[i] = *slot
	}
	for _, res := range brackets.ResolveByes(values) {
		if err := s.bracketRepo.SetWinner(ctx, tx, res.SlotID, res.WinnerID); err != nil {
			return fmt.Errorf("failed to resolve bye in slot %s: %w", res.SlotID, err)
		}
		if res.Advance == nil {
			continue
		}
		if err := s.bracketRepo.SetSlotTeam(ctx, tx, res.Advance.SlotID, string(res.Advance.Field), res.Advance.WinnerID); err != nil {
			return fmt.Errorf("failed to advance bye winner from slot %s: %w", res.SlotID, err)
		}
	}
	return nil
}

func (s *lifecycleService) confirmedRegistrations(ctx context.Context, tournamentID string) ([]models.Registration, error) {
	status := models.RegistrationConfirmed
	regs, err := s.registrationRepo.ListByTournament(ctx, tournamentID, &status)
	if err != nil {
		return nil, fmt.Errorf("failed to list confirmed registrations: %w", err)
	}
	return regs, nil
}

func (s *lifecycleService) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
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
