package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/rallypoint-app/rallypoint/brackets"
	"github.com/rallypoint-app/rallypoint/models"
	"github.com/rallypoint-app/rallypoint/repositories"
	"github.com/rallypoint-app/rallypoint/storage"
)

type CreateTournamentInput struct {
	Name            string                  `json:"name"`
	Description     *string                 `json:"description,omitempty"`
	Format          models.TournamentFormat `json:"format"`
	GameType        models.GameType         `json:"game_type"`
	PairingMode     models.PairingMode      `json:"pairing_mode,omitempty"`
	PoolCount       int                     `json:"pool_count,omitempty"`
	AdvancePerPool  int                     `json:"advance_per_pool,omitempty"`
	MaxParticipants int                     `json:"max_participants"`
	Location        *string                 `json:"location,omitempty"`
	StartDate       time.Time               `json:"start_date"`
}

type UpdateTournamentInput struct {
	Name            *string    `json:"name,omitempty"`
	Description     *string    `json:"description,omitempty"`
	MaxParticipants *int       `json:"max_participants,omitempty"`
	Location        *string    `json:"location,omitempty"`
	StartDate       *time.Time `json:"start_date,omitempty"`
}

// TournamentOverview aggregates everything a tournament dashboard renders in
// one response.
type TournamentOverview struct {
	Tournament    *models.Tournament               `json:"tournament"`
	Registrations []models.Registration            `json:"registrations"`
	Teams         []models.Team                    `json:"teams"`
	Pools         []models.Pool                    `json:"pools"`
	Standings     map[string][]models.PoolStanding `json:"standings,omitempty"`
	Bracket       []models.BracketSlot             `json:"bracket,omitempty"`
	Matches       []models.Match                   `json:"matches"`
}

type TournamentService interface {
	Create(ctx context.Context, organizerID string, input CreateTournamentInput) (*models.Tournament, error)
	GetByID(ctx context.Context, id string) (*models.Tournament, error)
	List(ctx context.Context, filter repositories.ListTournamentsFilter) ([]models.Tournament, error)
	Update(ctx context.Context, id, actorID string, input UpdateTournamentInput) (*models.Tournament, error)
	Cancel(ctx context.Context, id, actorID string) error
	Overview(ctx context.Context, id string) (*TournamentOverview, error)
	UploadLogo(ctx context.Context, id, actorID, contentType string, body io.Reader) (*models.Tournament, error)
}

type tournamentService struct {
	tournamentRepo   repositories.TournamentRepository
	registrationRepo repositories.RegistrationRepository
	teamRepo         repositories.TeamRepository
	poolRepo         repositories.PoolRepository
	bracketRepo      repositories.BracketRepository
	matchRepo        repositories.MatchRepository
	uploader         storage.FileUploader
	logger           *slog.Logger
}

func NewTournamentService(
	tournamentRepo repositories.TournamentRepository,
	registrationRepo repositories.RegistrationRepository,
	teamRepo repositories.TeamRepository,
	poolRepo repositories.PoolRepository,
	bracketRepo repositories.BracketRepository,
	matchRepo repositories.MatchRepository,
	uploader storage.FileUploader,
	logger *slog.Logger,
) TournamentService {
	return &tournamentService{
		tournamentRepo:   tournamentRepo,
		registrationRepo: registrationRepo,
		teamRepo:         teamRepo,
		poolRepo:         poolRepo,
		bracketRepo:      bracketRepo,
		matchRepo:        matchRepo,
		uploader:         uploader,
		logger:           logger,
	}
}

func (s *tournamentService) Create(ctx context.Context, organizerID string, input CreateTournamentInput) (*models.Tournament, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrTournamentNameRequired
	}
	if input.MaxParticipants <= 0 {
		return nil, ErrInvalidCapacity
	}

	switch input.Format {
	case models.FormatSingleElimination, models.FormatPoolPlay, models.FormatPoolPlayBracket:
	default:
		return nil, fmt.Errorf("%w: unknown format %q", ErrValidationFailed, input.Format)
	}
	switch input.GameType {
	case models.GameTypeSingles, models.GameTypeDoubles:
	default:
		return nil, fmt.Errorf("%w: unknown game type %q", ErrValidationFailed, input.GameType)
	}

	pairingMode := models.PairingAuto
	if input.GameType == models.GameTypeDoubles && input.PairingMode == models.PairingBYOP {
		pairingMode = models.PairingBYOP
	}

	poolCount, advancePerPool := 0, 0
	if input.Format == models.FormatPoolPlay || input.Format == models.FormatPoolPlayBracket {
		if input.PoolCount <= 0 {
			return nil, ErrInvalidPoolConfig
		}
		poolCount = input.PoolCount
		advancePerPool = input.AdvancePerPool
		if input.Format == models.FormatPoolPlayBracket && advancePerPool <= 0 {
			return nil, ErrInvalidPoolConfig
		}
	}

	tournament := &models.Tournament{
		ID:              uuid.NewString(),
		Name:            strings.TrimSpace(input.Name),
		Description:     input.Description,
		OrganizerID:     organizerID,
		Format:          input.Format,
		GameType:        input.GameType,
		PairingMode:     pairingMode,
		Phase:           models.PhaseRegistration,
		PoolCount:       poolCount,
		AdvancePerPool:  advancePerPool,
		MaxParticipants: input.MaxParticipants,
		Location:        input.Location,
		StartDate:       input.StartDate,
	}

	if err := s.tournamentRepo.Create(ctx, tournament); err != nil {
		if errors.Is(err, repositories.ErrTournamentNameConflict) {
			return nil, ErrTournamentNameConflict
		}
		return nil, fmt.Errorf("failed to create tournament: %w", err)
	}

	s.logger.InfoContext(ctx, "tournament created",
		slog.String("tournament_id", tournament.ID),
		slog.String("format", string(tournament.Format)),
		slog.String("organizer_id", organizerID),
	)
	return tournament, nil
}

func (s *tournamentService) GetByID(ctx context.Context, id string) (*models.Tournament, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	populateTournamentLogoURL(tournament, s.uploader)
	return tournament, nil
}

func (s *tournamentService) List(ctx context.Context, filter repositories.ListTournamentsFilter) ([]models.Tournament, error) {
	tournaments, err := s.tournamentRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list tournaments: %w", err)
	}
	for i := range tournaments {
		populateTournamentLogoURL(&tournaments[i], s.uploader)
	}
	return tournaments, nil
}

func (s *tournamentService) Update(ctx context.Context, id, actorID string, input UpdateTournamentInput) (*models.Tournament, error) {
	tournament, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tournament.OrganizerID != actorID {
		return nil, ErrNotOrganizer
	}
	// Structural settings are frozen once brackets or pools exist.
	if tournament.Phase != models.PhaseRegistration {
		return nil, fmt.Errorf("%w: tournament can only be edited during registration", ErrValidationFailed)
	}

	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, ErrTournamentNameRequired
		}
		tournament.Name = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		tournament.Description = input.Description
	}
	if input.MaxParticipants != nil {
		if *input.MaxParticipants <= 0 {
			return nil, ErrInvalidCapacity
		}
		tournament.MaxParticipants = *input.MaxParticipants
	}
	if input.Location != nil {
		tournament.Location = input.Location
	}
	if input.StartDate != nil {
		tournament.StartDate = *input.StartDate
	}

	if err := s.tournamentRepo.Update(ctx, tournament); err != nil {
		if errors.Is(err, repositories.ErrTournamentNameConflict) {
			return nil, ErrTournamentNameConflict
		}
		return nil, fmt.Errorf("failed to update tournament: %w", err)
	}
	return tournament, nil
}

func (s *tournamentService) Cancel(ctx context.Context, id, actorID string) error {
	tournament, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if tournament.OrganizerID != actorID {
		return ErrNotOrganizer
	}
	if !isValidPhaseTransition(tournament.Phase, models.PhaseCanceled, tournament.Format) {
		return ErrInvalidPhaseTransition
	}
	if err := s.tournamentRepo.UpdatePhase(ctx, nil, id, models.PhaseCanceled); err != nil {
		return fmt.Errorf("failed to cancel tournament: %w", err)
	}
	s.logger.InfoContext(ctx, "tournament canceled", slog.String("tournament_id", id))
	return nil
}

// Overview fans the dashboard reads out in parallel; standings are recomputed
// from matches on every call rather than stored.
func (s *tournamentService) Overview(ctx context.Context, id string) (*TournamentOverview, error) {
	tournament, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	overview := &TournamentOverview{Tournament: tournament}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		regs, err := s.registrationRepo.ListByTournament(gCtx, id, nil)
		if err != nil {
			return fmt.Errorf("failed to list registrations: %w", err)
		}
		overview.Registrations = regs
		return nil
	})
	g.Go(func() error {
		teams, err := s.teamRepo.ListByTournament(gCtx, id)
		if err != nil {
			return fmt.Errorf("failed to list teams: %w", err)
		}
		overview.Teams = teams
		return nil
	})
	g.Go(func() error {
		pools, err := s.poolRepo.ListByTournament(gCtx, id)
		if err != nil {
			return fmt.Errorf("failed to list pools: %w", err)
		}
		overview.Pools = pools
		return nil
	})
	g.Go(func() error {
		slots, err := s.bracketRepo.ListByTournament(gCtx, id)
		if err != nil {
			return fmt.Errorf("failed to list bracket slots: %w", err)
		}
		overview.Bracket = slots
		return nil
	})
	g.Go(func() error {
		matches, err := s.matchRepo.ListByTournament(gCtx, id)
		if err != nil {
			return fmt.Errorf("failed to list matches: %w", err)
		}
		overview.Matches = matches
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if len(overview.Pools) > 0 {
		overview.Standings = make(map[string][]models.PoolStanding, len(overview.Pools))
		for _, pool := range overview.Pools {
			poolMatches := matchesForPool(pool, overview.Matches)
			overview.Standings[pool.ID] = brackets.CalculateStandings(pool.TeamIDs, poolMatches, projectMatchTeams)
		}
	}
	return overview, nil
}

// matchesForPool selects the matches attached to the pool's schedule entries.
func matchesForPool(pool models.Pool, all []models.Match) []models.Match {
	ids := make(map[string]struct{}, len(pool.Schedule))
	for _, entry := range pool.Schedule {
		if entry.MatchID != nil {
			ids[*entry.MatchID] = struct{}{}
		}
	}
	selected := make([]models.Match, 0, len(ids))
	for _, m := range all {
		if _, ok := ids[m.ID]; ok {
			selected = append(selected, m)
		}
	}
	return selected
}

func (s *tournamentService) UploadLogo(ctx context.Context, id, actorID, contentType string, body io.Reader) (*models.Tournament, error) {
	tournament, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tournament.OrganizerID != actorID {
		return nil, ErrNotOrganizer
	}

	ext, err := storage.ExtensionForContentType(contentType)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}
	key := fmt.Sprintf("tournaments/%s/logo%s", id, ext)

	if _, err := s.uploader.Upload(ctx, key, contentType, body); err != nil {
		return nil, fmt.Errorf("failed to upload logo: %w", err)
	}
	if err := s.tournamentRepo.UpdateLogoKey(ctx, id, &key); err != nil {
		return nil, fmt.Errorf("failed to store logo key: %w", err)
	}

	tournament.LogoKey = &key
	populateTournamentLogoURL(tournament, s.uploader)
	return tournament, nil
}
