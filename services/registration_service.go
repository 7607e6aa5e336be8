package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/rallypoint-app/rallypoint/models"
	"github.com/rallypoint-app/rallypoint/repositories"
)

type RegisterForTournamentInput struct {
	PartnerName *string  `json:"partner_name,omitempty"`
	SkillRating *float64 `json:"skill_rating,omitempty"`
}

type RegistrationService interface {
	Register(ctx context.Context, tournamentID, userID string, input RegisterForTournamentInput) (*models.Registration, error)
	Withdraw(ctx context.Context, registrationID, actorID string) error
	SetStatus(ctx context.Context, registrationID, actorID string, status models.RegistrationStatus) error
	ListByTournament(ctx context.Context, tournamentID string, status *models.RegistrationStatus) ([]models.Registration, error)
	// ExpireStale marks pending registrations older than the TTL as expired.
	// Called from the background sweeper.
	ExpireStale(ctx context.Context) (int64, error)
}

type registrationService struct {
	registrationRepo repositories.RegistrationRepository
	tournamentRepo   repositories.TournamentRepository
	userRepo         repositories.UserRepository
	logger           *slog.Logger
}

func NewRegistrationService(
	registrationRepo repositories.RegistrationRepository,
	tournamentRepo repositories.TournamentRepository,
	userRepo repositories.UserRepository,
	logger *slog.Logger,
) RegistrationService {
	return &registrationService{
		registrationRepo: registrationRepo,
		tournamentRepo:   tournamentRepo,
		userRepo:         userRepo,
		logger:           logger,
	}
}

func (s *registrationService) Register(ctx context.Context, tournamentID, userID string, input RegisterForTournamentInput) (*models.Registration, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, tournamentID)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	if tournament.Phase != models.PhaseRegistration {
		return nil, ErrRegistrationNotOpen
	}
	if input.SkillRating != nil && (*input.SkillRating < 1 || *input.SkillRating > 5) {
		return nil, fmt.Errorf("%w: skill rating must be between 1 and 5", ErrValidationFailed)
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	active, err := s.registrationRepo.ListByTournament(ctx, tournamentID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to count registrations: %w", err)
	}
	// Pending registrations past the TTL no longer hold a spot, even if the
	// sweeper has not flipped them yet.
	now := time.Now()
	occupied := 0
	for _, reg := range active {
		switch reg.Status {
		case models.RegistrationConfirmed:
			occupied++
		case models.RegistrationPending:
			if !reg.IsExpired(now) {
				occupied++
			}
		}
	}
	if occupied >= tournament.MaxParticipants {
		return nil, ErrTournamentFull
	}

	reg := &models.Registration{
		ID:           uuid.NewString(),
		TournamentID: tournamentID,
		UserID:       userID,
		DisplayName:  user.DisplayName,
		PartnerName:  input.PartnerName,
		SkillRating:  input.SkillRating,
		Status:       models.RegistrationPending,
	}
	if err := s.registrationRepo.Create(ctx, reg); err != nil {
		if errors.Is(err, repositories.ErrRegistrationConflict) {
			return nil, ErrRegistrationConflict
		}
		return nil, fmt.Errorf("failed to create registration: %w", err)
	}

	s.logger.InfoContext(ctx, "player registered",
		slog.String("tournament_id", tournamentID),
		slog.String("user_id", userID),
	)
	return reg, nil
}

func (s *registrationService) Withdraw(ctx context.Context, registrationID, actorID string) error {
	reg, err := s.getRegistration(ctx, registrationID)
	if err != nil {
		return err
	}
	if reg.UserID != actorID {
		return ErrForbiddenOperation
	}
	if reg.Status != models.RegistrationPending && reg.Status != models.RegistrationConfirmed {
		return ErrRegistrationNotWithdrawable
	}

	tournament, err := s.tournamentRepo.GetByID(ctx, reg.TournamentID)
	if err != nil {
		return err
	}
	// Once teams are formed the roster is frozen.
	if tournament.Phase != models.PhaseRegistration {
		return ErrRegistrationNotWithdrawable
	}

	return s.registrationRepo.UpdateStatus(ctx, registrationID, models.RegistrationWithdrawn)
}

func (s *registrationService) SetStatus(ctx context.Context, registrationID, actorID string, status models.RegistrationStatus) error {
	if status != models.RegistrationConfirmed && status != models.RegistrationDeclined {
		return fmt.Errorf("%w: organizer can only confirm or decline", ErrValidationFailed)
	}

	reg, err := s.getRegistration(ctx, registrationID)
	if err != nil {
		return err
	}
	tournament, err := s.tournamentRepo.GetByID(ctx, reg.TournamentID)
	if err != nil {
		return err
	}
	if tournament.OrganizerID != actorID {
		return ErrNotOrganizer
	}
	if reg.Status != models.RegistrationPending {
		return ErrRegistrationNotPending
	}
	return s.registrationRepo.UpdateStatus(ctx, registrationID, status)
}

func (s *registrationService) ListByTournament(ctx context.Context, tournamentID string, status *models.RegistrationStatus) ([]models.Registration, error) {
	regs, err := s.registrationRepo.ListByTournament(ctx, tournamentID, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list registrations: %w", err)
	}
	return regs, nil
}

func (s *registrationService) ExpireStale(ctx context.Context) (int64, error) {
	cutoff := time.Now().Add(-models.RegistrationTTL)
	expired, err := s.registrationRepo.ExpirePending(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to expire stale registrations: %w", err)
	}
	if expired > 0 {
		s.logger.InfoContext(ctx, "expired stale registrations", slog.Int64("count", expired))
	}
	return expired, nil
}

func (s *registrationService) getRegistration(ctx context.Context, id string) (*models.Registration, error) {
	reg, err := s.registrationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrRegistrationNotFound) {
			return nil, ErrRegistrationNotFound
		}
		return nil, err
	}
	return reg, nil
}
