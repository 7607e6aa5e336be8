package services

import "errors"

// Shared errors used across services and the HTTP error mapping.
var (
	ErrNotFound = errors.New("requested resource not found")

	// Validation and business rules
	ErrValidationFailed            = errors.New("validation failed")
	ErrPasswordTooShort            = errors.New("password is too short")
	ErrInvalidCredentials          = errors.New("invalid email or password")
	ErrTournamentNameRequired      = errors.New("tournament name is required")
	ErrInvalidCapacity             = errors.New("tournament max participants must be positive")
	ErrInvalidPoolConfig           = errors.New("pool count and advance per pool must be positive for pool play formats")
	ErrRegistrationNotOpen         = errors.New("tournament registration is not open")
	ErrTournamentFull              = errors.New("tournament registration is full")
	ErrNotEnoughTeams              = errors.New("not enough teams to start the tournament")
	ErrPhaseNotStarted             = errors.New("tournament has not reached this phase yet")
	ErrInvalidPhaseTransition      = errors.New("invalid tournament phase transition")
	ErrPhaseIncomplete             = errors.New("current phase has unresolved matches")
	ErrMatchAlreadyScheduled       = errors.New("a match already exists for this pairing")
	ErrMatchNotDecided             = errors.New("match result does not decide a winner")
	ErrSlotNotReady                = errors.New("bracket slot does not have both teams yet")
	ErrUnsafeRescore               = errors.New("changing this result would invalidate a later match")
	ErrRegistrationNotPending      = errors.New("registration is not pending")
	ErrRegistrationNotWithdrawable = errors.New("registration can no longer be withdrawn")

	// Conflicts
	ErrUserEmailConflict      = errors.New("email address is already in use")
	ErrRegistrationConflict   = errors.New("user is already registered for this tournament")
	ErrTournamentNameConflict = errors.New("tournament name already exists")

	// Authentication and authorization
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrForbiddenOperation   = errors.New("operation not allowed for the current user")
	ErrNotOrganizer         = errors.New("only the tournament organizer can perform this action")

	// Entity-specific lookups
	ErrUserNotFound         = errors.New("user not found")
	ErrTournamentNotFound   = errors.New("tournament not found")
	ErrRegistrationNotFound = errors.New("registration not found")
	ErrTeamNotFound         = errors.New("team not found")
	ErrMatchNotFound        = errors.New("match not found")
	ErrSlotNotFound         = errors.New("bracket slot not found")
	ErrRatingNotFound       = errors.New("player rating not found")
)
