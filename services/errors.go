package services

import "errors"

// Shared errors returned by the services and mapped to HTTP statuses in the
// handlers layer.
var (
	ErrNotFound = errors.New("requested resource not found")

	// Validation and business rules
	ErrValidationFailed    = errors.New("validation failed")
	ErrMSVRequired         = errors.New("student id is required")
	ErrFullNameRequired    = errors.New("full name is required")
	ErrPasswordTooShort    = errors.New("password is too short")
	ErrInvalidPhone        = errors.New("invalid phone number")
	ErrInvalidCredentials  = errors.New("invalid student id or password")
	ErrAccountDisabled     = errors.New("account is disabled")
	ErrTeamNameRequired    = errors.New("team name is required")
	ErrMatchTeamsRequired  = errors.New("both team names are required")
	ErrInvalidMatchTime    = errors.New("invalid match date or kickoff time")
	ErrInvalidScore        = errors.New("score must not be negative")
	ErrPredictionsLocked   = errors.New("predictions are locked for this match")
	ErrInvalidVoteSize     = errors.New("exactly three teams must be voted for")
	ErrInvalidRole         = errors.New("invalid user role")

	// Conflicts
	ErrUserMSVConflict  = errors.New("student id is already registered")
	ErrTeamNameConflict = errors.New("team name is already in use")
	ErrAlreadyPredicted = errors.New("a prediction for this match already exists")
	ErrAlreadyVoted     = errors.New("favorite teams were already voted for")

	// Authentication and authorization
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrForbiddenOperation   = errors.New("operation not allowed for the current user")

	// Entity lookups
	ErrUserNotFound       = errors.New("user not found")
	ErrTeamNotFound       = errors.New("team not found")
	ErrMatchNotFound      = errors.New("match not found")
	ErrPredictionNotFound = errors.New("prediction not found")
)
