package apperrors

import "errors"

// Error taxonomy. Every workflow operation fails with exactly one of these
// four kinds; none of them is retried automatically.
var (
	// ErrPermissionDenied means a role or ownership precondition failed.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrNotFound means a referenced entity does not resolve.
	ErrNotFound = errors.New("resource not found")

	// ErrConflict means a uniqueness or state invariant would be violated.
	ErrConflict = errors.New("conflict")

	// ErrUnavailable means the data store was unreachable or failed
	// transiently.
	ErrUnavailable = errors.New("store unavailable")
)

// Authentication errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrInvalidFormat      = errors.New("invalid token format")
	ErrEmailAlreadyExists = errors.New("email already exists")
)

// Validation errors
var (
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")
)

// Entity lookup errors, all matching ErrNotFound via errors.Is.
var (
	ErrProfileNotFound      = &CustomError{Err: ErrNotFound, Message: "profile not found"}
	ErrClubNotFound         = &CustomError{Err: ErrNotFound, Message: "club not found"}
	ErrEventNotFound        = &CustomError{Err: ErrNotFound, Message: "event not found"}
	ErrAnnouncementNotFound = &CustomError{Err: ErrNotFound, Message: "announcement not found"}
)

// NewNotFoundError creates a NotFound error with a message.
func NewNotFoundError(message string) error {
	return &CustomError{Err: ErrNotFound, Message: message}
}

// NewConflictError creates a Conflict error with a message.
func NewConflictError(message string) error {
	return &CustomError{Err: ErrConflict, Message: message}
}

// NewPermissionDeniedError creates a PermissionDenied error with a message.
func NewPermissionDeniedError(message string) error {
	return &CustomError{Err: ErrPermissionDenied, Message: message}
}

// NewUnavailableError creates an Unavailable error wrapping the store error.
func NewUnavailableError(cause error) error {
	return &CustomError{Err: ErrUnavailable, Cause: cause}
}

// CustomError carries a taxonomy sentinel plus a human-readable message and
// an optional underlying cause.
type CustomError struct {
	Err     error
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap makes errors.Is match both the taxonomy sentinel and the cause.
func (e *CustomError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	if e.Cause != nil {
		errs = append(errs, e.Cause)
	}
	return errs
}
