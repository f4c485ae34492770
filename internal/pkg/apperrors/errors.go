package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound = errors.New("resource not found")
	ErrConflict         = errors.New("conflict")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrTokenNotFound      = errors.New("token not found")
	ErrUnauthenticated    = errors.New("authentication required")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")
)

// Entity errors. Each wraps ErrResourceNotFound or ErrConflict so the HTTP layer can classify them.
var (
	ErrEventNotFound         = NewCustomError(ErrResourceNotFound, "event not found")
	ErrAttendeeNotFound      = NewCustomError(ErrResourceNotFound, "attendee not found")
	ErrUserNotFound          = NewCustomError(ErrResourceNotFound, "user not found")
	ErrTeacherNotFound       = NewCustomError(ErrResourceNotFound, "teacher not found")
	ErrSubjectNotFound       = NewCustomError(ErrResourceNotFound, "subject not found")
	ErrUsernameOrEmailTaken  = NewCustomError(ErrConflict, "username or email is already taken")
	ErrPasswordsDoNotMatch   = NewCustomError(ErrValidationFailed, "passwords are not identical")
	ErrNotEventOrganizer     = NewCustomError(ErrPermissionDenied, "you are not the organizer of this event")
	ErrInvalidAttendeeAnswer = NewCustomError(ErrValidationFailed, "answer must be one of Accepted, Maybe, Rejected")
)

// NewResourceNotFoundError creates a new custom error for resource not found with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}

// NewConflictError creates a new custom error for conflict situations with a message
func NewConflictError(message string) error {
	return &CustomError{
		Err:     ErrConflict,
		Message: message,
	}
}

// NewForbiddenError creates a new custom error for permission denied with a message
func NewForbiddenError(message string) error {
	return &CustomError{
		Err:     ErrPermissionDenied,
		Message: message,
	}
}

// NewValidationError creates a new custom error for invalid input with a message
func NewValidationError(message string) error {
	return &CustomError{
		Err:     ErrValidationFailed,
		Message: message,
	}
}

// Is returns whether err matches target or any of errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}

	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Details map[string]any
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]any) *CustomError {
	e.Details = details
	return e
}
