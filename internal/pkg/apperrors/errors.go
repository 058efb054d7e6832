package apperrors

import "errors"

// Client-observable error taxonomy. Every failure surfaced by the REST
// client or the app services wraps one of these sentinels so callers can
// branch with errors.Is without inspecting HTTP status codes themselves.
var (
	// Authentication errors
	ErrUnauthenticated = errors.New("authentication required")
	ErrTokenExpired    = errors.New("token expired")
	ErrTokenInvalid    = errors.New("invalid token")

	// Resource errors
	ErrResourceNotFound = errors.New("resource not found")
	ErrConflict         = errors.New("conflict")

	// Validation errors
	ErrValidationRejected = errors.New("request rejected by server")
	ErrDecodeRejected     = errors.New("response failed validation")
	ErrBadRequest         = errors.New("bad request")

	// Transport errors
	ErrTransport = errors.New("transport failure")
)

// Session and feed errors
var (
	ErrNoCredential  = errors.New("no credential stored")
	ErrLoadInFlight  = errors.New("load already in flight")
	ErrLikeInFlight  = errors.New("like toggle already in flight")
	ErrEmptyComment  = errors.New("comment text is empty")
	ErrNotPermitted  = errors.New("operation not permitted")
	ErrLoginMismatch = errors.New("login state mismatch")
)

// NewUnauthenticatedError creates a new custom error for missing or rejected credentials
func NewUnauthenticatedError(message string) error {
	return &CustomError{
		Err:     ErrUnauthenticated,
		Message: message,
	}
}

// NewResourceNotFoundError creates a new custom error for resource not found with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}

// NewValidationRejectedError creates a new custom error carrying the server's detail text verbatim
func NewValidationRejectedError(message string) error {
	return &CustomError{
		Err:     ErrValidationRejected,
		Message: message,
	}
}

// NewDecodeRejectedError creates a new custom error for responses that failed boundary validation
func NewDecodeRejectedError(message string) error {
	return &CustomError{
		Err:     ErrDecodeRejected,
		Message: message,
	}
}

// NewTransportError creates a new custom error for network-level failures
func NewTransportError(message string) error {
	return &CustomError{
		Err:     ErrTransport,
		Message: message,
	}
}

// Is returns whether target matches any of the errors in errList
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
	Detail  string
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

// WithDetail adds context detail to the error
func (e *CustomError) WithDetail(detail string) *CustomError {
	e.Detail = detail
	return e
}
