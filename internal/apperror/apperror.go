// Package apperror defines the application's error taxonomy.
//
// Services and repositories return these errors; the HTTP layer translates
// them to status codes and the wire shape {"error": "<message>"}. Keeping the
// taxonomy here means the service layer never imports net/http and the
// handler layer never string-matches on error text.
//
// STATUS MAPPING (deliberately non-idiomatic, inherited behavior):
// everything maps to 400 — validation failures, auth failures, not-found,
// storage failures — except an ownership mismatch, which is the single 401.
// NotFound is NOT 404; callers of this API depend on 400.
package apperror

import "errors"

var (
	// ErrValidation marks a malformed or missing request body/field.
	ErrValidation = errors.New("validation failed")
	// ErrAuth marks a missing, malformed, unverifiable, or expired token.
	ErrAuth = errors.New("authentication failed")
	// ErrOwnership marks a caller whose identity does not own the resource.
	// This is the only error that maps to 401.
	ErrOwnership = errors.New("ownership mismatch")
	// ErrNotFound marks an absent user or task. Maps to 400, not 404.
	ErrNotFound = errors.New("not found")
	// ErrStorage marks an underlying read/write failure. The wire message is
	// always generic — internals never leak.
	ErrStorage = errors.New("storage failure")
)

// AppError couples a sentinel (for errors.Is checks) with the exact message
// the client sees. An empty Message means "use the generic internal message";
// the HTTP layer substitutes it.
type AppError struct {
	Err     error
	Message string
}

func (e *AppError) Error() string {
	if e.Message == "" {
		return e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// ValidationFailed reports a bad request body or missing fields.
func ValidationFailed(message string) *AppError {
	return &AppError{Err: ErrValidation, Message: message}
}

// AuthFailed reports a token problem. message may be empty, in which case
// the client gets the generic message (inherited behavior for signature,
// claim, and expiry failures; "token is necessary" for missing/malformed).
func AuthFailed(message string) *AppError {
	return &AppError{Err: ErrAuth, Message: message}
}

// OwnershipMismatch reports a caller acting on a resource they do not own.
func OwnershipMismatch(message string) *AppError {
	return &AppError{Err: ErrOwnership, Message: message}
}

// NotFound reports an absent record with the caller-facing message.
func NotFound(message string) *AppError {
	return &AppError{Err: ErrNotFound, Message: message}
}

// StorageFailed wraps a database error with a safe caller-facing message.
// The underlying error stays in the chain for logging but never reaches the
// client body.
func StorageFailed(message string) *AppError {
	return &AppError{Err: ErrStorage, Message: message}
}
