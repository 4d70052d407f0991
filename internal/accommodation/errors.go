package accommodation

import "errors"

// Messages returned to API callers. Clients match on these strings.
const (
	NotFoundMessage     = "Accommodation not found."
	UnauthorizedMessage = "You are not allowed to delete this accommodation."
)

var (
	ErrNotFound     = errors.New("accommodation not found")
	ErrUnauthorized = errors.New("not allowed to delete accommodation")
)

// NotFoundError is returned when the record is absent or could not be read.
// Cause is kept for logging and never rendered.
type NotFoundError struct {
	ID    ID
	Cause error
}

func (e *NotFoundError) Error() string { return NotFoundMessage }

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

func (e *NotFoundError) Unwrap() error { return e.Cause }

// UnauthorizedError is returned when the caller cannot be resolved or does
// not own the record.
type UnauthorizedError struct {
	ID     ID
	Caller string
	Cause  error
}

func (e *UnauthorizedError) Error() string { return UnauthorizedMessage }

func (e *UnauthorizedError) Is(target error) bool { return target == ErrUnauthorized }

func (e *UnauthorizedError) Unwrap() error { return e.Cause }

type Stage string

const (
	StageMedia  Stage = "media"
	StageRecord Stage = "record"
)

// OperationFailure wraps an infrastructure error raised while deleting.
// Its message is the collaborator's message, unchanged.
type OperationFailure struct {
	ID    ID
	Stage Stage
	Err   error
}

func (e *OperationFailure) Error() string { return e.Err.Error() }

func (e *OperationFailure) Unwrap() error { return e.Err }
