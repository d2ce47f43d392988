package session

import "errors"

// ErrNotAuthenticated is returned when an authenticated-only operation is
// invoked with no live session.
var ErrNotAuthenticated = errors.New("not authenticated")

// ErrStorage classifies durable-store failures; match with errors.Is. It is
// kept distinct from auth failures so screens can tell "wrong password" from
// "could not save locally".
var ErrStorage = errors.New("session storage failure")

// StorageError wraps a failing store operation. errors.Is(err, ErrStorage)
// matches it; Unwrap exposes the underlying cause.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return "session store " + e.Op + ": " + e.Err.Error()
}

func (e *StorageError) Unwrap() error { return e.Err }

func (e *StorageError) Is(target error) bool { return target == ErrStorage }
