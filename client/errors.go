package client

import (
	"errors"
	"fmt"
)

// Failure taxonomy for API calls. Poll failures of any kind are transient
// for the sync engine; send failures of the Validation/Storage kinds are
// surfaced to the user.
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
)

// ValidationError reports a rejected request body (missing receiver, empty
// content, undecodable payload).
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s", e.Message)
}

// StorageError reports a server-side persistence failure.
type StorageError struct {
	StatusCode int
	Message    string
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error (%d): %s", e.StatusCode, e.Message)
}
