// Package provider holds the error types shared by the outbound API
// clients under internal/infra/integration.
package provider

import (
	"errors"
	"fmt"
)

// Error is an upstream API failure, carrying enough context for handlers
// to propagate a meaningful status without leaking credentials.
type Error struct {
	Provider string
	Status   int
	Message  string
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: %s (status %d)", e.Provider, e.Message, e.Status)
	}
	return fmt.Sprintf("%s: %s", e.Provider, e.Message)
}

// AsError unwraps err into a provider Error if one is in the chain.
func AsError(err error) (*Error, bool) {
	var pe *Error
	ok := errors.As(err, &pe)
	return pe, ok
}

// ConflictError is an optimistic-concurrency rejection during a content
// commit. Surfaced distinctly so callers can refetch and retry; never
// retried silently by the engine.
type ConflictError struct {
	Provider string
	Path     string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: revision conflict writing %s", e.Provider, e.Path)
}

func IsConflict(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce)
}
