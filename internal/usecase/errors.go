package usecase

import "fmt"

// ValidationError is missing or malformed caller input. Handlers map it
// to 400.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func IsValidationError(err error) bool {
	_, ok := err.(*ValidationError)
	return ok
}

// NotFoundError is a failed lookup by id or slug. Handlers map it to 404.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.Key)
}

func IsNotFoundError(err error) bool {
	_, ok := err.(*NotFoundError)
	return ok
}

// AmbiguousMatchError: a slug lookup resolved more than one lead. The first
// match is never silently assumed; this is a data-quality condition the
// operator must resolve.
type AmbiguousMatchError struct {
	Fragment string
	Count    int
}

func (e *AmbiguousMatchError) Error() string {
	return fmt.Sprintf("slug %q matches %d leads, refusing to guess", e.Fragment, e.Count)
}

func IsAmbiguousMatchError(err error) bool {
	_, ok := err.(*AmbiguousMatchError)
	return ok
}

// ConfigurationError names a missing secret or credential. The message
// carries the variable name, never the value.
type ConfigurationError struct {
	Name string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("missing required configuration: %s", e.Name)
}

func IsConfigurationError(err error) bool {
	_, ok := err.(*ConfigurationError)
	return ok
}
