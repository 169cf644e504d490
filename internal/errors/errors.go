package errors

import (
	"errors"
	"fmt"
)

// Common error types for the AniList web app
var (
	// Configuration errors
	ErrMissingConfig = errors.New("missing configuration")
	ErrInvalidConfig = errors.New("invalid configuration")

	// Session errors
	ErrInvalidSession = errors.New("invalid session")

	// Upstream errors (token exchange, GraphQL)
	ErrUpstream = errors.New("upstream request failed")

	// Client input errors
	ErrInvalidInput = errors.New("invalid input")

	// General errors
	ErrNotFound = errors.New("not found")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
