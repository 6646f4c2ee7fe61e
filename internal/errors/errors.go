// Package errors provides standardized domain errors that express business intent
// rather than infrastructure details. Use cases return these errors and HTTP
// handlers map them to status codes.
package errors

import (
	"errors"
	"fmt"
)

// Standard domain errors shared by every domain module.
var (
	// ErrNotFound indicates the requested resource does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates a conflict with existing data (e.g., a profile already exists).
	ErrConflict = errors.New("conflict")

	// ErrInvalidInput indicates the input data is invalid or fails validation.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorized indicates the request lacks valid authentication credentials.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden indicates the authenticated user doesn't have permission.
	ErrForbidden = errors.New("forbidden")

	// ErrUnavailable indicates a required dependency (secret store, key material)
	// could not be reached or is misconfigured.
	ErrUnavailable = errors.New("unavailable")

	// ErrIntegrity indicates stored data failed an integrity check (corrupted or
	// tampered ciphertext). It is a server-side fault, never caller input.
	ErrIntegrity = errors.New("integrity check failed")
)

// New creates a new error with the given message.
func New(message string) error {
	return errors.New(message)
}

// Wrap wraps an error with additional context while preserving the error chain.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf is like Wrap with a formatted message.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Join returns an error that wraps the given errors, discarding nils.
func Join(errs ...error) error {
	return errors.Join(errs...)
}

// IsServerFault reports whether err carries a server-side sentinel. Such errors
// win over any client sentinel joined into the same chain.
func IsServerFault(err error) bool {
	return errors.Is(err, ErrUnavailable) || errors.Is(err, ErrIntegrity)
}

// IsClientFault reports whether err was caused by the caller and carries no
// server-side sentinel.
func IsClientFault(err error) bool {
	if err == nil || IsServerFault(err) {
		return false
	}
	for _, sentinel := range []error{ErrNotFound, ErrConflict, ErrInvalidInput, ErrUnauthorized, ErrForbidden} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
