// Package apperrors defines the error taxonomy shared by the engine and the
// HTTP layer. All of these are caller errors, none are fatal to the process.
package apperrors

import "errors"

var (
	// ErrValidation marks missing or malformed input, rejected before any write.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound marks an unknown task or confirmation token.
	ErrNotFound = errors.New("not found")

	// ErrExpired marks a confirmation token past its expiry.
	ErrExpired = errors.New("token expired")

	// ErrForbidden marks a task id outside a token's bound set.
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidTransition marks a status change the state machine rejects.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrConflict marks a re-submission the design rejects instead of
	// treating as idempotent success.
	ErrConflict = errors.New("conflict")
)
