// Package shared defines sentinel errors used across the service layers.
// Callers should use errors.Is to match these values.
package shared

import "errors"

var (

	// common errors
	ErrNotFound = errors.New("not found")
	ErrInternal = errors.New("internal error")

	// auth-specific errors
	ErrInvalidToken       = errors.New("invalid token")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")

	// registration-specific errors
	ErrDuplicateEmail    = errors.New("email already registered")
	ErrPasswordMismatch  = errors.New("passwords do not match")
	ErrPasswordTooShort  = errors.New("password must be at least 6 characters long")
	ErrStoreUnavailable  = errors.New("credential store unavailable")

	// storage-specific errors
	ErrTransfer          = errors.New("transfer failed")
	ErrUnsupportedFormat = errors.New("unsupported audio format")

	// workflow-specific errors
	ErrUpstream       = errors.New("upstream service error")
	ErrTimeout        = errors.New("operation timed out")
	ErrEmptyRecording = errors.New("recording file is empty")
)
