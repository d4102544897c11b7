// Package services holds the business logic for assets, access grants, and
// authentication. Services are constructed with their dependencies and never
// touch globals. Failures come back as errors wrapping one of the category
// sentinels below so controllers can pick the HTTP status with errors.Is;
// the wrapped message is the user-facing text.
package services

import "errors"

var (
	// ErrNotFound: operating on a missing record is reported, never a panic.
	ErrNotFound = errors.New("not found")
	// ErrConflict: duplicate natural key or an illegal state transition
	// (double-assign, double-revoke).
	ErrConflict = errors.New("conflict")
	// ErrInvalid: missing or malformed field.
	ErrInvalid = errors.New("invalid input")
	// ErrUnauthorized: bad credentials, disabled account, bad reset token.
	ErrUnauthorized = errors.New("unauthorized")
)
