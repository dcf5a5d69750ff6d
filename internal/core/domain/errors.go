package domain

import "errors"

// Sentinel errors shared across services and adapters. Callers classify
// failures with errors.Is so handlers can map them to the right response.
var (
	// ErrLockUnavailable means a lease on the requested key could not be
	// acquired within the wait window. Retryable by the caller.
	ErrLockUnavailable = errors.New("lock unavailable")

	// ErrVersionConflict is returned by a CAS write whose expected version
	// no longer matches the persisted row.
	ErrVersionConflict = errors.New("version conflict")

	// ErrConcurrencyExhausted means the bounded CAS retry loop gave up.
	// Retryable by the caller after a longer backoff.
	ErrConcurrencyExhausted = errors.New("concurrency retries exhausted")

	// ErrCapacityExceeded means the requested delta would drive the
	// available seat count below zero or above the total. Not a conflict;
	// retrying with the same parameters will not help.
	ErrCapacityExceeded = errors.New("seat capacity exceeded")

	// ErrInsufficientInventory means fewer seats are available than requested.
	ErrInsufficientInventory = errors.New("insufficient seats available")

	ErrAlreadyCancelled = errors.New("booking already cancelled")
	ErrAlreadyConfirmed = errors.New("booking already confirmed")

	ErrNotFound = errors.New("resource not found")
)
