// Package app implements the primary ports: the intake engine, the review
// workflow, the position catalog, and user standing.
package app

import "errors"

// Business-rule errors surfaced verbatim to the invoking actor. Storage and
// other internal faults are wrapped separately, logged in full, and shown to
// actors only as a generic failure.
var (
	// ErrNotFound means the referenced position or application does not exist.
	ErrNotFound = errors.New("not found")

	// ErrClosed means the position is not accepting submissions.
	ErrClosed = errors.New("position closed")

	// ErrBlocked means the user is blacklisted from applying.
	ErrBlocked = errors.New("user is blacklisted from applying")

	// ErrNoInProgress means the user has no in-progress application.
	ErrNoInProgress = errors.New("no in-progress application")

	// ErrExpired means the in-progress application outlived its 24 hour
	// window and has been discarded.
	ErrExpired = errors.New("in-progress application expired")

	// ErrAlreadyProcessed means the application reached a terminal status.
	ErrAlreadyProcessed = errors.New("application already processed")

	// ErrInvalidLabel means a status label outside the fixed vocabulary.
	ErrInvalidLabel = errors.New("invalid status label")

	// ErrNoChange means the requested status equals the current one.
	ErrNoChange = errors.New("status unchanged")

	// ErrAlreadyFlagged means the application is already flagged.
	ErrAlreadyFlagged = errors.New("application already flagged")

	// ErrNotFlagged means the application is not flagged.
	ErrNotFlagged = errors.New("application not flagged")

	// ErrNotOwner means the actor does not own the application.
	ErrNotOwner = errors.New("not your application")

	// ErrDeliveryFailed means the load-bearing first prompt could not be
	// delivered, so the intake was not started.
	ErrDeliveryFailed = errors.New("message delivery failed")
)
