// Package application contains the pure business logic for the application
// status graph. Guards are pure functions that evaluate preconditions
// without side effects.
package application

import (
	"fmt"
	"time"

	"github.com/example/intake/internal/models"
)

// InProgressTTL is how long an in-progress application stays valid after it
// is started. Older rows are discarded lazily on the next interaction.
const InProgressTTL = 24 * time.Hour

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string
}

// Error converts the guard result to an error if not allowed.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return fmt.Errorf("%s", r.Reason)
}

// IsTerminal reports whether a status permits no further transitions.
func IsTerminal(status string) bool {
	switch status {
	case models.AppStatusAccepted, models.AppStatusRejected, models.AppStatusWithdrawn:
		return true
	}
	return false
}

// CanDecide evaluates whether an application can be approved or rejected.
// Rules:
// - Terminal statuses (accepted, rejected, withdrawn) cannot be decided again
// - Flagged applications are frozen until unflagged
func CanDecide(status string) GuardResult {
	if IsTerminal(status) {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("application has status '%s' and cannot be processed again", status),
		}
	}
	if status == models.AppStatusFlagged {
		return GuardResult{
			Allowed: false,
			Reason:  "application is flagged and cannot be processed until unflagged",
		}
	}
	return GuardResult{Allowed: true}
}

// CanWithdraw evaluates whether an application can be withdrawn.
func CanWithdraw(status string) GuardResult {
	if status == models.AppStatusWithdrawn {
		return GuardResult{Allowed: false, Reason: "application has already been withdrawn"}
	}
	if status == models.AppStatusAccepted || status == models.AppStatusRejected {
		return GuardResult{Allowed: false, Reason: "application has already been processed and cannot be withdrawn"}
	}
	return GuardResult{Allowed: true}
}

// CanFlag evaluates whether an application can be flagged.
// Flagging is only meaningful from a non-terminal, not-yet-flagged status.
func CanFlag(status string) GuardResult {
	if status == models.AppStatusFlagged {
		return GuardResult{Allowed: false, Reason: "application is already flagged"}
	}
	if IsTerminal(status) {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("application has status '%s' and cannot be flagged", status),
		}
	}
	return GuardResult{Allowed: true}
}

// CanUnflag evaluates whether an application can be unflagged.
func CanUnflag(status string) GuardResult {
	if status != models.AppStatusFlagged {
		return GuardResult{Allowed: false, Reason: "application is not flagged"}
	}
	return GuardResult{Allowed: true}
}

// CanTransition evaluates a direct status change (the relabel path).
// Terminal statuses are frozen; entering flagged goes through CanFlag.
// A flagged application can only move back to a decision-pending status,
// never straight to a decision.
func CanTransition(current, next string) GuardResult {
	if current == next {
		return GuardResult{Allowed: false, Reason: "status unchanged"}
	}
	if IsTerminal(current) {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("application has status '%s' and cannot be changed", current),
		}
	}
	if current == models.AppStatusFlagged && IsTerminal(next) {
		return GuardResult{
			Allowed: false,
			Reason:  "application is flagged and cannot be decided until unflagged",
		}
	}
	if next == models.AppStatusFlagged {
		return CanFlag(current)
	}
	return GuardResult{Allowed: true}
}

// Expired reports whether an in-progress application started at createdAt
// has outlived InProgressTTL as of now.
func Expired(createdAt, now time.Time) bool {
	return now.Sub(createdAt) > InProgressTTL
}
