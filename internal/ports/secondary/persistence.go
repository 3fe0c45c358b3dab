// Package secondary defines the secondary ports (driven adapters) for the
// application. These are the interfaces through which the application drives
// external systems.
package secondary

import (
	"context"
	"time"

	"github.com/example/intake/internal/models"
)

// PositionRepository defines the secondary port for position persistence.
type PositionRepository interface {
	// Create persists a new position with default fields and returns its ID.
	Create(ctx context.Context, name string) (int64, error)

	// GetByID retrieves a position by its ID.
	GetByID(ctx context.Context, id int64) (*models.Position, error)

	// FindByName retrieves positions by case-folded name. Duplicate names
	// are tolerated, so more than one row may match.
	FindByName(ctx context.Context, name string) ([]*models.Position, error)

	// List retrieves all positions.
	List(ctx context.Context) ([]*models.Position, error)

	// SetOpen opens or closes a position for submissions.
	SetOpen(ctx context.Context, id int64, open bool) error

	// SetDescription updates the description.
	SetDescription(ctx context.Context, id int64, description string) error

	// SetQuestions replaces the ordered question list.
	SetQuestions(ctx context.Context, id int64, questions []string) error

	// SetRoles replaces the ordered outcome-role list.
	SetRoles(ctx context.Context, id int64, roleIDs []string) error

	// SetAcceptanceMessage updates the acceptance message template.
	SetAcceptanceMessage(ctx context.Context, id int64, message string) error

	// SetRejectionMessage updates the rejection message template.
	SetRejectionMessage(ctx context.Context, id int64, message string) error

	// Delete removes the position definition only. Existing applications
	// that reference it keep their position_id.
	Delete(ctx context.Context, id int64) error
}

// ApplicationRepository defines the secondary port for application
// persistence and status transitions.
type ApplicationRepository interface {
	// StartInProgress atomically deletes any existing in-progress row for
	// the user and inserts a fresh one, returning the new application ID.
	StartInProgress(ctx context.Context, userID string, positionID int64, now time.Time) (int64, error)

	// GetInProgress returns the user's in-progress application, or nil.
	GetInProgress(ctx context.Context, userID string) (*models.Application, error)

	// AppendAnswer appends one answer to an in-progress application.
	AppendAnswer(ctx context.Context, applicationID int64, answer string) error

	// Submit freezes the answer list and marks the application submitted.
	Submit(ctx context.Context, applicationID int64, now time.Time) error

	// GetByID retrieves an application by its ID.
	GetByID(ctx context.Context, id int64) (*models.Application, error)

	// GetLatestByUserAndStatus returns the user's newest application with
	// the given status, or nil.
	GetLatestByUserAndStatus(ctx context.Context, userID, status string) (*models.Application, error)

	// Count returns the total number of application rows.
	Count(ctx context.Context) (int, error)

	// Page fetches applications ordered newest-first.
	Page(ctx context.Context, limit, offset int) ([]*models.Application, error)

	// SetStatus commits a status change. It is an idempotent no-op
	// returning false when the status already matches or the row is gone.
	SetStatus(ctx context.Context, id int64, status string) (bool, error)

	// Delete removes an application row (stale in-progress cleanup).
	Delete(ctx context.Context, id int64) error
}

// StandingRepository defines the secondary port for the user standing sets:
// flags (soft escalation) and the blacklist (hard block).
type StandingRepository interface {
	// FlagUser inserts or replaces the user's flag. communityID is empty
	// for a global flag.
	FlagUser(ctx context.Context, flag *models.UserFlag) error

	// UnflagUser removes the user's flag, reporting whether one existed.
	UnflagUser(ctx context.Context, userID string) (bool, error)

	// IsFlagged reports whether the user is flagged. With a non-empty
	// communityID, a global flag also matches.
	IsFlagged(ctx context.Context, userID, communityID string) (bool, error)

	// GetFlag returns the flag row for a user, or nil.
	GetFlag(ctx context.Context, userID string) (*models.UserFlag, error)

	// BlacklistUser inserts or replaces the user's blacklist entry.
	BlacklistUser(ctx context.Context, entry *models.UserBlacklist) error

	// UnblacklistUser removes the entry, reporting whether one existed.
	UnblacklistUser(ctx context.Context, userID string) (bool, error)

	// IsBlacklisted reports whether the user is blacklisted.
	IsBlacklisted(ctx context.Context, userID string) (bool, error)
}

// ChannelConfigRepository defines the secondary port for the per-community
// review channel mapping.
type ChannelConfigRepository interface {
	// GetReviewChannel returns the configured review channel for a
	// community, or "" when none is set.
	GetReviewChannel(ctx context.Context, communityID string) (string, error)

	// SetReviewChannel sets or replaces the review channel for a community.
	SetReviewChannel(ctx context.Context, communityID, channelID string) error
}
