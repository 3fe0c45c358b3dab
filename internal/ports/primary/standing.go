package primary

import (
	"context"

	"github.com/example/intake/internal/models"
)

// StandingService defines the primary port for user standing operations.
type StandingService interface {
	// FlagUser marks a user for staff escalation on future submissions.
	// An existing flag is replaced. communityID is empty for a global flag.
	FlagUser(ctx context.Context, userID, flaggedBy, reason, communityID string) error

	// UnflagUser removes a user's flag, reporting whether one existed.
	UnflagUser(ctx context.Context, userID string) (bool, error)

	// IsFlagged reports whether a user is flagged for the community
	// (global flags match any community).
	IsFlagged(ctx context.Context, userID, communityID string) (bool, error)

	// GetFlag returns the flag row for a user, or nil.
	GetFlag(ctx context.Context, userID string) (*models.UserFlag, error)

	// BlacklistUser blocks a user from starting any new intake and sends a
	// best-effort notice.
	BlacklistUser(ctx context.Context, userID, blacklistedBy, reason string) error

	// UnblacklistUser removes the block, reporting whether one existed.
	UnblacklistUser(ctx context.Context, userID string) (bool, error)

	// IsBlacklisted reports whether a user is blocked.
	IsBlacklisted(ctx context.Context, userID string) (bool, error)
}
