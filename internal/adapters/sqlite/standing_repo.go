package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/intake/internal/models"
	"github.com/example/intake/internal/ports/secondary"
)

// StandingRepository implements secondary.StandingRepository with SQLite.
type StandingRepository struct {
	db *sql.DB
}

// NewStandingRepository creates a new SQLite standing repository.
func NewStandingRepository(db *sql.DB) *StandingRepository {
	return &StandingRepository{db: db}
}

// FlagUser inserts or replaces the user's flag.
func (r *StandingRepository) FlagUser(ctx context.Context, flag *models.UserFlag) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO user_flags (user_id, flagged_by, reason, flagged_at, community_id)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET flagged_by=excluded.flagged_by, reason=excluded.reason, flagged_at=excluded.flagged_at, community_id=excluded.community_id`,
		flag.UserID, flag.FlaggedBy, flag.Reason, flag.FlaggedAt, flag.CommunityID)
	if err != nil {
		return fmt.Errorf("failed to flag user: %w", err)
	}
	return nil
}

// UnflagUser removes the user's flag, reporting whether one existed.
func (r *StandingRepository) UnflagUser(ctx context.Context, userID string) (bool, error) {
	result, err := r.db.ExecContext(ctx, "DELETE FROM user_flags WHERE user_id = ?", userID)
	if err != nil {
		return false, fmt.Errorf("failed to unflag user: %w", err)
	}
	rowsAffected, _ := result.RowsAffected()
	return rowsAffected > 0, nil
}

// IsFlagged reports whether the user is flagged. A global flag (empty
// community_id) matches any community.
func (r *StandingRepository) IsFlagged(ctx context.Context, userID, communityID string) (bool, error) {
	var one int
	var err error
	if communityID == "" {
		err = r.db.QueryRowContext(ctx,
			"SELECT 1 FROM user_flags WHERE user_id = ? LIMIT 1", userID).Scan(&one)
	} else {
		err = r.db.QueryRowContext(ctx,
			"SELECT 1 FROM user_flags WHERE user_id = ? AND (community_id = '' OR community_id = ?) LIMIT 1",
			userID, communityID).Scan(&one)
	}
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check flag: %w", err)
	}
	return true, nil
}

// GetFlag returns the flag row for a user, or nil.
func (r *StandingRepository) GetFlag(ctx context.Context, userID string) (*models.UserFlag, error) {
	var flag models.UserFlag
	err := r.db.QueryRowContext(ctx,
		"SELECT user_id, flagged_by, reason, flagged_at, community_id FROM user_flags WHERE user_id = ?",
		userID).Scan(&flag.UserID, &flag.FlaggedBy, &flag.Reason, &flag.FlaggedAt, &flag.CommunityID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get flag: %w", err)
	}
	return &flag, nil
}

// BlacklistUser inserts or replaces the user's blacklist entry.
func (r *StandingRepository) BlacklistUser(ctx context.Context, entry *models.UserBlacklist) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO user_blacklist (user_id, blacklisted_by, reason, blacklisted_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET blacklisted_by=excluded.blacklisted_by, reason=excluded.reason, blacklisted_at=excluded.blacklisted_at`,
		entry.UserID, entry.BlacklistedBy, entry.Reason, entry.BlacklistedAt)
	if err != nil {
		return fmt.Errorf("failed to blacklist user: %w", err)
	}
	return nil
}

// UnblacklistUser removes the entry, reporting whether one existed.
func (r *StandingRepository) UnblacklistUser(ctx context.Context, userID string) (bool, error) {
	result, err := r.db.ExecContext(ctx, "DELETE FROM user_blacklist WHERE user_id = ?", userID)
	if err != nil {
		return false, fmt.Errorf("failed to unblacklist user: %w", err)
	}
	rowsAffected, _ := result.RowsAffected()
	return rowsAffected > 0, nil
}

// IsBlacklisted reports whether the user is blacklisted.
func (r *StandingRepository) IsBlacklisted(ctx context.Context, userID string) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx,
		"SELECT 1 FROM user_blacklist WHERE user_id = ? LIMIT 1", userID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check blacklist: %w", err)
	}
	return true, nil
}

// Ensure StandingRepository implements the interface
var _ secondary.StandingRepository = (*StandingRepository)(nil)
