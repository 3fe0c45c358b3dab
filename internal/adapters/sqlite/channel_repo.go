package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/intake/internal/ports/secondary"
)

// ChannelConfigRepository implements secondary.ChannelConfigRepository with
// SQLite. One row per community.
type ChannelConfigRepository struct {
	db *sql.DB
}

// NewChannelConfigRepository creates a new SQLite channel config repository.
func NewChannelConfigRepository(db *sql.DB) *ChannelConfigRepository {
	return &ChannelConfigRepository{db: db}
}

// GetReviewChannel returns the configured review channel for a community,
// or "" when none is set.
func (r *ChannelConfigRepository) GetReviewChannel(ctx context.Context, communityID string) (string, error) {
	var channelID string
	err := r.db.QueryRowContext(ctx,
		"SELECT channel_id FROM review_channels WHERE community_id = ?", communityID).Scan(&channelID)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get review channel: %w", err)
	}
	return channelID, nil
}

// SetReviewChannel sets or replaces the review channel for a community.
func (r *ChannelConfigRepository) SetReviewChannel(ctx context.Context, communityID, channelID string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO review_channels (community_id, channel_id)
		VALUES (?, ?)
		ON CONFLICT(community_id) DO UPDATE SET channel_id=excluded.channel_id`,
		communityID, channelID)
	if err != nil {
		return fmt.Errorf("failed to set review channel: %w", err)
	}
	return nil
}

// Ensure ChannelConfigRepository implements the interface
var _ secondary.ChannelConfigRepository = (*ChannelConfigRepository)(nil)
