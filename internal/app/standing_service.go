package app

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/example/intake/internal/models"
	"github.com/example/intake/internal/ports/primary"
	"github.com/example/intake/internal/ports/secondary"
)

// StandingServiceImpl implements the StandingService interface.
type StandingServiceImpl struct {
	standing  secondary.StandingRepository
	messenger secondary.Messenger
	logger    zerolog.Logger
	now       func() time.Time
}

// NewStandingService creates a new StandingService with injected dependencies.
func NewStandingService(
	standing secondary.StandingRepository,
	messenger secondary.Messenger,
	logger zerolog.Logger,
) *StandingServiceImpl {
	return &StandingServiceImpl{
		standing:  standing,
		messenger: messenger,
		logger:    logger,
		now:       time.Now,
	}
}

// FlagUser marks a user for staff escalation on future submissions.
func (s *StandingServiceImpl) FlagUser(ctx context.Context, userID, flaggedBy, reason, communityID string) error {
	flag := &models.UserFlag{
		UserID:      userID,
		FlaggedBy:   flaggedBy,
		Reason:      reason,
		FlaggedAt:   s.now().UTC(),
		CommunityID: communityID,
	}
	if err := s.standing.FlagUser(ctx, flag); err != nil {
		return fmt.Errorf("failed to flag user: %w", err)
	}
	return nil
}

// UnflagUser removes a user's flag, reporting whether one existed.
func (s *StandingServiceImpl) UnflagUser(ctx context.Context, userID string) (bool, error) {
	return s.standing.UnflagUser(ctx, userID)
}

// IsFlagged reports whether a user is flagged for the community.
func (s *StandingServiceImpl) IsFlagged(ctx context.Context, userID, communityID string) (bool, error) {
	return s.standing.IsFlagged(ctx, userID, communityID)
}

// GetFlag returns the flag row for a user, or nil.
func (s *StandingServiceImpl) GetFlag(ctx context.Context, userID string) (*models.UserFlag, error) {
	return s.standing.GetFlag(ctx, userID)
}

// BlacklistUser blocks a user from starting any new intake. The user is
// notified by DM on a best-effort basis; a closed DM does not fail the
// blacklist.
func (s *StandingServiceImpl) BlacklistUser(ctx context.Context, userID, blacklistedBy, reason string) error {
	entry := &models.UserBlacklist{
		UserID:        userID,
		BlacklistedBy: blacklistedBy,
		Reason:        reason,
		BlacklistedAt: s.now().UTC(),
	}
	if err := s.standing.BlacklistUser(ctx, entry); err != nil {
		return fmt.Errorf("failed to blacklist user: %w", err)
	}

	notice := secondary.Message{
		Title: "You Have Been Blacklisted",
		Body:  "You can no longer submit applications in this community.",
	}
	if reason != "" {
		notice.Fields = append(notice.Fields, secondary.MessageField{Name: "Reason", Value: reason})
	}
	if err := s.messenger.SendDirect(ctx, userID, notice); err != nil {
		s.logger.Warn().Err(err).Str("user_id", userID).Msg("blacklist notice not delivered")
	}
	return nil
}

// UnblacklistUser removes the block, reporting whether one existed.
func (s *StandingServiceImpl) UnblacklistUser(ctx context.Context, userID string) (bool, error) {
	return s.standing.UnblacklistUser(ctx, userID)
}

// IsBlacklisted reports whether a user is blocked.
func (s *StandingServiceImpl) IsBlacklisted(ctx context.Context, userID string) (bool, error) {
	return s.standing.IsBlacklisted(ctx, userID)
}

// Ensure StandingServiceImpl implements the interface
var _ primary.StandingService = (*StandingServiceImpl)(nil)
