package app

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/example/intake/internal/ports/secondary"
)

// DM error classifications reported in decision summaries.
const (
	DMErrorForbidden = "forbidden"
	DMErrorFailed    = "failed"
)

// Notifier routes notifications DM-first with a review-channel fallback.
// It never fails the caller: delivery problems are recorded in the outcome
// and logged, because status commits must not be unwound by notification
// failures.
type Notifier struct {
	messenger secondary.Messenger
	channels  secondary.ChannelConfigRepository
	guild     secondary.GuildDirectory
	logger    zerolog.Logger
}

// NewNotifier creates a Notifier over the transport and channel config.
func NewNotifier(
	messenger secondary.Messenger,
	channels secondary.ChannelConfigRepository,
	guild secondary.GuildDirectory,
	logger zerolog.Logger,
) *Notifier {
	return &Notifier{
		messenger: messenger,
		channels:  channels,
		guild:     guild,
		logger:    logger,
	}
}

// DeliveryOutcome reports how a user notification was delivered.
type DeliveryOutcome struct {
	DMSent         bool
	DMError        string // forbidden or failed, when DMSent is false
	FallbackPosted bool
}

// NotifyUser tries to DM the user; on failure it posts the fallback message
// to the review channel with a mention so the user still gets pinged.
func (n *Notifier) NotifyUser(ctx context.Context, userID string, dm, fallback secondary.Message, fallbackMention string) DeliveryOutcome {
	var outcome DeliveryOutcome

	err := n.messenger.SendDirect(ctx, userID, dm)
	if err == nil {
		outcome.DMSent = true
		return outcome
	}
	if errors.Is(err, secondary.ErrDeliveryForbidden) {
		outcome.DMError = DMErrorForbidden
	} else {
		outcome.DMError = DMErrorFailed
	}
	n.logger.Warn().Err(err).Str("user_id", userID).Msg("direct message failed, trying review channel")

	channelID, ok := n.reviewChannel(ctx)
	if !ok {
		return outcome
	}
	if err := n.messenger.PostToChannel(ctx, channelID, fallbackMention, fallback); err != nil {
		n.logger.Error().Err(err).Str("channel_id", channelID).Msg("fallback post failed")
		return outcome
	}
	outcome.FallbackPosted = true
	return outcome
}

// PostToReview posts a message to the configured review channel, with an
// optional mention line sent first. Returns false when no channel is
// configured or the post failed; failures are logged, never surfaced.
func (n *Notifier) PostToReview(ctx context.Context, mention string, msg secondary.Message) bool {
	channelID, ok := n.reviewChannel(ctx)
	if !ok {
		return false
	}
	if err := n.messenger.PostToChannel(ctx, channelID, mention, msg); err != nil {
		n.logger.Error().Err(err).Str("channel_id", channelID).Msg("review channel post failed")
		return false
	}
	return true
}

func (n *Notifier) reviewChannel(ctx context.Context) (string, bool) {
	communityID, err := n.guild.CommunityID(ctx)
	if err != nil {
		n.logger.Error().Err(err).Msg("failed to resolve community")
		return "", false
	}
	channelID, err := n.channels.GetReviewChannel(ctx, communityID)
	if err != nil {
		n.logger.Error().Err(err).Msg("failed to read review channel config")
		return "", false
	}
	if channelID == "" {
		return "", false
	}
	return channelID, true
}
