package app

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/example/intake/internal/ports/secondary"
)

func newNotifierFixture() (*Notifier, *mockMessenger, *mockChannelConfigRepository) {
	messenger := newMockMessenger()
	channels := newMockChannelConfigRepository()
	channels.channels["guild-1"] = "review-channel"
	guild := newMockGuildDirectory()
	return NewNotifier(messenger, channels, guild, zerolog.Nop()), messenger, channels
}

func TestNotifier_NotifyUserDMFirst(t *testing.T) {
	notifier, messenger, _ := newNotifierFixture()

	outcome := notifier.NotifyUser(context.Background(), "user-1",
		secondary.Message{Body: "private"}, secondary.Message{Body: "public"}, "<@user-1>")

	assert.True(t, outcome.DMSent)
	assert.False(t, outcome.FallbackPosted)
	assert.Len(t, messenger.dms, 1)
	assert.Empty(t, messenger.posts, "channel untouched when the DM goes through")
}

func TestNotifier_NotifyUserFallback(t *testing.T) {
	notifier, messenger, _ := newNotifierFixture()
	messenger.dmErr["user-1"] = secondary.ErrDeliveryForbidden

	outcome := notifier.NotifyUser(context.Background(), "user-1",
		secondary.Message{Body: "private"}, secondary.Message{Body: "public"}, "<@user-1>")

	assert.False(t, outcome.DMSent)
	assert.Equal(t, DMErrorForbidden, outcome.DMError)
	assert.True(t, outcome.FallbackPosted)
	assert.Len(t, messenger.posts, 1)
	assert.Equal(t, "<@user-1>", messenger.posts[0].mention)
	assert.Equal(t, "public", messenger.posts[0].msg.Body)
}

func TestNotifier_NotifyUserGenericFailure(t *testing.T) {
	notifier, messenger, _ := newNotifierFixture()
	messenger.dmErr["user-1"] = errors.New("socket closed")

	outcome := notifier.NotifyUser(context.Background(), "user-1",
		secondary.Message{}, secondary.Message{}, "")

	assert.Equal(t, DMErrorFailed, outcome.DMError)
	assert.True(t, outcome.FallbackPosted)
}

func TestNotifier_NotifyUserNoChannelConfigured(t *testing.T) {
	notifier, messenger, channels := newNotifierFixture()
	delete(channels.channels, "guild-1")
	messenger.dmErr["user-1"] = secondary.ErrDeliveryForbidden

	outcome := notifier.NotifyUser(context.Background(), "user-1",
		secondary.Message{}, secondary.Message{}, "")

	assert.False(t, outcome.DMSent)
	assert.False(t, outcome.FallbackPosted)
	assert.Empty(t, messenger.posts)
}

func TestNotifier_PostToReview(t *testing.T) {
	notifier, messenger, channels := newNotifierFixture()

	assert.True(t, notifier.PostToReview(context.Background(), "", secondary.Message{Body: "update"}))
	assert.Len(t, messenger.posts, 1)
	assert.Equal(t, "review-channel", messenger.posts[0].channelID)

	delete(channels.channels, "guild-1")
	assert.False(t, notifier.PostToReview(context.Background(), "", secondary.Message{}))
}

func TestNotifier_PostToReviewPostFailure(t *testing.T) {
	notifier, messenger, _ := newNotifierFixture()
	messenger.postErr = errors.New("channel gone")

	assert.False(t, notifier.PostToReview(context.Background(), "", secondary.Message{}))
}
