package secondary

import (
	"context"
	"errors"
)

// ErrDeliveryForbidden is returned by a Messenger when the recipient cannot
// be reached for permission reasons (closed DMs, missing channel access).
// Other delivery faults are returned as plain errors.
var ErrDeliveryForbidden = errors.New("delivery forbidden")

// MessageField is one labelled section of a rich message.
type MessageField struct {
	Name  string
	Value string
}

// Message is the transport-agnostic display object handed to a Messenger.
// Platform-specific rendering (embeds, markdown) belongs to the adapter.
type Message struct {
	Title  string
	Body   string
	Fields []MessageField
}

// InboundMessage is a message event received from the transport.
type InboundMessage struct {
	SenderID       string
	IsDirect       bool
	IsBot          bool
	Text           string
	AttachmentURLs []string
}

// Messenger defines the secondary port for the chat transport. Calls must
// fail within a bounded time; the core never retries unboundedly.
type Messenger interface {
	// SendDirect delivers a message to a user's private channel.
	SendDirect(ctx context.Context, userID string, msg Message) error

	// PostToChannel posts a message to a channel, with an optional plain
	// mention line sent before the message so pings go through.
	PostToChannel(ctx context.Context, channelID, mention string, msg Message) error
}
