// Package console provides a terminal Messenger for local development and
// demos: direct messages and channel posts are rendered to a writer instead
// of a chat platform.
package console

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"github.com/example/intake/internal/ports/secondary"
)

// Messenger renders messages to a writer.
type Messenger struct {
	out io.Writer
}

// NewMessenger creates a Messenger writing to stdout.
func NewMessenger() *Messenger {
	return &Messenger{out: os.Stdout}
}

// NewMessengerWithOutput creates a Messenger writing to the given output.
// This variant allows testing or alternate output destinations.
func NewMessengerWithOutput(out io.Writer) *Messenger {
	return &Messenger{out: out}
}

// SendDirect renders a direct message.
func (m *Messenger) SendDirect(ctx context.Context, userID string, msg secondary.Message) error {
	header := color.New(color.FgHiCyan).Sprintf("[DM -> %s]", userID)
	fmt.Fprintln(m.out, header)
	m.render(msg)
	return nil
}

// PostToChannel renders a channel post, mention line first.
func (m *Messenger) PostToChannel(ctx context.Context, channelID, mention string, msg secondary.Message) error {
	header := color.New(color.FgHiGreen).Sprintf("[#%s]", channelID)
	fmt.Fprintln(m.out, header)
	if mention != "" {
		fmt.Fprintln(m.out, mention)
	}
	m.render(msg)
	return nil
}

func (m *Messenger) render(msg secondary.Message) {
	if msg.Title != "" {
		fmt.Fprintln(m.out, color.New(color.Bold).Sprint(msg.Title))
	}
	if msg.Body != "" {
		fmt.Fprintln(m.out, msg.Body)
	}
	for _, field := range msg.Fields {
		fmt.Fprintf(m.out, "%s: %s\n", color.New(color.FgYellow).Sprint(field.Name), field.Value)
	}
	fmt.Fprintln(m.out)
}

// Ensure Messenger implements the interface
var _ secondary.Messenger = (*Messenger)(nil)
