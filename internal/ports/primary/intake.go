package primary

import (
	"context"

	"github.com/example/intake/internal/models"
	"github.com/example/intake/internal/ports/secondary"
)

// IntakeService defines the primary port for the applicant-facing
// conversational intake flow.
type IntakeService interface {
	// Start begins an intake for the user against a position resolved by
	// name. Any previous in-progress application for the user is replaced.
	// The first question is delivered before the call returns; if delivery
	// fails the intake is not started.
	Start(ctx context.Context, userID, positionName string) (*StartResult, error)

	// Answer records the user's next answer and either sends the next
	// question or submits the completed application.
	Answer(ctx context.Context, userID, text string) (*AnswerResult, error)

	// HandleInbound feeds a transport message event into the intake flow.
	// Non-direct and bot messages are ignored, as are messages from users
	// with no in-progress application.
	HandleInbound(ctx context.Context, msg secondary.InboundMessage) (*AnswerResult, error)

	// Withdraw marks an application withdrawn. With id 0, the user's
	// latest submitted application is targeted. Ownership is enforced.
	Withdraw(ctx context.Context, userID string, id int64) (*models.Application, error)

	// Status returns an application for status display. With id 0, the
	// user's latest submitted application is targeted. Ownership is
	// enforced.
	Status(ctx context.Context, userID string, id int64) (*models.Application, error)
}

// StartResult reports a successfully started intake.
type StartResult struct {
	ApplicationID int64
	Position      *models.Position
	// FirstQuestion is empty when the position has no questions and the
	// applicant was told to wait for staff instead.
	FirstQuestion string
}

// AnswerResult reports the state of the intake after one answer.
type AnswerResult struct {
	ApplicationID int64
	Submitted     bool
	// NextQuestion and QuestionNumber are set while the intake continues.
	NextQuestion   string
	QuestionNumber int
	// Routed is false when the submission was stored but no review channel
	// is configured to receive it.
	Routed bool
	// Ignored is true when an inbound event was not an intake answer.
	Ignored bool
}
