package primary

import (
	"context"

	"github.com/example/intake/internal/core/review"
)

// ReviewService defines the primary port for staff decision operations.
type ReviewService interface {
	// Approve marks an application accepted, grants the position's outcome
	// roles (partial success expected), and notifies the applicant with a
	// channel fallback. The status commit always precedes side effects.
	Approve(ctx context.Context, id int64, staffID string) (*DecisionSummary, error)

	// Reject marks an application rejected and notifies the applicant.
	// Message precedence: reason, then the position's rejection message.
	Reject(ctx context.Context, id int64, staffID, reason string) (*DecisionSummary, error)

	// Relabel maps a human status label to its canonical status and
	// commits it. Relabeling to on hold posts a fixed public notice.
	Relabel(ctx context.Context, id int64, staffID, label string) (string, error)

	// Flag freezes an application until unflagged.
	Flag(ctx context.Context, id int64) error

	// Unflag returns a flagged application to the pending-review state
	// configured on the service.
	Unflag(ctx context.Context, id int64) error
}

// DecisionSummary is the structured outcome of an approve/reject decision.
type DecisionSummary struct {
	ApplicationID  int64
	UserID         string
	PositionName   string
	RolesGranted   []string
	RolesFailed    []review.GrantFailure
	DMSent         bool
	DMError        string // "forbidden" or "failed" when DMSent is false
	FallbackPosted bool
}
