// Package primary defines the primary ports (driving interfaces) for the
// application, plus their request/response types.
package primary

import (
	"context"

	"github.com/example/intake/internal/models"
)

// PositionService defines the primary port for position catalog operations.
type PositionService interface {
	// CreatePosition creates a position with default fields (open, no
	// questions, no roles). The name is stored case-folded.
	CreatePosition(ctx context.Context, name string) (*models.Position, error)

	// GetPosition retrieves a position by ID.
	GetPosition(ctx context.Context, id int64) (*models.Position, error)

	// FindPositions retrieves positions by name, case-insensitively.
	// Duplicate names are tolerated; callers disambiguate by ID.
	FindPositions(ctx context.Context, name string) ([]*models.Position, error)

	// ListPositions retrieves all positions.
	ListPositions(ctx context.Context) ([]*models.Position, error)

	// SetOpen opens or closes a position for submissions.
	SetOpen(ctx context.Context, id int64, open bool) error

	// SetDescription updates the position description.
	SetDescription(ctx context.Context, id int64, description string) error

	// SetQuestions replaces the ordered question list. Questions may not
	// span multiple lines.
	SetQuestions(ctx context.Context, id int64, questions []string) error

	// SetRoles replaces the outcome-role list.
	SetRoles(ctx context.Context, id int64, roleIDs []string) error

	// SetAcceptanceMessage updates the acceptance message template.
	SetAcceptanceMessage(ctx context.Context, id int64, message string) error

	// SetRejectionMessage updates the rejection message template.
	SetRejectionMessage(ctx context.Context, id int64, message string) error

	// DeletePosition removes the definition only; applications referencing
	// it keep their position id.
	DeletePosition(ctx context.Context, id int64) error
}
