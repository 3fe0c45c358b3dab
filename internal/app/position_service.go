package app

import (
	"context"
	"fmt"

	"github.com/example/intake/internal/models"
	"github.com/example/intake/internal/ports/primary"
	"github.com/example/intake/internal/ports/secondary"
)

// PositionServiceImpl implements the PositionService interface.
type PositionServiceImpl struct {
	positions secondary.PositionRepository
}

// NewPositionService creates a new PositionService with injected dependencies.
func NewPositionService(positions secondary.PositionRepository) *PositionServiceImpl {
	return &PositionServiceImpl{positions: positions}
}

// CreatePosition creates a position with default fields.
func (s *PositionServiceImpl) CreatePosition(ctx context.Context, name string) (*models.Position, error) {
	id, err := s.positions.Create(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to create position: %w", err)
	}
	created, err := s.positions.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch created position: %w", err)
	}
	return created, nil
}

// GetPosition retrieves a position by ID.
func (s *PositionServiceImpl) GetPosition(ctx context.Context, id int64) (*models.Position, error) {
	pos, err := s.positions.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if pos == nil {
		return nil, fmt.Errorf("position %d: %w", id, ErrNotFound)
	}
	return pos, nil
}

// FindPositions retrieves positions by name, case-insensitively.
func (s *PositionServiceImpl) FindPositions(ctx context.Context, name string) ([]*models.Position, error) {
	return s.positions.FindByName(ctx, name)
}

// ListPositions retrieves all positions.
func (s *PositionServiceImpl) ListPositions(ctx context.Context) ([]*models.Position, error) {
	return s.positions.List(ctx)
}

// SetOpen opens or closes a position for submissions.
func (s *PositionServiceImpl) SetOpen(ctx context.Context, id int64, open bool) error {
	return s.positions.SetOpen(ctx, id, open)
}

// SetDescription updates the position description.
func (s *PositionServiceImpl) SetDescription(ctx context.Context, id int64, description string) error {
	return s.positions.SetDescription(ctx, id, description)
}

// SetQuestions replaces the ordered question list.
func (s *PositionServiceImpl) SetQuestions(ctx context.Context, id int64, questions []string) error {
	return s.positions.SetQuestions(ctx, id, questions)
}

// SetRoles replaces the outcome-role list.
func (s *PositionServiceImpl) SetRoles(ctx context.Context, id int64, roleIDs []string) error {
	return s.positions.SetRoles(ctx, id, roleIDs)
}

// SetAcceptanceMessage updates the acceptance message template.
func (s *PositionServiceImpl) SetAcceptanceMessage(ctx context.Context, id int64, message string) error {
	return s.positions.SetAcceptanceMessage(ctx, id, message)
}

// SetRejectionMessage updates the rejection message template.
func (s *PositionServiceImpl) SetRejectionMessage(ctx context.Context, id int64, message string) error {
	return s.positions.SetRejectionMessage(ctx, id, message)
}

// DeletePosition removes the definition only.
func (s *PositionServiceImpl) DeletePosition(ctx context.Context, id int64) error {
	return s.positions.Delete(ctx, id)
}

// Ensure PositionServiceImpl implements the interface
var _ primary.PositionService = (*PositionServiceImpl)(nil)
