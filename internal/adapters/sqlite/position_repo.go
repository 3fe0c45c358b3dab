// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/example/intake/internal/models"
	"github.com/example/intake/internal/ports/secondary"
)

// List-field delimiters. Individual elements must not contain them; the
// setters reject offending values so the encoding round-trips losslessly.
const (
	questionDelimiter = "\n"
	roleDelimiter     = ","
)

// PositionRepository implements secondary.PositionRepository with SQLite.
type PositionRepository struct {
	db *sql.DB
}

// NewPositionRepository creates a new SQLite position repository.
func NewPositionRepository(db *sql.DB) *PositionRepository {
	return &PositionRepository{db: db}
}

// Create persists a new position with default fields and returns its ID.
func (r *PositionRepository) Create(ctx context.Context, name string) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO positions (name, description, roles_given, questions, acceptance_message, rejection_message, open) VALUES (?, '', '', '', '', '', 1)",
		strings.ToLower(name),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to create position: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get position id: %w", err)
	}
	return id, nil
}

const positionColumns = "position_id, name, description, roles_given, questions, acceptance_message, rejection_message, open"

func scanPosition(scan func(dest ...any) error) (*models.Position, error) {
	var (
		pos       models.Position
		rolesRaw  string
		questions string
	)
	err := scan(&pos.ID, &pos.Name, &pos.Description, &rolesRaw, &questions,
		&pos.AcceptanceMessage, &pos.RejectionMessage, &pos.Open)
	if err != nil {
		return nil, err
	}
	pos.RolesGiven = decodeList(rolesRaw, roleDelimiter)
	pos.Questions = decodeList(questions, questionDelimiter)
	return &pos, nil
}

// GetByID retrieves a position by its ID.
func (r *PositionRepository) GetByID(ctx context.Context, id int64) (*models.Position, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+positionColumns+" FROM positions WHERE position_id = ?", id)
	pos, err := scanPosition(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get position: %w", err)
	}
	return pos, nil
}

// FindByName retrieves positions by case-folded name.
func (r *PositionRepository) FindByName(ctx context.Context, name string) ([]*models.Position, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+positionColumns+" FROM positions WHERE name = ? ORDER BY position_id",
		strings.ToLower(name))
	if err != nil {
		return nil, fmt.Errorf("failed to find positions: %w", err)
	}
	defer rows.Close()
	return collectPositions(rows)
}

// List retrieves all positions.
func (r *PositionRepository) List(ctx context.Context) ([]*models.Position, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+positionColumns+" FROM positions ORDER BY position_id")
	if err != nil {
		return nil, fmt.Errorf("failed to list positions: %w", err)
	}
	defer rows.Close()
	return collectPositions(rows)
}

func collectPositions(rows *sql.Rows) ([]*models.Position, error) {
	var positions []*models.Position
	for rows.Next() {
		pos, err := scanPosition(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan position: %w", err)
		}
		positions = append(positions, pos)
	}
	return positions, rows.Err()
}

// SetOpen opens or closes a position for submissions.
func (r *PositionRepository) SetOpen(ctx context.Context, id int64, open bool) error {
	return r.updateField(ctx, id, "open", open)
}

// SetDescription updates the description.
func (r *PositionRepository) SetDescription(ctx context.Context, id int64, description string) error {
	return r.updateField(ctx, id, "description", description)
}

// SetQuestions replaces the ordered question list. Elements containing the
// newline delimiter are rejected.
func (r *PositionRepository) SetQuestions(ctx context.Context, id int64, questions []string) error {
	encoded, err := encodeList(questions, questionDelimiter)
	if err != nil {
		return fmt.Errorf("invalid question: %w", err)
	}
	return r.updateField(ctx, id, "questions", encoded)
}

// SetRoles replaces the ordered outcome-role list. Elements containing the
// comma delimiter are rejected.
func (r *PositionRepository) SetRoles(ctx context.Context, id int64, roleIDs []string) error {
	encoded, err := encodeList(roleIDs, roleDelimiter)
	if err != nil {
		return fmt.Errorf("invalid role id: %w", err)
	}
	return r.updateField(ctx, id, "roles_given", encoded)
}

// SetAcceptanceMessage updates the acceptance message template.
func (r *PositionRepository) SetAcceptanceMessage(ctx context.Context, id int64, message string) error {
	return r.updateField(ctx, id, "acceptance_message", message)
}

// SetRejectionMessage updates the rejection message template.
func (r *PositionRepository) SetRejectionMessage(ctx context.Context, id int64, message string) error {
	return r.updateField(ctx, id, "rejection_message", message)
}

func (r *PositionRepository) updateField(ctx context.Context, id int64, column string, value any) error {
	result, err := r.db.ExecContext(ctx,
		fmt.Sprintf("UPDATE positions SET %s = ? WHERE position_id = ?", column), value, id)
	if err != nil {
		return fmt.Errorf("failed to update position %s: %w", column, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("position %d not found", id)
	}
	return nil
}

// Delete removes the position definition only. Applications that reference
// it keep their position_id.
func (r *PositionRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM positions WHERE position_id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete position: %w", err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("position %d not found", id)
	}
	return nil
}

// encodeList joins elements with the delimiter, rejecting elements that
// contain it and empty elements so decoding reconstructs the exact sequence.
func encodeList(elements []string, delimiter string) (string, error) {
	for _, e := range elements {
		if e == "" {
			return "", fmt.Errorf("empty element in list")
		}
		if strings.Contains(e, delimiter) {
			return "", fmt.Errorf("element %q contains the delimiter %q", e, delimiter)
		}
	}
	return strings.Join(elements, delimiter), nil
}

func decodeList(encoded, delimiter string) []string {
	if encoded == "" {
		return nil
	}
	var out []string
	for _, e := range strings.Split(encoded, delimiter) {
		if e != "" {
			out = append(out, e)
		}
	}
	return out
}

// Ensure PositionRepository implements the interface
var _ secondary.PositionRepository = (*PositionRepository)(nil)
