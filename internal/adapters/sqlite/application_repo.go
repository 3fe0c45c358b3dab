package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/example/intake/internal/models"
	"github.com/example/intake/internal/ports/secondary"
)

// ApplicationRepository implements secondary.ApplicationRepository with
// SQLite. Answers are stored as a JSON array so elements round-trip with
// any content.
type ApplicationRepository struct {
	db *sql.DB
}

// NewApplicationRepository creates a new SQLite application repository.
func NewApplicationRepository(db *sql.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

// StartInProgress atomically replaces any in-progress row for the user with
// a fresh one. Delete and insert run in one transaction so the at-most-one
// in-progress invariant holds even if the process dies mid-call.
func (r *ApplicationRepository) StartInProgress(ctx context.Context, userID string, positionID int64, now time.Time) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM applications WHERE user_id = ? AND status = 'in_progress'", userID); err != nil {
		return 0, fmt.Errorf("failed to clear in-progress application: %w", err)
	}

	res, err := tx.ExecContext(ctx,
		"INSERT INTO applications (user_id, position_id, answers, status, created_at) VALUES (?, ?, '[]', 'in_progress', ?)",
		userID, positionID, now)
	if err != nil {
		return 0, fmt.Errorf("failed to start application: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get application id: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit application start: %w", err)
	}
	return id, nil
}

const applicationColumns = "application_id, user_id, position_id, answers, status, created_at, submitted_at"

func scanApplication(scan func(dest ...any) error) (*models.Application, error) {
	var (
		app     models.Application
		answers string
	)
	err := scan(&app.ID, &app.UserID, &app.PositionID, &answers, &app.Status,
		&app.CreatedAt, &app.SubmittedAt)
	if err != nil {
		return nil, err
	}
	if answers != "" {
		if err := json.Unmarshal([]byte(answers), &app.Answers); err != nil {
			return nil, fmt.Errorf("failed to decode answers: %w", err)
		}
	}
	return &app, nil
}

// GetInProgress returns the user's in-progress application, or nil.
func (r *ApplicationRepository) GetInProgress(ctx context.Context, userID string) (*models.Application, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+applicationColumns+" FROM applications WHERE user_id = ? AND status = 'in_progress' ORDER BY application_id DESC LIMIT 1",
		userID)
	app, err := scanApplication(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get in-progress application: %w", err)
	}
	return app, nil
}

// AppendAnswer appends one answer to an in-progress application.
func (r *ApplicationRepository) AppendAnswer(ctx context.Context, applicationID int64, answer string) error {
	app, err := r.GetByID(ctx, applicationID)
	if err != nil {
		return err
	}
	if app == nil {
		return fmt.Errorf("application %d not found", applicationID)
	}

	encoded, err := json.Marshal(append(app.Answers, answer))
	if err != nil {
		return fmt.Errorf("failed to encode answers: %w", err)
	}
	if _, err := r.db.ExecContext(ctx,
		"UPDATE applications SET answers = ? WHERE application_id = ?", string(encoded), applicationID); err != nil {
		return fmt.Errorf("failed to append answer: %w", err)
	}
	return nil
}

// Submit freezes the answer list and marks the application submitted.
func (r *ApplicationRepository) Submit(ctx context.Context, applicationID int64, now time.Time) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE applications SET status = 'submitted', submitted_at = ? WHERE application_id = ? AND status = 'in_progress'",
		now, applicationID)
	if err != nil {
		return fmt.Errorf("failed to submit application: %w", err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("application %d is not in progress", applicationID)
	}
	return nil
}

// GetByID retrieves an application by its ID.
func (r *ApplicationRepository) GetByID(ctx context.Context, id int64) (*models.Application, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+applicationColumns+" FROM applications WHERE application_id = ?", id)
	app, err := scanApplication(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get application: %w", err)
	}
	return app, nil
}

// GetLatestByUserAndStatus returns the user's newest application with the
// given status, or nil.
func (r *ApplicationRepository) GetLatestByUserAndStatus(ctx context.Context, userID, status string) (*models.Application, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+applicationColumns+" FROM applications WHERE user_id = ? AND status = ? ORDER BY application_id DESC LIMIT 1",
		userID, status)
	app, err := scanApplication(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest application: %w", err)
	}
	return app, nil
}

// Count returns the total number of application rows.
func (r *ApplicationRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM applications").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count applications: %w", err)
	}
	return count, nil
}

// Page fetches applications ordered newest-first.
func (r *ApplicationRepository) Page(ctx context.Context, limit, offset int) ([]*models.Application, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+applicationColumns+" FROM applications ORDER BY application_id DESC LIMIT ? OFFSET ?",
		limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to page applications: %w", err)
	}
	defer rows.Close()

	var apps []*models.Application
	for rows.Next() {
		app, err := scanApplication(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan application: %w", err)
		}
		apps = append(apps, app)
	}
	return apps, rows.Err()
}

// SetStatus commits a status change. Returns false without touching the row
// when the status already matches, so double-invocation is safe.
func (r *ApplicationRepository) SetStatus(ctx context.Context, id int64, status string) (bool, error) {
	var current string
	err := r.db.QueryRowContext(ctx,
		"SELECT status FROM applications WHERE application_id = ?", id).Scan(&current)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read application status: %w", err)
	}
	if current == status {
		return false, nil
	}

	result, err := r.db.ExecContext(ctx,
		"UPDATE applications SET status = ? WHERE application_id = ?", status, id)
	if err != nil {
		return false, fmt.Errorf("failed to set application status: %w", err)
	}
	rowsAffected, _ := result.RowsAffected()
	return rowsAffected > 0, nil
}

// Delete removes an application row.
func (r *ApplicationRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx,
		"DELETE FROM applications WHERE application_id = ?", id); err != nil {
		return fmt.Errorf("failed to delete application: %w", err)
	}
	return nil
}

// Ensure ApplicationRepository implements the interface
var _ secondary.ApplicationRepository = (*ApplicationRepository)(nil)
