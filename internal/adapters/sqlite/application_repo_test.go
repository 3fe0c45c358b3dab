package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/example/intake/internal/adapters/sqlite"
	"github.com/example/intake/internal/models"
)

func TestApplicationRepository_StartInProgress_ReplacesPrior(t *testing.T) {
	testDB := setupTestDB(t)
	repo := sqlite.NewApplicationRepository(testDB)
	ctx := context.Background()
	posID := seedPosition(t, testDB, "")

	first, err := repo.StartInProgress(ctx, "user-1", posID, time.Now())
	if err != nil {
		t.Fatalf("failed to start application: %v", err)
	}
	second, err := repo.StartInProgress(ctx, "user-1", posID, time.Now())
	if err != nil {
		t.Fatalf("failed to restart application: %v", err)
	}
	if first == second {
		t.Fatal("expected a fresh application id on restart")
	}

	// At most one in-progress row per user.
	var count int
	if err := testDB.QueryRow(
		"SELECT COUNT(*) FROM applications WHERE user_id = 'user-1' AND status = 'in_progress'").Scan(&count); err != nil {
		t.Fatalf("failed to count rows: %v", err)
	}
	if count != 1 {
		t.Errorf("expected exactly 1 in-progress row, got %d", count)
	}

	current, err := repo.GetInProgress(ctx, "user-1")
	if err != nil {
		t.Fatalf("failed to get in-progress: %v", err)
	}
	if current == nil || current.ID != second {
		t.Errorf("expected in-progress row %d, got %+v", second, current)
	}
}

func TestApplicationRepository_AnswersRoundTripInOrder(t *testing.T) {
	testDB := setupTestDB(t)
	repo := sqlite.NewApplicationRepository(testDB)
	ctx := context.Background()
	posID := seedPosition(t, testDB, "")

	id, err := repo.StartInProgress(ctx, "user-1", posID, time.Now())
	if err != nil {
		t.Fatalf("failed to start application: %v", err)
	}

	// Answers may contain delimiters and markup without corruption.
	answers := []string{"a", "line\nbreak, and comma", `"quoted"`}
	for _, a := range answers {
		if err := repo.AppendAnswer(ctx, id, a); err != nil {
			t.Fatalf("failed to append answer: %v", err)
		}
	}

	app, err := repo.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("failed to get application: %v", err)
	}
	if len(app.Answers) != 3 {
		t.Fatalf("expected 3 answers, got %d", len(app.Answers))
	}
	for i, a := range answers {
		if app.Answers[i] != a {
			t.Errorf("answer %d: expected %q, got %q", i, a, app.Answers[i])
		}
	}
}

func TestApplicationRepository_Submit(t *testing.T) {
	testDB := setupTestDB(t)
	repo := sqlite.NewApplicationRepository(testDB)
	ctx := context.Background()
	posID := seedPosition(t, testDB, "")

	id, _ := repo.StartInProgress(ctx, "user-1", posID, time.Now())
	if err := repo.Submit(ctx, id, time.Now()); err != nil {
		t.Fatalf("failed to submit: %v", err)
	}

	app, _ := repo.GetByID(ctx, id)
	if app.Status != models.AppStatusSubmitted {
		t.Errorf("expected status submitted, got %s", app.Status)
	}
	if !app.SubmittedAt.Valid {
		t.Error("expected submitted_at to be set")
	}

	// Submitting twice fails: the row is no longer in progress.
	if err := repo.Submit(ctx, id, time.Now()); err == nil {
		t.Error("expected error submitting an already-submitted application")
	}
}

func TestApplicationRepository_SetStatus_Idempotent(t *testing.T) {
	testDB := setupTestDB(t)
	repo := sqlite.NewApplicationRepository(testDB)
	ctx := context.Background()
	posID := seedPosition(t, testDB, "")
	id := seedSubmittedApplication(t, testDB, "user-1", posID, []string{"a"})

	changed, err := repo.SetStatus(ctx, id, models.AppStatusAccepted)
	if err != nil {
		t.Fatalf("failed to set status: %v", err)
	}
	if !changed {
		t.Fatal("expected first status change to commit")
	}

	// Second identical call is a no-op.
	changed, err = repo.SetStatus(ctx, id, models.AppStatusAccepted)
	if err != nil {
		t.Fatalf("failed on idempotent set: %v", err)
	}
	if changed {
		t.Error("expected no-op on identical status")
	}

	app, _ := repo.GetByID(ctx, id)
	if app.Status != models.AppStatusAccepted {
		t.Errorf("expected status accepted, got %s", app.Status)
	}
}

func TestApplicationRepository_SetStatus_MissingRow(t *testing.T) {
	testDB := setupTestDB(t)
	repo := sqlite.NewApplicationRepository(testDB)

	changed, err := repo.SetStatus(context.Background(), 404, models.AppStatusAccepted)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if changed {
		t.Error("expected false for missing row")
	}
}

func TestApplicationRepository_GetLatestByUserAndStatus(t *testing.T) {
	testDB := setupTestDB(t)
	repo := sqlite.NewApplicationRepository(testDB)
	ctx := context.Background()
	posID := seedPosition(t, testDB, "")

	seedSubmittedApplication(t, testDB, "user-1", posID, []string{"old"})
	newest := seedSubmittedApplication(t, testDB, "user-1", posID, []string{"new"})
	seedSubmittedApplication(t, testDB, "user-2", posID, []string{"other"})

	app, err := repo.GetLatestByUserAndStatus(ctx, "user-1", models.AppStatusSubmitted)
	if err != nil {
		t.Fatalf("failed to get latest: %v", err)
	}
	if app == nil || app.ID != newest {
		t.Errorf("expected application %d, got %+v", newest, app)
	}

	none, err := repo.GetLatestByUserAndStatus(ctx, "user-3", models.AppStatusSubmitted)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if none != nil {
		t.Errorf("expected nil for user without applications, got %+v", none)
	}
}

func TestApplicationRepository_CountAndPage(t *testing.T) {
	testDB := setupTestDB(t)
	repo := sqlite.NewApplicationRepository(testDB)
	ctx := context.Background()
	posID := seedPosition(t, testDB, "")

	var ids []int64
	for i := 0; i < 5; i++ {
		ids = append(ids, seedSubmittedApplication(t, testDB, "user-1", posID, nil))
	}

	count, err := repo.Count(ctx)
	if err != nil {
		t.Fatalf("failed to count: %v", err)
	}
	if count != 5 {
		t.Errorf("expected count 5, got %d", count)
	}

	page, err := repo.Page(ctx, 2, 0)
	if err != nil {
		t.Fatalf("failed to page: %v", err)
	}
	if len(page) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(page))
	}
	// Newest first.
	if page[0].ID != ids[4] || page[1].ID != ids[3] {
		t.Errorf("expected newest-first [%d %d], got [%d %d]", ids[4], ids[3], page[0].ID, page[1].ID)
	}

	last, err := repo.Page(ctx, 2, 4)
	if err != nil {
		t.Fatalf("failed to page: %v", err)
	}
	if len(last) != 1 || last[0].ID != ids[0] {
		t.Errorf("expected final page [%d], got %v", ids[0], last)
	}
}

func TestApplicationRepository_Delete(t *testing.T) {
	testDB := setupTestDB(t)
	repo := sqlite.NewApplicationRepository(testDB)
	ctx := context.Background()
	posID := seedPosition(t, testDB, "")

	id, _ := repo.StartInProgress(ctx, "user-1", posID, time.Now())
	if err := repo.Delete(ctx, id); err != nil {
		t.Fatalf("failed to delete: %v", err)
	}

	app, err := repo.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if app != nil {
		t.Errorf("expected row deleted, got %+v", app)
	}
}
