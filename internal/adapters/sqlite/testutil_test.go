// Package sqlite_test contains integration tests for SQLite repositories.
//
// All test setup uses db.GetSchemaSQL() so tests run against the
// authoritative schema; repository code referencing a missing column fails
// immediately here rather than in production.
package sqlite_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/example/intake/internal/adapters/sqlite"
	"github.com/example/intake/internal/db"
)

// setupTestDB creates an in-memory database with the authoritative schema.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	if _, err := testDB.Exec(db.GetSchemaSQL()); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

// seedPosition inserts a test position and returns its ID.
func seedPosition(t *testing.T, testDB *sql.DB, name string) int64 {
	t.Helper()
	if name == "" {
		name = "moderator"
	}
	repo := sqlite.NewPositionRepository(testDB)
	id, err := repo.Create(context.Background(), name)
	if err != nil {
		t.Fatalf("failed to seed position: %v", err)
	}
	return id
}

// seedSubmittedApplication starts and submits an application for a user.
func seedSubmittedApplication(t *testing.T, testDB *sql.DB, userID string, positionID int64, answers []string) int64 {
	t.Helper()
	repo := sqlite.NewApplicationRepository(testDB)
	ctx := context.Background()

	id, err := repo.StartInProgress(ctx, userID, positionID, time.Now())
	if err != nil {
		t.Fatalf("failed to seed application: %v", err)
	}
	for _, a := range answers {
		if err := repo.AppendAnswer(ctx, id, a); err != nil {
			t.Fatalf("failed to seed answer: %v", err)
		}
	}
	if err := repo.Submit(ctx, id, time.Now()); err != nil {
		t.Fatalf("failed to seed submission: %v", err)
	}
	return id
}
