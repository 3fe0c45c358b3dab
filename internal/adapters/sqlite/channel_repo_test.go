package sqlite_test

import (
	"context"
	"testing"

	"github.com/example/intake/internal/adapters/sqlite"
)

func TestChannelConfigRepository_SetAndGet(t *testing.T) {
	testDB := setupTestDB(t)
	repo := sqlite.NewChannelConfigRepository(testDB)
	ctx := context.Background()

	channel, err := repo.GetReviewChannel(ctx, "guild-1")
	if err != nil {
		t.Fatalf("failed to get channel: %v", err)
	}
	if channel != "" {
		t.Errorf("expected empty channel before set, got %q", channel)
	}

	if err := repo.SetReviewChannel(ctx, "guild-1", "chan-100"); err != nil {
		t.Fatalf("failed to set channel: %v", err)
	}
	channel, _ = repo.GetReviewChannel(ctx, "guild-1")
	if channel != "chan-100" {
		t.Errorf("expected chan-100, got %q", channel)
	}

	// Replacing keeps one row per community.
	if err := repo.SetReviewChannel(ctx, "guild-1", "chan-200"); err != nil {
		t.Fatalf("failed to replace channel: %v", err)
	}
	channel, _ = repo.GetReviewChannel(ctx, "guild-1")
	if channel != "chan-200" {
		t.Errorf("expected chan-200, got %q", channel)
	}

	var count int
	if err := testDB.QueryRow("SELECT COUNT(*) FROM review_channels WHERE community_id = 'guild-1'").Scan(&count); err != nil {
		t.Fatalf("failed to count rows: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 row, got %d", count)
	}
}
