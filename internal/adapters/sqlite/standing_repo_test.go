package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/example/intake/internal/adapters/sqlite"
	"github.com/example/intake/internal/models"
)

func TestStandingRepository_FlagLifecycle(t *testing.T) {
	testDB := setupTestDB(t)
	repo := sqlite.NewStandingRepository(testDB)
	ctx := context.Background()

	flagged, err := repo.IsFlagged(ctx, "user-1", "")
	if err != nil {
		t.Fatalf("failed to check flag: %v", err)
	}
	if flagged {
		t.Error("expected user to start unflagged")
	}

	err = repo.FlagUser(ctx, &models.UserFlag{
		UserID:    "user-1",
		FlaggedBy: "staff-1",
		Reason:    "suspicious",
		FlaggedAt: time.Now(),
	})
	if err != nil {
		t.Fatalf("failed to flag: %v", err)
	}

	flagged, _ = repo.IsFlagged(ctx, "user-1", "")
	if !flagged {
		t.Error("expected user to be flagged")
	}

	flag, err := repo.GetFlag(ctx, "user-1")
	if err != nil {
		t.Fatalf("failed to get flag: %v", err)
	}
	if flag.Reason != "suspicious" || flag.FlaggedBy != "staff-1" {
		t.Errorf("unexpected flag row: %+v", flag)
	}

	removed, err := repo.UnflagUser(ctx, "user-1")
	if err != nil {
		t.Fatalf("failed to unflag: %v", err)
	}
	if !removed {
		t.Error("expected unflag to remove a row")
	}

	removed, _ = repo.UnflagUser(ctx, "user-1")
	if removed {
		t.Error("expected second unflag to report nothing removed")
	}
}

func TestStandingRepository_FlagUpsert(t *testing.T) {
	testDB := setupTestDB(t)
	repo := sqlite.NewStandingRepository(testDB)
	ctx := context.Background()

	_ = repo.FlagUser(ctx, &models.UserFlag{UserID: "user-1", FlaggedBy: "staff-1", Reason: "first", FlaggedAt: time.Now()})
	_ = repo.FlagUser(ctx, &models.UserFlag{UserID: "user-1", FlaggedBy: "staff-2", Reason: "second", FlaggedAt: time.Now()})

	flag, _ := repo.GetFlag(ctx, "user-1")
	if flag.Reason != "second" || flag.FlaggedBy != "staff-2" {
		t.Errorf("expected replaced flag, got %+v", flag)
	}
}

func TestStandingRepository_FlagScopes(t *testing.T) {
	testDB := setupTestDB(t)
	repo := sqlite.NewStandingRepository(testDB)
	ctx := context.Background()

	// Global flag matches any community.
	_ = repo.FlagUser(ctx, &models.UserFlag{UserID: "global-user", FlaggedAt: time.Now()})
	flagged, _ := repo.IsFlagged(ctx, "global-user", "guild-1")
	if !flagged {
		t.Error("expected global flag to match a community lookup")
	}

	// Community-scoped flag matches only its own community.
	_ = repo.FlagUser(ctx, &models.UserFlag{UserID: "scoped-user", CommunityID: "guild-1", FlaggedAt: time.Now()})
	flagged, _ = repo.IsFlagged(ctx, "scoped-user", "guild-1")
	if !flagged {
		t.Error("expected scoped flag to match its community")
	}
	flagged, _ = repo.IsFlagged(ctx, "scoped-user", "guild-2")
	if flagged {
		t.Error("expected scoped flag not to match another community")
	}
}

func TestStandingRepository_BlacklistLifecycle(t *testing.T) {
	testDB := setupTestDB(t)
	repo := sqlite.NewStandingRepository(testDB)
	ctx := context.Background()

	blocked, err := repo.IsBlacklisted(ctx, "user-1")
	if err != nil {
		t.Fatalf("failed to check blacklist: %v", err)
	}
	if blocked {
		t.Error("expected user to start unblocked")
	}

	err = repo.BlacklistUser(ctx, &models.UserBlacklist{
		UserID:        "user-1",
		BlacklistedBy: "staff-1",
		Reason:        "spam",
		BlacklistedAt: time.Now(),
	})
	if err != nil {
		t.Fatalf("failed to blacklist: %v", err)
	}

	blocked, _ = repo.IsBlacklisted(ctx, "user-1")
	if !blocked {
		t.Error("expected user to be blacklisted")
	}

	removed, err := repo.UnblacklistUser(ctx, "user-1")
	if err != nil {
		t.Fatalf("failed to unblacklist: %v", err)
	}
	if !removed {
		t.Error("expected unblacklist to remove a row")
	}

	removed, _ = repo.UnblacklistUser(ctx, "user-1")
	if removed {
		t.Error("expected second unblacklist to report nothing removed")
	}
}
