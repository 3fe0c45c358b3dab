package application

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/example/intake/internal/models"
)

func TestIsTerminal(t *testing.T) {
	assert.True(t, IsTerminal(models.AppStatusAccepted))
	assert.True(t, IsTerminal(models.AppStatusRejected))
	assert.True(t, IsTerminal(models.AppStatusWithdrawn))

	assert.False(t, IsTerminal(models.AppStatusInProgress))
	assert.False(t, IsTerminal(models.AppStatusSubmitted))
	assert.False(t, IsTerminal(models.AppStatusPending))
	assert.False(t, IsTerminal(models.AppStatusUnderReview))
	assert.False(t, IsTerminal(models.AppStatusFlagged))
	assert.False(t, IsTerminal(models.AppStatusOnHold))
}

func TestCanDecide(t *testing.T) {
	assert.True(t, CanDecide(models.AppStatusSubmitted).Allowed)
	assert.True(t, CanDecide(models.AppStatusPending).Allowed)
	assert.True(t, CanDecide(models.AppStatusUnderReview).Allowed)
	assert.True(t, CanDecide(models.AppStatusOnHold).Allowed)

	for _, status := range []string{
		models.AppStatusAccepted,
		models.AppStatusRejected,
		models.AppStatusWithdrawn,
	} {
		res := CanDecide(status)
		assert.False(t, res.Allowed, "status %s should not be decidable", status)
		assert.Contains(t, res.Reason, status)
	}

	res := CanDecide(models.AppStatusFlagged)
	assert.False(t, res.Allowed)
	assert.Contains(t, res.Reason, "flagged")
}

func TestCanWithdraw(t *testing.T) {
	assert.True(t, CanWithdraw(models.AppStatusSubmitted).Allowed)
	assert.True(t, CanWithdraw(models.AppStatusPending).Allowed)

	assert.False(t, CanWithdraw(models.AppStatusWithdrawn).Allowed)
	assert.False(t, CanWithdraw(models.AppStatusAccepted).Allowed)
	assert.False(t, CanWithdraw(models.AppStatusRejected).Allowed)
}

func TestCanFlag(t *testing.T) {
	assert.True(t, CanFlag(models.AppStatusSubmitted).Allowed)
	assert.True(t, CanFlag(models.AppStatusUnderReview).Allowed)

	assert.False(t, CanFlag(models.AppStatusFlagged).Allowed)
	assert.False(t, CanFlag(models.AppStatusAccepted).Allowed)
	assert.False(t, CanFlag(models.AppStatusRejected).Allowed)
	assert.False(t, CanFlag(models.AppStatusWithdrawn).Allowed)
}

func TestCanUnflag(t *testing.T) {
	assert.True(t, CanUnflag(models.AppStatusFlagged).Allowed)

	assert.False(t, CanUnflag(models.AppStatusSubmitted).Allowed)
	assert.False(t, CanUnflag(models.AppStatusAccepted).Allowed)
}

func TestCanTransition(t *testing.T) {
	assert.True(t, CanTransition(models.AppStatusSubmitted, models.AppStatusUnderReview).Allowed)
	assert.True(t, CanTransition(models.AppStatusUnderReview, models.AppStatusOnHold).Allowed)
	assert.True(t, CanTransition(models.AppStatusFlagged, models.AppStatusSubmitted).Allowed)

	// Identity transitions are rejected.
	assert.False(t, CanTransition(models.AppStatusPending, models.AppStatusPending).Allowed)

	// Terminal statuses are frozen, even against flagging.
	assert.False(t, CanTransition(models.AppStatusAccepted, models.AppStatusPending).Allowed)
	assert.False(t, CanTransition(models.AppStatusWithdrawn, models.AppStatusFlagged).Allowed)

	// Entering flagged follows the flag guard.
	assert.True(t, CanTransition(models.AppStatusSubmitted, models.AppStatusFlagged).Allowed)
}

func TestCanTransitionFlaggedExits(t *testing.T) {
	// Flagged only exits to decision-pending statuses.
	for _, next := range []string{
		models.AppStatusSubmitted,
		models.AppStatusPending,
		models.AppStatusUnderReview,
		models.AppStatusOnHold,
	} {
		assert.True(t, CanTransition(models.AppStatusFlagged, next).Allowed, "flagged -> %s", next)
	}

	for _, next := range []string{
		models.AppStatusAccepted,
		models.AppStatusRejected,
		models.AppStatusWithdrawn,
	} {
		res := CanTransition(models.AppStatusFlagged, next)
		assert.False(t, res.Allowed, "flagged -> %s must stay frozen", next)
		assert.Contains(t, res.Reason, "flagged")
	}
}

func TestExpired(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	assert.False(t, Expired(now.Add(-23*time.Hour), now))
	assert.False(t, Expired(now.Add(-InProgressTTL), now))
	assert.True(t, Expired(now.Add(-25*time.Hour), now))
}
