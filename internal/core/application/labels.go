package application

import (
	"strings"

	"github.com/example/intake/internal/models"
)

// labelMap maps the human-friendly status vocabulary used by staff to the
// canonical stored statuses. 'denied' is an alias for rejected.
var labelMap = map[string]string{
	"pending":      models.AppStatusPending,
	"under review": models.AppStatusUnderReview,
	"under_review": models.AppStatusUnderReview,
	"accepted":     models.AppStatusAccepted,
	"denied":       models.AppStatusRejected,
	"rejected":     models.AppStatusRejected,
	"withdrawn":    models.AppStatusWithdrawn,
	"flagged":      models.AppStatusFlagged,
	"on hold":      models.AppStatusOnHold,
	"on_hold":      models.AppStatusOnHold,
}

// ParseLabel resolves a human status label to its canonical status.
// The second result is false for labels outside the fixed vocabulary.
func ParseLabel(label string) (string, bool) {
	status, ok := labelMap[strings.ToLower(strings.TrimSpace(label))]
	return status, ok
}

// Labels returns the accepted label vocabulary for error messages.
func Labels() string {
	return "Pending, Under Review, Accepted, Denied, Rejected, Withdrawn, Flagged, On Hold"
}
