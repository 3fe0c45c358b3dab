package models

import (
	"database/sql"
	"time"
)

// Application represents one applicant's attempt against a position.
// Answers are collected one at a time while in progress and frozen on
// submission.
type Application struct {
	ID          int64
	UserID      string
	PositionID  int64
	Answers     []string
	Status      string
	CreatedAt   time.Time
	SubmittedAt sql.NullTime
}

// Application status constants
const (
	AppStatusInProgress  = "in_progress"
	AppStatusPending     = "pending"
	AppStatusSubmitted   = "submitted"
	AppStatusUnderReview = "under_review"
	AppStatusAccepted    = "accepted"
	AppStatusRejected    = "rejected"
	AppStatusWithdrawn   = "withdrawn"
	AppStatusFlagged     = "flagged"
	AppStatusOnHold      = "on_hold"
)
