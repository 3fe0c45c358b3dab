package models

import "time"

// UserFlag marks a user for staff escalation: future submissions ping staff
// but are never blocked. CommunityID is empty for a global flag.
type UserFlag struct {
	UserID      string
	FlaggedBy   string
	Reason      string
	FlaggedAt   time.Time
	CommunityID string
}

// UserBlacklist is a hard block: the user cannot start any new intake.
type UserBlacklist struct {
	UserID        string
	BlacklistedBy string
	Reason        string
	BlacklistedAt time.Time
}
