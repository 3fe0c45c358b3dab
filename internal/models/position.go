// Package models contains domain types for intake entities.
// SQL persistence lives in internal/adapters/sqlite/*.go
package models

// Position represents a staff-defined application opportunity: an ordered
// question list, the roles granted on acceptance, templated decision
// messages, and an open/closed flag.
type Position struct {
	ID                int64
	Name              string // stored lowercased; duplicates tolerated
	Description       string
	Questions         []string
	RolesGiven        []string
	AcceptanceMessage string
	RejectionMessage  string
	Open              bool
}
