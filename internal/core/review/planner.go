// Package review contains the pure business logic for review decisions.
// This is part of the functional core - no I/O, only pure functions.
// The app layer gathers role facts from the guild directory and feeds them
// here, so the grant algorithm is testable without a live directory.
package review

import (
	"fmt"
	"strings"
)

// Grant failure reasons recorded per role. Partial success is expected; a
// failed role never aborts the remaining grants.
const (
	GrantFailRoleNotFound = "role_not_found"
	GrantFailRoleAboveBot = "role_above_bot"
	GrantFailForbidden    = "forbidden"
	GrantFailOther        = "failed"
)

// StaffFallbackMention is used when no capability role resolves in the guild.
const StaffFallbackMention = "@Staff"

// RoleFact describes what the guild directory knows about one outcome role.
type RoleFact struct {
	RoleID      string
	Exists      bool
	OutranksBot bool
}

// GrantFailure records one role that could not be granted and why.
type GrantFailure struct {
	RoleID string
	Reason string
}

// GrantPlan splits a position's outcome roles into the ones worth
// attempting and the ones already known to fail.
type GrantPlan struct {
	Assignable []string
	Failed     []GrantFailure
}

// PlanGrants evaluates role facts into a grant plan. Missing roles and roles
// the bot cannot outrank are skipped up front with a typed reason.
func PlanGrants(facts []RoleFact) GrantPlan {
	var plan GrantPlan
	for _, f := range facts {
		if !f.Exists {
			plan.Failed = append(plan.Failed, GrantFailure{RoleID: f.RoleID, Reason: GrantFailRoleNotFound})
			continue
		}
		if f.OutranksBot {
			plan.Failed = append(plan.Failed, GrantFailure{RoleID: f.RoleID, Reason: GrantFailRoleAboveBot})
			continue
		}
		plan.Assignable = append(plan.Assignable, f.RoleID)
	}
	return plan
}

// MentionLine computes the staff mention for a flagged applicant's
// submission: the capability roles that actually exist in the guild, in
// capability order, or the generic fallback token when none resolve.
func MentionLine(capabilityRoles, guildRoles []string) string {
	present := make(map[string]bool, len(guildRoles))
	for _, r := range guildRoles {
		present[r] = true
	}

	var mentions []string
	for _, r := range capabilityRoles {
		if r != "" && present[r] {
			mentions = append(mentions, fmt.Sprintf("<@&%s>", r))
		}
	}
	if len(mentions) == 0 {
		return StaffFallbackMention
	}
	return strings.Join(mentions, " ")
}
