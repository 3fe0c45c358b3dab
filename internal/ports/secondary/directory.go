package secondary

import (
	"context"
	"errors"
)

// Role grant faults from the guild directory.
var (
	ErrRoleForbidden = errors.New("role grant forbidden")
	ErrRoleNotFound  = errors.New("role not found")
)

// GuildDirectory defines the secondary port for the community's role
// directory. One active community per deployment.
type GuildDirectory interface {
	// CommunityID returns the id of the active community.
	CommunityID(ctx context.Context) (string, error)

	// ListRoles returns the ids of all roles that exist in the community.
	ListRoles(ctx context.Context) ([]string, error)

	// RoleExists reports whether a role id exists in the community.
	RoleExists(ctx context.Context, roleID string) (bool, error)

	// RoleOutranksBot reports whether the role sits at or above the bot's
	// highest assignable role in the hierarchy.
	RoleOutranksBot(ctx context.Context, roleID string) (bool, error)

	// GrantRole assigns a role to a user. Returns ErrRoleForbidden,
	// ErrRoleNotFound, or another error on failure.
	GrantRole(ctx context.Context, userID, roleID string) error
}

// PermissionDirectory defines the secondary port for capability->role
// mappings.
type PermissionDirectory interface {
	// RolesForCapability returns the role ids authorized for a named
	// capability, or an empty list for unknown capabilities.
	RolesForCapability(name string) ([]string, error)
}
