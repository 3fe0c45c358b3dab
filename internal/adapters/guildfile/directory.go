// Package guildfile provides a file-backed GuildDirectory for local
// development: the community and its role hierarchy are described by a JSON
// file in the data directory, and role grants are appended to a grants file
// so they can be inspected after a run.
package guildfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"

	"github.com/example/intake/internal/ports/secondary"
)

// File names under the data directory.
const (
	GuildFileName  = "guild.json"
	GrantsFileName = "grants.json"
)

// guildDoc is the on-disk community description.
type guildDoc struct {
	CommunityID     string    `json:"community_id"`
	BotRolePosition int       `json:"bot_role_position"`
	Roles           []roleDoc `json:"roles"`
}

type roleDoc struct {
	ID       string `json:"id"`
	Name     string `json:"name,omitempty"`
	Position int    `json:"position"`
}

// grantRecord is one granted role, appended on every successful grant.
type grantRecord struct {
	UserID string `json:"user_id"`
	RoleID string `json:"role_id"`
}

// Directory is a file-backed GuildDirectory.
type Directory struct {
	guildPath  string
	grantsPath string
	logger     zerolog.Logger
	mu         sync.Mutex
}

// NewDirectory creates a Directory over the guild file in dir. A missing
// guild file behaves as an empty community named "local".
func NewDirectory(dir string, logger zerolog.Logger) *Directory {
	return &Directory{
		guildPath:  filepath.Join(dir, GuildFileName),
		grantsPath: filepath.Join(dir, GrantsFileName),
		logger:     logger,
	}
}

// CommunityID returns the id of the described community.
func (d *Directory) CommunityID(ctx context.Context) (string, error) {
	doc, err := d.load()
	if err != nil {
		return "", err
	}
	return doc.CommunityID, nil
}

// ListRoles returns the ids of all roles in the community.
func (d *Directory) ListRoles(ctx context.Context) ([]string, error) {
	doc, err := d.load()
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(doc.Roles))
	for _, role := range doc.Roles {
		ids = append(ids, role.ID)
	}
	return ids, nil
}

// RoleExists reports whether a role id exists in the community.
func (d *Directory) RoleExists(ctx context.Context, roleID string) (bool, error) {
	doc, err := d.load()
	if err != nil {
		return false, err
	}
	_, ok := doc.find(roleID)
	return ok, nil
}

// RoleOutranksBot reports whether the role sits at or above the bot's role.
func (d *Directory) RoleOutranksBot(ctx context.Context, roleID string) (bool, error) {
	doc, err := d.load()
	if err != nil {
		return false, err
	}
	role, ok := doc.find(roleID)
	if !ok {
		return false, nil
	}
	return role.Position >= doc.BotRolePosition, nil
}

// GrantRole records a role grant. Missing roles and roles above the bot are
// reported with the typed directory errors.
func (d *Directory) GrantRole(ctx context.Context, userID, roleID string) error {
	doc, err := d.load()
	if err != nil {
		return err
	}
	role, ok := doc.find(roleID)
	if !ok {
		return secondary.ErrRoleNotFound
	}
	if role.Position >= doc.BotRolePosition {
		return secondary.ErrRoleForbidden
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	records, err := d.loadGrants()
	if err != nil {
		return err
	}
	records = append(records, grantRecord{UserID: userID, RoleID: roleID})
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal grants: %w", err)
	}
	if err := os.WriteFile(d.grantsPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write grants file: %w", err)
	}

	d.logger.Info().Str("user_id", userID).Str("role_id", roleID).Msg("role granted")
	return nil
}

func (d *Directory) load() (*guildDoc, error) {
	data, err := os.ReadFile(d.guildPath)
	if os.IsNotExist(err) {
		return &guildDoc{CommunityID: "local"}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read guild file: %w", err)
	}
	var doc guildDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse guild file: %w", err)
	}
	return &doc, nil
}

func (d *Directory) loadGrants() ([]grantRecord, error) {
	data, err := os.ReadFile(d.grantsPath)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read grants file: %w", err)
	}
	var records []grantRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse grants file: %w", err)
	}
	return records, nil
}

func (g *guildDoc) find(roleID string) (roleDoc, bool) {
	for _, role := range g.Roles {
		if role.ID == roleID {
			return role, true
		}
	}
	return roleDoc{}, false
}

// Ensure Directory implements the interface
var _ secondary.GuildDirectory = (*Directory)(nil)
