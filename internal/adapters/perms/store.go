// Package perms provides a file-backed capability->role store implementing
// the PermissionDirectory port. The file is a single JSON document kept in
// the data directory, edited through the CLI and read by the core when it
// needs to ping capability holders.
package perms

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/example/intake/internal/ports/secondary"
)

// FileName is the permissions file kept under the data directory.
const FileName = "roleperms.json"

// fileDoc is the on-disk layout.
type fileDoc struct {
	RolePerms map[string][]string `json:"role_perms"`
}

// Store is a file-backed PermissionDirectory. Reads and writes go through
// one mutex; the file is small and contention-free in practice.
type Store struct {
	path string
	mu   sync.Mutex
}

// NewStore creates a Store over the permissions file in dir.
func NewStore(dir string) *Store {
	return &Store{path: filepath.Join(dir, FileName)}
}

// RolesForCapability returns the role ids authorized for a capability.
// Unknown capabilities and a missing file both resolve to an empty list.
func (s *Store) RolesForCapability(name string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return nil, err
	}
	return doc.RolePerms[name], nil
}

// Capabilities returns all capability names with at least one role, sorted.
func (s *Store) Capabilities() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(doc.RolePerms))
	for name, roles := range doc.RolePerms {
		if len(roles) > 0 {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

// Grant adds a role to a capability. Adding an already-granted role is a
// no-op.
func (s *Store) Grant(name, roleID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return err
	}
	for _, existing := range doc.RolePerms[name] {
		if existing == roleID {
			return nil
		}
	}
	doc.RolePerms[name] = append(doc.RolePerms[name], roleID)
	return s.save(doc)
}

// Revoke removes a role from a capability, reporting whether it was granted.
func (s *Store) Revoke(name, roleID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return false, err
	}
	roles := doc.RolePerms[name]
	for i, existing := range roles {
		if existing == roleID {
			doc.RolePerms[name] = append(roles[:i], roles[i+1:]...)
			if len(doc.RolePerms[name]) == 0 {
				delete(doc.RolePerms, name)
			}
			return true, s.save(doc)
		}
	}
	return false, nil
}

// SetRoles replaces the full role list for a capability. An empty list
// removes the capability.
func (s *Store) SetRoles(name string, roleIDs []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return err
	}
	if len(roleIDs) == 0 {
		delete(doc.RolePerms, name)
	} else {
		doc.RolePerms[name] = roleIDs
	}
	return s.save(doc)
}

func (s *Store) load() (*fileDoc, error) {
	doc := &fileDoc{RolePerms: make(map[string][]string)}

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return doc, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read permissions file: %w", err)
	}
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("failed to parse permissions file: %w", err)
	}
	if doc.RolePerms == nil {
		doc.RolePerms = make(map[string][]string)
	}
	return doc, nil
}

// save writes through a temp file and rename so a crash mid-write never
// leaves a truncated permissions file.
func (s *Store) save(doc *fileDoc) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal permissions: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write permissions file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace permissions file: %w", err)
	}
	return nil
}

// Ensure Store implements the interface
var _ secondary.PermissionDirectory = (*Store)(nil)
