// Package directory provides the user profile directory consumed by the
// matchmaking coordinators. The store is in-memory and optionally seeded
// from a JSON file at startup; profile persistence lives outside this
// service.
package directory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/arenahub/arenahub/internal/hub"
)

// ErrNotFound is returned by Lookup for usernames the directory does not
// know about.
var ErrNotFound = errors.New("user not found")

// Directory is a concurrency-safe in-memory username to profile store.
type Directory struct {
	mu       sync.RWMutex
	profiles map[string]hub.PlayerInfo
}

// New returns an empty directory.
func New() *Directory {
	return &Directory{
		profiles: make(map[string]hub.PlayerInfo),
	}
}

// Add registers or replaces the profile for username.
func (d *Directory) Add(username, avatarURL string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.profiles[username] = hub.PlayerInfo{
		Username: username,
		Avatar:   avatarURL,
	}
}

// Lookup resolves username to its profile. Unknown usernames yield an
// error wrapping ErrNotFound.
func (d *Directory) Lookup(ctx context.Context, username string) (hub.PlayerInfo, error) {
	if err := ctx.Err(); err != nil {
		return hub.PlayerInfo{}, err
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	profile, ok := d.profiles[username]
	if !ok {
		return hub.PlayerInfo{}, fmt.Errorf("directory: %w: %q", ErrNotFound, username)
	}
	return profile, nil
}

type seedEntry struct {
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
}

// LoadSeed reads a JSON array of {"username", "avatar"} entries from path
// and merges them into the directory. Entries without a username are
// skipped.
func (d *Directory) LoadSeed(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("directory: reading seed file: %w", err)
	}

	var entries []seedEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return fmt.Errorf("directory: parsing seed file %s: %w", path, err)
	}

	for _, entry := range entries {
		if entry.Username == "" {
			continue
		}
		d.Add(entry.Username, entry.Avatar)
	}
	return nil
}
