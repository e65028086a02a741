// Package store persists small pieces of user state (theme, favorites,
// unlocks, the cached daily quote) behind a string key-value interface.
package store

import (
	"errors"
	"fmt"
	"path/filepath"
)

// Keys used by the application.
const (
	KeyTheme      = "theme"
	KeyFavorites  = "favoritedItems"
	KeyDailyQuote = "dailyQuote"
	KeyUnlocked   = "unlockedItems"
)

// ErrInvalidKey is returned for keys that are empty or contain characters
// outside [A-Za-z0-9_-].
var ErrInvalidKey = errors.New("invalid storage key")

// KV is a string key-value store. Get reports ok=false for a missing key.
type KV interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Delete(key string) error
	Close() error
}

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Open returns the KV backend selected by name, rooted at dir.
func Open(backend, dir string) (KV, error) {
	switch backend {
	case "", BackendFile:
		return NewFile(dir), nil
	case BackendSQLite:
		return OpenSQLite(filepath.Join(dir, "inspirehub.db"))
	case BackendMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}

func validKey(key string) error {
	if key == "" {
		return ErrInvalidKey
	}
	for _, r := range key {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
		default:
			return fmt.Errorf("%w: %q", ErrInvalidKey, key)
		}
	}
	return nil
}
