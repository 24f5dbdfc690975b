// Package file implements the recognition cache as one JSON file per
// fingerprint. A fingerprint digests the file's resolved path and
// modification time, so an unchanged file hits its prior entry and a
// touched file silently starts a new one. Entries are never evicted.
package file

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/inkwell-labs/scandex-cli/internal/core/domain"
	"github.com/inkwell-labs/scandex-cli/internal/core/ports/driven"
	"github.com/inkwell-labs/scandex-cli/internal/logger"
)

// Ensure Cache implements the interface.
var _ driven.RecognitionCache = (*Cache)(nil)

// Cache stores recognition results under dir, one <digest>.json per
// fingerprint. The directory is created lazily on first store.
type Cache struct {
	dir string
}

// NewCache returns a cache rooted at dir. If dir is empty, defaults to
// ~/.scandex/cache.
func NewCache(dir string) (*Cache, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dir = filepath.Join(home, ".scandex", "cache")
	}
	return &Cache{dir: dir}, nil
}

// Fingerprint derives the cache key for path from its resolved location
// and modification time in nanoseconds. Content edits that preserve the
// mtime are invisible to this key; that trade-off keeps every batch
// pass free of full-file reads.
func Fingerprint(path string) (string, error) {
	resolved, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}
	if linked, err := filepath.EvalSymlinks(resolved); err == nil {
		resolved = linked
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return "", fmt.Errorf("%w: %s", domain.ErrSourceUnreadable, path)
	}

	sum := sha256.Sum256([]byte(fmt.Sprintf("%s::%d", resolved, info.ModTime().UnixNano())))
	return hex.EncodeToString(sum[:]), nil
}

// Lookup returns the entry for the file's current fingerprint. Any
// failure along the way (unstattable file, missing entry, corrupt JSON)
// is a miss.
func (c *Cache) Lookup(path string) (*domain.CacheEntry, bool) {
	key, err := Fingerprint(path)
	if err != nil {
		return nil, false
	}

	data, err := os.ReadFile(c.entryPath(key))
	if err != nil {
		return nil, false
	}

	var entry domain.CacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		logger.Warn("Discarding corrupt cache entry %s: %v", key, err)
		return nil, false
	}

	return &entry, true
}

// Store writes an entry for the file's current fingerprint. Last writer
// wins if two fingerprints coincide.
func (c *Cache) Store(path string, entry domain.CacheEntry) error {
	key, err := Fingerprint(path)
	if err != nil {
		return err
	}

	if entry.CachedAt.IsZero() {
		entry.CachedAt = time.Now()
	}

	if err := os.MkdirAll(c.dir, 0o700); err != nil {
		return fmt.Errorf("creating cache directory: %w", err)
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encoding cache entry: %w", err)
	}

	if err := os.WriteFile(c.entryPath(key), data, 0o600); err != nil {
		return fmt.Errorf("writing cache entry: %w", err)
	}
	return nil
}

// entryPath returns the on-disk location for a fingerprint.
func (c *Cache) entryPath(key string) string {
	return filepath.Join(c.dir, key+".json")
}
