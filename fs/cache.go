// Package fs provides file-based storage for the filechat identifier cache.
package fs

import (
	"encoding/json"
	"errors"
	"fmt"
	iofs "io/fs"
	"os"
	"path/filepath"

	"github.com/fwojciec/filechat"
)

// DefaultCachePath is used when no cache path is configured.
const DefaultCachePath = "config.json"

// Ensure Cache implements filechat.Cache at compile time.
var _ filechat.Cache = (*Cache)(nil)

// Cache implements filechat.Cache as an indented JSON document. Every
// mutation rewrites the whole document through a temporary file that is
// renamed over the previous file, so readers never observe a partial write.
type Cache struct {
	path    string
	entries filechat.Entries
}

// NewCache creates a new Cache backed by the file at path.
func NewCache(path string) *Cache {
	if path == "" {
		path = DefaultCachePath
	}
	return &Cache{path: path, entries: filechat.Entries{}}
}

// Path returns the backing file path.
func (c *Cache) Path() string {
	return c.path
}

// Load reads the backing file. A missing or malformed file yields an empty
// mapping. Other read failures, such as permission errors, are returned.
func (c *Cache) Load() error {
	c.entries = filechat.Entries{}

	data, err := os.ReadFile(c.path)
	if errors.Is(err, iofs.ErrNotExist) {
		return nil
	} else if err != nil {
		return fmt.Errorf("failed to read cache %q: %w", c.path, err)
	}

	var entries map[string]any
	if err := json.Unmarshal(data, &entries); err != nil || entries == nil {
		return nil
	}
	c.entries = entries
	return nil
}

func (c *Cache) String(key filechat.CacheKey) (string, bool) {
	return c.entries.String(key)
}

func (c *Cache) Bool(key filechat.CacheKey) bool {
	return c.entries.Bool(key)
}

func (c *Cache) Set(key filechat.CacheKey, value any) error {
	c.entries[string(key)] = value
	return c.save()
}

func (c *Cache) Clear() error {
	c.entries = filechat.Entries{}
	return c.save()
}

func (c *Cache) Entries() map[string]any {
	return c.entries.Clone()
}

func (c *Cache) save() error {
	data, err := json.MarshalIndent(c.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode cache: %w", err)
	}

	dir := filepath.Dir(c.path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(c.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to write cache: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write cache: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write cache: %w", err)
	}

	// Atomically replace the previous document
	if err := os.Rename(tmpPath, c.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write cache: %w", err)
	}
	return nil
}
