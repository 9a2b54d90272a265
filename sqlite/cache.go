package sqlite

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/fwojciec/filechat"
)

// Compile-time interface verification.
var _ filechat.Cache = (*Cache)(nil)

// Cache implements filechat.Cache using SQLite. Each entry is one row whose
// value column holds the JSON encoding of the cached value.
type Cache struct {
	db      *DB
	entries filechat.Entries
}

// NewCache creates a new Cache. The DB must already be open.
func NewCache(db *DB) *Cache {
	return &Cache{db: db, entries: filechat.Entries{}}
}

// Load reads every row into memory. Rows whose value cannot be decoded are
// skipped.
func (c *Cache) Load() error {
	ctx := context.Background()
	c.entries = filechat.Entries{}

	rows, err := c.db.QueryContext(ctx, `SELECT key, value FROM cache ORDER BY key`)
	if err != nil {
		return fmt.Errorf("failed to read cache: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var key, raw string
		if err := rows.Scan(&key, &raw); err != nil {
			return fmt.Errorf("failed to read cache: %w", err)
		}
		var value any
		if err := json.Unmarshal([]byte(raw), &value); err != nil {
			continue
		}
		c.entries[key] = value
	}
	return rows.Err()
}

func (c *Cache) String(key filechat.CacheKey) (string, bool) {
	return c.entries.String(key)
}

func (c *Cache) Bool(key filechat.CacheKey) bool {
	return c.entries.Bool(key)
}

// Set upserts the row for key. The in-memory mapping changes only after the
// row is written.
func (c *Cache) Set(key filechat.CacheKey, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode cache value for %q: %w", key, err)
	}

	_, err = c.db.ExecContext(context.Background(), `
		INSERT INTO cache (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, string(key), string(raw), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to write cache: %w", err)
	}

	c.entries[string(key)] = value
	return nil
}

func (c *Cache) Clear() error {
	if _, err := c.db.ExecContext(context.Background(), `DELETE FROM cache`); err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	c.entries = filechat.Entries{}
	return nil
}

func (c *Cache) Entries() map[string]any {
	return c.entries.Clone()
}
