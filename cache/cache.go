package cache

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	_ "modernc.org/sqlite"
)

// Cache keys for the offline mirror, one per collection the client owns.
const (
	KeyIncidents     = "shomrim_incidents"
	KeyContacts      = "shomrim_contacts"
	KeyNotifications = "shomrim_notifications"
	KeyUser          = "shomrim_user"
	KeyPasscode      = "shomrim_passcode"
	KeyPendingSync   = "shomrim_pending_sync"
)

// Cache is a string-keyed, JSON-valued mirror of the session collections,
// backed by an embedded sqlite database. It is a disposable fallback: the
// backend owns the durable copy, and a missing or corrupt entry is treated
// as absent rather than as an error.
type Cache struct {
	db *sql.DB
}

// Open creates or opens the cache database at path. ":memory:" works for
// tests.
func Open(path string) (*Cache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}
	// One connection keeps ":memory:" databases coherent and avoids write
	// lock contention on the single kv table.
	db.SetMaxOpenConns(1)
	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS kv (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("init cache schema: %w", err)
	}
	return &Cache{db: db}, nil
}

// Close releases the underlying database handle.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Put serializes v as JSON under key, replacing any previous value. Each key
// is written atomically.
func (c *Cache) Put(key string, v interface{}) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	_, err = c.db.Exec(`INSERT INTO kv (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, string(b))
	if err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

// Get decodes the value stored under key into out. It returns false when the
// key is absent, and also when the stored value no longer parses: a corrupt
// mirror entry counts as missing.
func (c *Cache) Get(key string, out interface{}) bool {
	var raw string
	err := c.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return false
	}
	if err != nil {
		zap.S().Warnw("cache read failed",
			"key", key,
			"error", err,
		)
		return false
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		zap.S().Warnw("discarding corrupt cache entry",
			"key", key,
			"error", err,
		)
		return false
	}
	return true
}

// Delete removes a key. Deleting an absent key is not an error.
func (c *Cache) Delete(key string) error {
	_, err := c.db.Exec(`DELETE FROM kv WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}
