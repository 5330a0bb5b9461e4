package cache

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS cache_entries (
	key        TEXT PRIMARY KEY,
	payload    BLOB NOT NULL,
	expires_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_cache_expires ON cache_entries(expires_at);
`

// SQLiteCache is a node-local persistent cache that survives restarts.
// Expired rows are dropped on read and by a periodic sweep.
type SQLiteCache struct {
	db       *sql.DB
	stopCh   chan struct{}
	stopOnce sync.Once
}

func NewSQLiteCache(path string, sweepInterval time.Duration) (*SQLiteCache, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create sqlite cache dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite cache: %w", err)
	}
	// modernc.org/sqlite serializes access itself; a single connection avoids
	// SQLITE_BUSY on concurrent writes.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init sqlite cache schema: %w", err)
	}

	c := &SQLiteCache{db: db, stopCh: make(chan struct{})}
	if sweepInterval > 0 {
		go c.sweepLoop(sweepInterval)
	}
	return c, nil
}

func (c *SQLiteCache) GetBytes(key string) ([]byte, bool, error) {
	var payload []byte
	var expiresAt int64
	err := c.db.QueryRow(
		`SELECT payload, expires_at FROM cache_entries WHERE key = ?`, key,
	).Scan(&payload, &expiresAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("sqlite cache get: %w", err)
	}

	if expiresAt > 0 && time.Now().Unix() >= expiresAt {
		_, _ = c.db.Exec(`DELETE FROM cache_entries WHERE key = ?`, key)
		return nil, false, nil
	}
	return payload, true, nil
}

func (c *SQLiteCache) SetBytes(key string, value []byte, ttl time.Duration) error {
	var expiresAt int64
	if ttl > 0 {
		expiresAt = time.Now().Add(ttl).Unix()
	}
	_, err := c.db.Exec(
		`INSERT INTO cache_entries (key, payload, expires_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET payload = excluded.payload, expires_at = excluded.expires_at`,
		key, value, expiresAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite cache set: %w", err)
	}
	return nil
}

func (c *SQLiteCache) sweepLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-c.stopCh:
			return
		case <-ticker.C:
			_, _ = c.db.Exec(
				`DELETE FROM cache_entries WHERE expires_at > 0 AND expires_at <= ?`,
				time.Now().Unix(),
			)
		}
	}
}

func (c *SQLiteCache) Close() error {
	c.stopOnce.Do(func() { close(c.stopCh) })
	return c.db.Close()
}
