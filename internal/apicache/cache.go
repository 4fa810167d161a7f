// Package apicache is a SQLite-backed cache for model API responses,
// keyed by the request parameters. It cuts repeat spend when several
// agents ask the model the same thing within the expiry window.
package apicache

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/json"
	"fmt"
	"errors"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// ErrDisabled is returned when caching is turned off in configuration.
var ErrDisabled = errors.New("api cache is disabled")

const schemaSQL = `
CREATE TABLE IF NOT EXISTS responses (
	key TEXT PRIMARY KEY,
	prompt_preview TEXT NOT NULL,
	response TEXT NOT NULL,
	created_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_responses_created_at ON responses(created_at);
`

const previewLen = 100

// Cache stores API responses with a fixed time-to-live.
type Cache struct {
	db  *sql.DB
	ttl time.Duration
}

// Open opens or creates the cache database at path. A non-positive ttl
// means entries never expire.
func Open(path string, ttl time.Duration) (*Cache, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create cache directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize cache schema: %w", err)
	}

	return &Cache{db: db, ttl: ttl}, nil
}

// Close closes the underlying database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Key derives the cache key for one API call from its parameters.
func Key(prompt, model string, maxTokens int, thinking bool) string {
	params := struct {
		Prompt    string `json:"prompt"`
		Model     string `json:"model"`
		MaxTokens int    `json:"max_tokens"`
		Thinking  bool   `json:"thinking"`
	}{prompt, model, maxTokens, thinking}

	data, _ := json.Marshal(params)
	return fmt.Sprintf("%x", sha256.Sum256(data))
}

// Get returns the cached response for key, reporting whether it was
// found. Expired entries are deleted on read and count as a miss.
func (c *Cache) Get(ctx context.Context, key string) (string, bool, error) {
	var (
		response  string
		createdAt time.Time
	)
	err := c.db.QueryRowContext(ctx,
		"SELECT response, created_at FROM responses WHERE key = ?", key,
	).Scan(&response, &createdAt)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read cache entry: %w", err)
	}

	if c.ttl > 0 && time.Since(createdAt) > c.ttl {
		if _, err := c.db.ExecContext(ctx, "DELETE FROM responses WHERE key = ?", key); err != nil {
			return "", false, fmt.Errorf("failed to evict expired entry: %w", err)
		}
		return "", false, nil
	}

	return response, true, nil
}

// Put stores a response under key, replacing any previous entry. The
// prompt is kept only as a short preview for inspection.
func (c *Cache) Put(ctx context.Context, key, prompt, response string) error {
	preview := prompt
	if len(preview) > previewLen {
		preview = preview[:previewLen] + "..."
	}

	_, err := c.db.ExecContext(ctx,
		"INSERT OR REPLACE INTO responses (key, prompt_preview, response, created_at) VALUES (?, ?, ?, ?)",
		key, preview, response, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to write cache entry: %w", err)
	}
	return nil
}

// Entry describes one cached response, without the response body.
type Entry struct {
	Key           string
	PromptPreview string
	CreatedAt     time.Time
}

// List returns up to limit entries, newest first.
func (c *Cache) List(ctx context.Context, limit int) ([]*Entry, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := c.db.QueryContext(ctx,
		"SELECT key, prompt_preview, created_at FROM responses ORDER BY created_at DESC LIMIT ?", limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list cache entries: %w", err)
	}
	defer rows.Close()

	var entries []*Entry
	for rows.Next() {
		e := &Entry{}
		if err := rows.Scan(&e.Key, &e.PromptPreview, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan cache entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Prune deletes entries older than the given age. A non-positive age
// clears everything. Returns the number of entries removed.
func (c *Cache) Prune(ctx context.Context, olderThan time.Duration) (int64, error) {
	var (
		res sql.Result
		err error
	)
	if olderThan > 0 {
		cutoff := time.Now().UTC().Add(-olderThan)
		res, err = c.db.ExecContext(ctx, "DELETE FROM responses WHERE created_at < ?", cutoff)
	} else {
		res, err = c.db.ExecContext(ctx, "DELETE FROM responses")
	}
	if err != nil {
		return 0, fmt.Errorf("failed to prune cache: %w", err)
	}
	return res.RowsAffected()
}

// Stats reports the entry count and the creation time of the oldest
// entry. The zero time means the cache is empty.
func (c *Cache) Stats(ctx context.Context) (count int64, oldest time.Time, err error) {
	err = c.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM responses").Scan(&count)
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("failed to count cache entries: %w", err)
	}
	if count == 0 {
		return 0, time.Time{}, nil
	}
	// Selecting the column directly keeps its declared type; MIN()
	// would come back untyped and scan as a string.
	err = c.db.QueryRowContext(ctx,
		"SELECT created_at FROM responses ORDER BY created_at LIMIT 1",
	).Scan(&oldest)
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("failed to read oldest cache entry: %w", err)
	}
	return count, oldest, nil
}
