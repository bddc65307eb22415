package translation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	_ "github.com/mattn/go-sqlite3"
)

// Cache stores successful translations keyed by source text
type Cache interface {
	Get(ctx context.Context, text string) (string, bool, error)
	Add(ctx context.Context, text, translation string) error
	Close() error
}

// OpenCache opens a SQLite cache at path, or an in-memory cache when path is empty
func OpenCache(path string) (Cache, error) {
	if path == "" {
		return NewTranslationCache(), nil
	}
	return OpenSQLiteCache(path)
}

// TranslationCache stores translations in memory for a single run
type TranslationCache struct {
	mu           sync.RWMutex
	translations map[string]string
}

// NewTranslationCache creates a new translation cache
func NewTranslationCache() *TranslationCache {
	return &TranslationCache{
		translations: make(map[string]string),
	}
}

// Add adds a translation to the cache
func (tc *TranslationCache) Add(_ context.Context, text, translation string) error {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	tc.translations[text] = translation
	return nil
}

// Get retrieves a translation from the cache
func (tc *TranslationCache) Get(_ context.Context, text string) (string, bool, error) {
	tc.mu.RLock()
	defer tc.mu.RUnlock()
	translation, ok := tc.translations[text]
	return translation, ok, nil
}

// Close is a no-op for the in-memory cache
func (tc *TranslationCache) Close() error {
	return nil
}

const sqliteSchema = `CREATE TABLE IF NOT EXISTS translations (
	source      TEXT NOT NULL,
	target      TEXT NOT NULL,
	text        TEXT NOT NULL,
	translation TEXT NOT NULL,
	created_at  TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	PRIMARY KEY (source, target, text)
)`

// SQLiteCache persists translations across runs
type SQLiteCache struct {
	db *sql.DB
}

// OpenSQLiteCache opens or creates the cache database at path
func OpenSQLiteCache(path string) (*SQLiteCache, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open translation cache: %w", err)
	}

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize translation cache: %w", err)
	}

	return &SQLiteCache{db: db}, nil
}

// Get retrieves a translation from the cache
func (c *SQLiteCache) Get(ctx context.Context, text string) (string, bool, error) {
	var translation string
	err := c.db.QueryRowContext(ctx,
		`SELECT translation FROM translations WHERE source = ? AND target = ? AND text = ?`,
		SourceLanguage, TargetLanguage, text,
	).Scan(&translation)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to query translation cache: %w", err)
	}
	return translation, true, nil
}

// Add stores a translation, replacing any previous one for the same text
func (c *SQLiteCache) Add(ctx context.Context, text, translation string) error {
	_, err := c.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO translations (source, target, text, translation) VALUES (?, ?, ?, ?)`,
		SourceLanguage, TargetLanguage, text, translation,
	)
	if err != nil {
		return fmt.Errorf("failed to write translation cache: %w", err)
	}
	return nil
}

// Close closes the cache database
func (c *SQLiteCache) Close() error {
	return c.db.Close()
}
