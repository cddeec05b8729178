// Package sqlite provides the durable content-addressed document
// cache backed by SQLite.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/Franklivania/tax-yasef-sub001/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/Franklivania/tax-yasef-sub001/internal/core/domain"
	"github.com/Franklivania/tax-yasef-sub001/internal/core/ports/driven"
)

// Ensure Cache implements the port.
var _ driven.DocumentCache = (*Cache)(nil)

// Cache is a SQLite-backed content-addressed document cache.
// Records are keyed by content hash; writing an existing hash is an
// idempotent overwrite. No eviction: retention is unbounded unless
// Delete is called.
type Cache struct {
	db   *sql.DB
	path string
}

// NewCache opens (or creates) the cache database in dataDir.
// If dataDir is empty, defaults to ~/.taxdocs/data/documents.db.
func NewCache(dataDir string) (*Cache, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".taxdocs", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "documents.db")

	// WAL mode for better concurrency between readers and the writer
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	c := &Cache{
		db:   db,
		path: dbPath,
	}

	if err := c.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return c, nil
}

// Close closes the database connection.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Path returns the database file path.
func (c *Cache) Path() string {
	return c.path
}

// Get returns the cached record for the hash.
func (c *Cache) Get(ctx context.Context, hash string) (*domain.CachedRecord, error) {
	row := c.db.QueryRowContext(ctx, `SELECT record FROM documents WHERE hash = ?`, hash)

	var payload string
	if err := row.Scan(&payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning record: %w", err)
	}

	var rec domain.CachedRecord
	if err := json.Unmarshal([]byte(payload), &rec); err != nil {
		return nil, fmt.Errorf("unmarshaling record: %w", err)
	}
	return &rec, nil
}

// Put stores a record under its hash, overwriting any existing one.
func (c *Cache) Put(ctx context.Context, rec *domain.CachedRecord) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshaling record: %w", err)
	}

	_, err = c.db.ExecContext(ctx, `
		INSERT INTO documents (hash, record)
		VALUES (?, ?)
		ON CONFLICT(hash) DO UPDATE SET record = excluded.record
	`, rec.Hash, string(payload))
	if err != nil {
		return fmt.Errorf("saving record: %w", err)
	}
	return nil
}

// Has reports whether a record exists for the hash.
func (c *Cache) Has(ctx context.Context, hash string) (bool, error) {
	row := c.db.QueryRowContext(ctx, `SELECT 1 FROM documents WHERE hash = ?`, hash)
	var one int
	if err := row.Scan(&one); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("checking record: %w", err)
	}
	return true, nil
}

// Delete removes the record for the hash, if present.
func (c *Cache) Delete(ctx context.Context, hash string) error {
	if _, err := c.db.ExecContext(ctx, `DELETE FROM documents WHERE hash = ?`, hash); err != nil {
		return fmt.Errorf("deleting record: %w", err)
	}
	return nil
}

// migrate runs all pending migrations.
func (c *Cache) migrate(fsys embed.FS) error {
	_, err := c.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := c.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".up.sql") {
			upFiles = append(upFiles, entry.Name())
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := c.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := c.db.Exec(`INSERT INTO schema_migrations (version) VALUES (?)`, version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}
