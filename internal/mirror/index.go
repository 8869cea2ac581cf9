package mirror

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	// Register the pure-Go SQLite driver (no CGO required).
	_ "modernc.org/sqlite"
)

const indexSchema = `
CREATE TABLE IF NOT EXISTS artifacts (
	key        TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	sha256     TEXT NOT NULL,
	size       INTEGER NOT NULL,
	source     TEXT NOT NULL,
	fetched_at TEXT NOT NULL
)`

// indexEntry is one row of the mirror index.
type indexEntry struct {
	Key       string
	Name      string
	SHA256    string
	Size      int64
	Source    string
	FetchedAt time.Time
}

// index records the digest of every file the mirror has written or adopted.
// Callers hold the mirror lock for the lifetime of an index, so there is
// never more than one writer.
type index struct {
	db  *sql.DB
	log *slog.Logger
}

// openIndex opens (creating if needed) the SQLite index at dbPath.
func openIndex(ctx context.Context, dbPath string, log *slog.Logger) (*index, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(30000)", dbPath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", dbPath, err)
	}
	// Sync goroutines share the handle; a single connection serializes writes.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, indexSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create index schema: %w", err)
	}
	return &index{db: db, log: log}, nil
}

// lookup returns the entry for key, or ok=false if the key was never recorded.
func (ix *index) lookup(ctx context.Context, key string) (indexEntry, bool, error) {
	var (
		e       indexEntry
		fetched string
	)
	err := ix.db.QueryRowContext(ctx,
		`SELECT key, name, sha256, size, source, fetched_at FROM artifacts WHERE key = ?`, key,
	).Scan(&e.Key, &e.Name, &e.SHA256, &e.Size, &e.Source, &fetched)
	if errors.Is(err, sql.ErrNoRows) {
		return indexEntry{}, false, nil
	}
	if err != nil {
		return indexEntry{}, false, fmt.Errorf("query index for %s: %w", key, err)
	}

	e.FetchedAt, err = time.Parse(time.RFC3339Nano, fetched)
	if err != nil {
		ix.log.Debug("unparsable fetched_at in mirror index", "key", key, "value", fetched)
	}
	return e, true, nil
}

// record inserts or replaces the entry for e.Key.
func (ix *index) record(ctx context.Context, e indexEntry) error {
	_, err := ix.db.ExecContext(ctx,
		`INSERT INTO artifacts (key, name, sha256, size, source, fetched_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET
			name = excluded.name,
			sha256 = excluded.sha256,
			size = excluded.size,
			source = excluded.source,
			fetched_at = excluded.fetched_at`,
		e.Key, e.Name, e.SHA256, e.Size, e.Source, e.FetchedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("record %s in index: %w", e.Key, err)
	}
	return nil
}

// close closes the database handle.
func (ix *index) close() {
	if err := ix.db.Close(); err != nil {
		ix.log.Warn("close mirror index", "error", err)
	}
}
