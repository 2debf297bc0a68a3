package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/cespare/xxhash"
	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"
)

const createResponseTable = `CREATE TABLE IF NOT EXISTS response_cache (
	key       TEXT PRIMARY KEY,
	body      BLOB NOT NULL,
	checksum  INTEGER NOT NULL,
	stored_at INTEGER NOT NULL
)`

// SQLiteCache is a ResponseCache persisted to a SQLite file. Every body is
// stored with its xxhash so a truncated or corrupted row is never served.
type SQLiteCache struct {
	db *sql.DB
}

// OpenSQLiteCache opens (and creates if missing) the cache database at path.
func OpenSQLiteCache(ctx context.Context, path string) (*SQLiteCache, error) {
	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}
	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, err
	}
	// A single connection keeps writers from contending on the file lock.
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(ctx, createResponseTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("create response_cache: %w", err)
	}
	log.Debug().Str("path", path).Msg("opened response cache")
	return &SQLiteCache{db: db}, nil
}

func (s *SQLiteCache) Get(ctx context.Context, key string) ([]byte, error) {
	var body []byte
	var checksum int64
	err := s.db.QueryRowContext(ctx,
		`SELECT body, checksum FROM response_cache WHERE key = ?`, key,
	).Scan(&body, &checksum)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query response_cache: %w", err)
	}
	if int64(xxhash.Sum64(body)) != checksum {
		return nil, ErrChecksumMismatch
	}
	return body, nil
}

func (s *SQLiteCache) Put(ctx context.Context, key string, body []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO response_cache (key, body, checksum, stored_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			body = excluded.body,
			checksum = excluded.checksum,
			stored_at = excluded.stored_at`,
		key, body, int64(xxhash.Sum64(body)), time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("store %s: %w", key, err)
	}
	return nil
}

func (s *SQLiteCache) Close() error {
	return s.db.Close()
}
