package store

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/ostazi/chat-core/pkg/logger"
	"github.com/ostazi/chat-core/pkg/metrics"
)

// SQLiteStore is a CounterStore backed by a SQLite key-value table.
//
// All rows are loaded into an in-memory mirror at open time; reads never
// touch the database afterwards. Writes update the mirror first and then
// write through, so a storage failure degrades durability but never the
// running session.
type SQLiteStore struct {
	db     *sql.DB
	logger *logger.Logger

	mu     sync.RWMutex
	counts map[string]int
}

// NewSQLiteStore opens (or creates) the counter database at dbPath.
// If dbPath is empty, defaults to "./data/counters.db".
func NewSQLiteStore(ctx context.Context, dbPath string, log *logger.Logger) (*SQLiteStore, error) {
	if dbPath == "" {
		dbPath = "./data/counters.db"
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}

	s := &SQLiteStore{
		db:     db,
		logger: log,
		counts: make(map[string]int),
	}

	if err := s.initSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}

	if err := s.load(ctx); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

func (s *SQLiteStore) initSchema(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS kv (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	`
	_, err := s.db.ExecContext(ctx, schema)
	return err
}

// load populates the mirror from every row under the counter prefix.
func (s *SQLiteStore) load(ctx context.Context) error {
	rows, err := s.db.QueryContext(ctx,
		`SELECT key, CAST(value AS INTEGER) FROM kv WHERE key LIKE ? || '%'`, keyPrefix)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var key string
		var value int
		if err := rows.Scan(&key, &value); err != nil {
			return err
		}
		if value < 0 {
			value = 0
		}
		s.counts[key[len(keyPrefix):]] = value
	}
	return rows.Err()
}

// Get returns the count for key, or 0 if absent.
func (s *SQLiteStore) Get(key string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.counts[key]
}

// Set overwrites the count for key. The mirror updates unconditionally;
// the durable write is best-effort and failures are absorbed.
func (s *SQLiteStore) Set(key string, value int) {
	if value < 0 {
		value = 0
	}

	s.mu.Lock()
	s.counts[key] = value
	s.mu.Unlock()

	_, err := s.db.Exec(
		`INSERT INTO kv (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		keyPrefix+key, value,
	)
	if err != nil {
		metrics.CounterWriteFailures.Inc()
		s.logger.Warn("counter write failed, keeping in-memory value",
			zap.String("key", key),
			zap.Error(err),
		)
	}
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
