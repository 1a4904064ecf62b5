// Package storage persists the watchlist and recent-search history in a
// local key-value store.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/pkg/errors"

	_ "github.com/mattn/go-sqlite3"
)

// ErrStoreNotInited is returned when a store is used before Open succeeded.
var ErrStoreNotInited = errors.New("store not initialized")

// Store is the abstract key-value backend the persistence layer writes
// through. Values are JSON-encoded collections; a missing key is reported
// via the bool, not an error.
type Store interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
	Close() error
}

const (
	busyTimeout       = 5000 // milliseconds
	walAutoCheckpoint = 1000 // pages
	maxOpenConns      = 2
	maxIdleConns      = 1
)

// SQLiteStore keeps the collections in a single kv table.
type SQLiteStore struct {
	db       *sql.DB
	getPS    *sql.Stmt
	upsertPS *sql.Stmt
	deletePS *sql.Stmt
}

// Open creates the database file (and its directory) when missing and
// prepares the statements the store runs.
func Open(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return nil, errors.Wrap(err, "creating data directory")
	}

	// Windows paths need URI escaping for the sqlite driver
	path := dbPath
	if runtime.GOOS == "windows" {
		path = strings.ReplaceAll(dbPath, "\\", "/")
	}
	dsn := fmt.Sprintf(
		"file:%s?_journal_mode=WAL&_synchronous=NORMAL&_wal_autocheckpoint=%d&_busy_timeout=%d",
		path, walAutoCheckpoint, busyTimeout,
	)

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "opening database")
	}
	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxIdleConns)

	schema := `CREATE TABLE IF NOT EXISTS kv (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);`
	if _, err := db.Exec(schema); err != nil {
		closeQuietly(db)
		return nil, errors.Wrap(err, "schema creation failed")
	}

	get, err := db.Prepare(`SELECT value FROM kv WHERE key = ?`)
	if err != nil {
		closeQuietly(db)
		return nil, errors.Wrap(err, "get preparation failed")
	}
	upsert, err := db.Prepare(`INSERT INTO kv (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`)
	if err != nil {
		closeQuietly(db)
		return nil, errors.Wrap(err, "upsert preparation failed")
	}
	del, err := db.Prepare(`DELETE FROM kv WHERE key = ?`)
	if err != nil {
		closeQuietly(db)
		return nil, errors.Wrap(err, "delete preparation failed")
	}

	return &SQLiteStore{db: db, getPS: get, upsertPS: upsert, deletePS: del}, nil
}

func closeQuietly(db *sql.DB) {
	_ = db.Close()
}

func (s *SQLiteStore) Get(key string) (string, bool, error) {
	if s == nil || s.getPS == nil {
		return "", false, ErrStoreNotInited
	}
	var value string
	err := s.getPS.QueryRow(key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, errors.Wrap(err, "query failed")
	}
	return value, true, nil
}

func (s *SQLiteStore) Set(key, value string) error {
	if s == nil || s.upsertPS == nil {
		return ErrStoreNotInited
	}
	_, err := s.upsertPS.Exec(key, value)
	return err
}

func (s *SQLiteStore) Delete(key string) error {
	if s == nil || s.deletePS == nil {
		return ErrStoreNotInited
	}
	_, err := s.deletePS.Exec(key)
	return err
}

func (s *SQLiteStore) Close() error {
	var finalErr error

	closeStmt := func(stmt *sql.Stmt, name string) {
		if stmt != nil {
			if err := stmt.Close(); err != nil {
				finalErr = errors.Wrapf(err, "%s statement close error", name)
			}
		}
	}

	closeStmt(s.getPS, "get")
	closeStmt(s.upsertPS, "upsert")
	closeStmt(s.deletePS, "delete")

	if err := s.db.Close(); err != nil {
		finalErr = errors.Wrap(err, "database close error")
	}
	return finalErr
}

// MemStore is an in-memory Store for tests and for running without a
// writable data directory.
type MemStore struct {
	values map[string]string
}

func NewMemStore() *MemStore {
	return &MemStore{values: make(map[string]string)}
}

func (m *MemStore) Get(key string) (string, bool, error) {
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *MemStore) Set(key, value string) error {
	m.values[key] = value
	return nil
}

func (m *MemStore) Delete(key string) error {
	delete(m.values, key)
	return nil
}

func (m *MemStore) Close() error { return nil }
