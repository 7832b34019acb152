// Package storage is the persistence layer: one SQLite handle, the schema
// migration runner and the typed entity repositories.
package storage

import (
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// Store owns the single live database handle for the process. It is built
// explicitly and passed to repositories; one instance per process, no package
// level state. The handle is capped at one open connection, so all statements
// are serialized — callers must not rely on concurrent writes.
type Store struct {
	db   *sql.DB
	path string
}

// Open creates the parent directory if needed and opens the database file
// with foreign key enforcement on. Foreign keys must stay enabled for the
// lifetime of every connection: cascade and set-null behavior depends on it,
// which is why the pragma rides on the DSN rather than a post-open Exec.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dsn(path))
	if err != nil {
		return nil, fmt.Errorf("open database: %w: %w", ErrConnection, err)
	}

	// Single serialized connection per the access model; also makes the
	// DSN pragmas apply to every statement the Store ever runs.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w: %w", ErrConnection, err)
	}

	return &Store{db: db, path: path}, nil
}

// Close releases the handle. A new Store must be opened for further use.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// DB exposes the underlying handle for the backup codec's transaction.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Path returns the database file path the Store was opened against.
func (s *Store) Path() string {
	return s.path
}

func dsn(path string) string {
	return "file:" + path + "?" + url.Values{
		"_pragma": {"foreign_keys(1)", "busy_timeout(5000)"},
	}.Encode()
}

func nowUnix() int64 {
	return time.Now().Unix()
}

// setClause accumulates "col = ?" fragments and their arguments for the
// partial-update statements.
type setClause struct {
	frags []string
	args  []any
}

func (c *setClause) add(col string, arg any) {
	c.frags = append(c.frags, col+" = ?")
	c.args = append(c.args, arg)
}

func (c *setClause) empty() bool {
	return len(c.frags) == 0
}

func (c *setClause) sql() string {
	return strings.Join(c.frags, ", ")
}
