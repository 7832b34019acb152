package storage

import (
	"errors"
	"fmt"

	sqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

var (
	// ErrConnection marks a failure to open or reach the database file.
	ErrConnection = errors.New("database connection failed")

	// ErrSchema marks a DDL failure during initialization. Fatal: partial
	// schema application is possible and is not recovered automatically.
	ErrSchema = errors.New("schema initialization failed")

	// ErrConstraint marks a unique, foreign key or check constraint
	// violation reported by the engine.
	ErrConstraint = errors.New("constraint violation")

	// ErrNotFound is internal to create: the re-fetch after a successful
	// insert came back empty. Read operations return nil instead.
	ErrNotFound = errors.New("row not found")
)

// wrap attaches operation context to an engine error and tags constraint
// failures with ErrConstraint so callers can branch on errors.Is without
// seeing driver types.
func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	if isConstraint(err) {
		return fmt.Errorf("%s: %w: %w", op, ErrConstraint, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func isConstraint(err error) bool {
	var se *sqlite.Error
	if !errors.As(err, &se) {
		return false
	}
	return se.Code()&0xff == sqlite3.SQLITE_CONSTRAINT
}
