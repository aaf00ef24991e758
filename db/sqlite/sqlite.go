// db/sqlite/sqlite.go
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// Connect opens a SQLite database through the email-aware driver with the
// default options.
//
// The caller is responsible for calling db.Close() when done.
//
// Path can be:
//   - A file path: "./contacts.db"
//   - ":memory:" for a private in-memory database
//   - "file::memory:?cache=shared" for a shared in-memory database
func Connect(path string, timeout time.Duration) (*sql.DB, error) {
	return ConnectWithOptions(path, DefaultOptions(), timeout)
}

// ConnectWithOptions opens a SQLite database with custom options.
//
// The caller is responsible for calling db.Close() when done.
func ConnectWithOptions(path string, opts Options, timeout time.Duration) (*sql.DB, error) {
	db, err := sql.Open(DriverName, buildDSN(path, opts))
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(opts.MaxOpenConns)
	db.SetMaxIdleConns(opts.MaxIdleConns)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}

	if err := applyPragmas(ctx, db, opts); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// Options configures SQLite database behavior.
type Options struct {
	// WALMode enables Write-Ahead Logging. Not applicable in memory.
	WALMode bool

	// ForeignKeys enables foreign key constraint enforcement.
	ForeignKeys bool

	// BusyTimeout is how long to wait on a locked database, in milliseconds.
	BusyTimeout int

	// Synchronous is one of "OFF", "NORMAL", "FULL", "EXTRA".
	Synchronous string

	// MaxOpenConns and MaxIdleConns size the pool. SQLite allows one writer,
	// and in-memory databases must use a single connection.
	MaxOpenConns int
	MaxIdleConns int
}

// DefaultOptions returns WAL mode, foreign keys on, a 5 second busy timeout,
// NORMAL synchronous mode, and a single connection.
func DefaultOptions() Options {
	return Options{
		WALMode:      true,
		ForeignKeys:  true,
		BusyTimeout:  5000,
		Synchronous:  "NORMAL",
		MaxOpenConns: 1,
		MaxIdleConns: 1,
	}
}

// InMemoryOptions returns options for in-memory databases.
func InMemoryOptions() Options {
	opts := DefaultOptions()
	opts.WALMode = false
	opts.Synchronous = "OFF"
	return opts
}

func buildDSN(path string, opts Options) string {
	var params []string
	if opts.BusyTimeout > 0 {
		params = append(params, fmt.Sprintf("_busy_timeout=%d", opts.BusyTimeout))
	}
	if opts.ForeignKeys {
		params = append(params, "_foreign_keys=on")
	}
	if len(params) == 0 {
		return path
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + strings.Join(params, "&")
}

// applyPragmas sets pragmas that must be run as SQL statements.
func applyPragmas(ctx context.Context, db *sql.DB, opts Options) error {
	if opts.WALMode {
		if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
			return fmt.Errorf("set journal_mode: %w", err)
		}
	}
	if opts.Synchronous != "" {
		if _, err := db.ExecContext(ctx, fmt.Sprintf("PRAGMA synchronous=%s", opts.Synchronous)); err != nil {
			return fmt.Errorf("set synchronous: %w", err)
		}
	}
	return nil
}

// InMemory opens a private in-memory database. Data is lost on close.
//
// The caller is responsible for calling db.Close() when done.
func InMemory(timeout time.Duration) (*sql.DB, error) {
	return ConnectWithOptions(":memory:", InMemoryOptions(), timeout)
}

// HealthCheck returns a health check function for db.
func HealthCheck(db *sql.DB) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		return db.PingContext(ctx)
	}
}
