package engine

import (
	"context"
	"strings"

	"github.com/pkg/errors"
)

// Inspectable failure kinds. Gateway operations wrap these sentinels so that
// callers can tell connectivity problems apart from an uninitialized target
// without parsing driver messages.
var (
	// ErrUnreachable marks failures to open or ping a connection to the
	// target (or administrative) database.
	ErrUnreachable = errors.New("database unreachable")

	// ErrUninitialized marks reads against a target whose version-tracking
	// table has not been created yet.
	ErrUninitialized = errors.New("version table not initialized")
)

type (
	// Config selects and parameterizes a gateway.
	Config struct {
		// Engine is the target engine name: postgres (alias postgresql),
		// mariadb (alias mysql), or sqlite (alias sqlite3).
		Engine string

		// DSN is the connection string for the target database, in the
		// underlying driver's native format.
		DSN string

		// AdminDSN optionally overrides the administrative connection string
		// used by EnsureDatabase. When empty it is derived from DSN by
		// swapping the database name for the engine's maintenance database.
		AdminDSN string
	}

	// Gateway is the capability interface the orchestrator depends on. One
	// implementation exists per engine; no engine-specific type leaks past
	// this boundary.
	Gateway interface {
		// Name returns the canonical engine name.
		Name() string

		// EnsureDatabase connects to the engine's administrative database,
		// checks whether the target database exists by name, and creates it
		// with a fixed character encoding when absent. Idempotent.
		EnsureDatabase(ctx context.Context) error

		// InitVersionTable creates the version-tracking table when absent.
		// Idempotent.
		InitVersionTable(ctx context.Context) error

		// LatestVersion returns the record with the most recent executed_at
		// timestamp, or (nil, nil) when no migrations have been recorded.
		LatestVersion(ctx context.Context) (*Record, error)

		// ExecutedVersions returns every record ordered by executed_at
		// ascending.
		ExecutedVersions(ctx context.Context) ([]*Record, error)

		// RecordMigration appends one record with executed_at set to the
		// current UTC time.
		RecordMigration(ctx context.Context, version, description string) error

		// ExecuteScript splits the script per the engine's dialect and
		// executes each statement in order, aborting on the first failure.
		ExecuteScript(ctx context.Context, script string) error

		// TestConnection opens a connection to the target database, pings
		// it, and closes it.
		TestConnection(ctx context.Context) error
	}
)

// New returns the gateway implementation for the configured engine.
//
// Example:
//
//	gw, err := engine.New(engine.Config{Engine: "mariadb", DSN: dsn})
func New(cfg Config) (Gateway, error) {
	if strings.TrimSpace(cfg.DSN) == "" {
		return nil, errors.New("connection string is required")
	}

	switch strings.ToLower(strings.TrimSpace(cfg.Engine)) {
	case "postgres", "postgresql":
		return newPostgres(cfg), nil
	case "mariadb", "mysql":
		return newMariaDB(cfg), nil
	case "sqlite", "sqlite3":
		return newSQLite(cfg), nil
	default:
		return nil, errors.Errorf("unsupported engine: %q", cfg.Engine)
	}
}
