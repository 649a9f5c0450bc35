// Package engine provides the database access gateways for migration
// execution and version tracking.
//
// A Gateway owns one connection string and exposes the primitive operations
// the orchestrator needs: ensure the target database exists, initialize the
// version-tracking table, execute SQL scripts statement by statement, record
// executed migrations, and query execution history. One implementation exists
// per supported engine (PostgreSQL, MariaDB, and SQLite for local development
// and tests), all behind the same small interface; callers never touch
// engine-specific types.
//
// Every operation opens a fresh connection, uses it, and closes it before
// returning. Nothing is pooled or shared across calls, so two gateway calls
// never contend over a connection. All operations accept a context and return
// errors whose kind can be inspected with errors.Is:
//
//	rec, err := gw.LatestVersion(ctx)
//	switch {
//	case errors.Is(err, engine.ErrUnreachable):
//		// cannot connect at all
//	case errors.Is(err, engine.ErrUninitialized):
//		// reachable, but the version table has not been created
//	}
//
// Basic usage:
//
//	gw, err := engine.New(engine.Config{
//		Engine: "postgres",
//		DSN:    "host=localhost user=app password=app dbname=app",
//	})
//	if err != nil {
//		return err
//	}
//	if err := gw.EnsureDatabase(ctx); err != nil {
//		return err
//	}
package engine
