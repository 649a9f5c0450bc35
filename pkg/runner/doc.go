// Package runner orchestrates migration runs: database bootstrap, updates to
// a target version, and updates to the latest available version.
//
// The runner sits between the migration catalog (what could run) and an
// engine gateway (what has run, and how to run more). Every entry point
// follows the same shape: rebuild the catalog from the filesystem, compute
// the pending set from the recorded versions, then execute pending migrations
// one by one in catalog order, recording each success. The first failure
// stops the run; already-applied migrations stay applied (there is no
// rollback), and nothing guards two concurrent runs against the same target.
//
// Entry points return (*Result, error). The Result is always usable: on
// failure it still lists every script that executed before the run stopped.
// A nil error means the operation succeeded and Result.Message says what
// happened, including no-op successes such as "already at version X".
//
// Example:
//
//	r := runner.New(gw, os.DirFS("db/migrations"))
//	res, err := r.SetupDatabase(ctx)
//	if err != nil {
//		return err
//	}
//	fmt.Println(res.Message)
package runner
