package runner

import (
	"context"
	"fmt"
	"io/fs"
	"path"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/saaskit-dev/upshift/pkg/catalog"
	"github.com/saaskit-dev/upshift/pkg/engine"
)

// Runner executes migrations from a filesystem root against a database
// reached through an engine gateway.
//
// The migrations filesystem is re-read on every operation, so migrations
// added while a process is running are picked up without a restart.
type Runner struct {
	gateway engine.Gateway
	fsys    fs.FS
}

// New creates a Runner that reads migrations from fsys and applies them
// through gw.
func New(gw engine.Gateway, fsys fs.FS) *Runner {
	return &Runner{gateway: gw, fsys: fsys}
}

// SetupDatabase bootstraps a database from nothing: it creates the database
// if missing, creates the version table if missing, and applies the initial
// migration. When the version table already holds any recorded version the
// database is considered initialized and nothing is executed.
//
// Both creation steps are idempotent, so SetupDatabase is safe to run
// repeatedly; only the very first run applies the initial migration.
func (r *Runner) SetupDatabase(ctx context.Context) (*Result, error) {
	res := &Result{}

	if err := r.gateway.EnsureDatabase(ctx); err != nil {
		return res, errors.Wrap(err, "failed to create database")
	}
	if err := r.gateway.InitVersionTable(ctx); err != nil {
		return res, errors.Wrap(err, "failed to initialize version table")
	}

	current, err := r.gateway.LatestVersion(ctx)
	if err != nil {
		return res, errors.Wrap(err, "failed to query current version")
	}
	if current != nil {
		res.Message = fmt.Sprintf("Database already initialized at version %s", current.Version)
		return res, nil
	}

	cat, err := catalog.Load(r.fsys)
	if err != nil {
		return res, err
	}
	baseline := cat.Baseline()
	if baseline == nil {
		return res, errors.Errorf("initial migration %q not found", catalog.BaselineVersion)
	}

	res.ExecutedScripts, err = r.apply(ctx, baseline)
	if err != nil {
		return res, errors.Wrapf(err, "migration %s failed", baseline.Version)
	}

	res.Message = fmt.Sprintf("Database initialized at version %s", baseline.Version)
	return res, nil
}

// UpdateToVersion applies every pending migration up to and including target.
// Migrations run in catalog order, each one recorded before the next starts.
// The first failure stops the run and is returned; migrations applied before
// the failure stay applied.
//
// When nothing is pending the operation succeeds without touching the
// database and the message says the database is already at target or higher.
func (r *Runner) UpdateToVersion(ctx context.Context, target string) (*Result, error) {
	res := &Result{}

	pending, err := r.Pending(ctx, target)
	if err != nil {
		return res, err
	}
	if len(pending) == 0 {
		res.Message = fmt.Sprintf("Database is already at version %s or higher", target)
		return res, nil
	}

	for _, m := range pending {
		scripts, err := r.apply(ctx, m)
		res.ExecutedScripts = append(res.ExecutedScripts, scripts...)
		if err != nil {
			return res, errors.Wrapf(err, "migration %s failed", m.Version)
		}
	}

	res.Message = fmt.Sprintf("Database updated to version %s", pending[len(pending)-1].Version)
	return res, nil
}

// UpdateToLatest applies every pending migration up to the highest versioned
// migration on disk. When the catalog holds no versioned migrations (only a
// baseline, or nothing at all) the operation succeeds without running
// anything.
func (r *Runner) UpdateToLatest(ctx context.Context) (*Result, error) {
	cat, err := catalog.Load(r.fsys)
	if err != nil {
		return &Result{}, err
	}

	latest := cat.Latest()
	if latest == nil {
		return &Result{Message: "No versioned migrations found"}, nil
	}

	return r.UpdateToVersion(ctx, latest.Version)
}

// Pending returns the migrations that would run for an update to target, in
// the order they would run. An empty target means no upper bound.
func (r *Runner) Pending(ctx context.Context, target string) ([]*catalog.Migration, error) {
	cat, err := catalog.Load(r.fsys)
	if err != nil {
		return nil, err
	}

	records, err := r.gateway.ExecutedVersions(ctx)
	if err != nil {
		return nil, err
	}

	executed := make(map[string]struct{}, len(records))
	for _, rec := range records {
		executed[rec.Version] = struct{}{}
	}

	var bound *catalog.Version
	if target != "" {
		v := catalog.ParseVersion(target)
		bound = &v
	}

	return cat.Pending(executed, bound), nil
}

// apply runs a single migration: every script in order, then one version
// record. The returned slice names the scripts that executed, whether or not
// the migration as a whole succeeded. A migration whose scripts all ran but
// whose record failed to write counts as failed, and a later run will execute
// its scripts again.
func (r *Runner) apply(ctx context.Context, m *catalog.Migration) ([]string, error) {
	var executed []string

	for _, name := range m.Scripts {
		script, err := fs.ReadFile(r.fsys, path.Join(m.Dir, name))
		if err != nil {
			return executed, errors.Wrapf(err, "failed to read script %s", name)
		}
		if err := r.gateway.ExecuteScript(ctx, string(script)); err != nil {
			return executed, errors.Wrapf(err, "script %s failed", name)
		}
		executed = append(executed, name)
	}

	if err := r.gateway.RecordMigration(ctx, m.Version, m.Description); err != nil {
		return executed, errors.Wrapf(err, "failed to record version %s", m.Version)
	}

	log.Info().Msgf("migrated to version %s (%d scripts)", m.Version, len(executed))
	return executed, nil
}
