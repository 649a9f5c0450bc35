package engine

import (
	"context"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/saaskit-dev/upshift/pkg/sqlsplit"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const sqliteCreateVersionTable = `
CREATE TABLE IF NOT EXISTS schema_versions (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	version     TEXT NOT NULL,
	executed_at DATETIME NOT NULL,
	description TEXT
)`

// sqliteGateway targets SQLite database files. It exists for local
// development and tests, where a real server is overkill; the full statement
// splitter is used since it is a superset of plain semicolon splitting.
type sqliteGateway struct {
	base

	dsn string
}

func newSQLite(cfg Config) *sqliteGateway {
	g := &sqliteGateway{dsn: cfg.DSN}
	g.base.open = g.openTarget

	return g
}

func (g *sqliteGateway) Name() string {
	return "sqlite"
}

// EnsureDatabase is a no-op: SQLite creates the database file on first open.
func (g *sqliteGateway) EnsureDatabase(ctx context.Context) error {
	log.Debug().Msgf("sqlite creates %s on open; nothing to ensure", g.dsn)

	return nil
}

func (g *sqliteGateway) InitVersionTable(ctx context.Context) error {
	db, closer, err := g.openTarget(ctx)
	if err != nil {
		return err
	}
	defer closer()

	if err := db.Exec(sqliteCreateVersionTable).Error; err != nil {
		return errors.Wrap(err, "failed to create version table")
	}

	return nil
}

func (g *sqliteGateway) ExecuteScript(ctx context.Context, script string) error {
	return g.execStatements(ctx, sqlsplit.Split(script))
}

func (g *sqliteGateway) openTarget(ctx context.Context) (*gorm.DB, func(), error) {
	return gormOpen(ctx, sqlite.Open(g.dsn), "sqlite database")
}
