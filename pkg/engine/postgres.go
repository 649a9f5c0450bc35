package engine

import (
	"context"
	"net/url"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/saaskit-dev/upshift/pkg/sqlsplit"
	"github.com/saaskit-dev/upshift/pkg/utils"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// pgAdminDatabase is the maintenance database every PostgreSQL cluster
// provides; EnsureDatabase connects to it to create the target database.
const pgAdminDatabase = "postgres"

const pgCreateVersionTable = `
CREATE TABLE IF NOT EXISTS schema_versions (
	id          SERIAL PRIMARY KEY,
	version     TEXT NOT NULL,
	executed_at TIMESTAMPTZ NOT NULL,
	description TEXT
)`

// postgresGateway targets PostgreSQL. Scripts run through the full statement
// splitter because the dialect supports dollar-quoted procedural bodies.
type postgresGateway struct {
	base

	dsn      string
	adminDSN string
}

func newPostgres(cfg Config) *postgresGateway {
	g := &postgresGateway{dsn: cfg.DSN, adminDSN: cfg.AdminDSN}
	g.base.open = g.openTarget

	return g
}

func (g *postgresGateway) Name() string {
	return "postgres"
}

func (g *postgresGateway) EnsureDatabase(ctx context.Context) error {
	name, err := pgDatabaseName(g.dsn)
	if err != nil {
		return errors.Wrap(err, "failed to determine target database")
	}

	admin := g.adminDSN
	if admin == "" {
		if admin, err = pgAdminDSN(g.dsn); err != nil {
			return errors.Wrap(err, "failed to derive administrative connection string")
		}
	}

	db, closer, err := gormOpen(ctx, postgres.Open(admin), "postgres administrative database")
	if err != nil {
		return err
	}
	defer closer()

	var count int64
	if err := db.Raw("SELECT COUNT(*) FROM pg_database WHERE datname = ?", name).Scan(&count).Error; err != nil {
		return errors.Wrapf(err, "failed to check for database %s", name)
	}
	if count > 0 {
		log.Debug().Msgf("database %s already exists", name)
		return nil
	}

	log.Info().Msgf("creating database %s", name)

	if err := db.Exec("CREATE DATABASE " + utils.DoubleQuoteIdentifier(name) + " ENCODING 'UTF8'").Error; err != nil {
		return errors.Wrapf(err, "failed to create database %s", name)
	}

	return nil
}

func (g *postgresGateway) InitVersionTable(ctx context.Context) error {
	db, closer, err := g.openTarget(ctx)
	if err != nil {
		return err
	}
	defer closer()

	if err := db.Exec(pgCreateVersionTable).Error; err != nil {
		return errors.Wrap(err, "failed to create version table")
	}

	return nil
}

func (g *postgresGateway) ExecuteScript(ctx context.Context, script string) error {
	return g.execStatements(ctx, sqlsplit.Split(script))
}

func (g *postgresGateway) openTarget(ctx context.Context) (*gorm.DB, func(), error) {
	return gormOpen(ctx, postgres.Open(g.dsn), "postgres database")
}

// pgDatabaseName extracts the target database name from a PostgreSQL
// connection string in either keyword=value or URL form.
func pgDatabaseName(dsn string) (string, error) {
	if isURLForm(dsn) {
		u, err := url.Parse(dsn)
		if err != nil {
			return "", errors.Wrap(err, "failed to parse connection string")
		}
		if name := strings.TrimPrefix(u.Path, "/"); name != "" {
			return name, nil
		}

		return "", errors.New("connection string names no database")
	}

	for _, field := range strings.Fields(dsn) {
		if value, ok := strings.CutPrefix(field, "dbname="); ok {
			return strings.Trim(value, "'"), nil
		}
	}

	return "", errors.New("connection string names no database")
}

// pgAdminDSN rewrites a PostgreSQL connection string to point at the
// maintenance database, keeping host, port, and credentials intact.
func pgAdminDSN(dsn string) (string, error) {
	if isURLForm(dsn) {
		u, err := url.Parse(dsn)
		if err != nil {
			return "", errors.Wrap(err, "failed to parse connection string")
		}
		u.Path = "/" + pgAdminDatabase

		return u.String(), nil
	}

	fields := strings.Fields(dsn)
	replaced := false
	for i, field := range fields {
		if strings.HasPrefix(field, "dbname=") {
			fields[i] = "dbname=" + pgAdminDatabase
			replaced = true
		}
	}
	if !replaced {
		fields = append(fields, "dbname="+pgAdminDatabase)
	}

	return strings.Join(fields, " "), nil
}

func isURLForm(dsn string) bool {
	return strings.Contains(dsn, "://")
}
