package engine

import (
	"context"

	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/saaskit-dev/upshift/pkg/sqlsplit"
	"github.com/saaskit-dev/upshift/pkg/utils"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

const mariaCreateVersionTable = `
CREATE TABLE IF NOT EXISTS schema_versions (
	id          INT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
	version     VARCHAR(128) NOT NULL,
	executed_at DATETIME(6) NOT NULL,
	description TEXT NULL
)`

// mariadbGateway targets MariaDB (and MySQL-compatible servers). The dialect
// has no dollar-quoted blocks, so scripts are split on plain semicolons.
type mariadbGateway struct {
	base

	dsn      string
	adminDSN string
}

func newMariaDB(cfg Config) *mariadbGateway {
	g := &mariadbGateway{dsn: cfg.DSN, adminDSN: cfg.AdminDSN}
	g.base.open = g.openTarget

	return g
}

func (g *mariadbGateway) Name() string {
	return "mariadb"
}

func (g *mariadbGateway) EnsureDatabase(ctx context.Context) error {
	admin, name, err := mariaAdminDSN(g.dsn)
	if err != nil {
		return errors.Wrap(err, "failed to derive administrative connection string")
	}
	if g.adminDSN != "" {
		admin = g.adminDSN
	}

	db, closer, err := gormOpen(ctx, mysql.Open(admin), "mariadb administrative connection")
	if err != nil {
		return err
	}
	defer closer()

	var count int64
	if err := db.Raw("SELECT COUNT(*) FROM INFORMATION_SCHEMA.SCHEMATA WHERE SCHEMA_NAME = ?", name).Scan(&count).Error; err != nil {
		return errors.Wrapf(err, "failed to check for database %s", name)
	}
	if count > 0 {
		log.Debug().Msgf("database %s already exists", name)
		return nil
	}

	log.Info().Msgf("creating database %s", name)

	stmt := "CREATE DATABASE " + utils.BacktickIdentifier(name) + " CHARACTER SET utf8mb4 COLLATE utf8mb4_unicode_ci"
	if err := db.Exec(stmt).Error; err != nil {
		return errors.Wrapf(err, "failed to create database %s", name)
	}

	return nil
}

func (g *mariadbGateway) InitVersionTable(ctx context.Context) error {
	db, closer, err := g.openTarget(ctx)
	if err != nil {
		return err
	}
	defer closer()

	if err := db.Exec(mariaCreateVersionTable).Error; err != nil {
		return errors.Wrap(err, "failed to create version table")
	}

	return nil
}

func (g *mariadbGateway) ExecuteScript(ctx context.Context, script string) error {
	return g.execStatements(ctx, sqlsplit.SplitSimple(script))
}

func (g *mariadbGateway) openTarget(ctx context.Context) (*gorm.DB, func(), error) {
	return gormOpen(ctx, mysql.Open(g.dsn), "mariadb database")
}

// mariaAdminDSN strips the database name from a MariaDB connection string so
// EnsureDatabase can connect server-wide, returning the rewritten DSN and the
// target database name.
func mariaAdminDSN(dsn string) (string, string, error) {
	cfg, err := mysqldriver.ParseDSN(dsn)
	if err != nil {
		return "", "", errors.Wrap(err, "failed to parse connection string")
	}
	if cfg.DBName == "" {
		return "", "", errors.New("connection string names no database")
	}

	name := cfg.DBName
	cfg.DBName = ""

	return cfg.FormatDSN(), name, nil
}
