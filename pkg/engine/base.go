package engine

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/saaskit-dev/upshift/pkg/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// base carries the version-table operations shared by every gateway. Each
// engine supplies its own open function; everything here is plain gorm over
// whatever connection that function produces.
type base struct {
	open func(ctx context.Context) (*gorm.DB, func(), error)
}

// gormOpen opens a fresh connection for a single gateway call and returns it
// with its close function. The connection is pinged with the caller's context
// so unreachable targets fail here, wrapped as ErrUnreachable, rather than on
// first use.
func gormOpen(ctx context.Context, dialector gorm.Dialector, target string) (*gorm.DB, func(), error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:               logger.Default.LogMode(logger.Silent),
		DisableAutomaticPing: true,
	})
	if err != nil {
		return nil, nil, errors.Wrapf(ErrUnreachable, "failed to open %s: %v", target, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, errors.Wrapf(ErrUnreachable, "failed to access %s: %v", target, err)
	}

	closer := func() { _ = sqlDB.Close() }

	if err := sqlDB.PingContext(ctx); err != nil {
		closer()
		return nil, nil, errors.Wrapf(ErrUnreachable, "failed to reach %s: %v", target, err)
	}

	return db.WithContext(ctx), closer, nil
}

func (b *base) LatestVersion(ctx context.Context) (*Record, error) {
	db, closer, err := b.open(ctx)
	if err != nil {
		return nil, err
	}
	defer closer()

	if err := requireVersionTable(db); err != nil {
		return nil, err
	}

	var rec Record
	if err := db.Order("executed_at DESC, id DESC").First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to query latest version")
	}

	return &rec, nil
}

func (b *base) ExecutedVersions(ctx context.Context) ([]*Record, error) {
	db, closer, err := b.open(ctx)
	if err != nil {
		return nil, err
	}
	defer closer()

	if err := requireVersionTable(db); err != nil {
		return nil, err
	}

	var records []*Record
	if err := db.Order("executed_at ASC, id ASC").Find(&records).Error; err != nil {
		return nil, errors.Wrap(err, "failed to query executed versions")
	}

	return records, nil
}

func (b *base) RecordMigration(ctx context.Context, version, description string) error {
	db, closer, err := b.open(ctx)
	if err != nil {
		return err
	}
	defer closer()

	rec := &Record{
		Version:    version,
		ExecutedAt: time.Now().UTC(),
	}
	if description != "" {
		rec.Description = utils.Ptr(description)
	}

	if err := db.Create(rec).Error; err != nil {
		return errors.Wrapf(err, "failed to record migration %s", version)
	}

	return nil
}

func (b *base) TestConnection(ctx context.Context) error {
	_, closer, err := b.open(ctx)
	if err != nil {
		return err
	}
	closer()

	return nil
}

// execStatements runs pre-split statements in order over one connection,
// stopping at the first failure. Statement positions are reported so a
// failing script can be located inside multi-statement files.
func (b *base) execStatements(ctx context.Context, statements []string) error {
	if len(statements) == 0 {
		return nil
	}

	db, closer, err := b.open(ctx)
	if err != nil {
		return err
	}
	defer closer()

	for i, stmt := range statements {
		if err := db.Exec(stmt).Error; err != nil {
			return errors.Wrapf(err, "statement %d of %d failed", i+1, len(statements))
		}
	}

	return nil
}

// requireVersionTable guards reads that are meaningless before
// InitVersionTable has run, turning the engine-specific "no such table"
// failure into the inspectable ErrUninitialized kind.
func requireVersionTable(db *gorm.DB) error {
	if db.Migrator().HasTable(&Record{}) {
		return nil
	}

	return errors.Wrapf(ErrUninitialized, "table %s does not exist", VersionTable)
}
