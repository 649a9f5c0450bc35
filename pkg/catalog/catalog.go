package catalog

import (
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

const (
	// DescriptionFile is the optional per-migration description filename.
	DescriptionFile = "description.txt"

	// DescriptionLimit caps how many characters of a description file are
	// attached to a migration.
	DescriptionLimit = 500
)

type (
	// Migration is one discovered migration: a version directory and its
	// ordered script files. Immutable once read.
	Migration struct {
		// Version is the raw subdirectory name: the baseline sentinel or a
		// dotted-numeric version string.
		Version string

		// Dir is the subdirectory the migration was discovered in, relative
		// to the migrations root.
		Dir string

		// Scripts holds the .sql filenames within Dir in byte-lexicographic
		// ascending order, which is the execution order. Callers are expected
		// to prefix files with a sequence number.
		Scripts []string

		// Description is free text from the adjacent description file,
		// truncated to DescriptionLimit characters. Empty when no such file
		// exists.
		Description string

		// Parsed is the version used for ordering. The baseline and any
		// malformed version string parse as 0.0.0.
		Parsed Version
	}

	// Catalog is the ordered set of migrations discovered under one
	// migrations root: baseline first, then ascending by parsed version.
	Catalog struct {
		migrations []*Migration
	}
)

// IsBaseline reports whether this is the reserved bootstrap migration.
func (m *Migration) IsBaseline() bool {
	return m.Version == BaselineVersion
}

// Load scans the immediate subdirectories of the migrations root and builds
// the catalog. Subdirectories containing no .sql files are skipped entirely.
// Filenames are compared byte-wise, never with locale-aware collation, so the
// ordering is identical on every platform.
//
// Example:
//
//	cat, err := catalog.Load(os.DirFS("db/migrations"))
//	if err != nil {
//		return err
//	}
//	for _, m := range cat.Migrations() {
//		fmt.Printf("%s (%d scripts)\n", m.Version, len(m.Scripts))
//	}
func Load(fsys fs.FS) (*Catalog, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, errors.Wrap(err, "failed to read migrations directory")
	}

	var migrations []*Migration

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		m, err := loadMigration(fsys, entry.Name())
		if err != nil {
			return nil, err
		}
		if m == nil {
			continue
		}

		migrations = append(migrations, m)
	}

	sortMigrations(migrations)

	return &Catalog{migrations: migrations}, nil
}

// Migrations returns every discovered migration in catalog order.
func (c *Catalog) Migrations() []*Migration {
	return c.migrations
}

// Baseline returns the bootstrap migration, or nil when the migrations root
// has no baseline directory.
func (c *Catalog) Baseline() *Migration {
	for _, m := range c.migrations {
		if m.IsBaseline() {
			return m
		}
	}

	return nil
}

// Latest returns the highest-versioned non-baseline migration, or nil when
// the catalog contains only the baseline (or nothing at all).
func (c *Catalog) Latest() *Migration {
	var latest *Migration
	for _, m := range c.migrations {
		if m.IsBaseline() {
			continue
		}
		if latest == nil || m.Parsed.Compare(latest.Parsed) >= 0 {
			latest = m
		}
	}

	return latest
}

// Pending returns the migrations not present in the executed version set, in
// catalog order. A non-nil target further restricts the result to migrations
// whose parsed version is at most the target. The baseline parses as 0.0.0,
// so an unexecuted baseline is included for any target.
func (c *Catalog) Pending(executed map[string]struct{}, target *Version) []*Migration {
	var pending []*Migration

	for _, m := range c.migrations {
		if _, done := executed[m.Version]; done {
			continue
		}
		if target != nil && m.Parsed.Compare(*target) > 0 {
			continue
		}

		pending = append(pending, m)
	}

	return pending
}

// loadMigration reads one version subdirectory. Returns nil when the
// directory holds no SQL scripts.
func loadMigration(fsys fs.FS, dir string) (*Migration, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read migration directory: %s", dir)
	}

	var scripts []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}
		scripts = append(scripts, entry.Name())
	}

	if len(scripts) == 0 {
		return nil, nil
	}

	sort.Strings(scripts)

	return &Migration{
		Version:     dir,
		Dir:         dir,
		Scripts:     scripts,
		Description: readDescription(fsys, dir),
		Parsed:      ParseVersion(dir),
	}, nil
}

// readDescription loads the optional description file, truncated to
// DescriptionLimit characters. Missing or unreadable files yield an empty
// description rather than an error.
func readDescription(fsys fs.FS, dir string) string {
	data, err := fs.ReadFile(fsys, path.Join(dir, DescriptionFile))
	if err != nil {
		return ""
	}

	desc := strings.TrimSpace(string(data))
	if runes := []rune(desc); len(runes) > DescriptionLimit {
		desc = string(runes[:DescriptionLimit])
	}

	return desc
}

// sortMigrations orders the catalog: baseline first, then ascending parsed
// version, with the raw version string as a deterministic tiebreak for equal
// parsed versions (such as multiple malformed names).
func sortMigrations(migrations []*Migration) {
	sort.Slice(migrations, func(i, j int) bool {
		a, b := migrations[i], migrations[j]

		if a.IsBaseline() != b.IsBaseline() {
			return a.IsBaseline()
		}
		if cmp := a.Parsed.Compare(b.Parsed); cmp != 0 {
			return cmp < 0
		}

		return a.Version < b.Version
	})
}
