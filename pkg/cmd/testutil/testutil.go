package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/saaskit-dev/upshift/pkg/config"
	"github.com/saaskit-dev/upshift/pkg/consts"
	"github.com/saaskit-dev/upshift/pkg/project"
)

// ProjectFixture represents a test project environment with all necessary
// dependencies
type ProjectFixture struct {
	Dir    string
	Config *config.Config
	t      *testing.T
}

// MigrationFile represents a test migration
type MigrationFile struct {
	Version     string
	Description string
	Scripts     map[string]string
}

// TestProject creates an isolated temp directory with an initialized upshift
// project
func TestProject(t *testing.T) *ProjectFixture {
	t.Helper()

	tmpDir := t.TempDir()

	proj := project.New(tmpDir)
	require.NoError(t, proj.Initialize(project.InitOptions{}), "Failed to initialize test project")

	return &ProjectFixture{
		Dir:    tmpDir,
		Config: proj.Config(),
		t:      t,
	}
}

// WithSQLite points the fixture configuration at a temporary SQLite database
// so command tests can run against a real engine without a server.
func (p *ProjectFixture) WithSQLite() *ProjectFixture {
	p.t.Helper()

	p.Config.Engine = "sqlite"
	p.Config.ConnectionStrings.Default = filepath.Join(p.Dir, "upshift_test.db")
	p.Config.ConnectionStrings.Admin = ""
	p.writeConfig()

	return p
}

// WithMigrations adds migration directories to the project
func (p *ProjectFixture) WithMigrations(migrations []MigrationFile) *ProjectFixture {
	p.t.Helper()

	for _, migration := range migrations {
		dir := filepath.Join(p.Dir, p.Config.Dir, migration.Version)
		require.NoError(p.t, os.MkdirAll(dir, consts.ModeDir), "Failed to create migration directory: %s", dir)

		for name, sql := range migration.Scripts {
			path := filepath.Join(dir, name)
			require.NoError(p.t, os.WriteFile(path, []byte(sql), consts.ModeFile), "Failed to write migration script: %s", name)
		}

		if migration.Description != "" {
			path := filepath.Join(dir, "description.txt")
			require.NoError(p.t, os.WriteFile(path, []byte(migration.Description), consts.ModeFile), "Failed to write description file")
		}
	}

	return p
}

// ConfigPath returns the path to the upshift.yaml file
func (p *ProjectFixture) ConfigPath() string {
	return filepath.Join(p.Dir, consts.DefaultConfigFile)
}

// MigrationsDir returns the path to the migrations directory
func (p *ProjectFixture) MigrationsDir() string {
	return filepath.Join(p.Dir, p.Config.Dir)
}

// writeConfig writes the fixture configuration back to upshift.yaml
func (p *ProjectFixture) writeConfig() {
	p.t.Helper()

	file, err := os.Create(p.ConfigPath())
	require.NoError(p.t, err, "Failed to open config for writing")
	defer file.Close()

	encoder := yaml.NewEncoder(file)
	defer encoder.Close()

	require.NoError(p.t, encoder.Encode(p.Config), "Failed to write config")
}
