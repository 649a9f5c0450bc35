package cmd

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/saaskit-dev/upshift/pkg/cmd/testutil"
)

func versionedFixture(t *testing.T) *testutil.ProjectFixture {
	t.Helper()

	return testutil.TestProject(t).WithSQLite().WithMigrations([]testutil.MigrationFile{
		{
			Version: "1.0.0",
			Scripts: map[string]string{
				"1_widgets.sql": "CREATE TABLE widgets (id INTEGER PRIMARY KEY, name TEXT);",
			},
		},
		{
			Version: "1.1.0",
			Scripts: map[string]string{
				"1_gadgets.sql": "CREATE TABLE gadgets (id INTEGER PRIMARY KEY);",
			},
		},
	})
}

func TestUpdateToVersionCommand(t *testing.T) {
	fixture := versionedFixture(t)
	t.Chdir(fixture.Dir)
	currentConfig = fixture.Config

	require.NoError(t, testutil.RunCommand(t, setupDBInitial(), nil))

	err := testutil.RunCommand(t, updateToVersion(), []string{"1.0.0"})
	require.NoError(t, err)

	gateway := fixtureGateway(t, fixture)
	require.Equal(t, "1.0.0", latestVersion(t, gateway))

	// Asking for the same version again reports nothing to do.
	err = testutil.RunCommand(t, updateToVersion(), []string{"1.0.0"})
	require.NoError(t, err)

	executed, err := gateway.ExecutedVersions(context.Background())
	require.NoError(t, err)
	require.Len(t, executed, 2)
}

func TestUpdateToLatestCommand(t *testing.T) {
	fixture := versionedFixture(t)
	t.Chdir(fixture.Dir)
	currentConfig = fixture.Config

	require.NoError(t, testutil.RunCommand(t, setupDBInitial(), nil))

	err := testutil.RunCommand(t, updateToLatest(), nil)
	require.NoError(t, err)

	gateway := fixtureGateway(t, fixture)
	require.Equal(t, "1.1.0", latestVersion(t, gateway))
}

func TestUpdateToVersionCommandReportsFailures(t *testing.T) {
	fixture := versionedFixture(t).WithMigrations([]testutil.MigrationFile{
		{
			Version: "1.0.1",
			Scripts: map[string]string{
				"1_broken.sql": "ALTER TABLE nothing ADD COLUMN;",
			},
		},
	})
	t.Chdir(fixture.Dir)
	currentConfig = fixture.Config

	require.NoError(t, testutil.RunCommand(t, setupDBInitial(), nil))

	err := testutil.RunCommand(t, updateToLatest(), nil)
	require.ErrorContains(t, err, "migration 1.0.1 failed")

	// 1.0.0 landed before the failure, nothing after it did.
	gateway := fixtureGateway(t, fixture)
	require.Equal(t, "1.0.0", latestVersion(t, gateway))
}

func TestUpdateToVersionCommandRequiresArgument(t *testing.T) {
	err := testutil.RunCommand(t, updateToVersion(), nil)
	require.ErrorContains(t, err, "version argument is required")
}
