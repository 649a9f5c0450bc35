package cmd

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/saaskit-dev/upshift/pkg/cmd/testutil"
	"github.com/saaskit-dev/upshift/pkg/engine"
)

func TestGetDBVersionCommand(t *testing.T) {
	fixture := testutil.TestProject(t).WithSQLite()
	t.Chdir(fixture.Dir)
	currentConfig = fixture.Config

	// Nothing has been executed yet, so there is no version to report.
	err := testutil.RunCommand(t, getDBVersion(), nil)
	require.ErrorIs(t, err, engine.ErrUninitialized)

	require.NoError(t, testutil.RunCommand(t, setupDBInitial(), nil))

	err = testutil.RunCommand(t, getDBVersion(), nil)
	require.NoError(t, err)
}

func TestGetDBVersionCommandEmptyTable(t *testing.T) {
	fixture := testutil.TestProject(t).WithSQLite()
	t.Chdir(fixture.Dir)
	currentConfig = fixture.Config

	gateway := fixtureGateway(t, fixture)
	require.NoError(t, gateway.EnsureDatabase(context.Background()))
	require.NoError(t, gateway.InitVersionTable(context.Background()))

	err := testutil.RunCommand(t, getDBVersion(), nil)
	require.ErrorContains(t, err, "no migrations have been executed")
}

func TestListMigrationsCommand(t *testing.T) {
	fixture := testutil.TestProject(t).WithSQLite().WithMigrations([]testutil.MigrationFile{
		{
			Version:     "1.0.0",
			Description: "add widgets",
			Scripts: map[string]string{
				"1_widgets.sql": "CREATE TABLE widgets (id INTEGER PRIMARY KEY);",
			},
		},
	})
	t.Chdir(fixture.Dir)
	currentConfig = fixture.Config

	err := testutil.RunCommand(t, listMigrations(), nil)
	require.NoError(t, err)
}

func TestListMigrationsCommandMissingDirectory(t *testing.T) {
	fixture := testutil.TestProject(t).WithSQLite()
	fixture.Config.Dir = "does/not/exist"
	t.Chdir(fixture.Dir)
	currentConfig = fixture.Config

	err := testutil.RunCommand(t, listMigrations(), nil)
	require.Error(t, err)
}

func TestTestConnectionCommand(t *testing.T) {
	fixture := testutil.TestProject(t).WithSQLite()
	t.Chdir(fixture.Dir)
	currentConfig = fixture.Config

	err := testutil.RunCommand(t, testConnection(), nil)
	require.NoError(t, err)
}

func TestTestConnectionCommandUnreachable(t *testing.T) {
	fixture := testutil.TestProject(t).WithSQLite()
	fixture.Config.ConnectionStrings.Default = "/does/not/exist/upshift.db"
	t.Chdir(fixture.Dir)
	currentConfig = fixture.Config

	err := testutil.RunCommand(t, testConnection(), nil)
	require.ErrorIs(t, err, engine.ErrUnreachable)
}
