package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v3"

	"github.com/saaskit-dev/upshift/pkg/catalog"
)

// getDBVersion returns a CLI command that prints the most recently executed
// migration version. The command fails when the database is unreachable, the
// version table is missing, or no migration has been executed yet, so the
// exit code alone can gate deploy scripts.
//
// Example usage:
//
//	# Print the current version
//	upshift get-db-version
func getDBVersion() *cli.Command {
	return &cli.Command{
		Name:  "get-db-version",
		Usage: "Print the most recently executed migration version",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			gw, err := newGateway()
			if err != nil {
				return err
			}

			rec, err := gw.LatestVersion(ctx)
			if err != nil {
				fmt.Printf("❌ Failed to read database version: %v\n", err)
				return err
			}
			if rec == nil {
				fmt.Println("❌ No migrations have been executed")
				return errors.New("no migrations have been executed")
			}

			fmt.Printf("✅ Database is at version %s\n", rec.Version)
			return nil
		},
	}
}

// listMigrations returns a CLI command that lists the migrations available in
// the migrations directory, in the order they would be applied. The listing
// is purely filesystem based and does not require a database connection.
//
// Example usage:
//
//	# List available migrations
//	upshift list-migrations
func listMigrations() *cli.Command {
	return &cli.Command{
		Name:  "list-migrations",
		Usage: "List the migrations available on disk",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cat, err := catalog.Load(os.DirFS(currentConfig.Dir))
			if err != nil {
				return err
			}

			migrations := cat.Migrations()
			if len(migrations) == 0 {
				fmt.Println("No migrations found.")
				return nil
			}

			fmt.Printf("Migrations in %s:\n", currentConfig.Dir)
			for _, m := range migrations {
				if m.Description != "" {
					fmt.Printf("  📄 %s (%d scripts) - %s\n", m.Version, len(m.Scripts), m.Description)
				} else {
					fmt.Printf("  📄 %s (%d scripts)\n", m.Version, len(m.Scripts))
				}
			}

			return nil
		},
	}
}

// testConnection returns a CLI command that verifies the configured database
// is reachable.
//
// Example usage:
//
//	# Verify connectivity
//	upshift test-connection
func testConnection() *cli.Command {
	return &cli.Command{
		Name:  "test-connection",
		Usage: "Verify the database connection",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			gw, err := newGateway()
			if err != nil {
				return err
			}

			if err := gw.TestConnection(ctx); err != nil {
				fmt.Printf("❌ Connection failed: %v\n", err)
				return err
			}

			fmt.Println("✅ Connection successful")
			return nil
		},
	}
}
