package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v3"

	"github.com/saaskit-dev/upshift/pkg/consts"
	"github.com/saaskit-dev/upshift/pkg/project"
)

// initCmd returns a CLI command that initializes a new upshift project in the
// target directory. This command creates the standard project structure with
// a configuration file and an initial migration.
//
// The initialization process is idempotent - running it multiple times will
// not overwrite existing files, making it safe to run in existing
// directories.
//
// Created structure:
//   - upshift.yaml: Configuration file with engine and connection strings
//   - db/migrations/: Directory for migration directories
//   - db/migrations/Initial/: Baseline migration applied by setup-db-initial
//
// Example usage:
//
//	# Initialize a project in the current directory
//	upshift init
//
//	# Initialize a MariaDB project in a subdirectory
//	upshift init --engine mariadb services/billing
func initCmd() *cli.Command {
	return &cli.Command{
		Name:      "init",
		Usage:     "Initialize a project in the target directory",
		ArgsUsage: "[dir]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "engine",
				Aliases: []string{"e"},
				Usage:   "database engine to write to the configuration (postgres, mariadb, sqlite)",
				Config: cli.StringConfig{
					TrimSpace: true,
				},
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			dir := cmd.Args().First()
			if dir == "" {
				dir = "."
			}

			if err := os.MkdirAll(dir, consts.ModeDir); err != nil {
				return err
			}

			options := project.InitOptions{
				Engine: cmd.String("engine"),
			}

			if err := project.New(dir).Initialize(options); err != nil {
				return err
			}

			fmt.Printf("✅ Initialized project in %s\n", dir)
			return nil
		},
	}
}

// createMigration returns a CLI command that scaffolds a new migration
// directory under the configured migrations directory. The directory is
// seeded with a stub script and an optional description file, and is picked
// up by list-migrations and the update commands on their next run.
//
// Example usage:
//
//	# Scaffold a migration with a description
//	upshift create-migration 1.2.0 add widgets table
//
//	# Scaffold a bare migration
//	upshift create-migration 1.2.1
func createMigration() *cli.Command {
	return &cli.Command{
		Name:      "create-migration",
		Usage:     "Scaffold a new migration directory",
		ArgsUsage: "<version> [description]",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			version := cmd.Args().First()
			if version == "" {
				return errors.New("version argument is required")
			}

			description := strings.Join(cmd.Args().Tail(), " ")

			path, err := project.CreateMigration(currentConfig.Dir, version, description)
			if err != nil {
				return err
			}

			fmt.Printf("✅ Created migration %s in %s\n", version, path)
			return nil
		},
	}
}
