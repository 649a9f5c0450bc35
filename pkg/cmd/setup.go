package cmd

import (
	"context"

	"github.com/urfave/cli/v3"
)

// setupDBInitial returns a CLI command that bootstraps a database from
// nothing: it creates the database if missing, creates the version table if
// missing, and applies the initial migration. When the database already has
// any executed version recorded, the command succeeds without running
// anything.
//
// Example usage:
//
//	# Bootstrap the configured database
//	upshift setup-db-initial
func setupDBInitial() *cli.Command {
	return &cli.Command{
		Name:  "setup-db-initial",
		Usage: "Create the database and apply the initial migration",
		Description: `Create the configured database if it does not exist, create the version
table if it does not exist, and apply the Initial migration. The command is
idempotent: a database with any recorded version is left untouched.`,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			r, err := newRunner()
			if err != nil {
				return err
			}

			res, err := r.SetupDatabase(ctx)
			if err != nil {
				return printFailure(res, err)
			}

			printResult(res)
			return nil
		},
	}
}

// setupDBLatest returns a CLI command that runs setup-db-initial and then
// applies every pending migration, leaving a brand new database at the
// latest available version in one step.
//
// Example usage:
//
//	# Bootstrap and fully migrate the configured database
//	upshift setup-db-latest
func setupDBLatest() *cli.Command {
	return &cli.Command{
		Name:  "setup-db-latest",
		Usage: "Set up the database and update it to the latest version",
		Description: `Run the same bootstrap as setup-db-initial, then apply every pending
migration up to the highest version found in the migrations directory.`,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			r, err := newRunner()
			if err != nil {
				return err
			}

			res, err := r.SetupDatabase(ctx)
			if err != nil {
				return printFailure(res, err)
			}
			printResult(res)

			res, err = r.UpdateToLatest(ctx)
			if err != nil {
				return printFailure(res, err)
			}

			printResult(res)
			return nil
		},
	}
}
