package cmd

import (
	"context"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v3"
)

// updateToVersion returns a CLI command that applies pending migrations up to
// and including the given target version. Migrations run in version order and
// each is recorded before the next starts; the first failure stops the run,
// leaving earlier migrations applied.
//
// Example usage:
//
//	# Update the database to version 1.2.0
//	upshift update-to-version 1.2.0
func updateToVersion() *cli.Command {
	return &cli.Command{
		Name:      "update-to-version",
		Usage:     "Apply pending migrations up to a target version",
		ArgsUsage: "<version>",
		Description: `Apply every migration that has not been executed yet and whose version is
less than or equal to the target, in ascending version order. A database
already at or beyond the target is left untouched.`,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			target := cmd.Args().First()
			if target == "" {
				return errors.New("version argument is required")
			}

			r, err := newRunner()
			if err != nil {
				return err
			}

			res, err := r.UpdateToVersion(ctx, target)
			if err != nil {
				return printFailure(res, err)
			}

			printResult(res)
			return nil
		},
	}
}

// updateToLatest returns a CLI command that applies every pending migration
// up to the highest version found in the migrations directory.
//
// Example usage:
//
//	# Apply all pending migrations
//	upshift update-to-latest
func updateToLatest() *cli.Command {
	return &cli.Command{
		Name:  "update-to-latest",
		Usage: "Apply every pending migration",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			r, err := newRunner()
			if err != nil {
				return err
			}

			res, err := r.UpdateToLatest(ctx)
			if err != nil {
				return printFailure(res, err)
			}

			printResult(res)
			return nil
		},
	}
}
