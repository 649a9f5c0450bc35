package cmd

import (
	"context"
	"os"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v3"

	"github.com/saaskit-dev/upshift/pkg/config"
	"github.com/saaskit-dev/upshift/pkg/consts"
)

var currentConfig *config.Config

// Run creates and executes the main upshift CLI application with the given
// version and command-line arguments. This function serves as the main entry
// point for all CLI operations and handles global configuration.
//
// The function creates a CLI application with:
//   - Global --config flag for selecting the config file
//   - Global --dir flag for overriding the migrations directory
//   - Command registration and routing
//   - Context propagation for cancellation support
//
// Configuration resolution happens before every command: the config file is
// loaded when present, UPSHIFT_* environment variables override its values,
// and a missing default config file falls back to defaults so env-only
// deployments work. An explicitly named config file must exist.
//
// Example usage:
//
//	# Run in current directory (uses upshift.yaml if present)
//	err := Run(ctx, "v1.0.0", []string{"upshift", "setup-db-initial"})
//
//	# Run with an explicit config file
//	err := Run(ctx, "v1.0.0", []string{"upshift", "--config", "/etc/upshift.yaml", "update-to-latest"})
//
// Returns an error if configuration resolution or command execution fails.
func Run(ctx context.Context, version string, args []string) error {
	app := &cli.Command{
		Name:  "upshift",
		Usage: "A tool for managing SQL database schema migrations",
		Description: `upshift is a CLI tool that keeps SQL databases in sync with the migration
scripts in your repository. It creates databases, tracks executed versions
in a schema_versions table, and applies pending migrations in order.`,
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "the upshift config file",
				Sources: cli.EnvVars("UPSHIFT_CONFIG"),
				Value:   consts.DefaultConfigFile,
				Config: cli.StringConfig{
					TrimSpace: true,
				},
			},
			&cli.StringFlag{
				Name:    "dir",
				Aliases: []string{"d"},
				Usage:   "the migrations directory (overrides the config file)",
				Config: cli.StringConfig{
					TrimSpace: true,
				},
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "enable debug logging",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			if cmd.Bool("verbose") {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			} else {
				zerolog.SetGlobalLevel(zerolog.InfoLevel)
			}

			cfg, err := resolveConfig(cmd)
			if err != nil {
				return ctx, err
			}

			currentConfig = cfg
			return ctx, nil
		},
		Commands: []*cli.Command{
			initCmd(),
			createMigration(),
			setupDBInitial(),
			setupDBLatest(),
			updateToVersion(),
			updateToLatest(),
			getDBVersion(),
			listMigrations(),
			testConnection(),
		},
	}

	return app.Run(ctx, args)
}

// resolveConfig loads the effective configuration for a run. A config file
// named explicitly (flag or UPSHIFT_CONFIG) must exist; the default
// upshift.yaml may be absent, in which case defaults plus UPSHIFT_*
// environment variables are used.
func resolveConfig(cmd *cli.Command) (*config.Config, error) {
	path := cmd.String("config")

	var cfg *config.Config

	if _, err := os.Stat(path); err == nil {
		cfg, err = config.LoadConfigFile(path)
		if err != nil {
			return nil, err
		}
	} else if cmd.IsSet("config") {
		return nil, errors.Wrapf(err, "failed to read config file: %s", path)
	} else {
		cfg = config.Default()
	}

	if dir := cmd.String("dir"); dir != "" {
		cfg.Dir = dir
	}

	return cfg, nil
}
