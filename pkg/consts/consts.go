package consts

import "os"

const (
	// ModeDir is the standard file mode for creating directories
	ModeDir = os.FileMode(0o755)

	// ModeFile is the standard file mode for creating files
	ModeFile = os.FileMode(0o644)
)

const (
	// DefaultEngine is the database engine assumed when neither the config
	// file nor the environment names one.
	DefaultEngine = "postgres"

	// DefaultMigrationsDir is the directory migrations are read from when
	// neither the config file nor the environment names one.
	DefaultMigrationsDir = "db/migrations"

	// DefaultConfigFile is the config file looked up in the working directory
	// when --config is not given.
	DefaultConfigFile = "upshift.yaml"
)

// Environment variables override their config file counterparts when set to a
// non-empty value.
const (
	// EnvEngine overrides the configured database engine.
	EnvEngine = "UPSHIFT_ENGINE"

	// EnvConnectionString overrides the configured connection string.
	EnvConnectionString = "UPSHIFT_CONNECTION_STRING"

	// EnvAdminConnectionString overrides the configured admin connection string.
	EnvAdminConnectionString = "UPSHIFT_ADMIN_CONNECTION_STRING"

	// EnvMigrationsDir overrides the configured migrations directory.
	EnvMigrationsDir = "UPSHIFT_MIGRATIONS_DIR"
)
