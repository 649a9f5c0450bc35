package project

import (
	_ "embed"
	"os"
	"path/filepath"
	"testing/fstest"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/saaskit-dev/upshift/pkg/config"
	"github.com/saaskit-dev/upshift/pkg/consts"
)

var (
	//go:embed embed/upshift.yaml
	defaultConfig []byte

	//go:embed embed/1_create_schema.sql
	initialSchemaSQL []byte

	//go:embed embed/description.txt
	initialDescription []byte

	//go:embed embed/migration.sql
	migrationStub []byte

	image = fstest.MapFS{
		"db":                                        {Mode: os.ModeDir | 0o755},
		"db/migrations":                             {Mode: os.ModeDir | 0o755},
		"db/migrations/Initial":                     {Mode: os.ModeDir | 0o755},
		"db/migrations/Initial/1_create_schema.sql": {Data: initialSchemaSQL},
		"db/migrations/Initial/description.txt":     {Data: initialDescription},
		"upshift.yaml":                              {Data: defaultConfig},
	}
)

type (
	// InitOptions contains options for project initialization
	InitOptions struct {
		// Engine selects the database engine written to the generated
		// configuration. If empty, the scaffold default (postgres) is kept.
		Engine string
	}

	Project struct {
		root   string
		config *config.Config
	}
)

// New creates a new Project instance for managing a migration project.
// The path should point to an existing directory that will serve as the
// project root.
//
// Example:
//
//	proj := project.New("/path/to/my/project")
//	if err := proj.Initialize(project.InitOptions{}); err != nil {
//		log.Fatal().Err(err).Msg("failed to initialize project")
//	}
func New(path string) *Project {
	return &Project{root: path}
}

// Initialize sets up the project directory structure and loads the
// configuration. This method is idempotent - it will only create missing
// files and directories, preserving any existing content. It creates the
// migrations directory with an initial migration and the upshift.yaml
// configuration file.
//
// The options parameter allows customizing the initialization, such as
// selecting a different database engine. To use defaults, pass an empty
// InitOptions{}.
//
// Example:
//
//	proj := project.New("/path/to/my/project")
//	if err := proj.Initialize(project.InitOptions{Engine: "mariadb"}); err != nil {
//		log.Fatal().Err(err).Msg("failed to initialize project")
//	}
func (p *Project) Initialize(options InitOptions) error {
	if err := p.ensureDirectory(); err != nil {
		return err
	}

	// Walk the embedded image and create missing files/directories
	for path, entry := range image {
		fullPath := filepath.Join(p.root, path)

		if _, err := os.Stat(fullPath); err == nil {
			// Entry exists, skip it
			continue
		} else if !os.IsNotExist(err) {
			return errors.Wrapf(err, "failed to stat %s", fullPath)
		}

		if entry.Mode.IsDir() {
			if err := os.MkdirAll(fullPath, entry.Mode.Perm()); err != nil {
				return errors.Wrapf(err, "failed to create directory %s", fullPath)
			}

			continue
		}

		// Ensure parent directory exists
		parentDir := filepath.Dir(fullPath)
		if err := os.MkdirAll(parentDir, consts.ModeDir); err != nil {
			return errors.Wrapf(err, "failed to create parent directory %s", parentDir)
		}

		if err := os.WriteFile(fullPath, entry.Data, consts.ModeFile); err != nil {
			return errors.Wrapf(err, "failed to write file %s", fullPath)
		}
	}

	cfg, err := config.LoadConfigFile(filepath.Join(p.root, consts.DefaultConfigFile))
	if err != nil {
		return errors.Wrap(err, "failed to load upshift.yaml")
	}

	// Apply custom options if provided
	if options.Engine != "" && options.Engine != cfg.Engine {
		cfg.Engine = options.Engine

		configPath := filepath.Join(p.root, consts.DefaultConfigFile)
		configFile, err := os.Create(configPath)
		if err != nil {
			return errors.Wrapf(err, "failed to open config file for writing: %s", configPath)
		}
		defer configFile.Close()

		encoder := yaml.NewEncoder(configFile)
		if err := encoder.Encode(cfg); err != nil {
			return errors.Wrap(err, "failed to write updated config")
		}
		if err := encoder.Close(); err != nil {
			return errors.Wrap(err, "failed to close yaml encoder")
		}
	}

	p.config = cfg

	return nil
}

// Config returns the configuration loaded during Initialize, or nil when the
// project has not been initialized.
func (p *Project) Config() *config.Config {
	return p.config
}

func (p *Project) ensureDirectory() error {
	dir, err := os.Stat(p.root)
	if err != nil {
		return errors.Wrapf(err, "failed to stat dir: %s", p.root)
	}

	if !dir.IsDir() {
		return errors.Errorf("%s is not a directory", p.root)
	}

	return nil
}

// CreateMigration scaffolds a new migration directory under dir. The
// directory is named after version and seeded with a stub script and, when
// description is non-empty, a description.txt. It returns the path of the
// created directory.
//
// Example:
//
//	path, err := project.CreateMigration("db/migrations", "1.2.0", "add widgets")
//	if err != nil {
//		log.Fatal().Err(err).Msg("failed to create migration")
//	}
//
//	fmt.Printf("created %s\n", path)
func CreateMigration(dir, version, description string) (string, error) {
	if version == "" || filepath.Base(version) != version || version == "." || version == ".." {
		return "", errors.Errorf("invalid migration version: %q", version)
	}

	target := filepath.Join(dir, version)
	if _, err := os.Stat(target); err == nil {
		return "", errors.Errorf("migration %s already exists", version)
	} else if !os.IsNotExist(err) {
		return "", errors.Wrapf(err, "failed to stat %s", target)
	}

	if err := os.MkdirAll(target, consts.ModeDir); err != nil {
		return "", errors.Wrapf(err, "failed to create directory %s", target)
	}

	if err := os.WriteFile(filepath.Join(target, "1_change.sql"), migrationStub, consts.ModeFile); err != nil {
		return "", errors.Wrapf(err, "failed to write migration stub in %s", target)
	}

	if description != "" {
		descPath := filepath.Join(target, "description.txt")
		if err := os.WriteFile(descPath, []byte(description+"\n"), consts.ModeFile); err != nil {
			return "", errors.Wrapf(err, "failed to write %s", descPath)
		}
	}

	return target, nil
}
