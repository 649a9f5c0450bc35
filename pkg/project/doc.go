// Package project provides migration project management capabilities
// including project initialization and migration scaffolding.
//
// # Project Management
//
// The project package bootstraps the standard directory layout and
// configuration for a migration project. Initialization is idempotent: it
// creates missing directories and files while preserving existing content,
// so it is safe to run inside a repository that already has some of the
// structure in place.
//
// # Project Structure
//
// An upshift project follows this standard layout:
//
//	project-root/
//	├── upshift.yaml                # Engine and connection configuration
//	└── db/
//	    └── migrations/
//	        ├── Initial/            # Baseline migration, applied by setup
//	        │   ├── 1_create_schema.sql
//	        │   └── description.txt
//	        └── 1.0.0/              # Versioned migrations, applied by update
//	            └── 1_change.sql
//
// # Usage Example
//
//	// Initialize a new project
//	proj := project.New("/path/to/my/project")
//	if err := proj.Initialize(project.InitOptions{}); err != nil {
//		log.Fatal().Err(err).Msg("failed to initialize project")
//	}
//
//	// Scaffold the next migration
//	path, err := project.CreateMigration(proj.Config().Dir, "1.0.0", "add widgets")
//	if err != nil {
//		log.Fatal().Err(err).Msg("failed to create migration")
//	}
//
//	fmt.Printf("created %s\n", path)
package project
