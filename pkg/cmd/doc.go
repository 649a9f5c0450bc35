// Package cmd provides CLI commands for the upshift tool.
//
// This package implements the command-line interface for upshift, providing
// commands for project setup, database bootstrap, and migration runs against
// PostgreSQL, MariaDB, and SQLite databases.
//
// # Available Commands
//
// The cmd package currently provides:
//   - init: Initialize a new upshift project structure
//   - create-migration: Scaffold a new versioned migration directory
//   - setup-db-initial: Create the database and apply the initial migration
//   - setup-db-latest: Set up the database and update it to the latest version
//   - update-to-version: Apply pending migrations up to a target version
//   - update-to-latest: Apply every pending migration
//   - get-db-version: Print the most recently executed version
//   - list-migrations: List the migrations available on disk
//   - test-connection: Verify the database connection
//
// # Command Structure
//
// Each command is implemented as a separate function that returns a
// *cli.Command, following the urfave/cli/v3 pattern. Commands are designed to
// be composable and testable, with proper error handling and comprehensive
// help text.
//
// # Global Options
//
// All commands support global flags:
//   - --config, -c: Config file path (defaults to upshift.yaml)
//   - --dir, -d: Migrations directory, overriding the config file
//   - --verbose, -v: Enable debug logging
//   - --help, -h: Display command help
//   - --version: Display version information
//
// # Example Usage
//
// Commands are registered in the main application and can be invoked from the
// command line:
//
//	upshift init                              # Initialize project
//	upshift setup-db-initial                  # Create database + initial schema
//	upshift create-migration 1.0.0 "widgets"  # Scaffold the next migration
//	upshift update-to-latest                  # Apply pending migrations
//	upshift get-db-version                    # Show the current version
//
// Configuration comes from upshift.yaml with UPSHIFT_* environment variables
// taking precedence, so CI and production deployments can run without a
// config file on disk.
package cmd
