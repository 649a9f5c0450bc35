package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// RequireValidProject asserts that a project structure is correctly initialized
func RequireValidProject(t *testing.T, projectDir string) {
	t.Helper()

	// Check main directories exist
	require.DirExists(t, filepath.Join(projectDir, "db"), "db directory should exist")
	require.DirExists(t, filepath.Join(projectDir, "db", "migrations"), "migrations directory should exist")
	require.DirExists(t, filepath.Join(projectDir, "db", "migrations", "Initial"), "Initial migration should exist")

	// Check main files exist
	require.FileExists(t, filepath.Join(projectDir, "upshift.yaml"), "upshift.yaml should exist")
	require.FileExists(t, filepath.Join(projectDir, "db", "migrations", "Initial", "1_create_schema.sql"), "initial schema script should exist")
}

// RequireFileExists asserts that a file exists and optionally checks its content
func RequireFileExists(t *testing.T, path string, checks ...func(content string)) {
	t.Helper()

	require.FileExists(t, path, "File should exist: %s", path)

	if len(checks) > 0 {
		content, err := os.ReadFile(path)
		require.NoError(t, err, "Failed to read file: %s", path)

		contentStr := string(content)
		for _, check := range checks {
			check(contentStr)
		}
	}
}

// RequireFileContains returns a check function that verifies file contains text
func RequireFileContains(t *testing.T, expected string) func(string) {
	return func(content string) {
		require.Contains(t, content, expected, "File should contain: %s", expected)
	}
}

// RequireMigrationCount asserts that a specific number of migration
// directories exist
func RequireMigrationCount(t *testing.T, migrationsDir string, expectedCount int) {
	t.Helper()

	entries, err := os.ReadDir(migrationsDir)
	require.NoError(t, err, "Failed to read migrations directory")

	count := 0
	for _, entry := range entries {
		if entry.IsDir() {
			count++
		}
	}

	require.Equal(t, expectedCount, count, "Should have expected number of migration directories")
}
