package sqlsplit_test

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gotest.tools/v3/golden"

	"github.com/saaskit-dev/upshift/pkg/sqlsplit"
)

// TestGoldenScripts runs the splitter over complete migration scripts and
// compares against checked-in golden files, one "-- statement N" block per
// extracted statement.
func TestGoldenScripts(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("testdata", "*.in.sql"))
	require.NoError(t, err)
	require.NotEmpty(t, matches, "No *.in.sql files found in testdata directory")

	for _, inputFile := range matches {
		outputName := strings.TrimSuffix(filepath.Base(inputFile), ".in.sql") + ".golden"

		t.Run(outputName, func(t *testing.T) {
			script, err := os.ReadFile(inputFile)
			require.NoError(t, err)

			var buf strings.Builder
			for i, stmt := range sqlsplit.Split(string(script)) {
				fmt.Fprintf(&buf, "-- statement %d\n%s\n", i+1, stmt)
			}

			golden.Assert(t, buf.String(), outputName)
		})
	}
}
