package cmd

import (
	"fmt"
	"os"

	"github.com/saaskit-dev/upshift/pkg/engine"
	"github.com/saaskit-dev/upshift/pkg/runner"
)

// newGateway builds an engine gateway from the resolved configuration.
func newGateway() (engine.Gateway, error) {
	return engine.New(engine.Config{
		Engine:   currentConfig.Engine,
		DSN:      currentConfig.ConnectionStrings.Default,
		AdminDSN: currentConfig.ConnectionStrings.Admin,
	})
}

// newRunner builds a migration runner reading from the configured migrations
// directory.
func newRunner() (*runner.Runner, error) {
	gw, err := newGateway()
	if err != nil {
		return nil, err
	}

	return runner.New(gw, os.DirFS(currentConfig.Dir)), nil
}

func printResult(res *runner.Result) {
	fmt.Printf("✅ %s\n", res.Message)
	printScripts(res.ExecutedScripts)
}

// printFailure reports a failed operation along with the scripts that ran
// before the failure, then hands the error back for the exit path.
func printFailure(res *runner.Result, err error) error {
	fmt.Printf("❌ %v\n", err)
	if res != nil {
		printScripts(res.ExecutedScripts)
	}

	return err
}

func printScripts(scripts []string) {
	for _, name := range scripts {
		fmt.Printf("  📄 %s\n", name)
	}
}
