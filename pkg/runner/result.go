package runner

// Result describes the outcome of a single runner operation. It is returned
// alongside the error rather than instead of it: when an operation fails part
// way through, ExecutedScripts still lists the work that completed before the
// run stopped.
type Result struct {
	// Message is a one-line, human-readable summary of what the operation
	// did. It is only set when the operation succeeded.
	Message string

	// ExecutedScripts lists the script files that were executed, in order,
	// across all migrations touched by the operation.
	ExecutedScripts []string
}
