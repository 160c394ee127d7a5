package main

import (
	"io"
	"os"

	"github.com/baditaflorin/l"
)

// newCLILogger builds the command logger. Silent unless verbose is set, so
// normal runs print nothing but the results.
func newCLILogger(verbose bool) (l.Logger, error) {
	var output io.Writer = io.Discard
	if verbose {
		output = os.Stderr
	}
	return l.NewStandardFactory().CreateLogger(l.Config{
		Output:     output,
		JsonFormat: false,
		AsyncWrite: false,
	})
}
