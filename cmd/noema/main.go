// Command noema is a thin CLI wrapper over the parser and evaluator
// packages: it has no evaluation logic of its own. It mirrors
// cmd/cue/cmd/root.go's construction of a root *cobra.Command with
// AddCommand'd subcommands, leaving the interactive UI and every other
// cmd/cue concern out of scope, so only "parse" and "normalize" are
// provided here.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
