package main

import (
	"github.com/spf13/cobra"
)

// newRootCmd assembles the noema command tree. Following
// cmd/cue/cmd/root.go's New, errors are silenced at the cobra level and
// printed once by main so a failing subcommand doesn't dump cobra's
// own usage text on top of the real error.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "noema",
		Short:         "parse and normalize Noema configuration expressions",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.AddCommand(newParseCmd())
	root.AddCommand(newNormalizeCmd())
	return root
}
