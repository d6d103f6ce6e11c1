package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/noema-lang/noema/internal/core/eval"
	"github.com/noema-lang/noema/internal/noemafmt"
	"github.com/noema-lang/noema/parser"
)

func newNormalizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "normalize <file>",
		Short: "parse, normalize and print a Noema expression",
		Args:  cobra.ExactArgs(1),
		RunE:  runNormalize,
	}
}

func runNormalize(cmd *cobra.Command, args []string) error {
	path := args[0]
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	expr, err := parser.ParseExpr(path, src)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), noemafmt.Sprint(eval.Normalize(expr)))
	return nil
}
