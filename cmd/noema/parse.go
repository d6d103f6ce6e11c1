package main

import (
	"fmt"
	"os"

	"github.com/kr/pretty"
	"github.com/spf13/cobra"

	"github.com/noema-lang/noema/parser"
)

func newParseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse <file>",
		Short: "parse a Noema expression and print its abstract syntax tree",
		Args:  cobra.ExactArgs(1),
		RunE:  runParse,
	}
}

func runParse(cmd *cobra.Command, args []string) error {
	path := args[0]
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	expr, err := parser.ParseExpr(path, src)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), pretty.Sprint(expr))
	return nil
}
