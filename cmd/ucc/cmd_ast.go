package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dhamidi/ucc/ast"
)

func newASTCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ast <file>",
		Short: "Print the top-level declarations of a C file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tree, err := parseFile(cmd, a, args[0])
			if err != nil {
				return err
			}
			root, err := ast.Build(tree)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			for _, stmt := range root.Statements {
				fmt.Fprintln(cmd.OutOrStdout(), stmt)
			}
			return nil
		},
	}
}
