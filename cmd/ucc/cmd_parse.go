package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dhamidi/ucc/config"
	"github.com/dhamidi/ucc/format"
	"github.com/dhamidi/ucc/grammar"
	"github.com/dhamidi/ucc/parse"
)

func newParseCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a C file and dump the parse tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tree, err := parseFile(cmd, a, args[0])
			if err != nil {
				return err
			}
			enc, err := format.New(a.cfg.Format, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			if err := enc.Encode(tree); err != nil {
				return fmt.Errorf("encode: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringP("format", "f", "tree", "output format (tree, sexpr, json)")
	_ = a.v.BindPFlag(config.KeyFormat, cmd.Flags().Lookup("format"))

	return cmd
}

func parseFile(cmd *cobra.Command, a *app, path string) (*parse.Node, error) {
	src, err := readSource(cmd, path)
	if err != nil {
		return nil, err
	}
	g, err := grammar.C()
	if err != nil {
		return nil, fmt.Errorf("build grammar: %w", err)
	}
	tree, err := parse.ParseString(g, src, a.cfg.ParseOptions()...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return tree, nil
}
