package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dhamidi/ucc/grammar"
	"github.com/dhamidi/ucc/lsp"
)

func newLSPCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := grammar.C()
			if err != nil {
				return fmt.Errorf("build grammar: %w", err)
			}
			server := lsp.NewServer(version, g, a.cfg.ParseOptions()...)
			return server.RunStdio()
		},
	}
}
