package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dhamidi/ucc/lex"
)

func newLexCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "lex <file>",
		Short: "Print the tokens of a C file, one per line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := readSource(cmd, args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			failed := 0
			for tok, err := range lex.NewString(src).All() {
				if err != nil {
					var lexErr *lex.Error
					if !errors.As(err, &lexErr) {
						return fmt.Errorf("lex %s: %w", args[0], err)
					}
					fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", args[0], err)
					failed++
					continue
				}
				fmt.Fprintf(out, "%s\t%s\t%s\n", tok.Pos, tok.Kind, tok)
			}
			if failed > 0 {
				return fmt.Errorf("%s: %d lex errors", args[0], failed)
			}
			return nil
		},
	}
}
