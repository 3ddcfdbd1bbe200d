package main

import (
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/exp/ebnf"

	"github.com/dhamidi/ucc/grammar"
)

func newGrammarCmd(a *app) *cobra.Command {
	var verify bool

	cmd := &cobra.Command{
		Use:   "grammar",
		Short: "Print the C grammar as EBNF",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := grammar.C()
			if err != nil {
				return fmt.Errorf("build grammar: %w", err)
			}
			text := g.EBNF()

			if verify {
				start := string(g.Start())
				parsed, err := ebnf.Parse("c.ebnf", strings.NewReader(text))
				if err != nil {
					printErrors(cmd.ErrOrStderr(), err)
					return fmt.Errorf("grammar does not parse as EBNF")
				}
				if err := ebnf.Verify(parsed, start); err != nil {
					printErrors(cmd.ErrOrStderr(), err)
					return fmt.Errorf("grammar does not verify from %s", start)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "ok: %d productions reachable from %s\n", len(parsed), start)
				return nil
			}

			_, err = io.WriteString(cmd.OutOrStdout(), text)
			return err
		},
	}

	cmd.Flags().BoolVar(&verify, "verify", false, "check that the EBNF rendering parses and verifies")

	return cmd
}

// printErrors prints each error of an error list on its own line.
func printErrors(w io.Writer, err error) {
	v := reflect.ValueOf(err)
	if v.Kind() == reflect.Slice {
		for i := 0; i < v.Len(); i++ {
			fmt.Fprintln(w, v.Index(i).Interface())
		}
	} else {
		fmt.Fprintln(w, err)
	}
}
