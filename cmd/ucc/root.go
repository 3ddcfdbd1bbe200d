package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/dhamidi/ucc/config"
)

// app carries the resolved configuration to the subcommands.
type app struct {
	v   *viper.Viper
	cfg config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}
	var configFile string

	rootCmd := &cobra.Command{
		Use:          "ucc",
		Short:        "A small C front end",
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config.Defaults(a.v)
			if err := config.ReadFile(a.v, configFile); err != nil {
				return err
			}
			cfg, err := config.Load(a.v)
			if err != nil {
				return err
			}
			a.cfg = cfg
			commonlog.Configure(cfg.Verbosity, cfg.LogPath())
			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "config file (yaml, toml or json)")
	flags.Int("max-states", 0, "maximum number of live parser states (default 1000000)")
	flags.String("ambiguity", "", "what to do with ambiguous input: error or first (default error)")
	flags.CountP("verbose", "v", "log verbosity, repeat for more")
	flags.String("log-file", "", "write logs to this file instead of stderr")

	_ = a.v.BindPFlag(config.KeyMaxStates, flags.Lookup("max-states"))
	_ = a.v.BindPFlag(config.KeyAmbiguity, flags.Lookup("ambiguity"))
	_ = a.v.BindPFlag(config.KeyVerbose, flags.Lookup("verbose"))
	_ = a.v.BindPFlag(config.KeyLogFile, flags.Lookup("log-file"))

	rootCmd.AddCommand(newLexCmd(a))
	rootCmd.AddCommand(newParseCmd(a))
	rootCmd.AddCommand(newASTCmd(a))
	rootCmd.AddCommand(newGrammarCmd(a))
	rootCmd.AddCommand(newLSPCmd(a))

	return rootCmd
}

// readSource reads the named file, or stdin for "-".
func readSource(cmd *cobra.Command, path string) (string, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}
