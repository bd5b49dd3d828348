// Package main implements synshell, the command-line and REPL front end
// over pkg/engine.Engine: tell, query, goal, repl and bench subcommands
// against one grammar, loaded from a YAML config plus flags.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/enriquepablo/syntreenet/internal/synconfig"
	"github.com/enriquepablo/syntreenet/internal/synlog"
	"github.com/enriquepablo/syntreenet/pkg/engine"
)

var (
	configPath  string
	grammarPath string
	verbose     bool

	logger *zap.Logger
	eng    *engine.Engine
)

var rootCmd = &cobra.Command{
	Use:   "synshell",
	Short: "A forward-chaining production-rule shell",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := "info"
		if verbose {
			level = "debug"
		}
		l, err := synlog.New(level)
		if err != nil {
			return fmt.Errorf("synshell: building logger: %w", err)
		}
		logger = l

		cfg := synconfig.Defaults()
		if configPath != "" {
			c, err := synconfig.Load(configPath)
			if err != nil {
				return err
			}
			cfg = c
		}
		if grammarPath != "" {
			src, err := os.ReadFile(grammarPath)
			if err != nil {
				return fmt.Errorf("synshell: reading grammar file: %w", err)
			}
			cfg.Grammar = string(src)
		}
		if cfg.Grammar == "" {
			return fmt.Errorf("synshell: no grammar configured; pass --grammar or set it in --config")
		}

		e, err := buildEngine(cfg, logger)
		if err != nil {
			return err
		}
		eng = e
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML synconfig.Config file")
	rootCmd.PersistentFlags().StringVar(&grammarPath, "grammar", "", "path to a grammar DSL file (overrides --config's grammar)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(tellCmd, queryCmd, goalCmd, replCmd, benchCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
