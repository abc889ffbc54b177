package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "gpmlog",
	Short: "gpmlog replays graph exploration traces through process loggers",
	Long: `gpmlog feeds a recorded exploration (a YAML or JSON list of lifecycle events)
to the configured loggers: an NFAIT automaton builder, a path tracer, a node
printer and the observability loggers. Artifacts go to a directory or to Redis.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "Path to gpmlog.yaml (defaults apply when empty)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("log-format", "", "Log format: text or json")
}
