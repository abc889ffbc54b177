package main

import (
	"fmt"
	"strings"

	loggers "github.com/erwanM974/graph-process-manager-loggers"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of gpmlog",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "gpmlog version %s\n", strings.TrimSpace(loggers.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
