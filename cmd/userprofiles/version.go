package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/reglet-dev/userprofiles/internal/version"
)

// versionCmd implements the version command.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of userprofiles",
	Run: func(cmd *cobra.Command, _ []string) {
		info := version.Get()
		fmt.Fprintf(cmd.OutOrStdout(), "userprofiles version %s\n", info.Full())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
