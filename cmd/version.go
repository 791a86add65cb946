package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version 由构建时 -ldflags "-X notesum/cmd.Version=..." 注入
var Version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "notesum", Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
