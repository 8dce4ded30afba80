package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

const version = "0.3.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  `Display the current version of the dayreplay CLI.`,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "dayreplay version %s\n", version)
		fmt.Fprintln(out, "A daily bar replay trainer for TDX data")
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
