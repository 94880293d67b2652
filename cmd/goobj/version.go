package main

import (
	"fmt"

	"github.com/philipparndt/goobj/version"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "goobj %s\n", version.GetVersion())
		fmt.Fprintf(out, "commit: %s\n", version.GitCommit)
		fmt.Fprintf(out, "built: %s\n", version.BuildDate)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
