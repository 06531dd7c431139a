package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

const version = "v0.1.0-dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Shows the version",
	Args:  cobra.NoArgs,
	Run: func(*cobra.Command, []string) {
		fmt.Printf("solver %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
