package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/born-ml/solver/internal/log"
)

// rootCmd represents the base command when called without any sub commands.
var rootCmd = &cobra.Command{
	Use:   "solver",
	Short: "Trains networks from solver configuration files.",
	Long: `solver drives the training of a network: forward/backward passes, the
update rule (SGD, Nesterov, AdaGrad, RMSProp, AdaDelta), periodic evaluation
and snapshots that a later run can resume from.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().String("log-level", "info", "log level: debug, info, warning, error or critical")
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setupLogging installs the process logger at the level given by --log-level.
func setupLogging(cmd *cobra.Command, _ []string) {
	log.Default()

	name, err := cmd.Flags().GetString("log-level")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: flag - %v\n", err)
		_ = cmd.Usage()
		os.Exit(2)
	}
	level, err := log.ParseLevel(name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		_ = cmd.Usage()
		os.Exit(2)
	}
	if err := log.SetLevel(level); err != nil {
		log.Fatalf("Setting log level failed: %v", err)
	}
}
