package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/born-ml/solver/internal/backend"
	"github.com/born-ml/solver/internal/backend/cpu"
	"github.com/born-ml/solver/internal/log"
)

var deviceCmd = &cobra.Command{
	Use:    "device",
	Short:  "Shows the backend an execution mode resolves to",
	Args:   cobra.NoArgs,
	PreRun: setupLogging,
	Run:    runDevice,
}

func init() {
	rootCmd.AddCommand(deviceCmd)

	deviceCmd.Flags().StringP("mode", "m", "CPU", "execution mode: CPU or GPU")
	deviceCmd.Flags().Int("id", 0, "GPU device id")
}

func runDevice(cmd *cobra.Command, _ []string) {
	name, _ := cmd.Flags().GetString("mode")
	id, _ := cmd.Flags().GetInt("id")

	mode, err := backend.ParseMode(name)
	if err != nil {
		log.Fatalf("%v", err)
	}
	be, err := backend.Open(mode, id)
	if err != nil {
		log.Fatalf("Opening %s device %d failed: %v", mode, id, err)
	}

	fmt.Printf("Mode:    %s\n", mode)
	fmt.Printf("Backend: %s\n", be.Name())
	fmt.Printf("Device:  %s\n", be.Device())
	if c, ok := be.(*cpu.CPUBackend); ok {
		fmt.Printf("CPU:     %s\n", c.Brand())
		fmt.Printf("Workers: %d\n", c.Parallel().NumWorkers)
	}
}
