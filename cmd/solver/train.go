package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/born-ml/solver/internal/config"
	"github.com/born-ml/solver/internal/log"
	"github.com/born-ml/solver/internal/nn"
	"github.com/born-ml/solver/internal/solver"
)

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Trains a network",
	Long: `Trains the network named by a solver configuration file.

With --snapshot the run resumes from a solver state written by an earlier
run. With --weights the training net starts from a parameter artifact
instead of its fillers. SIGINT and SIGTERM stop the run after the current
iteration and write a snapshot.`,
	Args:   cobra.NoArgs,
	PreRun: setupLogging,
	Run:    runTrain,
}

func init() {
	rootCmd.AddCommand(trainCmd)

	trainCmd.Flags().StringP("solver", "s", "", "solver configuration file (yaml, json or toml)")
	trainCmd.Flags().String("snapshot", "", "solver state file to resume training from")
	trainCmd.Flags().String("weights", "", "parameter artifact to initialize the training net from")
	trainCmd.Flags().Int("gpu", -1, "GPU device id; overrides solver_mode and device_id")
	_ = trainCmd.MarkFlagRequired("solver")
}

func runTrain(cmd *cobra.Command, _ []string) {
	flags := cmd.Flags()
	path, _ := flags.GetString("solver")
	snapshot, _ := flags.GetString("snapshot")
	weights, _ := flags.GetString("weights")
	gpu, _ := flags.GetInt("gpu")

	if snapshot != "" && weights != "" {
		log.Fatalf("Give a snapshot to resume training or weights to finetune, but not both.")
	}

	cfg, err := config.Read(path)
	if err != nil {
		log.Fatalf("Reading solver configuration failed: %v", err)
	}
	if gpu >= 0 {
		cfg.SolverMode = "GPU"
		cfg.DeviceID = gpu
	}
	log.Debugf("Solver configuration: %+v", *cfg)

	s, err := solver.New(cfg)
	if err != nil {
		log.Fatalf("Initializing solver failed: %v", err)
	}
	if weights != "" {
		log.Infof("Finetuning from %s", weights)
		if _, err := nn.LoadParameters(weights, s.Net()); err != nil {
			log.Fatalf("Loading weights failed: %v", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Infof("Starting Optimization")
	if err := s.Solve(ctx, snapshot); err != nil {
		log.Fatalf("Training failed at iteration %d: %v", s.Iter(), err)
	}
}
