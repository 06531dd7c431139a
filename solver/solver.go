// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package solver

import (
	"github.com/born-ml/solver/internal/config"
	"github.com/born-ml/solver/internal/solver"
	"github.com/born-ml/solver/tensor"
)

// Solver is the training loop state machine.
type Solver = solver.Solver

// Config is the configuration of a training run.
type Config = config.Solver

// State is the lifecycle state of a Solver.
type State = solver.State

// Solver states.
const (
	Uninitialized = solver.Uninitialized
	Ready         = solver.Ready
	Running       = solver.Running
	Testing       = solver.Testing
	Snapshotting  = solver.Snapshotting
	Completed     = solver.Completed
)

// Option configures a Solver.
type Option = solver.Option

// NetFactory builds a network from its definition.
type NetFactory = solver.NetFactory

// TestResult is the outcome of evaluating one test net.
type TestResult = solver.TestResult

// TestOutput is the mean of one output value over an evaluation.
type TestOutput = solver.TestOutput

// SnapshotPaths names the two files of a snapshot.
type SnapshotPaths = solver.SnapshotPaths

// Errors returned by New, Solve and Restore.
var (
	ErrConfig = solver.ErrConfig
	ErrState  = solver.ErrState
)

// New validates cfg and builds the networks and the update rule.
//
// Example:
//
//	cfg := solver.DefaultConfig()
//	cfg.Net = "net.yaml"
//	cfg.MaxIter = 1000
//	s, err := solver.New(cfg, solver.WithBackend(cpu.New()))
func New(cfg *Config, opts ...Option) (*Solver, error) {
	return solver.New(cfg, opts...)
}

// WithBackend uses be instead of opening the backend named by solver_mode.
func WithBackend(be tensor.Backend) Option {
	return solver.WithBackend(be)
}

// WithNetFactory replaces the network builder.
func WithNetFactory(f NetFactory) Option {
	return solver.WithNetFactory(f)
}

// ReadConfig reads and validates a solver configuration file.
func ReadConfig(path string) (*Config, error) {
	return config.Read(path)
}

// DefaultConfig returns a configuration holding only default values.
func DefaultConfig() *Config {
	return config.Default()
}

// SnapshotName returns the parameter artifact name for iter.
func SnapshotName(prefix string, iter int) string {
	return solver.SnapshotName(prefix, iter)
}
