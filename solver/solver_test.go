// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package solver_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/solver/backend/cpu"
	"github.com/born-ml/solver/nn"
	"github.com/born-ml/solver/solver"
)

func TestSolverFacade(t *testing.T) {
	dir := t.TempDir()
	cfg := solver.DefaultConfig()
	cfg.NetParam = &nn.NetParameter{
		Name:      "fit",
		InputDim:  2,
		OutputDim: 1,
		Data:      []nn.DataConfig{{Source: nn.SourceSynthetic, Samples: 32, BatchSize: 8, TaskSeed: 1, Seed: 2}},
	}
	cfg.TestIter = []int{4}
	cfg.TestInterval = 50
	cfg.MaxIter = 100
	cfg.BaseLR = 0.05
	cfg.Momentum = 0.9
	cfg.RandomSeed = 1
	cfg.SnapshotPrefix = filepath.Join(dir, "fit")

	s, err := solver.New(cfg, solver.WithBackend(cpu.New()))
	require.NoError(t, err)
	require.Equal(t, solver.Ready, s.State())

	before, err := s.TestAll()
	require.NoError(t, err)

	require.NoError(t, s.Solve(context.Background(), ""))
	assert.Equal(t, solver.Completed, s.State())

	after, err := s.TestAll()
	require.NoError(t, err)
	assert.Less(t, after[0].Outputs[0].Value, before[0].Outputs[0].Value, "test loss should drop")
	assert.FileExists(t, solver.SnapshotName(cfg.SnapshotPrefix, 100))
}
