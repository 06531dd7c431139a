// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package solver trains networks from solver configuration files.
//
// # Overview
//
// A Solver owns a training network, zero or more evaluation networks and an
// update rule. Solve runs the iteration loop:
//   - snapshot on multiples of snapshot (not at the iteration it started from)
//   - evaluate the test nets on multiples of test_interval
//   - forward/backward, accumulated over update_interval passes
//   - log the smoothed loss and the learning rate on display iterations
//   - compute the update with the rule and apply it
//
// # Basic Usage
//
//	import (
//	    "context"
//
//	    "github.com/born-ml/solver/solver"
//	)
//
//	func main() {
//	    cfg, err := solver.ReadConfig("solver.yaml")
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    s, err := solver.New(cfg)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    if err := s.Solve(context.Background(), ""); err != nil {
//	        log.Fatal(err)
//	    }
//	}
//
// # Configuration
//
//	net: net.yaml
//	test_iter: [10]
//	test_interval: 500
//	base_lr: 0.01
//	lr_policy: step
//	gamma: 0.1
//	stepsize: 2000
//	momentum: 0.9
//	weight_decay: 0.0005
//	max_iter: 10000
//	display: 100
//	snapshot: 5000
//	snapshot_prefix: snapshots/fit
//	solver_type: Nesterov
//
// # Snapshots
//
// A snapshot is two files: the network parameters
// (<prefix>_iter_<N>.born) and the optimizer state
// (<prefix>_iter_<N>.born.solverstate). Passing the state file to Solve
// resumes the run from iteration N with the same history.
package solver
