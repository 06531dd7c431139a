// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim provides the update rules of the solver.
//
// # Overview
//
// This package contains:
//   - SGD: stochastic gradient descent with momentum
//   - Nesterov: SGD with the Nesterov look-ahead correction
//   - AdaGrad: per-element rates from accumulated squared gradients
//   - RMSProp: per-element rates from a decaying squared gradient average
//   - AdaDelta: rates from decaying averages of squared gradients and updates
//
// Every rule shares the same preamble: the learning rate schedule, the
// per-parameter multipliers, accumulation scaling and L1/L2 regularization.
// The rule leaves the step in each parameter's gradient buffer; the network
// applies it with data -= grad.
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/solver/backend/cpu"
//	    "github.com/born-ml/solver/optim"
//	)
//
//	func main() {
//	    rule, err := optim.New(optim.Nesterov, optim.Hyper{
//	        Schedule:       optim.Schedule{Policy: optim.PolicyFixed, BaseLR: 0.01},
//	        Momentum:       0.9,
//	        WeightDecay:    0.0005,
//	        UpdateInterval: 1,
//	    }, cpu.New())
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    if err := rule.PreSolve(net.Params()); err != nil {
//	        log.Fatal(err)
//	    }
//
//	    for iter := 0; iter < 1000; iter++ {
//	        net.ForwardBackward(rc)
//	        if err := rule.ComputeUpdate(net.Params(), iter); err != nil {
//	            log.Fatal(err)
//	        }
//	        net.Update()
//	    }
//	}
//
// # Learning Rate Policies
//
//	fixed: base_lr
//	step:  base_lr * gamma ^ floor(iter / stepsize)
//	exp:   base_lr * gamma ^ iter
//	inv:   base_lr * (1 + gamma * iter) ^ (-power)
//
// # Optimizer State
//
// History buffers persist across iterations: one per parameter, two for
// AdaDelta (squared gradients, then squared updates). Rule.History returns
// them in that order for snapshots and Rule.RestoreHistory puts them back.
package optim
