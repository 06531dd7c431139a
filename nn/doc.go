// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn defines the network contract the solver trains, and a reference
// regression network that implements it.
//
// # Overview
//
// The solver never looks inside a network. It calls the operations of Net:
//   - ForwardBackward: one training pass, gradients overwritten
//   - Forward: one evaluation pass, returning the loss and the outputs
//   - AccumulateGradients / FinalizeAccumulatedGradients: micro-batching
//   - Update: apply data -= grad to every parameter
//   - CopyTrainedFrom: copy parameter values by name
//
// Every call receives a RunContext carrying the phase, so networks keep no
// global train/test switch.
//
// # Reference Network
//
// Regression is a fully connected layer with a Euclidean loss over an
// in-memory, CSV or synthetic data source. Its definition (NetParameter) is
// read from yaml, json or toml:
//
//	name: fit
//	input_dim: 4
//	output_dim: 1
//	data:
//	  - source: csv
//	    path: train.csv
//	    batch_size: 32
//	    include: [{phase: TRAIN}]
//	  - source: csv
//	    path: test.csv
//	    batch_size: 100
//	    include: [{phase: TEST}]
//
// # Parameter Artifacts
//
// SaveParameters and LoadParameters write and read a network's parameters
// as a .born file, matching tensors to parameters by name.
package nn
