// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"math/rand"

	"github.com/born-ml/solver/internal/nn"
	"github.com/born-ml/solver/internal/serialization"
	"github.com/born-ml/solver/tensor"
)

// Phase tells a network whether it is training or evaluating.
type Phase = nn.Phase

// Phases.
const (
	Train = nn.Train
	Test  = nn.Test
)

// ParsePhase parses "TRAIN" or "TEST", case-insensitively.
func ParsePhase(s string) (Phase, error) {
	return nn.ParsePhase(s)
}

// RunContext is passed to every network pass.
type RunContext = nn.RunContext

// Output is a named network output.
type Output = nn.Output

// Net is the contract between the solver and a network.
type Net = nn.Net

// NetState selects which parts of a network definition are active.
type NetState = nn.NetState

// StateOverride is a partially specified NetState, as read from configuration.
type StateOverride = nn.StateOverride

// CopyParams copies values from src into dst, matching parameters by name.
func CopyParams(dst, src []*Parameter) error {
	return nn.CopyParams(dst, src)
}

// Network definitions

// NetParameter is the definition of a regression network.
type NetParameter = nn.NetParameter

// DataConfig describes one data source of a network definition.
type DataConfig = nn.DataConfig

// StateRule restricts a data source to some states.
type StateRule = nn.StateRule

// FillerConfig describes how a parameter is initialized.
type FillerConfig = nn.FillerConfig

// Data source kinds.
const (
	SourceSynthetic = nn.SourceSynthetic
	SourceCSV       = nn.SourceCSV
)

// ReadNetParameter reads a network definition file.
func ReadNetParameter(path string) (*NetParameter, error) {
	return nn.ReadNetParameter(path)
}

// Build creates the network of p for state. Equal seeds give equal networks.
//
// Example:
//
//	p, _ := nn.ReadNetParameter("net.yaml")
//	net, err := nn.Build(p, nn.NetState{Phase: nn.Train}, cpu.New(), 1)
func Build(p *NetParameter, state NetState, backend tensor.Backend, seed int64) (*Regression, error) {
	return nn.Build(p, state, backend, seed)
}

// Reference network

// Regression is a fully connected layer trained with a Euclidean loss.
type Regression = nn.Regression

// RegressionConfig configures a Regression network.
type RegressionConfig = nn.RegressionConfig

// Output names of Regression.
const (
	OutputLoss = nn.OutputLoss
	OutputMAE  = nn.OutputMAE
)

// NewRegression creates a regression network reading batches from source.
func NewRegression(cfg RegressionConfig, source DataSource, backend tensor.Backend, rng *rand.Rand) (*Regression, error) {
	return nn.NewRegression(cfg, source, backend, rng)
}

// Data sources

// DataSource serves samples to a network.
type DataSource = nn.DataSource

// MemorySource serves samples held in memory.
type MemorySource = nn.MemorySource

// SyntheticConfig describes a generated linear regression task.
type SyntheticConfig = nn.SyntheticConfig

// NewMemorySource creates a source from parallel input and target rows.
func NewMemorySource(inputs, targets [][]float32) (*MemorySource, error) {
	return nn.NewMemorySource(inputs, targets)
}

// ReadCSVFile reads a source whose rows hold inputDim inputs then outputDim targets.
func ReadCSVFile(path string, inputDim, outputDim int, header bool) (*MemorySource, error) {
	return nn.ReadCSVFile(path, inputDim, outputDim, header)
}

// NewSyntheticSource generates samples of a random linear task.
func NewSyntheticSource(cfg SyntheticConfig) (*MemorySource, error) {
	return nn.NewSyntheticSource(cfg)
}

// Parameter artifacts

// TrainingMeta records where in a training run an artifact was taken.
type TrainingMeta = serialization.TrainingMeta

// Header is the metadata of a parameter artifact.
type Header = serialization.Header

// SaveParameters writes the parameters of net to path.
// With includeGrads the gradients are stored as "<name>.grad" tensors.
func SaveParameters(path string, net Net, includeGrads bool, training *TrainingMeta) error {
	return nn.SaveParameters(path, net, includeGrads, training)
}

// LoadParameters reads the parameters of net from path by name.
// On error net is unchanged.
func LoadParameters(path string, net Net) (Header, error) {
	return nn.LoadParameters(path, net)
}

// StagedParameters holds checked parameter values not yet written into a net.
type StagedParameters = nn.StagedParameters

// ReadParameters reads and checks the parameters of net from path without changing net.
func ReadParameters(path string, net Net) (*StagedParameters, error) {
	return nn.ReadParameters(path, net)
}
