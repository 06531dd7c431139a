// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package optim

import (
	"github.com/born-ml/solver/internal/optim"
	"github.com/born-ml/solver/nn"
	"github.com/born-ml/solver/tensor"
)

// Kind identifies an update rule.
type Kind = optim.Kind

// Update rule kinds.
const (
	SGD      = optim.SGD
	Nesterov = optim.Nesterov
	AdaGrad  = optim.AdaGrad
	RMSProp  = optim.RMSProp
	AdaDelta = optim.AdaDelta
)

// Policy is a learning rate schedule.
type Policy = optim.Policy

// Learning rate policies.
const (
	PolicyFixed = optim.PolicyFixed
	PolicyStep  = optim.PolicyStep
	PolicyExp   = optim.PolicyExp
	PolicyInv   = optim.PolicyInv
)

// Schedule computes the global learning rate for an iteration.
type Schedule = optim.Schedule

// Regularization selects the weight decay penalty.
type Regularization = optim.Regularization

// Regularization kinds.
const (
	L2 = optim.L2
	L1 = optim.L1
)

// Hyper holds the hyperparameters shared by all update rules.
type Hyper = optim.Hyper

// Rule computes parameter steps for one update rule kind.
type Rule = optim.Rule

// State is the optimizer history of a rule.
type State = optim.State

// Errors returned by rule construction and state handling.
var (
	ErrUnknownKind           = optim.ErrUnknownKind
	ErrUnknownPolicy         = optim.ErrUnknownPolicy
	ErrUnknownRegularization = optim.ErrUnknownRegularization
	ErrStateMismatch         = optim.ErrStateMismatch
	ErrNotInitialized        = optim.ErrNotInitialized
)

// New creates an update rule. Call PreSolve before the first ComputeUpdate.
//
// Example:
//
//	rule, err := optim.New(optim.AdaGrad, optim.Hyper{
//	    Schedule:       optim.Schedule{BaseLR: 0.01},
//	    Delta:          optim.DefaultDelta,
//	    UpdateInterval: 1,
//	}, cpu.New())
func New(kind Kind, hyper Hyper, backend tensor.Backend) (*Rule, error) {
	return optim.New(kind, hyper, backend)
}

// NewState allocates zeroed history buffers shaped like params.
func NewState(kind Kind, params []*nn.Parameter) (*State, error) {
	return optim.NewState(kind, params)
}

// DefaultDelta is the default numerical stability term of the adaptive rules.
const DefaultDelta = optim.DefaultDelta

// ParseKind resolves a solver type name such as "SGD", "AdaGrad" or "ada_delta".
func ParseKind(s string) (Kind, error) {
	return optim.ParseKind(s)
}

// ParsePolicy resolves a learning rate policy name.
func ParsePolicy(s string) (Policy, error) {
	return optim.ParsePolicy(s)
}

// ParseRegularization resolves "L1" or "L2".
func ParseRegularization(s string) (Regularization, error) {
	return optim.ParseRegularization(s)
}
