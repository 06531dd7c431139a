// Package optim implements the update rules that turn parameter gradients into steps.
//
// A Rule is one of a closed set of kinds (SGD, Nesterov, AdaGrad, RMSProp,
// AdaDelta). All kinds share the same per-parameter preamble (learning rate
// schedule, multipliers, accumulation scaling, regularization) and then run
// a kind-specific transform that leaves the step in each parameter's
// gradient buffer. The network applies it with data -= grad.
//
// Example usage:
//
//	rule, err := optim.New(optim.SGD, optim.Hyper{
//	    Schedule:       optim.Schedule{Policy: optim.PolicyStep, BaseLR: 0.01, Gamma: 0.1, StepSize: 1000},
//	    Momentum:       0.9,
//	    WeightDecay:    0.0005,
//	    Regularization: optim.L2,
//	    UpdateInterval: 1,
//	}, backend)
//	if err := rule.PreSolve(net.Params()); err != nil { ... }
//
//	for iter := 0; iter < maxIter; iter++ {
//	    net.ForwardBackward(rc)
//	    rule.ComputeUpdate(net.Params(), iter)
//	    net.Update()
//	}
package optim

import "errors"

// Configuration and state errors.
var (
	ErrUnknownKind           = errors.New("unknown solver type")
	ErrUnknownPolicy         = errors.New("unknown learning rate policy")
	ErrUnknownRegularization = errors.New("unknown regularization type")
	ErrStateMismatch         = errors.New("optimizer state does not match parameters")
	ErrNotInitialized        = errors.New("optimizer state not initialized")
)
