package optim

import (
	"fmt"

	"github.com/born-ml/solver/internal/nn"
	"github.com/born-ml/solver/internal/tensor"
)

// Rule is a configured update rule of one Kind.
//
// Rule is not safe for concurrent use. The solver calls it from a single goroutine.
type Rule struct {
	kind    Kind
	hyper   Hyper
	backend tensor.Backend
	state   *State
}

// New creates an update rule after validating its hyperparameters.
// Configuration errors surface here, never from ComputeUpdate.
func New(kind Kind, hyper Hyper, backend tensor.Backend) (*Rule, error) {
	if kind < SGD || kind > AdaDelta {
		return nil, fmt.Errorf("%w: %v", ErrUnknownKind, kind)
	}
	if backend == nil {
		return nil, fmt.Errorf("%s: nil backend", kind)
	}
	if err := hyper.Validate(kind); err != nil {
		return nil, fmt.Errorf("%s: %w", kind, err)
	}
	return &Rule{kind: kind, hyper: hyper, backend: backend}, nil
}

// Kind returns the update rule kind.
func (r *Rule) Kind() Kind {
	return r.kind
}

// Hyper returns the hyperparameters.
func (r *Rule) Hyper() Hyper {
	return r.hyper
}

// State returns the optimizer state, or nil before PreSolve.
func (r *Rule) State() *State {
	return r.state
}

// PreSolve (re)allocates zeroed state buffers mirroring params.
func (r *Rule) PreSolve(params []*nn.Parameter) error {
	s, err := NewState(r.kind, params)
	if err != nil {
		return err
	}
	r.state = s
	return nil
}

// LearningRate returns the global rate at iter, before multipliers and accumulation scaling.
func (r *Rule) LearningRate(iter int) float32 {
	return r.hyper.Schedule.Rate(iter)
}

// ComputeUpdate turns every parameter gradient into the step for iteration iter.
// On return each Grad() holds the value the network subtracts from Data().
func (r *Rule) ComputeUpdate(params []*nn.Parameter, iter int) error {
	if r.state == nil {
		return ErrNotInitialized
	}
	if err := r.state.Validate(params); err != nil {
		return err
	}

	rate := r.LearningRate(iter)
	decay := r.hyper.WeightDecay
	if n := r.hyper.UpdateInterval; n > 1 {
		rate /= float32(n)
		decay *= float32(n)
	}

	for i, p := range params {
		localRate := rate * p.LRMult
		localDecay := decay * p.DecayMult
		b := r.state.buffers(i)
		b.data = p.Data()
		b.grad = p.Grad()

		if localDecay != 0 {
			r.regularize(localDecay, b)
		}

		switch r.kind {
		case SGD:
			sgdUpdate(r.backend, localRate, r.hyper, b)
		case Nesterov:
			nesterovUpdate(r.backend, localRate, r.hyper, b)
		case AdaGrad:
			adaGradUpdate(r.backend, localRate, r.hyper, b)
		case RMSProp:
			rmsPropUpdate(r.backend, localRate, r.hyper, b)
		case AdaDelta:
			adaDeltaUpdate(r.backend, localRate, r.hyper, b)
		}
	}
	return nil
}

func (r *Rule) regularize(decay float32, b buffers) {
	switch r.hyper.Regularization {
	case L2:
		r.backend.Axpy(decay, b.data, b.grad)
	case L1:
		r.backend.Sign(b.data, b.temp)
		r.backend.Axpy(decay, b.temp, b.grad)
	}
}

// History returns the history buffers in storage order, or nil before PreSolve.
func (r *Rule) History() []*tensor.RawTensor {
	if r.state == nil {
		return nil
	}
	return r.state.History()
}

// CheckHistory reports whether blobs could be restored, without changing the state.
func (r *Rule) CheckHistory(blobs []*tensor.RawTensor) error {
	if r.state == nil {
		return ErrNotInitialized
	}
	return r.state.CheckHistory(blobs)
}

// RestoreHistory replaces the history buffers with blobs.
// A count or shape mismatch returns ErrStateMismatch and leaves the state untouched.
func (r *Rule) RestoreHistory(blobs []*tensor.RawTensor) error {
	if r.state == nil {
		return ErrNotInitialized
	}
	return r.state.Restore(blobs)
}
