package optim

import (
	"fmt"

	"github.com/born-ml/solver/internal/nn"
	"github.com/born-ml/solver/internal/tensor"
)

// State holds the per-parameter buffers of an update rule.
//
// history has HistoryBuffers() entries per parameter: for AdaDelta the
// squared-gradient averages come first, then the squared-update averages.
// update and temp are scratch space, one per parameter.
type State struct {
	kind    Kind
	n       int
	history []*tensor.RawTensor
	update  []*tensor.RawTensor
	temp    []*tensor.RawTensor
}

// NewState allocates zeroed buffers mirroring params.
func NewState(kind Kind, params []*nn.Parameter) (*State, error) {
	s := &State{kind: kind, n: len(params)}
	for b := 0; b < kind.HistoryBuffers(); b++ {
		for _, p := range params {
			h, err := zerosLike(p)
			if err != nil {
				return nil, err
			}
			s.history = append(s.history, h)
		}
	}
	for _, p := range params {
		u, err := zerosLike(p)
		if err != nil {
			return nil, err
		}
		t, err := zerosLike(p)
		if err != nil {
			return nil, err
		}
		s.update = append(s.update, u)
		s.temp = append(s.temp, t)
	}
	return s, nil
}

func zerosLike(p *nn.Parameter) (*tensor.RawTensor, error) {
	t, err := tensor.NewRaw(p.Shape(), tensor.Float32, p.Data().Device())
	if err != nil {
		return nil, fmt.Errorf("parameter %s: %w", p.Name(), err)
	}
	return t, nil
}

// Len returns the number of parameters the state mirrors.
func (s *State) Len() int {
	return s.n
}

// History returns every history buffer in storage order.
func (s *State) History() []*tensor.RawTensor {
	return s.history
}

// buffers returns the tensors the transforms of parameter i work on.
func (s *State) buffers(i int) buffers {
	b := buffers{
		history: s.history[i],
		update:  s.update[i],
		temp:    s.temp[i],
	}
	if s.kind.HistoryBuffers() == 2 {
		b.history2 = s.history[s.n+i]
	}
	return b
}

// Validate checks that the state still mirrors params.
func (s *State) Validate(params []*nn.Parameter) error {
	if len(params) != s.n {
		return fmt.Errorf("%w: %d parameters, state holds %d", ErrStateMismatch, len(params), s.n)
	}
	for i, p := range params {
		if !p.Shape().Equal(s.update[i].Shape()) {
			return fmt.Errorf("%w: parameter %d (%s) has shape %v, state has %v",
				ErrStateMismatch, i, p.Name(), p.Shape(), s.update[i].Shape())
		}
	}
	return nil
}

// CheckHistory reports whether blobs match the history buffers in count
// and layout.
func (s *State) CheckHistory(blobs []*tensor.RawTensor) error {
	if len(blobs) != len(s.history) {
		return fmt.Errorf("%w: incorrect length of history blobs: got %d, want %d",
			ErrStateMismatch, len(blobs), len(s.history))
	}
	for i, b := range blobs {
		if !b.SameLayout(s.history[i]) {
			return fmt.Errorf("%w: history blob %d has shape %v (%s), want %v (%s)",
				ErrStateMismatch, i, b.Shape(), b.DType(), s.history[i].Shape(), s.history[i].DType())
		}
	}
	return nil
}

// Restore overwrites the history buffers with blobs.
// Nothing is written unless CheckHistory passes.
func (s *State) Restore(blobs []*tensor.RawTensor) error {
	if err := s.CheckHistory(blobs); err != nil {
		return err
	}
	for i, b := range blobs {
		_ = s.history[i].CopyFrom(b)
	}
	return nil
}
