// Package nn defines the trainable network contract the solver drives, and a
// reference fully connected regression network implementing it.
package nn

import (
	"fmt"
	"strings"
)

// Phase selects training or evaluation behavior.
type Phase int

// Network phases.
const (
	Train Phase = iota
	Test
)

// String implements fmt.Stringer.
func (p Phase) String() string {
	switch p {
	case Train:
		return "TRAIN"
	case Test:
		return "TEST"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// ParsePhase parses "TRAIN" or "TEST", case-insensitively.
func ParsePhase(s string) (Phase, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "TRAIN":
		return Train, nil
	case "TEST":
		return Test, nil
	default:
		return 0, fmt.Errorf("unknown phase %q", s)
	}
}

// RunContext carries the per-call execution flags of a network operation.
type RunContext struct {
	Phase Phase
	// Accumulate is set while gradients are summed across micro-batches.
	Accumulate bool
	// DebugInfo asks the network to log per-parameter statistics.
	DebugInfo bool
}

// Output is one declared output of a network after a forward pass.
type Output struct {
	Name       string
	LossWeight float32
	Values     []float32
}

// Net is the trainable network the solver drives.
//
// Gradients written by ForwardBackward replace the previous ones. When a
// step spans several micro-batches the solver calls AccumulateGradients after
// each pass but the last, then FinalizeAccumulatedGradients, so Grad() holds
// the sum over all passes before the update rule runs.
type Net interface {
	// Name returns the network name.
	Name() string

	// Params returns the learnable parameters in a stable order.
	Params() []*Parameter

	// ForwardBackward runs one forward and backward pass and returns the weighted loss.
	ForwardBackward(rc RunContext) float32

	// Forward runs a forward pass only and returns the weighted loss and the outputs.
	// The number of outputs and of values in each is the same on every pass.
	Forward(rc RunContext) (float32, []Output)

	// Outputs returns the outputs of the most recent pass.
	Outputs() []Output

	// AccumulateGradients stores the current gradients for a later finalize.
	AccumulateGradients()

	// FinalizeAccumulatedGradients adds the stored gradients into Grad() and clears them.
	FinalizeAccumulatedGradients()

	// Update applies data -= grad to every parameter.
	Update()

	// CopyTrainedFrom copies parameter values from src by name.
	// Parameters src doesn't have are left untouched; shape mismatches are errors.
	CopyTrainedFrom(src Net) error
}

// CopyParams copies values from src into dst, matching parameters by name.
func CopyParams(dst, src []*Parameter) error {
	byName := make(map[string]*Parameter, len(src))
	for _, p := range src {
		byName[p.Name()] = p
	}
	for _, p := range dst {
		s, ok := byName[p.Name()]
		if !ok {
			continue
		}
		if err := p.Data().CopyFrom(s.Data()); err != nil {
			return fmt.Errorf("copy parameter %s: %w", p.Name(), err)
		}
	}
	return nil
}
