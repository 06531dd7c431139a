package optim

import (
	"fmt"
	"strings"
)

// Regularization selects the weight decay penalty.
type Regularization int

// Regularization kinds.
const (
	L2 Regularization = iota
	L1
)

// String returns "L1" or "L2".
func (r Regularization) String() string {
	switch r {
	case L1:
		return "L1"
	case L2:
		return "L2"
	default:
		return fmt.Sprintf("Regularization(%d)", int(r))
	}
}

// ParseRegularization resolves "L1" or "L2".
func ParseRegularization(s string) (Regularization, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "L1":
		return L1, nil
	case "L2":
		return L2, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownRegularization, s)
	}
}

// DefaultDelta is the default numerical stability term of the adaptive rules.
const DefaultDelta = 1e-8

// Hyper holds the hyperparameters shared by all update rules.
type Hyper struct {
	Schedule Schedule

	// Momentum is the SGD/Nesterov momentum and the AdaDelta decay rate.
	Momentum float32
	// RMSDecay is the RMSProp decay rate of the squared gradient average.
	RMSDecay float32
	// Delta keeps the adaptive rules away from division by zero.
	Delta float32

	WeightDecay    float32
	Regularization Regularization

	// UpdateInterval is the number of forward/backward passes per update.
	UpdateInterval int
}

// Validate checks hyperparameter ranges.
func (h Hyper) Validate(kind Kind) error {
	if err := h.Schedule.Validate(); err != nil {
		return err
	}
	if h.Regularization != L1 && h.Regularization != L2 {
		return fmt.Errorf("%w: %v", ErrUnknownRegularization, h.Regularization)
	}
	if h.UpdateInterval < 1 {
		return fmt.Errorf("update interval must be >= 1, got %d", h.UpdateInterval)
	}
	switch kind {
	case AdaGrad, RMSProp, AdaDelta:
		if h.Delta <= 0 {
			return fmt.Errorf("%s requires delta > 0, got %g", kind, h.Delta)
		}
	}
	if kind == RMSProp && (h.RMSDecay < 0 || h.RMSDecay >= 1) {
		return fmt.Errorf("rms_decay must be in [0, 1), got %g", h.RMSDecay)
	}
	return nil
}
