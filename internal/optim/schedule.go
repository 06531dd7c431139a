package optim

import (
	"fmt"
	"math"
	"strings"
)

// Policy is a learning rate schedule.
type Policy int

// Learning rate policies.
const (
	PolicyFixed Policy = iota // base_lr
	PolicyStep                // base_lr * gamma ^ floor(iter / stepsize)
	PolicyExp                 // base_lr * gamma ^ iter
	PolicyInv                 // base_lr * (1 + gamma * iter) ^ (-power)
)

// String returns the policy name.
func (p Policy) String() string {
	switch p {
	case PolicyFixed:
		return "fixed"
	case PolicyStep:
		return "step"
	case PolicyExp:
		return "exp"
	case PolicyInv:
		return "inv"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

// ParsePolicy resolves a policy name.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fixed":
		return PolicyFixed, nil
	case "step":
		return PolicyStep, nil
	case "exp":
		return PolicyExp, nil
	case "inv":
		return PolicyInv, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownPolicy, s)
	}
}

// Schedule computes the global learning rate for an iteration.
type Schedule struct {
	Policy   Policy
	BaseLR   float32
	Gamma    float32
	Power    float32
	StepSize int
}

// Validate checks the schedule parameters the policy uses.
func (s Schedule) Validate() error {
	switch s.Policy {
	case PolicyFixed, PolicyExp, PolicyInv:
		return nil
	case PolicyStep:
		if s.StepSize <= 0 {
			return fmt.Errorf("step policy requires stepsize > 0, got %d", s.StepSize)
		}
		return nil
	default:
		return fmt.Errorf("%w: %v", ErrUnknownPolicy, s.Policy)
	}
}

// Rate returns the learning rate at iter.
func (s Schedule) Rate(iter int) float32 {
	base := float64(s.BaseLR)
	gamma := float64(s.Gamma)
	switch s.Policy {
	case PolicyStep:
		step := iter / s.StepSize
		return float32(base * math.Pow(gamma, float64(step)))
	case PolicyExp:
		return float32(base * math.Pow(gamma, float64(iter)))
	case PolicyInv:
		return float32(base * math.Pow(1+gamma*float64(iter), -float64(s.Power)))
	default:
		return s.BaseLR
	}
}
