package solver

import (
	"fmt"

	"github.com/born-ml/solver/internal/log"
	"github.com/born-ml/solver/internal/nn"
)

// TestOutput is the mean of one output value over an evaluation.
type TestOutput struct {
	Name       string
	LossWeight float32
	Value      float32
}

// TestResult is the outcome of evaluating one test net.
type TestResult struct {
	NetID int
	Iter  int
	// Loss is the mean loss, set when test_compute_loss is on.
	Loss    float32
	Outputs []TestOutput
}

// TestAll evaluates every test net.
func (s *Solver) TestAll() ([]TestResult, error) {
	results := make([]TestResult, 0, len(s.testNets))
	for id := range s.testNets {
		r, err := s.Test(id)
		if err != nil {
			return results, err
		}
		results = append(results, r)
	}
	return results, nil
}

// Test evaluates test net id on the current parameters.
//
// The trained parameter values are copied into the test net, test_iter
// forward passes are run, and every output value is averaged over them.
func (s *Solver) Test(id int) (TestResult, error) {
	if id < 0 || id >= len(s.testNets) {
		return TestResult{}, fmt.Errorf("test net %d out of range [0, %d)", id, len(s.testNets))
	}
	prev := s.state
	s.state = Testing
	defer func() { s.state = prev }()

	log.Infof("Iteration %d, Testing net (#%d)", s.iter, id)
	net := s.testNets[id]
	if err := net.CopyTrainedFrom(s.net); err != nil {
		return TestResult{}, fmt.Errorf("test net %d: %w", id, err)
	}

	rc := nn.RunContext{Phase: nn.Test}
	iters := s.testIters[id]
	var (
		loss   float32
		scores []TestOutput
	)
	for i := 0; i < iters; i++ {
		iterLoss, outputs := net.Forward(rc)
		if s.cfg.TestComputeLoss {
			loss += iterLoss
		}
		if i > 0 {
			if n := countValues(outputs); n != len(scores) {
				return TestResult{}, fmt.Errorf("test net %d: pass %d produced %d output values, first pass %d",
					id, i, n, len(scores))
			}
		}
		idx := 0
		for _, out := range outputs {
			for _, v := range out.Values {
				if i == 0 {
					scores = append(scores, TestOutput{Name: out.Name, LossWeight: out.LossWeight})
				}
				scores[idx].Value += v
				idx++
			}
		}
	}

	result := TestResult{NetID: id, Iter: s.iter}
	if s.cfg.TestComputeLoss && iters > 0 {
		result.Loss = loss / float32(iters)
		log.Infof("Test loss: %g", result.Loss)
	}
	for i := range scores {
		scores[i].Value /= float32(iters)
		log.Infof("    Test net output #%d: %s = %g%s", i, scores[i].Name, scores[i].Value,
			weighted(scores[i].LossWeight, scores[i].Value))
	}
	result.Outputs = scores
	return result, nil
}

func countValues(outputs []nn.Output) int {
	n := 0
	for _, out := range outputs {
		n += len(out.Values)
	}
	return n
}
