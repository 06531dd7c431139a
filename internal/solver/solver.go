// Package solver drives the training of a network.
//
// A Solver owns a training network, zero or more evaluation networks and an
// update rule. Solve runs the iteration loop: forward/backward passes
// (optionally accumulated over several micro-batches), the update rule,
// periodic evaluation and periodic snapshots. A snapshot is a pair of files:
// the network parameters (<prefix>_iter_<N>.born) and the optimizer state
// (<prefix>_iter_<N>.born.solverstate), from which Solve can resume.
//
// A Solver is not safe for concurrent use.
package solver

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/born-ml/solver/internal/backend"
	"github.com/born-ml/solver/internal/config"
	"github.com/born-ml/solver/internal/log"
	"github.com/born-ml/solver/internal/nn"
	"github.com/born-ml/solver/internal/optim"
	"github.com/born-ml/solver/internal/tensor"
)

// State is the lifecycle state of a Solver.
type State int

// Solver states.
const (
	Uninitialized State = iota
	Ready
	Running
	Testing
	Snapshotting
	Completed
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case Uninitialized:
		return "Uninitialized"
	case Ready:
		return "Ready"
	case Running:
		return "Running"
	case Testing:
		return "Testing"
	case Snapshotting:
		return "Snapshotting"
	case Completed:
		return "Completed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// NetFactory builds a network from its definition for the given state.
type NetFactory func(param *nn.NetParameter, state nn.NetState, be tensor.Backend, seed int64) (nn.Net, error)

// BuildNet is the default NetFactory. It builds nn.Regression networks.
func BuildNet(param *nn.NetParameter, state nn.NetState, be tensor.Backend, seed int64) (nn.Net, error) {
	net, err := nn.Build(param, state, be, seed)
	if err != nil {
		return nil, err
	}
	return net, nil
}

// Option configures a Solver.
type Option func(*Solver)

// WithNetFactory replaces the network builder.
func WithNetFactory(f NetFactory) Option {
	return func(s *Solver) {
		s.factory = f
	}
}

// WithBackend uses be instead of opening the backend named by the configuration.
func WithBackend(be tensor.Backend) Option {
	return func(s *Solver) {
		s.backend = be
	}
}

// Solver is the training loop state machine.
type Solver struct {
	cfg     *config.Solver
	factory NetFactory
	backend tensor.Backend
	rule    *optim.Rule

	net       nn.Net
	testNets  []nn.Net
	testIters []int

	state    State
	iter     int
	losses   *lossWindow
	runID    string
	seed     int64
	lastRate float32
}

// New validates cfg and builds the networks and the update rule.
// The returned solver is Ready.
func New(cfg *config.Solver, opts ...Option) (*Solver, error) {
	if cfg == nil {
		return nil, fmt.Errorf("%w: nil config", ErrConfig)
	}
	s := &Solver{cfg: cfg, factory: BuildNet, runID: uuid.New().String()}
	for _, opt := range opts {
		opt(s)
	}
	log.Infof("Initializing solver (run %s)", s.runID)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfig, err)
	}
	if cfg.AverageLoss < 1 {
		return nil, fmt.Errorf("%w: average_loss must be >= 1, got %d", ErrConfig, cfg.AverageLoss)
	}
	if cfg.UpdateInterval < 1 {
		return nil, fmt.Errorf("%w: update_interval must be >= 1, got %d", ErrConfig, cfg.UpdateInterval)
	}

	if s.backend == nil {
		mode, err := backend.ParseMode(cfg.SolverMode)
		if err != nil {
			return nil, err
		}
		if mode == backend.GPU {
			log.Infof("Using GPU device %d", cfg.DeviceID)
		}
		be, err := backend.Open(mode, cfg.DeviceID)
		if err != nil {
			return nil, err
		}
		s.backend = be
	}
	log.Infof("Backend: %s", s.backend.Name())

	s.seed = cfg.RandomSeed
	if s.seed < 0 {
		s.seed = time.Now().UnixNano()
	}

	kind, hyper, err := ruleConfig(cfg)
	if err != nil {
		return nil, err
	}
	rule, err := optim.New(kind, hyper, s.backend)
	if err != nil {
		return nil, err
	}
	s.rule = rule

	if err := s.initTrainNet(); err != nil {
		return nil, err
	}
	if err := s.initTestNets(); err != nil {
		return nil, err
	}
	if err := s.rule.PreSolve(s.net.Params()); err != nil {
		return nil, err
	}

	s.losses = newLossWindow(cfg.AverageLoss)
	s.state = Ready
	log.Infof("Solver scaffolding done.")
	return s, nil
}

// ruleConfig resolves the update rule settings of cfg.
func ruleConfig(cfg *config.Solver) (optim.Kind, optim.Hyper, error) {
	kind, err := optim.ParseKind(cfg.SolverType)
	if err != nil {
		return 0, optim.Hyper{}, err
	}
	policy, err := optim.ParsePolicy(cfg.LRPolicy)
	if err != nil {
		return 0, optim.Hyper{}, err
	}
	reg, err := optim.ParseRegularization(cfg.RegularizationType)
	if err != nil {
		return 0, optim.Hyper{}, err
	}
	return kind, optim.Hyper{
		Schedule: optim.Schedule{
			Policy:   policy,
			BaseLR:   cfg.BaseLR,
			Gamma:    cfg.Gamma,
			Power:    cfg.Power,
			StepSize: cfg.StepSize,
		},
		Momentum:       cfg.Momentum,
		RMSDecay:       cfg.RMSDecay,
		Delta:          cfg.Delta,
		WeightDecay:    cfg.WeightDecay,
		Regularization: reg,
		UpdateInterval: cfg.UpdateInterval,
	}, nil
}

// Solve runs the training loop from the current iteration to max_iter.
//
// With a non-empty resumeFile the iteration counter, optimizer state and
// network parameters are first restored from that solver-state file. ctx is
// checked between iterations; on cancellation a snapshot is taken (when
// snapshot_after_train is set) and ctx.Err() is returned.
func (s *Solver) Solve(ctx context.Context, resumeFile string) error {
	if s.state != Ready {
		return fmt.Errorf("%w: Solve requires a Ready solver, state is %s", ErrState, s.state)
	}
	log.Infof("Solving %s", s.net.Name())
	log.Infof("Learning Rate Policy: %s", s.rule.Hyper().Schedule.Policy)

	if resumeFile != "" {
		log.Infof("Restoring previous solver status from %s", resumeFile)
		if err := s.Restore(resumeFile); err != nil {
			return err
		}
	}

	if err := s.Step(ctx, s.cfg.MaxIter-s.iter); err != nil {
		if ctx.Err() != nil && s.cfg.SnapshotAfterTrain {
			log.Warningf("Interrupted at iteration %d, snapshotting", s.iter)
			if _, serr := s.Snapshot(); serr != nil {
				log.Errorf("Snapshot after interruption failed: %v", serr)
			}
		}
		return err
	}

	// Always save a snapshot after optimization, unless snapshot_after_train is off.
	if s.cfg.SnapshotAfterTrain {
		if _, err := s.Snapshot(); err != nil {
			return err
		}
	}

	// Display the final train loss with a forward-only pass and run a final
	// evaluation, each only when the final iteration lands on its boundary.
	if s.cfg.Display > 0 && s.iter%s.cfg.Display == 0 {
		loss, _ := s.net.Forward(nn.RunContext{Phase: nn.Train})
		log.Infof("Iteration %d, loss = %g", s.iter, loss)
	}
	if s.cfg.TestInterval > 0 && s.iter%s.cfg.TestInterval == 0 {
		if _, err := s.TestAll(); err != nil {
			return err
		}
	}

	s.state = Completed
	log.Infof("Optimization Done.")
	return nil
}

// Step runs iters training iterations.
//
// A snapshot is taken when the counter reaches a multiple of the snapshot
// interval after the first iteration of this call; evaluation runs on
// multiples of test_interval (iteration 0 only with test_initialization).
func (s *Solver) Step(ctx context.Context, iters int) error {
	if s.state != Ready && s.state != Running {
		return fmt.Errorf("%w: Step requires a Ready solver, state is %s", ErrState, s.state)
	}
	prev := s.state
	s.state = Running
	defer func() {
		if s.state == Running {
			s.state = prev
		}
	}()

	start := s.iter
	stop := s.iter + iters
	for s.iter < stop {
		if err := ctx.Err(); err != nil {
			return err
		}

		if s.cfg.Snapshot > 0 && s.iter > start && s.iter%s.cfg.Snapshot == 0 {
			if _, err := s.Snapshot(); err != nil {
				return err
			}
		}

		if s.cfg.TestInterval > 0 && s.iter%s.cfg.TestInterval == 0 &&
			(s.iter > 0 || s.cfg.TestInitialization) {
			if _, err := s.TestAll(); err != nil {
				return err
			}
		}

		display := s.cfg.Display > 0 && s.iter%s.cfg.Display == 0
		rc := nn.RunContext{
			Phase:      nn.Train,
			Accumulate: s.cfg.UpdateInterval > 1,
			DebugInfo:  display && s.cfg.DebugInfo,
		}

		loss := s.forwardBackward(rc)
		smoothed := s.losses.add(loss)

		if display {
			log.Infof("Iteration %d, loss = %g", s.iter, smoothed)
			s.logOutputs("Train", s.net.Outputs())
		}

		s.lastRate = s.rule.LearningRate(s.iter)
		if display {
			log.Infof("Iteration %d, lr = %g", s.iter, s.lastRate)
		}
		if err := s.rule.ComputeUpdate(s.net.Params(), s.iter); err != nil {
			return err
		}
		s.net.Update()

		s.iter++
	}
	return nil
}

// forwardBackward runs one training step's passes and returns the mean loss.
func (s *Solver) forwardBackward(rc nn.RunContext) float32 {
	n := s.cfg.UpdateInterval
	if !rc.Accumulate {
		return s.net.ForwardBackward(rc)
	}
	var loss float32
	for i := 0; i < n-1; i++ {
		loss += s.net.ForwardBackward(rc)
		s.net.AccumulateGradients()
	}
	loss += s.net.ForwardBackward(rc)
	s.net.FinalizeAccumulatedGradients()
	return loss / float32(n)
}

// logOutputs logs every value of outputs, with its weighted loss when the
// output carries a loss weight.
func (s *Solver) logOutputs(kind string, outputs []nn.Output) {
	idx := 0
	for _, out := range outputs {
		for _, v := range out.Values {
			log.Infof("    %s net output #%d: %s = %g%s", kind, idx, out.Name, v, weighted(out.LossWeight, v))
			idx++
		}
	}
}

func weighted(weight, v float32) string {
	if weight == 0 {
		return ""
	}
	return fmt.Sprintf(" (* %g = %g loss)", weight, weight*v)
}

// Iter returns the iteration counter.
func (s *Solver) Iter() int {
	return s.iter
}

// State returns the lifecycle state.
func (s *Solver) State() State {
	return s.state
}

// Net returns the training network.
func (s *Solver) Net() nn.Net {
	return s.net
}

// TestNets returns the evaluation networks.
func (s *Solver) TestNets() []nn.Net {
	return s.testNets
}

// Rule returns the update rule.
func (s *Solver) Rule() *optim.Rule {
	return s.rule
}

// Backend returns the numeric backend.
func (s *Solver) Backend() tensor.Backend {
	return s.backend
}

// SmoothedLoss returns the displayed training loss.
func (s *Solver) SmoothedLoss() float32 {
	return s.losses.value()
}

// RunID identifies the training run in snapshot files.
func (s *Solver) RunID() string {
	return s.runID
}
