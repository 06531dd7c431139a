package solver

import (
	"fmt"

	"github.com/born-ml/solver/internal/log"
	"github.com/born-ml/solver/internal/nn"
)

const trainNetFields = "net, net_param, train_net, train_net_param"

// readNet loads a network definition file named in the configuration.
func (s *Solver) readNet(path string) (*nn.NetParameter, error) {
	p, err := nn.ReadNetParameter(s.cfg.ResolvePath(path))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfig, err)
	}
	return p, nil
}

// inline returns a copy of an inline definition whose relative data paths
// resolve against the configuration directory.
func (s *Solver) inline(p *nn.NetParameter) *nn.NetParameter {
	cp := *p
	cp.SetBaseDir(s.cfg.Dir)
	return &cp
}

func (s *Solver) initTrainNet() error {
	cfg := s.cfg
	num := 0
	for _, set := range []bool{cfg.Net != "", cfg.NetParam != nil, cfg.TrainNet != "", cfg.TrainNetParam != nil} {
		if set {
			num++
		}
	}
	if num != 1 {
		return fmt.Errorf("%w: ambiguous or missing train net specification: "+
			"exactly one of %s must be set, got %d", ErrConfig, trainNetFields, num)
	}

	var (
		param *nn.NetParameter
		err   error
	)
	switch {
	case cfg.TrainNetParam != nil:
		log.Infof("Creating training net specified in train_net_param.")
		param = s.inline(cfg.TrainNetParam)
	case cfg.TrainNet != "":
		log.Infof("Creating training net from train_net file: %s", cfg.TrainNet)
		param, err = s.readNet(cfg.TrainNet)
	case cfg.NetParam != nil:
		log.Infof("Creating training net specified in net_param.")
		param = s.inline(cfg.NetParam)
	default:
		log.Infof("Creating training net from net file: %s", cfg.Net)
		param, err = s.readNet(cfg.Net)
	}
	if err != nil {
		return err
	}

	// Defaults, then the net's own state, then train_state.
	state, err := nn.NetState{Phase: nn.Train}.Merge(param.State, cfg.TrainState)
	if err != nil {
		return fmt.Errorf("%w: train net state: %v", ErrConfig, err)
	}
	net, err := s.factory(param, state, s.backend, s.seed)
	if err != nil {
		return fmt.Errorf("create train net: %w", err)
	}
	s.net = net
	return nil
}

func (s *Solver) initTestNets() error {
	cfg := s.cfg
	numGeneric := 0
	if cfg.Net != "" {
		numGeneric++
	}
	if cfg.NetParam != nil {
		numGeneric++
	}
	if numGeneric > 1 {
		return fmt.Errorf("%w: both net_param and net may not be specified", ErrConfig)
	}

	numTestNets := len(cfg.TestNetParam) + len(cfg.TestNet)
	if numGeneric > 0 {
		if len(cfg.TestIter) < numTestNets {
			return fmt.Errorf("%w: test_iter must be specified for each test network: "+
				"%d test nets, %d test_iter", ErrConfig, numTestNets, len(cfg.TestIter))
		}
	} else if len(cfg.TestIter) != numTestNets {
		return fmt.Errorf("%w: test_iter must be specified for each test network: "+
			"%d test nets, %d test_iter", ErrConfig, numTestNets, len(cfg.TestIter))
	}

	// A generic net backs one test net per test_iter beyond the explicit ones.
	instances := len(cfg.TestIter)
	if len(cfg.TestState) > 0 && len(cfg.TestState) != instances {
		return fmt.Errorf("%w: test_state must be unspecified or specified once per test net: "+
			"%d test nets, %d test_state", ErrConfig, instances, len(cfg.TestState))
	}
	if instances > 0 && cfg.TestInterval <= 0 {
		return fmt.Errorf("%w: test_interval must be positive with %d test nets", ErrConfig, instances)
	}

	sources := make([]string, 0, instances)
	params := make([]*nn.NetParameter, 0, instances)
	for i := range cfg.TestNetParam {
		sources = append(sources, "test_net_param")
		params = append(params, s.inline(&cfg.TestNetParam[i]))
	}
	for _, path := range cfg.TestNet {
		p, err := s.readNet(path)
		if err != nil {
			return err
		}
		sources = append(sources, "test_net file: "+path)
		params = append(params, p)
	}
	if remaining := instances - len(params); remaining > 0 {
		var (
			generic *nn.NetParameter
			source  string
			err     error
		)
		if cfg.NetParam != nil {
			generic, source = s.inline(cfg.NetParam), "net_param"
		} else {
			generic, err = s.readNet(cfg.Net)
			source = "net file: " + cfg.Net
		}
		if err != nil {
			return err
		}
		for i := 0; i < remaining; i++ {
			sources = append(sources, source)
			params = append(params, generic)
		}
	}

	s.testNets = make([]nn.Net, 0, instances)
	s.testIters = append([]int(nil), cfg.TestIter...)
	for i, p := range params {
		overrides := []nn.StateOverride{p.State}
		if len(cfg.TestState) > 0 {
			overrides = append(overrides, cfg.TestState[i])
		}
		state, err := nn.NetState{Phase: nn.Test}.Merge(overrides...)
		if err != nil {
			return fmt.Errorf("%w: test net %d state: %v", ErrConfig, i, err)
		}
		log.Infof("Creating test net (#%d) specified by %s", i, sources[i])
		net, err := s.factory(p, state, s.backend, s.seed)
		if err != nil {
			return fmt.Errorf("create test net %d: %w", i, err)
		}
		s.testNets = append(s.testNets, net)
	}
	return nil
}
