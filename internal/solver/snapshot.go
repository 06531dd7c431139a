package solver

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/born-ml/solver/internal/log"
	"github.com/born-ml/solver/internal/nn"
	"github.com/born-ml/solver/internal/serialization"
	"github.com/born-ml/solver/internal/solverstate"
)

// ParamsExtension is the file extension of parameter artifacts.
const ParamsExtension = ".born"

// SnapshotPaths names the two files of a snapshot.
type SnapshotPaths struct {
	Params string
	State  string
}

// SnapshotName returns the parameter artifact name for iter.
func SnapshotName(prefix string, iter int) string {
	return fmt.Sprintf("%s_iter_%d%s", prefix, iter, ParamsExtension)
}

// Snapshot writes the parameters and the optimizer state at the current iteration.
func (s *Solver) Snapshot() (SnapshotPaths, error) {
	prev := s.state
	s.state = Snapshotting
	defer func() { s.state = prev }()

	paths := SnapshotPaths{Params: SnapshotName(s.cfg.SnapshotPrefix, s.iter)}
	paths.State = paths.Params + solverstate.Extension

	if dir := filepath.Dir(paths.Params); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return SnapshotPaths{}, fmt.Errorf("snapshot: %w", err)
		}
	}

	log.Infof("Snapshotting to %s", paths.Params)
	meta := &serialization.TrainingMeta{
		Iter:          s.iter,
		RunID:         s.runID,
		SolverType:    s.rule.Kind().String(),
		SmoothedLoss:  strconv.FormatFloat(float64(s.losses.value()), 'g', -1, 32),
		LearningRate:  strconv.FormatFloat(float64(s.lastRate), 'g', -1, 32),
		BackendDevice: s.backend.Name(),
	}
	if err := nn.SaveParameters(paths.Params, s.net, s.cfg.SnapshotDiff, meta); err != nil {
		return SnapshotPaths{}, fmt.Errorf("snapshot: %w", err)
	}

	log.Infof("Snapshotting solver state to %s", paths.State)
	state := &solverstate.State{
		Iter:       s.iter,
		LearnedNet: filepath.Base(paths.Params),
		RunID:      s.runID,
		History:    s.rule.History(),
	}
	if err := solverstate.WriteFile(paths.State, state); err != nil {
		return SnapshotPaths{}, fmt.Errorf("snapshot: %w", err)
	}
	return paths, nil
}

// Restore resumes from a solver-state file written by Snapshot.
//
// The optimizer history must match the current parameters in count and
// shape, and the referenced parameter artifact, resolved relative to the
// state file, must load cleanly into the training net. Both are checked
// before anything is written, so on error the solver is unchanged. The
// history, the parameters and the iteration counter are then replaced.
func (s *Solver) Restore(stateFile string) error {
	if s.state != Ready {
		return fmt.Errorf("%w: Restore requires a Ready solver, state is %s", ErrState, s.state)
	}
	st, err := solverstate.ReadFile(stateFile)
	if err != nil {
		return err
	}
	if err := s.rule.CheckHistory(st.History); err != nil {
		return fmt.Errorf("restore %s: %w", stateFile, err)
	}

	var params *nn.StagedParameters
	if st.LearnedNet != "" {
		path := st.LearnedNet
		if !filepath.IsAbs(path) {
			path = filepath.Join(filepath.Dir(stateFile), path)
		}
		if params, err = nn.ReadParameters(path, s.net); err != nil {
			return fmt.Errorf("restore %s: %w", stateFile, err)
		}
	}

	log.Infof("%s: restoring history (%d blobs)", s.rule.Kind(), len(st.History))
	if err := s.rule.RestoreHistory(st.History); err != nil {
		return fmt.Errorf("restore %s: %w", stateFile, err)
	}
	if params != nil {
		log.Infof("Restoring %d parameters from %s", params.Len(), st.LearnedNet)
		params.Apply()
	}

	s.iter = st.Iter
	if st.RunID != "" {
		s.runID = st.RunID
	}
	s.losses.reset()
	return nil
}
