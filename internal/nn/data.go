package nn

import (
	"encoding/csv"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strconv"
	"strings"
)

// DataSource provides labeled samples for the regression network.
type DataSource interface {
	// InputDim returns the number of features per sample.
	InputDim() int
	// OutputDim returns the number of targets per sample.
	OutputDim() int
	// Len returns the number of samples.
	Len() int
	// Sample copies sample i into x and y.
	Sample(i int, x, y []float32)
}

// MemorySource serves samples held in memory.
type MemorySource struct {
	inputs  [][]float32
	targets [][]float32
}

// NewMemorySource creates a source from parallel input and target rows.
func NewMemorySource(inputs, targets [][]float32) (*MemorySource, error) {
	if len(inputs) == 0 {
		return nil, fmt.Errorf("memory source: no samples")
	}
	if len(inputs) != len(targets) {
		return nil, fmt.Errorf("memory source: %d inputs but %d targets", len(inputs), len(targets))
	}
	in, out := len(inputs[0]), len(targets[0])
	if in == 0 || out == 0 {
		return nil, fmt.Errorf("memory source: empty sample")
	}
	for i := range inputs {
		if len(inputs[i]) != in || len(targets[i]) != out {
			return nil, fmt.Errorf("memory source: sample %d has %d/%d values, want %d/%d",
				i, len(inputs[i]), len(targets[i]), in, out)
		}
	}
	return &MemorySource{inputs: inputs, targets: targets}, nil
}

// InputDim implements DataSource.
func (m *MemorySource) InputDim() int { return len(m.inputs[0]) }

// OutputDim implements DataSource.
func (m *MemorySource) OutputDim() int { return len(m.targets[0]) }

// Len implements DataSource.
func (m *MemorySource) Len() int { return len(m.inputs) }

// Sample implements DataSource.
func (m *MemorySource) Sample(i int, x, y []float32) {
	copy(x, m.inputs[i])
	copy(y, m.targets[i])
}

// ReadCSV reads a source from CSV. Each record holds inputDim feature
// columns followed by outputDim target columns.
func ReadCSV(r io.Reader, inputDim, outputDim int, header bool) (*MemorySource, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = inputDim + outputDim
	cr.TrimLeadingSpace = true
	cr.Comment = '#'

	var inputs, targets [][]float32
	first := true
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		if first && header {
			first = false
			continue
		}
		first = false

		row := make([]float32, len(rec))
		for i, field := range rec {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 32)
			if err != nil {
				line, _ := cr.FieldPos(i)
				return nil, fmt.Errorf("read csv: line %d column %d: %w", line, i+1, err)
			}
			row[i] = float32(v)
		}
		inputs = append(inputs, row[:inputDim])
		targets = append(targets, row[inputDim:])
	}
	return NewMemorySource(inputs, targets)
}

// ReadCSVFile reads a CSV source from path.
func ReadCSVFile(path string, inputDim, outputDim int, header bool) (*MemorySource, error) {
	f, err := os.Open(path) //nolint:gosec // G304: path comes from the network definition
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	src, err := ReadCSV(f, inputDim, outputDim, header)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return src, nil
}

// SyntheticConfig describes a generated linear regression task.
//
// Samples follow y = x @ W.T + b + noise, with x ~ N(0, 1). W and b are drawn
// from TaskSeed alone, so a train and a test source with the same TaskSeed
// describe the same task; Seed picks the samples.
type SyntheticConfig struct {
	InputDim  int
	OutputDim int
	Samples   int
	Noise     float32
	TaskSeed  int64
	Seed      int64
}

// NewSyntheticSource generates the samples of a synthetic task.
func NewSyntheticSource(cfg SyntheticConfig) (*MemorySource, error) {
	if cfg.InputDim <= 0 || cfg.OutputDim <= 0 || cfg.Samples <= 0 {
		return nil, fmt.Errorf("synthetic source: dimensions and sample count must be positive")
	}

	//nolint:gosec // Using math/rand for data generation (not security-critical)
	task := rand.New(rand.NewSource(cfg.TaskSeed))
	w := make([]float32, cfg.OutputDim*cfg.InputDim)
	b := make([]float32, cfg.OutputDim)
	for i := range w {
		w[i] = float32(task.NormFloat64())
	}
	for i := range b {
		b[i] = float32(task.NormFloat64())
	}

	//nolint:gosec // Using math/rand for data generation (not security-critical)
	rng := rand.New(rand.NewSource(cfg.Seed))
	inputs := make([][]float32, cfg.Samples)
	targets := make([][]float32, cfg.Samples)
	for n := 0; n < cfg.Samples; n++ {
		x := make([]float32, cfg.InputDim)
		for i := range x {
			x[i] = float32(rng.NormFloat64())
		}
		y := make([]float32, cfg.OutputDim)
		linearForward(x, w, b, y, 1, cfg.InputDim, cfg.OutputDim)
		for o := range y {
			y[o] += cfg.Noise * float32(rng.NormFloat64())
		}
		inputs[n] = x
		targets[n] = y
	}
	return NewMemorySource(inputs, targets)
}
