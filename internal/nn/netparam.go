package nn

import (
	"fmt"
	"math/rand"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/go-playground/validator.v9"

	"github.com/born-ml/solver/internal/tensor"
)

// Data source kinds.
const (
	SourceSynthetic = "synthetic"
	SourceCSV       = "csv"
)

// StateRule restricts an element of a network definition to some states.
// Every set field must match.
type StateRule struct {
	Phase    string   `mapstructure:"phase" validate:"isdefault|oneof=TRAIN TEST train test"`
	MinLevel *int     `mapstructure:"min_level"`
	MaxLevel *int     `mapstructure:"max_level"`
	Stage    []string `mapstructure:"stage"`
	NotStage []string `mapstructure:"not_stage"`
}

// Matches reports whether state satisfies the rule.
func (r StateRule) Matches(state NetState) bool {
	if r.Phase != "" {
		phase, err := ParsePhase(r.Phase)
		if err != nil || phase != state.Phase {
			return false
		}
	}
	if r.MinLevel != nil && state.Level < *r.MinLevel {
		return false
	}
	if r.MaxLevel != nil && state.Level > *r.MaxLevel {
		return false
	}
	for _, s := range r.Stage {
		if !state.HasStage(s) {
			return false
		}
	}
	for _, s := range r.NotStage {
		if state.HasStage(s) {
			return false
		}
	}
	return true
}

// DataConfig describes one data source of a network definition.
// An entry without include rules is active in every state; otherwise any
// matching rule activates it.
type DataConfig struct {
	Include   []StateRule `mapstructure:"include" validate:"dive"`
	Source    string      `mapstructure:"source" validate:"required,oneof=synthetic csv"`
	Path      string      `mapstructure:"path"`
	Header    bool        `mapstructure:"header"`
	BatchSize int         `mapstructure:"batch_size" validate:"min=1"`
	Samples   int         `mapstructure:"samples" validate:"gte=0"`
	Noise     float32     `mapstructure:"noise" validate:"gte=0"`
	TaskSeed  int64       `mapstructure:"task_seed"`
	Seed      int64       `mapstructure:"seed"`
}

// Active reports whether the entry applies to state.
func (d DataConfig) Active(state NetState) bool {
	if len(d.Include) == 0 {
		return true
	}
	for _, r := range d.Include {
		if r.Matches(state) {
			return true
		}
	}
	return false
}

// NetParameter is the definition of a regression network.
//
// Multipliers and the loss weight default to 1 when unset.
type NetParameter struct {
	Name      string        `mapstructure:"name" validate:"required"`
	State     StateOverride `mapstructure:"state"`
	InputDim  int           `mapstructure:"input_dim" validate:"min=1"`
	OutputDim int           `mapstructure:"output_dim" validate:"min=1"`

	LossWeight      *float32 `mapstructure:"loss_weight"`
	WeightLRMult    *float32 `mapstructure:"weight_lr_mult" validate:"omitempty,gte=0"`
	WeightDecayMult *float32 `mapstructure:"weight_decay_mult" validate:"omitempty,gte=0"`
	BiasLRMult      *float32 `mapstructure:"bias_lr_mult" validate:"omitempty,gte=0"`
	BiasDecayMult   *float32 `mapstructure:"bias_decay_mult" validate:"omitempty,gte=0"`

	WeightFiller FillerConfig `mapstructure:"weight_filler"`
	BiasFiller   FillerConfig `mapstructure:"bias_filler"`

	Data []DataConfig `mapstructure:"data" validate:"required,min=1,dive"`

	// dir resolves relative data paths.
	dir string
}

// Validate checks the definition.
func (p *NetParameter) Validate() error {
	if err := validator.New().Struct(p); err != nil {
		return fmt.Errorf("net %q: %w", p.Name, err)
	}
	for i, d := range p.Data {
		if d.Source == SourceCSV && d.Path == "" {
			return fmt.Errorf("net %q: data %d: csv source requires a path", p.Name, i)
		}
		if d.Source == SourceSynthetic && d.Samples == 0 {
			return fmt.Errorf("net %q: data %d: synthetic source requires samples", p.Name, i)
		}
	}
	return nil
}

// ReadNetParameter reads a network definition from a yaml, json or toml file.
func ReadNetParameter(path string) (*NetParameter, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read net definition %s: %w", path, err)
	}

	p := &NetParameter{}
	if err := v.Unmarshal(p); err != nil {
		return nil, fmt.Errorf("decode net definition %s: %w", path, err)
	}
	p.dir = filepath.Dir(path)
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// SetBaseDir sets the directory relative data paths resolve against.
func (p *NetParameter) SetBaseDir(dir string) {
	p.dir = dir
}

func valueOr(v *float32, def float32) float32 {
	if v == nil {
		return def
	}
	return *v
}

// Build creates the network of p for state.
//
// Exactly one data entry must be active in state. Weights are filled from a
// generator seeded with seed, so equal seeds give equal networks.
func Build(p *NetParameter, state NetState, backend tensor.Backend, seed int64) (*Regression, error) {
	var active []DataConfig
	for _, d := range p.Data {
		if d.Active(state) {
			active = append(active, d)
		}
	}
	switch len(active) {
	case 0:
		return nil, fmt.Errorf("net %q: no data source for state %s", p.Name, state)
	case 1:
	default:
		return nil, fmt.Errorf("net %q: %d data sources for state %s, want 1", p.Name, len(active), state)
	}
	d := active[0]

	var source DataSource
	switch d.Source {
	case SourceSynthetic:
		src, err := NewSyntheticSource(SyntheticConfig{
			InputDim:  p.InputDim,
			OutputDim: p.OutputDim,
			Samples:   d.Samples,
			Noise:     d.Noise,
			TaskSeed:  d.TaskSeed,
			Seed:      d.Seed,
		})
		if err != nil {
			return nil, fmt.Errorf("net %q: %w", p.Name, err)
		}
		source = src
	case SourceCSV:
		path := d.Path
		if !filepath.IsAbs(path) && p.dir != "" {
			path = filepath.Join(p.dir, path)
		}
		src, err := ReadCSVFile(path, p.InputDim, p.OutputDim, d.Header)
		if err != nil {
			return nil, fmt.Errorf("net %q: %w", p.Name, err)
		}
		source = src
	default:
		return nil, fmt.Errorf("net %q: unknown data source %q", p.Name, d.Source)
	}

	//nolint:gosec // Using math/rand for weight initialization (not security-critical)
	rng := rand.New(rand.NewSource(seed))
	return NewRegression(RegressionConfig{
		Name:            p.Name,
		BatchSize:       d.BatchSize,
		LossWeight:      valueOr(p.LossWeight, 1),
		WeightFiller:    p.WeightFiller,
		BiasFiller:      p.BiasFiller,
		WeightLRMult:    valueOr(p.WeightLRMult, 1),
		WeightDecayMult: valueOr(p.WeightDecayMult, 1),
		BiasLRMult:      valueOr(p.BiasLRMult, 1),
		BiasDecayMult:   valueOr(p.BiasDecayMult, 1),
	}, source, backend, rng)
}

// String returns a one-line summary of the definition.
func (p *NetParameter) String() string {
	sources := make([]string, len(p.Data))
	for i, d := range p.Data {
		sources[i] = d.Source
	}
	return fmt.Sprintf("%s: %d -> %d, data [%s]", p.Name, p.InputDim, p.OutputDim, strings.Join(sources, " "))
}
