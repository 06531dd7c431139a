// Package config reads solver configuration files.
//
// A solver file names the networks to train and evaluate and every
// hyperparameter of the run. Files may be yaml, json or toml; the format is
// picked from the extension. SOLVER_<KEY> environment variables override
// file values, for example SOLVER_MAX_ITER=500.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/go-playground/validator.v9"

	"github.com/born-ml/solver/internal/log"
	"github.com/born-ml/solver/internal/nn"
)

// EnvPrefix is the prefix of environment overrides.
const EnvPrefix = "solver"

// Solver is the configuration of a training run.
type Solver struct {
	// Network sources. Exactly one train source must be set: Net, NetParam,
	// TrainNet or TrainNetParam. Net and NetParam may also back test nets.
	Net           string             `mapstructure:"net"`
	NetParam      *nn.NetParameter   `mapstructure:"net_param"`
	TrainNet      string             `mapstructure:"train_net"`
	TrainNetParam *nn.NetParameter   `mapstructure:"train_net_param"`
	TestNet       []string           `mapstructure:"test_net"`
	TestNetParam  []nn.NetParameter  `mapstructure:"test_net_param" validate:"dive"`
	TrainState    nn.StateOverride   `mapstructure:"train_state"`
	TestState     []nn.StateOverride `mapstructure:"test_state" validate:"dive"`

	// Evaluation.
	TestIter           []int `mapstructure:"test_iter" validate:"dive,gte=0"`
	TestInterval       int   `mapstructure:"test_interval" validate:"gte=0"`
	TestComputeLoss    bool  `mapstructure:"test_compute_loss"`
	TestInitialization bool  `mapstructure:"test_initialization"`

	// Loop.
	MaxIter        int  `mapstructure:"max_iter" validate:"gte=0"`
	Display        int  `mapstructure:"display" validate:"gte=0"`
	AverageLoss    int  `mapstructure:"average_loss"`
	UpdateInterval int  `mapstructure:"update_interval"`
	DebugInfo      bool `mapstructure:"debug_info"`

	// Snapshots.
	Snapshot           int    `mapstructure:"snapshot" validate:"gte=0"`
	SnapshotPrefix     string `mapstructure:"snapshot_prefix"`
	SnapshotDiff       bool   `mapstructure:"snapshot_diff"`
	SnapshotAfterTrain bool   `mapstructure:"snapshot_after_train"`

	// Execution.
	SolverMode string `mapstructure:"solver_mode"`
	DeviceID   int    `mapstructure:"device_id" validate:"gte=0"`
	RandomSeed int64  `mapstructure:"random_seed"`

	// Update rule.
	SolverType         string  `mapstructure:"solver_type"`
	BaseLR             float32 `mapstructure:"base_lr" validate:"gte=0"`
	LRPolicy           string  `mapstructure:"lr_policy"`
	Gamma              float32 `mapstructure:"gamma"`
	Power              float32 `mapstructure:"power"`
	StepSize           int     `mapstructure:"stepsize" validate:"gte=0"`
	Momentum           float32 `mapstructure:"momentum" validate:"gte=0"`
	RMSDecay           float32 `mapstructure:"rms_decay" validate:"gte=0"`
	Delta              float32 `mapstructure:"delta" validate:"gte=0"`
	WeightDecay        float32 `mapstructure:"weight_decay" validate:"gte=0"`
	RegularizationType string  `mapstructure:"regularization_type"`

	// Dir is the directory of the file the configuration was read from.
	// Relative network paths resolve against it.
	Dir string `mapstructure:"-"`
}

// Validate checks value ranges. Cross-field rules, such as the number of
// train net sources, are checked by the solver.
func (c *Solver) Validate() error {
	return validator.New().Struct(c)
}

// ResolvePath returns path relative to the configuration directory.
func (c *Solver) ResolvePath(path string) string {
	if path == "" || filepath.IsAbs(path) || c.Dir == "" {
		return path
	}
	return filepath.Join(c.Dir, path)
}

// Read reads and validates the configuration file at path.
func Read(path string) (*Solver, error) {
	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read solver config %s: %w", path, err)
	}
	// Older solver files call the accumulation interval iter_size.
	if v.InConfig("iter_size") && !v.InConfig("update_interval") {
		v.Set("update_interval", v.Get("iter_size"))
	}

	c := &Solver{}
	if err := v.Unmarshal(c); err != nil {
		log.Debugf("Unmarshaling solver config failed: %v", err)
		return nil, fmt.Errorf("decode solver config %s: %w", path, err)
	}
	c.Dir = filepath.Dir(path)

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("solver config %s: %w", path, err)
	}
	return c, nil
}

// Default returns a configuration holding only default values.
func Default() *Solver {
	v := viper.New()
	setDefaults(v)

	c := &Solver{}
	if err := v.Unmarshal(c); err != nil {
		panic(err)
	}
	return c
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// setDefaults sets the default values of the solver config.
func setDefaults(v *viper.Viper) {
	keys := map[string]interface{}{
		"test_interval":        0,
		"test_compute_loss":    false,
		"test_initialization":  true,
		"max_iter":             0,
		"display":              0,
		"average_loss":         1,
		"update_interval":      1,
		"debug_info":           false,
		"snapshot":             0,
		"snapshot_prefix":      "snapshot",
		"snapshot_diff":        false,
		"snapshot_after_train": true,
		"solver_mode":          "CPU",
		"device_id":            0,
		"random_seed":          -1,
		"solver_type":          "SGD",
		"base_lr":              0.01,
		"lr_policy":            "fixed",
		"gamma":                0,
		"power":                0,
		"stepsize":             0,
		"momentum":             0,
		"rms_decay":            0.99,
		"delta":                1e-8,
		"weight_decay":         0,
		"regularization_type":  "L2",
	}

	for k, value := range keys {
		v.SetDefault(k, value)
	}
}
