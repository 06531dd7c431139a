package nn_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/solver/internal/backend/cpu"
	"github.com/born-ml/solver/internal/nn"
)

const netYAML = `
name: housing
input_dim: 2
output_dim: 1
loss_weight: 0.5
bias_decay_mult: 0
weight_filler:
  type: gaussian
  std: 0.01
data:
  - source: csv
    path: train.csv
    header: true
    batch_size: 2
    include:
      - phase: TRAIN
  - source: synthetic
    samples: 32
    batch_size: 8
    task_seed: 7
    include:
      - phase: TEST
        not_stage: [fast]
  - source: synthetic
    samples: 4
    batch_size: 4
    include:
      - phase: TEST
        stage: [fast]
`

const trainCSV = `x1,x2,y
1, 2, 3
# comment
2, 0, 2
0, 1, 1
`

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
	}
	return dir
}

func TestReadNetParameter(t *testing.T) {
	dir := writeFiles(t, map[string]string{"net.yaml": netYAML, "train.csv": trainCSV})

	p, err := nn.ReadNetParameter(filepath.Join(dir, "net.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "housing", p.Name)
	assert.Equal(t, 2, p.InputDim)
	require.Len(t, p.Data, 3)
	require.NotNil(t, p.LossWeight)
	assert.Equal(t, float32(0.5), *p.LossWeight)
	require.NotNil(t, p.BiasDecayMult)
	assert.Zero(t, *p.BiasDecayMult)
	assert.Nil(t, p.WeightLRMult)
	assert.Equal(t, nn.FillerGaussian, p.WeightFiller.Type)

	// CSV paths resolve against the definition's directory.
	train, err := nn.Build(p, nn.NetState{Phase: nn.Train}, cpu.New(), 1)
	require.NoError(t, err)
	assert.Equal(t, 2, train.BatchSize())
	assert.Equal(t, float32(0.5), train.LossWeight())
	assert.Equal(t, float32(0), train.Params()[1].DecayMult)
	assert.Equal(t, float32(1), train.Params()[0].LRMult)

	test, err := nn.Build(p, nn.NetState{Phase: nn.Test}, cpu.New(), 1)
	require.NoError(t, err)
	assert.Equal(t, 8, test.BatchSize())

	fast, err := nn.Build(p, nn.NetState{Phase: nn.Test, Stage: []string{"fast"}}, cpu.New(), 1)
	require.NoError(t, err)
	assert.Equal(t, 4, fast.BatchSize())
}

func TestBuildIsSeeded(t *testing.T) {
	dir := writeFiles(t, map[string]string{"net.yaml": netYAML, "train.csv": trainCSV})
	p, err := nn.ReadNetParameter(filepath.Join(dir, "net.yaml"))
	require.NoError(t, err)

	a, err := nn.Build(p, nn.NetState{Phase: nn.Train}, cpu.New(), 5)
	require.NoError(t, err)
	b, err := nn.Build(p, nn.NetState{Phase: nn.Train}, cpu.New(), 5)
	require.NoError(t, err)
	c, err := nn.Build(p, nn.NetState{Phase: nn.Train}, cpu.New(), 6)
	require.NoError(t, err)

	assert.Equal(t, a.Params()[0].Data().AsFloat32(), b.Params()[0].Data().AsFloat32())
	assert.NotEqual(t, a.Params()[0].Data().AsFloat32(), c.Params()[0].Data().AsFloat32())
}

func TestBuildDataSelection(t *testing.T) {
	p := &nn.NetParameter{
		Name: "n", InputDim: 1, OutputDim: 1,
		Data: []nn.DataConfig{
			{Source: nn.SourceSynthetic, Samples: 4, BatchSize: 2, Include: []nn.StateRule{{Phase: "TRAIN"}}},
			{Source: nn.SourceSynthetic, Samples: 4, BatchSize: 2},
		},
	}
	require.NoError(t, p.Validate())

	_, err := nn.Build(p, nn.NetState{Phase: nn.Train}, cpu.New(), 1)
	assert.Error(t, err, "two active sources in TRAIN")

	_, err = nn.Build(p, nn.NetState{Phase: nn.Test}, cpu.New(), 1)
	assert.NoError(t, err)

	p.Data = p.Data[:1]
	_, err = nn.Build(p, nn.NetState{Phase: nn.Test}, cpu.New(), 1)
	assert.Error(t, err, "no active source in TEST")
}

func TestStateRuleMatches(t *testing.T) {
	one, three := 1, 3
	state := nn.NetState{Phase: nn.Test, Level: 2, Stage: []string{"a"}}

	tests := []struct {
		name string
		rule nn.StateRule
		want bool
	}{
		{"empty", nn.StateRule{}, true},
		{"phase", nn.StateRule{Phase: "test"}, true},
		{"other phase", nn.StateRule{Phase: "TRAIN"}, false},
		{"level range", nn.StateRule{MinLevel: &one, MaxLevel: &three}, true},
		{"below min", nn.StateRule{MinLevel: &three}, false},
		{"above max", nn.StateRule{MaxLevel: &one}, false},
		{"stage", nn.StateRule{Stage: []string{"a"}}, true},
		{"missing stage", nn.StateRule{Stage: []string{"a", "b"}}, false},
		{"not stage", nn.StateRule{NotStage: []string{"a"}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.rule.Matches(state))
		})
	}
}

func TestNetParameterValidate(t *testing.T) {
	valid := func() *nn.NetParameter {
		return &nn.NetParameter{
			Name: "n", InputDim: 1, OutputDim: 1,
			Data: []nn.DataConfig{{Source: nn.SourceSynthetic, Samples: 4, BatchSize: 2}},
		}
	}
	require.NoError(t, valid().Validate())

	tests := []struct {
		name   string
		modify func(p *nn.NetParameter)
	}{
		{"missing name", func(p *nn.NetParameter) { p.Name = "" }},
		{"zero input", func(p *nn.NetParameter) { p.InputDim = 0 }},
		{"no data", func(p *nn.NetParameter) { p.Data = nil }},
		{"bad source", func(p *nn.NetParameter) { p.Data[0].Source = "lmdb" }},
		{"csv without path", func(p *nn.NetParameter) { p.Data[0].Source = nn.SourceCSV }},
		{"zero batch", func(p *nn.NetParameter) { p.Data[0].BatchSize = 0 }},
		{"bad filler", func(p *nn.NetParameter) { p.WeightFiller.Type = "msra" }},
		{"bad phase", func(p *nn.NetParameter) { p.State.Phase = "EVAL" }},
		{"negative lr mult", func(p *nn.NetParameter) {
			v := float32(-1)
			p.WeightLRMult = &v
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid()
			tt.modify(p)
			assert.Error(t, p.Validate())
		})
	}
}
