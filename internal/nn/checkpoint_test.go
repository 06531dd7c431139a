package nn_test

import (
	"math/rand"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/solver/internal/backend/cpu"
	"github.com/born-ml/solver/internal/nn"
	"github.com/born-ml/solver/internal/nn/nntest"
	"github.com/born-ml/solver/internal/serialization"
)

func TestSaveLoadParameters(t *testing.T) {
	src := newRegression(t, 4, 8, 1)
	src.ForwardBackward(nn.RunContext{Phase: nn.Train})

	path := filepath.Join(t.TempDir(), "fit_iter_10.born")
	meta := &serialization.TrainingMeta{Iter: 10, RunID: "run", SolverType: "SGD"}
	require.NoError(t, nn.SaveParameters(path, src, true, meta))

	dst := newRegression(t, 4, 8, 1)
	for _, p := range dst.Params() {
		for i := range p.Data().AsFloat32() {
			p.Data().AsFloat32()[i] = 0
		}
	}
	header, err := nn.LoadParameters(path, dst)
	require.NoError(t, err)

	for i, p := range dst.Params() {
		assert.Equal(t, src.Params()[i].Data().AsFloat32(), p.Data().AsFloat32(), p.Name())
	}
	require.NotNil(t, header.Training)
	assert.Equal(t, 10, header.Training.Iter)
	assert.True(t, header.Training.HasGradients)
	assert.Equal(t, "fit", header.Training.NetName)
	assert.Equal(t, 2, header.Training.ParamCount)

	r, err := serialization.Open(path)
	require.NoError(t, err)
	defer r.Close()
	assert.Equal(t, []string{"fit.weight", "fit.weight.grad", "fit.bias", "fit.bias.grad"}, r.TensorNames())
	assert.NotZero(t, r.Flags()&serialization.FlagHasGradients)
}

func TestSaveParametersWithoutGradients(t *testing.T) {
	net := newRegression(t, 4, 8, 1)
	path := filepath.Join(t.TempDir(), "fit.born")
	require.NoError(t, nn.SaveParameters(path, net, false, nil))

	r, err := serialization.Open(path)
	require.NoError(t, err)
	defer r.Close()
	assert.Equal(t, []string{"fit.weight", "fit.bias"}, r.TensorNames())
	assert.Nil(t, r.Header().Training)
}

func TestLoadParametersShapeMismatch(t *testing.T) {
	src := newRegression(t, 4, 8, 1)
	path := filepath.Join(t.TempDir(), "fit.born")
	require.NoError(t, nn.SaveParameters(path, src, false, nil))

	other, err := nn.NewSyntheticSource(nn.SyntheticConfig{InputDim: 5, OutputDim: 2, Samples: 4})
	require.NoError(t, err)
	dst, err := nn.NewRegression(nn.RegressionConfig{Name: "fit", BatchSize: 2}, other, cpu.New(), rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	_, err = nn.LoadParameters(path, dst)
	assert.Error(t, err)
}

func TestLoadParametersLeavesNetOnMismatch(t *testing.T) {
	src := nntest.New("net", 3, 2)
	for _, p := range src.Params() {
		for i := range p.Data().AsFloat32() {
			p.Data().AsFloat32()[i] = 4
		}
	}
	path := filepath.Join(t.TempDir(), "net.born")
	require.NoError(t, nn.SaveParameters(path, src, false, nil))

	// net.p0 matches, net.p1 does not.
	dst := nntest.New("net", 3, 5)
	_, err := nn.LoadParameters(path, dst)
	require.Error(t, err)
	assert.Equal(t, []float32{1, 1, 1}, dst.Params()[0].Data().AsFloat32())
	assert.Equal(t, []float32{1, 1, 1, 1, 1}, dst.Params()[1].Data().AsFloat32())

	staged, err := nn.ReadParameters(path, nntest.New("net", 3))
	require.NoError(t, err)
	assert.Equal(t, 1, staged.Len())
}

func TestLoadParametersMissingFile(t *testing.T) {
	net := newRegression(t, 4, 8, 1)
	_, err := nn.LoadParameters(filepath.Join(t.TempDir(), "missing.born"), net)
	assert.Error(t, err)
}
