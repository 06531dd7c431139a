package solverstate_test

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protowire"
	"google.golang.org/protobuf/proto"

	"github.com/born-ml/solver/internal/solverstate"
	"github.com/born-ml/solver/internal/tensor"
)

func blob(t *testing.T, shape tensor.Shape, values ...float32) *tensor.RawTensor {
	t.Helper()
	b, err := tensor.FromFloat32(values, shape, tensor.CPU)
	require.NoError(t, err)
	return b
}

func TestRoundTripIsExact(t *testing.T) {
	in := &solverstate.State{
		Iter:       500,
		LearnedNet: "snapshot_iter_500.born",
		RunID:      "0b6f4c1e-8a4e-4f1a-9d43-2f0c6d1f7a11",
		History: []*tensor.RawTensor{
			blob(t, tensor.Shape{2, 3}, 1.0/3, -2.5e-38, float32(math.Inf(1)), 0, float32(math.Copysign(0, -1)), math.MaxFloat32),
			blob(t, tensor.Shape{1}, math.SmallestNonzeroFloat32),
		},
	}

	path := filepath.Join(t.TempDir(), "snapshot_iter_500.born"+solverstate.Extension)
	require.NoError(t, solverstate.WriteFile(path, in))

	out, err := solverstate.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, in.Iter, out.Iter)
	assert.Equal(t, in.LearnedNet, out.LearnedNet)
	assert.Equal(t, in.RunID, out.RunID)
	require.Len(t, out.History, len(in.History))
	for i := range in.History {
		assert.Equal(t, in.History[i].Shape(), out.History[i].Shape())
		// Compare bits, not values.
		want := in.History[i].AsFloat32()
		got := out.History[i].AsFloat32()
		for j := range want {
			if math.Float32bits(want[j]) != math.Float32bits(got[j]) {
				t.Errorf("blob %d[%d]: got %v, want %v", i, j, got[j], want[j])
			}
		}
	}
}

func TestEmptyState(t *testing.T) {
	b, err := solverstate.Marshal(&solverstate.State{})
	require.NoError(t, err)

	s, err := solverstate.Unmarshal(b)
	require.NoError(t, err)
	assert.Zero(t, s.Iter)
	assert.Empty(t, s.LearnedNet)
	assert.Empty(t, s.History)
}

func TestUnknownFieldsSkipped(t *testing.T) {
	b, err := solverstate.Marshal(&solverstate.State{Iter: 7})
	require.NoError(t, err)
	b = protowire.AppendTag(b, 99, protowire.BytesType)
	b = protowire.AppendString(b, "future field")

	s, err := solverstate.Unmarshal(b)
	require.NoError(t, err)
	assert.Equal(t, 7, s.Iter)
}

func TestUnpackedBlobAccepted(t *testing.T) {
	var shape []byte
	shape = protowire.AppendTag(shape, 1, protowire.VarintType)
	shape = protowire.AppendVarint(shape, 2)

	var blobBytes []byte
	for _, v := range []float32{1.5, -3} {
		blobBytes = protowire.AppendTag(blobBytes, 5, protowire.Fixed32Type)
		blobBytes = protowire.AppendFixed32(blobBytes, math.Float32bits(v))
	}
	blobBytes = protowire.AppendTag(blobBytes, 7, protowire.BytesType)
	blobBytes = protowire.AppendBytes(blobBytes, shape)

	var b []byte
	b = protowire.AppendTag(b, 3, protowire.BytesType)
	b = protowire.AppendBytes(b, blobBytes)

	s, err := solverstate.Unmarshal(b)
	require.NoError(t, err)
	require.Len(t, s.History, 1)
	assert.Equal(t, tensor.Shape{2}, s.History[0].Shape())
	assert.Equal(t, []float32{1.5, -3}, s.History[0].AsFloat32())
}

func TestMalformed(t *testing.T) {
	good, err := solverstate.Marshal(&solverstate.State{
		Iter:    3,
		History: []*tensor.RawTensor{blob(t, tensor.Shape{4}, 1, 2, 3, 4)},
	})
	require.NoError(t, err)

	tests := []struct {
		name string
		data []byte
	}{
		{"truncated", good[:len(good)-3]},
		{"bad tag", []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := solverstate.Unmarshal(tt.data)
			assert.ErrorIs(t, err, solverstate.ErrMalformed)
		})
	}
}

func marshalMessage(t *testing.T, msg *solverstate.SolverState) []byte {
	t.Helper()
	b, err := proto.Marshal(msg)
	require.NoError(t, err)
	return b
}

func TestShapeDataMismatch(t *testing.T) {
	b := marshalMessage(t, &solverstate.SolverState{
		History: []*solverstate.BlobProto{{Data: []float32{1}, Shape: &solverstate.BlobShape{Dim: []int64{3}}}},
	})
	_, err := solverstate.Unmarshal(b)
	assert.ErrorIs(t, err, solverstate.ErrMalformed)
}

func TestNegativeIterRejected(t *testing.T) {
	_, err := solverstate.Unmarshal(marshalMessage(t, &solverstate.SolverState{Iter: -1}))
	assert.ErrorIs(t, err, solverstate.ErrMalformed)
}

func TestBlobWithoutShapeIsFlat(t *testing.T) {
	b := marshalMessage(t, &solverstate.SolverState{
		History: []*solverstate.BlobProto{{Data: []float32{1, 2, 3}}},
	})
	s, err := solverstate.Unmarshal(b)
	require.NoError(t, err)
	require.Len(t, s.History, 1)
	assert.Equal(t, tensor.Shape{3}, s.History[0].Shape())
}

func TestMarshalMatchesMessage(t *testing.T) {
	b, err := solverstate.Marshal(&solverstate.State{
		Iter:       12,
		LearnedNet: "fit_iter_12.born",
		RunID:      "run",
		History:    []*tensor.RawTensor{blob(t, tensor.Shape{1, 2}, 0.5, -1)},
	})
	require.NoError(t, err)

	var msg solverstate.SolverState
	require.NoError(t, proto.Unmarshal(b, &msg))
	assert.Equal(t, int32(12), msg.GetIter())
	assert.Equal(t, "fit_iter_12.born", msg.GetLearnedNet())
	assert.Equal(t, "run", msg.GetRunId())
	require.Len(t, msg.GetHistory(), 1)
	assert.Equal(t, []float32{0.5, -1}, msg.GetHistory()[0].GetData())
	assert.Equal(t, []int64{1, 2}, msg.GetHistory()[0].GetShape().GetDim())
}

func TestReadFileMissing(t *testing.T) {
	_, err := solverstate.ReadFile(filepath.Join(t.TempDir(), "missing.solverstate"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
