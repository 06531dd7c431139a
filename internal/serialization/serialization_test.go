package serialization

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/solver/internal/tensor"
)

func testEntries(t *testing.T) []Entry {
	t.Helper()
	w, err := tensor.FromFloat32([]float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3}, tensor.CPU)
	require.NoError(t, err)
	b, err := tensor.FromFloat32([]float32{-0.5, 0.25}, tensor.Shape{2}, tensor.CPU)
	require.NoError(t, err)
	return []Entry{{Name: "fc.weight", Tensor: w}, {Name: "fc.bias", Tensor: b}}
}

func TestRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "net_iter_10.born")
	entries := testEntries(t)

	err := WriteFile(path, entries, Header{
		ModelType: "Regression",
		Metadata:  map[string]string{"phase": "TRAIN"},
		Training:  &TrainingMeta{Iter: 10, SolverType: "SGD"},
	})
	require.NoError(t, err)

	r, err := Open(path)
	require.NoError(t, err)
	defer r.Close()

	h := r.Header()
	assert.Equal(t, FormatVersionV2, h.FormatVersion)
	assert.Equal(t, Producer, h.Producer)
	assert.Equal(t, "Regression", h.ModelType)
	assert.Equal(t, "TRAIN", h.Metadata["phase"])
	require.NotNil(t, h.Training)
	assert.Equal(t, 10, h.Training.Iter)
	assert.Equal(t, FlagHasMetadata|FlagHasSolver, r.Flags())

	// File order is preserved.
	assert.Equal(t, []string{"fc.weight", "fc.bias"}, r.TensorNames())

	loaded, err := r.ReadAll(tensor.CPU)
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	for i, e := range loaded {
		assert.Equal(t, entries[i].Name, e.Name)
		assert.True(t, e.Tensor.SameLayout(entries[i].Tensor))
		assert.Equal(t, entries[i].Tensor.Data(), e.Tensor.Data())
	}

	_, err = r.Load("missing", tensor.CPU)
	assert.ErrorIs(t, err, ErrTensorNotFound)
}

func TestWriteIsDeterministic(t *testing.T) {
	var a, b bytes.Buffer
	h := Header{ModelType: "Regression", CreatedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}

	require.NoError(t, Write(&a, testEntries(t), h))
	require.NoError(t, Write(&b, testEntries(t), h))
	assert.Equal(t, a.Bytes(), b.Bytes())
}

func TestChecksumMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corrupt.born")
	require.NoError(t, WriteFile(path, testEntries(t), Header{}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	data[len(data)-1] ^= 0xFF
	require.NoError(t, os.WriteFile(path, data, 0o600))

	_, err = Open(path)
	assert.True(t, errors.Is(err, ErrChecksumMismatch), "got %v", err)

	r, err := OpenWithOptions(path, ReaderOptions{SkipChecksumValidation: true})
	require.NoError(t, err)
	require.NoError(t, r.Close())
}

func TestInvalidMagic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.born")
	require.NoError(t, os.WriteFile(path, make([]byte, 128), 0o600))

	_, err := Open(path)
	assert.ErrorIs(t, err, ErrInvalidMagic)
}

func TestWriteFileLeavesNoTempOnError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dup.born")
	entries := testEntries(t)
	entries[1].Name = entries[0].Name

	err := WriteFile(path, entries, Header{})
	require.ErrorIs(t, err, ErrDuplicateTensor)

	files, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestWriteFileReplacesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "net.born")
	require.NoError(t, os.WriteFile(path, []byte("stale"), 0o600))
	require.NoError(t, WriteFile(path, testEntries(t), Header{}))

	r, err := Open(path)
	require.NoError(t, err)
	assert.Len(t, r.TensorNames(), 2)
	require.NoError(t, r.Close())
}
