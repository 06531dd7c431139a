// Package solverstate encodes the solver-state artifact of a snapshot.
//
// The artifact is a SolverState protocol buffer message, see
// solverstate.proto. Float values are copied bit for bit, so a round trip
// is exact.
package solverstate

//go:generate protoc --go_out=. --go_opt=paths=source_relative solverstate.proto

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"google.golang.org/protobuf/proto"

	"github.com/born-ml/solver/internal/serialization"
	"github.com/born-ml/solver/internal/tensor"
)

// Extension is appended to the parameter artifact name to name the state artifact.
const Extension = ".solverstate"

// ErrMalformed is returned for artifacts that cannot be decoded.
var ErrMalformed = errors.New("malformed solver state")

// State is the optimizer side of a snapshot.
type State struct {
	Iter int
	// LearnedNet names the paired parameter artifact. Empty when there is none.
	LearnedNet string
	RunID      string
	History    []*tensor.RawTensor
}

// Marshal encodes s.
func Marshal(s *State) ([]byte, error) {
	msg := &SolverState{
		Iter:       int32(s.Iter), //nolint:gosec // G115: iteration counts fit in int32
		LearnedNet: s.LearnedNet,
		RunId:      s.RunID,
		History:    make([]*BlobProto, 0, len(s.History)),
	}
	for i, h := range s.History {
		if h.DType() != tensor.Float32 {
			return nil, fmt.Errorf("history blob %d: unsupported dtype %s", i, h.DType())
		}
		dims := make([]int64, len(h.Shape()))
		for j, d := range h.Shape() {
			dims[j] = int64(d)
		}
		msg.History = append(msg.History, &BlobProto{
			Data:  h.AsFloat32(),
			Shape: &BlobShape{Dim: dims},
		})
	}
	return proto.Marshal(msg)
}

// Unmarshal decodes a state. Unknown fields are skipped.
func Unmarshal(b []byte) (*State, error) {
	var msg SolverState
	if err := proto.Unmarshal(b, &msg); err != nil {
		return nil, malformed(err)
	}
	if msg.GetIter() < 0 {
		return nil, malformed(fmt.Errorf("negative iteration %d", msg.GetIter()))
	}

	s := &State{
		Iter:       int(msg.GetIter()),
		LearnedNet: msg.GetLearnedNet(),
		RunID:      msg.GetRunId(),
		History:    make([]*tensor.RawTensor, 0, len(msg.GetHistory())),
	}
	for i, blob := range msg.GetHistory() {
		t, err := blobTensor(blob)
		if err != nil {
			return nil, fmt.Errorf("history blob %d: %w", i, err)
		}
		s.History = append(s.History, t)
	}
	return s, nil
}

// blobTensor converts a blob to a CPU tensor. A blob without a shape is one-dimensional.
func blobTensor(blob *BlobProto) (*tensor.RawTensor, error) {
	data := blob.GetData()
	shape := tensor.Shape{len(data)}
	if blob.GetShape() != nil {
		shape = make(tensor.Shape, len(blob.GetShape().GetDim()))
		for i, d := range blob.GetShape().GetDim() {
			shape[i] = int(d)
		}
	}
	t, err := tensor.FromFloat32(data, shape, tensor.CPU)
	if err != nil {
		return nil, malformed(err)
	}
	return t, nil
}

func malformed(err error) error {
	return fmt.Errorf("%w: %v", ErrMalformed, err)
}

// Write encodes s to w.
func Write(w io.Writer, s *State) error {
	b, err := Marshal(s)
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}

// WriteFile atomically writes s to path.
func WriteFile(path string, s *State) error {
	return serialization.WriteAtomic(path, func(w io.Writer) error {
		return Write(w, s)
	})
}

// Read decodes a state from r.
func Read(r io.Reader) (*State, error) {
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(r); err != nil {
		return nil, err
	}
	return Unmarshal(buf.Bytes())
}

// ReadFile reads the state artifact at path.
func ReadFile(path string) (*State, error) {
	f, err := os.Open(path) //nolint:gosec // G304: path is supplied by the caller
	if err != nil {
		return nil, fmt.Errorf("open solver state: %w", err)
	}
	defer func() { _ = f.Close() }()

	s, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("read solver state %s: %w", path, err)
	}
	return s, nil
}
