package nn

import (
	"fmt"
	"strings"

	"github.com/born-ml/solver/internal/serialization"
	"github.com/born-ml/solver/internal/tensor"
)

// GradSuffix names the gradient tensor of a parameter in a parameter artifact.
const GradSuffix = ".grad"

// SaveParameters writes the parameters of net to a .born file.
//
// Each parameter is stored under its name; with includeGrads its gradient
// is stored too, under the name plus GradSuffix. The file is replaced
// atomically.
//
// Parameters:
//   - path: destination file
//   - net: network whose parameters are saved
//   - includeGrads: also store gradients
//   - training: optional run metadata recorded in the header
//
// Example:
//
//	err := nn.SaveParameters("snapshot_iter_500.born", net, false, &serialization.TrainingMeta{Iter: 500})
func SaveParameters(path string, net Net, includeGrads bool, training *serialization.TrainingMeta) error {
	params := net.Params()
	entries := make([]serialization.Entry, 0, 2*len(params))
	for _, p := range params {
		entries = append(entries, serialization.Entry{Name: p.Name(), Tensor: p.Data()})
		if includeGrads {
			entries = append(entries, serialization.Entry{Name: p.Name() + GradSuffix, Tensor: p.Grad()})
		}
	}

	header := serialization.Header{
		ModelType: fmt.Sprintf("%T", net),
		Metadata:  map[string]string{"net": net.Name()},
	}
	if training != nil {
		meta := *training
		meta.HasGradients = includeGrads
		meta.NetName = net.Name()
		meta.ParamCount = len(params)
		header.Training = &meta
	}

	if err := serialization.WriteFile(path, entries, header); err != nil {
		return fmt.Errorf("save parameters of %s: %w", net.Name(), err)
	}
	return nil
}

// StagedParameters holds parameter values read from a .born file and
// checked against a network, not yet written into it.
type StagedParameters struct {
	header  serialization.Header
	targets []*Parameter
	values  []*tensor.RawTensor
}

// ReadParameters reads the values of net's parameters from a .born file
// without changing net.
//
// Tensors are matched by name. Parameters the file doesn't have are skipped,
// gradient tensors are ignored, and a shape or type mismatch is an error.
func ReadParameters(path string, net Net) (*StagedParameters, error) {
	r, err := serialization.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load parameters: %w", err)
	}
	defer func() { _ = r.Close() }()

	names := make(map[string]bool)
	for _, name := range r.TensorNames() {
		if !strings.HasSuffix(name, GradSuffix) {
			names[name] = true
		}
	}

	sp := &StagedParameters{header: r.Header()}
	for _, p := range net.Params() {
		if !names[p.Name()] {
			continue
		}
		t, err := r.Load(p.Name(), tensor.CPU)
		if err != nil {
			return nil, fmt.Errorf("load parameter %s: %w", p.Name(), err)
		}
		if !t.SameLayout(p.Data()) {
			return nil, fmt.Errorf("load parameter %s: %v (%s) in file, network has %v (%s)",
				p.Name(), t.Shape(), t.DType(), p.Shape(), p.Data().DType())
		}
		sp.targets = append(sp.targets, p)
		sp.values = append(sp.values, t)
	}
	return sp, nil
}

// Header returns the header of the file the values were read from.
func (sp *StagedParameters) Header() serialization.Header {
	return sp.header
}

// Len returns the number of staged parameters.
func (sp *StagedParameters) Len() int {
	return len(sp.values)
}

// Apply writes the staged values into the network parameters.
func (sp *StagedParameters) Apply() {
	for i, t := range sp.values {
		// Layouts were checked by ReadParameters.
		_ = sp.targets[i].Data().CopyFrom(t)
	}
}

// LoadParameters copies parameter values from a .born file into net.
//
// Every matching tensor is read and checked before any parameter is
// written, so on error net is unchanged. It returns the header of the file.
func LoadParameters(path string, net Net) (serialization.Header, error) {
	sp, err := ReadParameters(path, net)
	if err != nil {
		return serialization.Header{}, err
	}
	sp.Apply()
	return sp.header, nil
}
