package serialization

import (
	"time"

	"github.com/born-ml/solver/internal/tensor"
)

// Format constants.
const (
	MagicBytes        = "BORN"
	FormatVersionV2   = 2    // v2: With SHA-256 checksum
	HeaderAlignment   = 64   // Align tensor data to 64 bytes
	FixedHeaderSizeV2 = 64   // v2 fixed header size (0x40 bytes)
	ChecksumSize      = 32   // SHA-256 checksum size (32 bytes)
	ChecksumOffsetV2  = 0x20 // Checksum offset in v2 fixed header
)

// Producer is recorded in every header written by this package.
const Producer = "born-solver"

// Data type string constants for serialization.
const (
	DTypeFloat32 = "float32"
	DTypeFloat64 = "float64"
	DTypeInt32   = "int32"
	DTypeInt64   = "int64"
)

// Flags for the .born format.
const (
	FlagHasGradients uint32 = 1 << 0 // bit 0: gradient tensors included
	FlagHasSolver    uint32 = 1 << 1 // bit 1: training metadata included
	FlagHasMetadata  uint32 = 1 << 2 // bit 2: custom metadata included
)

// Header represents the JSON header in a .born file.
type Header struct {
	FormatVersion int               `json:"format_version"`     // Version of the .born format
	Producer      string            `json:"producer"`           // Program that wrote the file
	ModelType     string            `json:"model_type"`         // Network type (e.g., "Regression")
	CreatedAt     time.Time         `json:"created_at"`         // When the file was created
	Tensors       []TensorMeta      `json:"tensors"`            // Tensor metadata, in data order
	Metadata      map[string]string `json:"metadata"`           // Custom metadata
	Training      *TrainingMeta     `json:"training,omitempty"` // Training metadata (optional)
}

// TrainingMeta records where in a training run a parameter artifact was taken.
type TrainingMeta struct {
	Iter          int    `json:"iter"`           // Iteration counter at snapshot time
	RunID         string `json:"run_id"`         // Identifier of the training run
	SolverType    string `json:"solver_type"`    // Update rule ("SGD", "AdaGrad", ...)
	HasGradients  bool   `json:"has_gradients"`  // Whether "<name>.grad" tensors are present
	NetName       string `json:"net_name"`       // Name of the trained network
	ParamCount    int    `json:"param_count"`    // Number of learnable parameters
	SmoothedLoss  string `json:"smoothed_loss"`  // Display loss at snapshot time, formatted
	LearningRate  string `json:"learning_rate"`  // Rate of the last update, formatted
	BackendDevice string `json:"backend_device"` // Device the run executed on
}

// TensorMeta describes a tensor in the .born file.
type TensorMeta struct {
	Name   string `json:"name"`   // Tensor name (e.g., "fc.weight")
	DType  string `json:"dtype"`  // Data type (e.g., "float32")
	Shape  []int  `json:"shape"`  // Tensor shape
	Offset int64  `json:"offset"` // Offset in the data section
	Size   int64  `json:"size"`   // Size in bytes
}

// Entry is a named tensor to be written.
type Entry struct {
	Name   string
	Tensor *tensor.RawTensor
}

// dtypeToString converts tensor.DataType to string representation.
func dtypeToString(dt tensor.DataType) string {
	switch dt {
	case tensor.Float32:
		return DTypeFloat32
	case tensor.Float64:
		return DTypeFloat64
	case tensor.Int32:
		return DTypeInt32
	case tensor.Int64:
		return DTypeInt64
	default:
		return "unknown"
	}
}

// stringToDtype converts string representation to tensor.DataType.
func stringToDtype(s string) (tensor.DataType, bool) {
	switch s {
	case DTypeFloat32:
		return tensor.Float32, true
	case DTypeFloat64:
		return tensor.Float64, true
	case DTypeInt32:
		return tensor.Int32, true
	case DTypeInt64:
		return tensor.Int64, true
	default:
		return 0, false
	}
}

// alignedDataOffset returns the file offset of the data section for a header of headerSize bytes.
func alignedDataOffset(headerSize uint64) int64 {
	//nolint:gosec // G115: headerSize is bounded by MaxHeaderSize
	currentPos := int64(FixedHeaderSizeV2) + int64(headerSize)
	padding := (HeaderAlignment - (currentPos % HeaderAlignment)) % HeaderAlignment
	return currentPos + padding
}
