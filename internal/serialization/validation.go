package serialization

import (
	"fmt"
	"sort"
	"strings"
)

// Limits enforced when reading a header.
const (
	MaxHeaderSize    = 16 << 20
	MaxTensorCount   = 1 << 16
	MaxTensorNameLen = 1024
)

// ValidationLevel controls the strictness of validation.
type ValidationLevel int

const (
	// ValidationStrict performs all validation checks (default).
	ValidationStrict ValidationLevel = iota
	// ValidationNormal skips the offset checks.
	ValidationNormal
	// ValidationNone skips validation. Use only with trusted input.
	ValidationNone
)

// ValidateTensorOffsets checks that every tensor lies inside the data
// section and that no two tensors share bytes.
func ValidateTensorOffsets(tensors []TensorMeta, dataSize int64) error {
	if len(tensors) > MaxTensorCount {
		return tooManyTensors(len(tensors))
	}

	byOffset := append([]TensorMeta(nil), tensors...)
	sort.Slice(byOffset, func(i, j int) bool { return byOffset[i].Offset < byOffset[j].Offset })

	var prev *TensorMeta
	for i := range byOffset {
		t := &byOffset[i]
		end := t.Offset + t.Size
		switch {
		case t.Offset < 0 || t.Size < 0:
			return &ValidationError{Type: "negative_offset", Tensor: t.Name,
				Details: fmt.Sprintf("offset=%d, size=%d", t.Offset, t.Size), Err: ErrOutOfBounds}
		case end > dataSize:
			return &ValidationError{Type: "out_of_bounds", Tensor: t.Name,
				Details: fmt.Sprintf("ends at %d, data section is %d bytes", end, dataSize), Err: ErrOutOfBounds}
		case prev != nil && prev.Offset+prev.Size > t.Offset:
			return &ValidationError{Type: "offset_overlap", Tensor: prev.Name, Tensor2: t.Name,
				Details: fmt.Sprintf("[%d, %d) and [%d, %d)", prev.Offset, prev.Offset+prev.Size, t.Offset, end),
				Err:     ErrOffsetOverlap}
		}
		prev = t
	}
	return nil
}

func tooManyTensors(n int) error {
	return &ValidationError{Type: "too_many_tensors",
		Details: fmt.Sprintf("got %d, max %d", n, MaxTensorCount), Err: ErrTooManyTensors}
}

// ValidateTensorName rejects empty, oversized and path-like tensor names.
func ValidateTensorName(name string) error {
	invalid := func(details string) error {
		return &ValidationError{Type: "invalid_name", Tensor: name, Details: details, Err: ErrInvalidTensorName}
	}

	switch {
	case name == "":
		return invalid("empty name")
	case len(name) > MaxTensorNameLen:
		return invalid(fmt.Sprintf("length %d > max %d", len(name), MaxTensorNameLen))
	case strings.Contains(name, ".."):
		return invalid("contains '..' (path traversal attempt)")
	case strings.ContainsAny(name, "/\\"):
		return invalid("contains path separator (/ or \\)")
	case strings.Contains(name, "\x00"):
		return invalid("contains null byte")
	}
	return nil
}

// ValidateHeader performs header validation at the given level.
func ValidateHeader(h *Header, dataSize int64, level ValidationLevel) error {
	if level == ValidationNone {
		return nil
	}

	if len(h.Tensors) > MaxTensorCount {
		return tooManyTensors(len(h.Tensors))
	}

	seen := make(map[string]struct{}, len(h.Tensors))
	for _, t := range h.Tensors {
		if err := ValidateTensorName(t.Name); err != nil {
			return err
		}
		if _, dup := seen[t.Name]; dup {
			return &ValidationError{Type: "duplicate_name", Tensor: t.Name, Details: "appears twice", Err: ErrDuplicateTensor}
		}
		seen[t.Name] = struct{}{}
	}

	if level == ValidationStrict {
		if err := ValidateTensorOffsets(h.Tensors, dataSize); err != nil {
			return err
		}
	}

	return nil
}
