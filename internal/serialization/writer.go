package serialization

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// Write encodes entries in .born v2 format to w.
//
// header.Tensors is filled from entries; FormatVersion, Producer and
// CreatedAt are set when left zero.
func Write(w io.Writer, entries []Entry, header Header) error {
	header.FormatVersion = FormatVersionV2
	if header.Producer == "" {
		header.Producer = Producer
	}
	if header.CreatedAt.IsZero() {
		header.CreatedAt = time.Now().UTC()
	}
	if header.Metadata == nil {
		header.Metadata = make(map[string]string)
	}

	// Calculate tensor offsets and collect tensor data
	var currentOffset int64
	var tensorData bytes.Buffer
	header.Tensors = make([]TensorMeta, 0, len(entries))
	for _, e := range entries {
		if e.Tensor == nil {
			return fmt.Errorf("tensor %q is nil", e.Name)
		}
		size := int64(e.Tensor.ByteSize())
		header.Tensors = append(header.Tensors, TensorMeta{
			Name:   e.Name,
			DType:  dtypeToString(e.Tensor.DType()),
			Shape:  []int(e.Tensor.Shape().Clone()),
			Offset: currentOffset,
			Size:   size,
		})
		tensorData.Write(e.Tensor.Data())
		currentOffset += size
	}

	if err := ValidateHeader(&header, currentOffset, ValidationStrict); err != nil {
		return fmt.Errorf("invalid entries: %w", err)
	}

	headerJSON, err := json.Marshal(header)
	if err != nil {
		return fmt.Errorf("failed to marshal header: %w", err)
	}

	checksum := sha256.Sum256(tensorData.Bytes())

	// v2 fixed header (64 bytes)
	fixedHeader := make([]byte, FixedHeaderSizeV2)
	copy(fixedHeader[0:4], MagicBytes)
	binary.LittleEndian.PutUint32(fixedHeader[4:8], uint32(FormatVersionV2))
	binary.LittleEndian.PutUint32(fixedHeader[8:12], headerFlags(&header))
	binary.LittleEndian.PutUint64(fixedHeader[16:24], uint64(len(headerJSON)))
	binary.LittleEndian.PutUint64(fixedHeader[24:32], uint64(tensorData.Len()))
	copy(fixedHeader[ChecksumOffsetV2:ChecksumOffsetV2+ChecksumSize], checksum[:])

	if _, err := w.Write(fixedHeader); err != nil {
		return fmt.Errorf("failed to write fixed header: %w", err)
	}
	if _, err := w.Write(headerJSON); err != nil {
		return fmt.Errorf("failed to write header JSON: %w", err)
	}

	// Pad so tensor data starts on a 64-byte boundary
	padding := alignedDataOffset(uint64(len(headerJSON))) - int64(FixedHeaderSizeV2+len(headerJSON))
	if padding > 0 {
		if _, err := w.Write(make([]byte, padding)); err != nil {
			return fmt.Errorf("failed to write padding: %w", err)
		}
	}

	if _, err := w.Write(tensorData.Bytes()); err != nil {
		return fmt.Errorf("failed to write tensor data: %w", err)
	}
	return nil
}

// WriteFile writes entries to path.
// The file is written to a temporary sibling and renamed into place, so
// readers never observe a partially written artifact.
func WriteFile(path string, entries []Entry, header Header) error {
	return WriteAtomic(path, func(w io.Writer) error {
		return Write(w, entries, header)
	})
}

// WriteAtomic calls write with a temporary file in path's directory and
// renames it to path once write and the final sync succeed.
func WriteAtomic(path string, write func(w io.Writer) error) (err error) {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if err = write(tmp); err != nil {
		return err
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("failed to sync %s: %w", path, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to move %s into place: %w", path, err)
	}
	return nil
}

func headerFlags(h *Header) uint32 {
	flags := uint32(0)
	if len(h.Metadata) > 0 {
		flags |= FlagHasMetadata
	}
	if h.Training != nil {
		flags |= FlagHasSolver
		if h.Training.HasGradients {
			flags |= FlagHasGradients
		}
	}
	return flags
}
