package serialization

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/born-ml/solver/internal/tensor"
)

// Reader reads tensors from a .born v2 file.
type Reader struct {
	file       *os.File
	header     Header
	flags      uint32
	dataOffset int64    // Offset where tensor data starts
	dataSize   int64    // Size of the data section
	checksum   [32]byte // SHA-256 checksum of the data section
	opts       ReaderOptions
	closed     bool
}

// ReaderOptions configures the behavior of Reader.
type ReaderOptions struct {
	SkipChecksumValidation bool            // Skip checksum validation (faster but less safe)
	ValidationLevel        ValidationLevel // Validation strictness level
}

// Open opens a .born file with strict validation.
func Open(path string) (*Reader, error) {
	return OpenWithOptions(path, ReaderOptions{ValidationLevel: ValidationStrict})
}

// OpenWithOptions opens a .born file with custom options.
func OpenWithOptions(path string, opts ReaderOptions) (*Reader, error) {
	//nolint:gosec // G304: artifact paths come from the solver configuration
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	r := &Reader{file: file, opts: opts}
	if err := r.parseHeader(); err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to parse header of %s: %w", path, err)
	}

	if err := ValidateHeader(&r.header, r.dataSize, opts.ValidationLevel); err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	return r, nil
}

func (r *Reader) parseHeader() error {
	fixedHeader := make([]byte, FixedHeaderSizeV2)
	if _, err := io.ReadFull(r.file, fixedHeader); err != nil {
		return fmt.Errorf("failed to read fixed header: %w", err)
	}
	if string(fixedHeader[0:4]) != MagicBytes {
		return ErrInvalidMagic
	}
	if version := binary.LittleEndian.Uint32(fixedHeader[4:8]); version != FormatVersionV2 {
		return fmt.Errorf("%w: got %d, expected %d", ErrUnsupportedVersion, version, FormatVersionV2)
	}

	r.flags = binary.LittleEndian.Uint32(fixedHeader[8:12])
	headerSize := binary.LittleEndian.Uint64(fixedHeader[16:24])
	dataSize := binary.LittleEndian.Uint64(fixedHeader[24:32])
	copy(r.checksum[:], fixedHeader[ChecksumOffsetV2:ChecksumOffsetV2+ChecksumSize])

	if headerSize > MaxHeaderSize {
		return ErrHeaderTooLarge
	}

	headerBytes := make([]byte, headerSize)
	if _, err := io.ReadFull(r.file, headerBytes); err != nil {
		return fmt.Errorf("failed to read header JSON: %w", err)
	}
	if err := json.Unmarshal(headerBytes, &r.header); err != nil {
		return fmt.Errorf("failed to parse header JSON: %w", err)
	}

	r.dataOffset = alignedDataOffset(headerSize)

	info, err := r.file.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat file: %w", err)
	}
	//nolint:gosec // G115: dataSize is checked against the file size below
	if r.dataOffset+int64(dataSize) > info.Size() {
		return fmt.Errorf("%w: data section of %d bytes exceeds file", ErrOutOfBounds, dataSize)
	}
	//nolint:gosec // G115: bounded by the file size above
	r.dataSize = int64(dataSize)

	if r.opts.SkipChecksumValidation {
		return nil
	}

	tensorData := make([]byte, r.dataSize)
	if _, err := r.file.ReadAt(tensorData, r.dataOffset); err != nil {
		return fmt.Errorf("failed to read tensor data for checksum: %w", err)
	}
	if sha256.Sum256(tensorData) != r.checksum {
		return ErrChecksumMismatch
	}
	return nil
}

// Header returns the file header.
func (r *Reader) Header() Header {
	return r.header
}

// Flags returns the fixed-header flags.
func (r *Reader) Flags() uint32 {
	return r.flags
}

// TensorNames returns all tensor names in file order.
func (r *Reader) TensorNames() []string {
	names := make([]string, len(r.header.Tensors))
	for i, meta := range r.header.Tensors {
		names[i] = meta.Name
	}
	return names
}

// TensorInfo returns information about a specific tensor.
func (r *Reader) TensorInfo(name string) (*TensorMeta, error) {
	for i := range r.header.Tensors {
		if r.header.Tensors[i].Name == name {
			meta := r.header.Tensors[i]
			return &meta, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrTensorNotFound, name)
}

// Load reads a single tensor onto device.
func (r *Reader) Load(name string, device tensor.Device) (*tensor.RawTensor, error) {
	if r.closed {
		return nil, fmt.Errorf("reader is closed")
	}

	meta, err := r.TensorInfo(name)
	if err != nil {
		return nil, err
	}

	dtype, ok := stringToDtype(meta.DType)
	if !ok {
		return nil, fmt.Errorf("unsupported dtype: %s", meta.DType)
	}

	raw, err := tensor.NewRaw(tensor.Shape(meta.Shape), dtype, device)
	if err != nil {
		return nil, fmt.Errorf("invalid shape for tensor %s: %w", name, err)
	}
	if int64(raw.ByteSize()) != meta.Size {
		return nil, fmt.Errorf("tensor %s: shape %v needs %d bytes, header says %d",
			name, meta.Shape, raw.ByteSize(), meta.Size)
	}

	if _, err := r.file.ReadAt(raw.Data(), r.dataOffset+meta.Offset); err != nil {
		return nil, fmt.Errorf("failed to read tensor %s: %w", name, err)
	}
	return raw, nil
}

// ReadAll loads every tensor in file order.
func (r *Reader) ReadAll(device tensor.Device) ([]Entry, error) {
	entries := make([]Entry, 0, len(r.header.Tensors))
	for _, meta := range r.header.Tensors {
		raw, err := r.Load(meta.Name, device)
		if err != nil {
			return nil, err
		}
		entries = append(entries, Entry{Name: meta.Name, Tensor: raw})
	}
	return entries, nil
}

// Close closes the reader and the underlying file.
func (r *Reader) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	return r.file.Close()
}
