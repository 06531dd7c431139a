// Package serialization implements the .born parameter artifact format.
//
//	Format Structure (v2):
//	  [0x00: Magic "BORN"]
//	  [0x04: Version (uint32 LE) = 2]
//	  [0x08: Flags (uint32 LE)]
//	  [0x0C: Reserved]
//	  [0x10: Header Size (uint64 LE)]
//	  [0x18: Data Size (uint64 LE)]
//	  [0x20: SHA-256 of the tensor data (32 bytes)]
//	  [0x40: Header: JSON metadata]
//	  [Tensor data: raw little-endian bytes, 64-byte aligned]
//
// Tensors are written in the order given, so the same inputs always produce
// the same data section. WriteFile replaces the destination atomically.
//
// Example usage:
//
//	entries := []serialization.Entry{{Name: "fc.weight", Tensor: w}, {Name: "fc.bias", Tensor: b}}
//	err := serialization.WriteFile("net_iter_500.born", entries, serialization.Header{ModelType: "Regression"})
//
//	r, err := serialization.Open("net_iter_500.born")
//	defer r.Close()
//	w, err := r.Load("fc.weight", tensor.CPU)
package serialization
