// SPDX-License-Identifier: MPL-2.0

package dexfile

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"

	"dexboot-cli/pkg/dexstore"
)

const (
	// headerSize is the fixed size of a dex header.
	headerSize = 112
	// classDefsSizeOffset is where the header stores the number of class
	// definitions, as a little-endian uint32.
	classDefsSizeOffset = 96
)

// ErrMalformedContainer is the sentinel error wrapped by MalformedContainerError.
var ErrMalformedContainer = errors.New("malformed container")

// MalformedContainerError is returned when a file is not a valid dex
// container. It wraps ErrMalformedContainer for errors.Is().
type MalformedContainerError struct {
	Path   string
	Reason string
}

// Error implements the error interface for MalformedContainerError.
func (e *MalformedContainerError) Error() string {
	return fmt.Sprintf("malformed container %q: %s", e.Path, e.Reason)
}

// Unwrap returns ErrMalformedContainer for errors.Is() compatibility.
func (e *MalformedContainerError) Unwrap() error { return ErrMalformedContainer }

// Loader reads dex containers from disk. It satisfies dexstore.Loader.
type Loader struct{}

// NewLoader creates a Loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads the file at path and returns it as a class batch. The header
// is validated (magic "dex\n", three-digit version, NUL terminator) and
// the class count is taken from the header; anything past the header is
// carried as raw bytes.
func (l *Loader) Load(path string) (dexstore.ClassBatch, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return dexstore.ClassBatch{}, fmt.Errorf("failed to read container: %w", err)
	}

	if err := validateHeader(path, data); err != nil {
		return dexstore.ClassBatch{}, err
	}

	classCount := binary.LittleEndian.Uint32(data[classDefsSizeOffset:])
	return dexstore.ClassBatch{
		Path:       path,
		ClassCount: int(classCount),
		Raw:        data,
	}, nil
}

// validateHeader checks the 8-byte magic: "dex\n" followed by a
// three-digit version and a NUL (e.g. "dex\n035\x00").
func validateHeader(path string, data []byte) error {
	if len(data) < headerSize {
		return &MalformedContainerError{
			Path:   path,
			Reason: fmt.Sprintf("file is %d bytes, smaller than the %d-byte header", len(data), headerSize),
		}
	}
	if string(data[:4]) != "dex\n" {
		return &MalformedContainerError{Path: path, Reason: "bad magic"}
	}
	for _, b := range data[4:7] {
		if b < '0' || b > '9' {
			return &MalformedContainerError{Path: path, Reason: "bad version in magic"}
		}
	}
	if data[7] != 0 {
		return &MalformedContainerError{Path: path, Reason: "magic not NUL-terminated"}
	}
	return nil
}
