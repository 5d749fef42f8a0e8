// SPDX-License-Identifier: MPL-2.0

package classpath

import (
	"errors"
	"fmt"
	"strings"
)

// ErrRegisterArchive is the sentinel error wrapped by RegisterError.
var ErrRegisterArchive = errors.New("failed to register archive")

type (
	// Registry accepts library archives for classpath registration.
	Registry interface {
		// Register loads one archive into the classpath. A failed Register
		// leaves the registry's previous contents intact.
		Register(archivePath string) error
	}

	// RegisterError names the archive whose registration failed. It wraps
	// ErrRegisterArchive for errors.Is(); the underlying cause is reachable
	// through errors.Unwrap chains via Cause.
	RegisterError struct {
		Archive string
		Cause   error
	}
)

// Error implements the error interface for RegisterError.
func (e *RegisterError) Error() string {
	return fmt.Sprintf("failed to register archive %q: %v", e.Archive, e.Cause)
}

// Unwrap returns ErrRegisterArchive for errors.Is() compatibility.
func (e *RegisterError) Unwrap() error { return ErrRegisterArchive }

// Split breaks a jar list into individual archive paths. Both ',' and ':'
// separate entries, in any mix; empty segments are dropped.
func Split(jarList string) []string {
	return strings.FieldsFunc(jarList, func(r rune) bool {
		return r == ',' || r == ':'
	})
}

// Bootstrap registers every archive in jarList, strictly left to right.
// The first failure aborts with a RegisterError naming the archive;
// later entries are never attempted. An empty list is a no-op.
func Bootstrap(jarList string, reg Registry) error {
	for _, archive := range Split(jarList) {
		if err := reg.Register(archive); err != nil {
			return &RegisterError{Archive: archive, Cause: err}
		}
	}
	return nil
}
