// SPDX-License-Identifier: MPL-2.0

package dexstore

// Loader loads a single container file into a class batch. Parsing the
// binary container format is outside this codebase; implementations
// decide how deep they look. A failure aborts the assembly that
// requested the load.
type Loader interface {
	Load(path string) (ClassBatch, error)
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(path string) (ClassBatch, error)

// Load implements Loader.
func (f LoaderFunc) Load(path string) (ClassBatch, error) { return f(path) }
