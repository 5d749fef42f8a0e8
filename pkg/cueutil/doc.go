// SPDX-License-Identifier: MPL-2.0

// Package cueutil provides the shared CUE parsing flow used for every
// schema-validated file dexboot reads: compile an embedded schema,
// compile the user data (CUE or JSON — JSON is a subset of CUE), unify
// the two, validate, and decode into a Go struct. It also formats CUE
// errors with JSON-path prefixes so failures point at the offending
// field.
package cueutil
