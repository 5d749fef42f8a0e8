// SPDX-License-Identifier: MPL-2.0

// Package dexmeta parses per-module metadata files.
//
// A subdirectory of the dexen root is a module only if it contains a
// metadata file named after the directory itself: <dir>/<dir>.json.
// The metadata declares the module name and the ordered list of
// container files belonging to the module; that declared order is
// authoritative and is never re-sorted by the loader.
//
// Metadata files are JSON, validated by unification with an embedded
// CUE schema (JSON is a subset of CUE).
package dexmeta
