// SPDX-License-Identifier: MPL-2.0

// Package discovery handles finding container files and module directories
// under an application's dexen root.
//
// A scan yields the primary store's top-level container files in their
// deterministic load order, plus the qualifying module directories in
// lexicographic order. A subdirectory qualifies as a module iff it holds
// a metadata file named after itself (<dir>/<dir>.json). Module container
// files are NOT ordered here; their order comes from the metadata's
// declared file list.
package discovery
