// SPDX-License-Identifier: MPL-2.0

// Package issue provides user-facing error machinery: ActionableError
// with operation/resource/suggestion context, and a registry of
// rendered help texts for the failure classes a run can hit (invalid
// dexen root, archive registration failure, container load failure,
// malformed module metadata, config load failure).
package issue
