// SPDX-License-Identifier: MPL-2.0

// Package types holds small validated scalar types shared across the
// dexboot codebase: filesystem paths and process exit codes.
package types
