// SPDX-License-Identifier: MPL-2.0

// Package assemble orchestrates a boot: classpath archives first, then
// the primary store's containers in deterministic order, then each
// module store's containers in declared metadata order, ending with the
// reachability hand-off. A run is all-or-nothing; the first failure
// aborts it and no partial result is handed off.
package assemble
