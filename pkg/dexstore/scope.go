// SPDX-License-Identifier: MPL-2.0

package dexstore

// Scope is the flattened aggregate of class batches across an entire
// store collection: store order as in the collection, then each
// store's batches in load order. It is the structure handed to the
// reachability capability once assembly completes.
type Scope []ClassBatch

// BuildScope flattens a store collection into a Scope, preserving
// store order and per-store load order.
func BuildScope(c *StoreCollection) Scope {
	var scope Scope
	for _, store := range c.stores {
		scope = append(scope, store.batches...)
	}
	return scope
}

// ClassCount returns the total number of classes in the scope.
func (s Scope) ClassCount() int {
	total := 0
	for _, b := range s {
		total += b.ClassCount
	}
	return total
}
