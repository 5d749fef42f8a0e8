// SPDX-License-Identifier: MPL-2.0

package dexstore

import (
	"errors"
	"fmt"
	"slices"
)

// PrimaryStoreName is the canonical reserved name of the primary
// store, built from the top-level container files of the dexen root.
// It always sits at index 0 of a StoreCollection.
const PrimaryStoreName = "dex"

// ErrReservedStoreName is the sentinel error wrapped by ReservedStoreNameError.
var ErrReservedStoreName = errors.New("reserved store name")

// ErrDuplicateStore is the sentinel error wrapped by DuplicateStoreError.
var ErrDuplicateStore = errors.New("duplicate store")

type (
	// ClassBatch holds the classes loaded from a single container
	// file. The batch is opaque to this package: the loader capability
	// decides what it records about the classes inside.
	ClassBatch struct {
		// Path is the container file the batch was loaded from.
		Path string
		// ClassCount is the number of class definitions in the
		// container.
		ClassCount int
		// Raw is the container content, kept in memory for the
		// downstream optimizer.
		Raw []byte
	}

	// Store is a named, ordered collection of loaded class batches.
	// Batch order is load order and is preserved verbatim.
	Store struct {
		name    string
		batches []ClassBatch
	}

	// StoreCollection is the ordered aggregate of the primary store
	// and all module stores. Index 0 is always the primary store;
	// module stores follow in discovery order. The collection
	// exclusively owns its stores.
	StoreCollection struct {
		stores []*Store
	}

	// ReservedStoreNameError is returned when a module store tries to
	// use the primary store's reserved name.
	ReservedStoreNameError struct {
		Name string
	}

	// DuplicateStoreError is returned when two stores in a collection
	// share a name.
	DuplicateStoreError struct {
		Name string
	}
)

// NewStore creates an empty store with the given name.
func NewStore(name string) *Store {
	return &Store{name: name}
}

// Name returns the store name.
func (s *Store) Name() string { return s.name }

// AddBatch appends a loaded class batch. Batches are kept in the order
// they were added.
func (s *Store) AddBatch(b ClassBatch) {
	s.batches = append(s.batches, b)
}

// Batches returns the store's batches in load order. The returned
// slice is a copy; the store's own order is fixed once assembly ends.
func (s *Store) Batches() []ClassBatch {
	return slices.Clone(s.batches)
}

// FileCount returns the number of container files loaded into the store.
func (s *Store) FileCount() int { return len(s.batches) }

// ClassCount returns the total number of classes across all batches.
func (s *Store) ClassCount() int {
	total := 0
	for _, b := range s.batches {
		total += b.ClassCount
	}
	return total
}

// NewStoreCollection creates a collection seeded with the primary
// store. The primary store must carry the reserved name.
func NewStoreCollection(primary *Store) (*StoreCollection, error) {
	if primary == nil {
		return nil, fmt.Errorf("primary store must not be nil")
	}
	if primary.Name() != PrimaryStoreName {
		return nil, fmt.Errorf("primary store must be named %q, got %q", PrimaryStoreName, primary.Name())
	}
	return &StoreCollection{stores: []*Store{primary}}, nil
}

// Append adds a module store to the collection. The reserved primary
// name is rejected, as are duplicate module names.
func (c *StoreCollection) Append(store *Store) error {
	if store.Name() == PrimaryStoreName {
		return &ReservedStoreNameError{Name: store.Name()}
	}
	for _, existing := range c.stores {
		if existing.Name() == store.Name() {
			return &DuplicateStoreError{Name: store.Name()}
		}
	}
	c.stores = append(c.stores, store)
	return nil
}

// Primary returns the primary store (always index 0).
func (c *StoreCollection) Primary() *Store { return c.stores[0] }

// Stores returns all stores in collection order: primary first, then
// module stores in discovery order. The returned slice is a copy.
func (c *StoreCollection) Stores() []*Store {
	return slices.Clone(c.stores)
}

// Len returns the number of stores in the collection.
func (c *StoreCollection) Len() int { return len(c.stores) }

// Error implements the error interface.
func (e *ReservedStoreNameError) Error() string {
	return fmt.Sprintf("store name %q is reserved for the primary store", e.Name)
}

// Unwrap returns ErrReservedStoreName for errors.Is() compatibility.
func (e *ReservedStoreNameError) Unwrap() error { return ErrReservedStoreName }

// Error implements the error interface.
func (e *DuplicateStoreError) Error() string {
	return fmt.Sprintf("store %q already exists in the collection", e.Name)
}

// Unwrap returns ErrDuplicateStore for errors.Is() compatibility.
func (e *DuplicateStoreError) Unwrap() error { return ErrDuplicateStore }
