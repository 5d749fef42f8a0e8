// SPDX-License-Identifier: MPL-2.0

// Package dexstore defines the in-memory multi-store model an
// optimizer pipeline consumes: class batches loaded from container
// files, named stores holding batches in load order, and the ordered
// store collection with the primary store always first.
//
// The collection is assembled once and then handed off whole; nothing
// in this package mutates a collection after assembly completes.
package dexstore
