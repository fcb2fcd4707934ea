// Package storage defines the key-value capability set that every
// backing store and wrapper in this module implements.
//
// The contract is deliberately minimal: length, indexed key lookup,
// get, set, remove, and clear, with string keys and values. Because a
// wrapper implements the same interface it consumes, layers compose
// recursively: a namespaced store can back another namespaced store,
// and any conforming store can be made property-addressable through
// the access package.
//
// Drivers register themselves as plugins. A plugin is a factory for
// managed store instances whose lifecycle the caller owns.
package storage
