// Package namespace subdivides one storage.Store into independently
// addressable sub-scopes sharing the same backing store.
//
// Every key written through a namespaced store is prefixed with the
// namespace and a fixed separator before it reaches the backing store,
// and stripped of that prefix on the way out. Because the namespaced
// store implements storage.Store itself, namespaces nest by plain
// structural recursion.
//
// Each instance carries a private cache of the keys it owns, seeded by
// a single scan at construction and updated only by the instance's own
// writes. The cache trades cross-instance coherence for O(1) length
// and fast enumeration: external mutation of the backing store is not
// observed. Single-threaded use is assumed, matching the synchronous
// execution model of the capability set.
package namespace
