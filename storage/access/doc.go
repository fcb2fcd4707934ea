// Package access maps property-style access onto the storage
// capability set.
//
// Go has no transparent attribute interception, so the layer is an
// explicit accessor API: Get, Set, Has, Delete, Keys, and Describe on
// a wrapped storage.Store. Reads and writes give the target's real
// members precedence over stored keys; existence checks consult the
// storage content only. That asymmetry mirrors the interception
// semantics this package models and is covered by tests rather than
// smoothed over.
package access
