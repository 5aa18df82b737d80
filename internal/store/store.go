// Package store implements the generic merge-store: a concurrent map from key
// to lattice value in which every write is a join with the current value.
package store

import (
	"github.com/arya-analytics/latticekv/internal/lattice"
	"github.com/arya-analytics/latticekv/internal/record"
	"github.com/puzpuzpuz/xsync/v3"
)

// Store maps keys to lattice values. It is safe for concurrent use; each Put
// is applied atomically with respect to other operations on the same key.
type Store[L lattice.Lattice[L]] struct {
	codec   record.Codec[L]
	entries *xsync.MapOf[string, L]
}

// New returns an empty Store whose sizes are measured with codec.
func New[L lattice.Lattice[L]](codec record.Codec[L]) *Store[L] {
	return &Store[L]{codec: codec, entries: xsync.NewMapOf[string, L]()}
}

// Get returns the value stored under key. If the key has never been written,
// Get returns the bottom element and false.
func (s *Store[L]) Get(key string) (L, bool) {
	v, ok := s.entries.Load(key)
	return v, ok
}

// Put joins value into the entry for key, creating the entry from the bottom
// element if absent, and returns the encoded size of the merged value.
func (s *Store[L]) Put(key string, value L) int {
	merged, _ := s.entries.Compute(key, func(cur L, _ bool) (L, bool) {
		return cur.Merge(value), false
	})
	return s.codec.Size(merged)
}

// Remove deletes the entry for key and reports whether one existed. Remove is
// not a lattice operation: a concurrent Put replicated from a peer can
// recreate the entry, so callers must route removes for a key through a
// single owner.
func (s *Store[L]) Remove(key string) bool {
	_, ok := s.entries.LoadAndDelete(key)
	return ok
}

// Size returns the encoded size of the value stored under key, or zero if the
// key is absent.
func (s *Store[L]) Size(key string) int {
	v, _ := s.entries.Load(key)
	return s.codec.Size(v)
}

// Len returns the number of keys in the store.
func (s *Store[L]) Len() int { return s.entries.Size() }

// Range calls f for each entry until f returns false. Range does not block
// writers and may or may not observe writes made during iteration.
func (s *Store[L]) Range(f func(key string, value L) bool) { s.entries.Range(f) }
