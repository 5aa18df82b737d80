// Package lattice implements the join-semilattice value types stored by
// latticekv. Every type's zero value is its bottom element, and Merge is
// commutative, associative, and idempotent, so replicas that receive the same
// set of writes in any order (with any duplication) converge.
package lattice

// Lattice is the constraint satisfied by every value kind a Store can hold.
type Lattice[L any] interface {
	// Merge returns the join of the receiver and other. Neither operand is
	// modified.
	Merge(other L) L
	// IsBottom reports whether the value is the identity element of Merge.
	IsBottom() bool
}

// Join merges values into the bottom element of L. Join() returns the bottom.
func Join[L Lattice[L]](values ...L) L {
	var acc L
	for _, v := range values {
		acc = acc.Merge(v)
	}
	return acc
}
