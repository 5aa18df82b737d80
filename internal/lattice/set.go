package lattice

import "sort"

// Set is a grow-only set lattice of byte-sequence elements. Merge is set
// union, so elements are never lost.
type Set struct {
	elems map[string]struct{}
}

// NewSet builds a set from elems, collapsing duplicates.
func NewSet(elems ...[]byte) Set {
	s := Set{elems: make(map[string]struct{}, len(elems))}
	for _, e := range elems {
		s.elems[string(e)] = struct{}{}
	}
	return s
}

// Reveal returns the elements in ascending byte order.
func (s Set) Reveal() [][]byte {
	keys := s.sorted()
	out := make([][]byte, len(keys))
	for i, k := range keys {
		out[i] = []byte(k)
	}
	return out
}

// Len returns the number of elements in the set.
func (s Set) Len() int { return len(s.elems) }

// Contains reports whether elem is a member of the set.
func (s Set) Contains(elem []byte) bool {
	_, ok := s.elems[string(elem)]
	return ok
}

// Merge implements Lattice.
func (s Set) Merge(other Set) Set {
	u := Set{elems: make(map[string]struct{}, len(s.elems)+len(other.elems))}
	for k := range s.elems {
		u.elems[k] = struct{}{}
	}
	for k := range other.elems {
		u.elems[k] = struct{}{}
	}
	return u
}

// IsBottom implements Lattice.
func (s Set) IsBottom() bool { return len(s.elems) == 0 }

// Equal reports whether both sets hold exactly the same elements.
func (s Set) Equal(other Set) bool {
	if len(s.elems) != len(other.elems) {
		return false
	}
	for k := range s.elems {
		if _, ok := other.elems[k]; !ok {
			return false
		}
	}
	return true
}

func (s Set) sorted() []string {
	keys := make([]string, 0, len(s.elems))
	for k := range s.elems {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
