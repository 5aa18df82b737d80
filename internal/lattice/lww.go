package lattice

import "bytes"

// TimestampValuePair is the payload wrapped by an LWW value.
type TimestampValuePair struct {
	Timestamp uint64
	Value     []byte
}

// Dominates reports whether p wins a last-writer-wins comparison against
// other. A strictly greater timestamp dominates. On equal timestamps the
// greater value bytes dominate, so the comparison is a total order and the
// resulting merge is commutative.
func (p TimestampValuePair) Dominates(other TimestampValuePair) bool {
	if p.Timestamp != other.Timestamp {
		return p.Timestamp > other.Timestamp
	}
	return bytes.Compare(p.Value, other.Value) > 0
}

// LWW is a last-writer-wins register lattice.
type LWW struct {
	pair TimestampValuePair
}

// NewLWW wraps a copy of value at the given timestamp.
func NewLWW(timestamp uint64, value []byte) LWW {
	return LWW{pair: TimestampValuePair{Timestamp: timestamp, Value: clone(value)}}
}

// Reveal returns a copy of the wrapped pair.
func (l LWW) Reveal() TimestampValuePair {
	return TimestampValuePair{Timestamp: l.pair.Timestamp, Value: clone(l.pair.Value)}
}

// Timestamp returns the timestamp of the wrapped pair.
func (l LWW) Timestamp() uint64 { return l.pair.Timestamp }

// Merge implements Lattice.
func (l LWW) Merge(other LWW) LWW {
	if other.pair.Dominates(l.pair) {
		return other
	}
	return l
}

// IsBottom implements Lattice.
func (l LWW) IsBottom() bool { return l.pair.Timestamp == 0 && len(l.pair.Value) == 0 }

// Equal reports whether both registers hold the same timestamp and value.
func (l LWW) Equal(other LWW) bool {
	return l.pair.Timestamp == other.pair.Timestamp && bytes.Equal(l.pair.Value, other.pair.Value)
}

func clone(b []byte) []byte {
	if len(b) == 0 {
		return nil
	}
	c := make([]byte, len(b))
	copy(c, b)
	return c
}
