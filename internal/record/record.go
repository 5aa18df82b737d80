// Package record implements the binary record formats written to disk and
// carried in gossip batches. Records use the protobuf wire format so they stay
// readable by any protobuf decoder declaring the equivalent messages:
//
//	message LWWValue { uint64 timestamp = 1; bytes value = 2; }
//	message SetValue { repeated bytes values = 1; }
package record

import (
	"github.com/cockroachdb/errors"
	"google.golang.org/protobuf/encoding/protowire"
)

// ErrMalformed marks every error returned by a Codec's Decode.
var ErrMalformed = errors.New("malformed record")

// Type identifies the lattice kind a record encodes.
type Type uint32

const (
	TypeUnknown Type = iota
	TypeLWW
	TypeSet
)

func (t Type) String() string {
	switch t {
	case TypeLWW:
		return "lww"
	case TypeSet:
		return "set"
	}
	return "unknown"
}

// Codec translates between a lattice value and its binary record.
type Codec[L any] interface {
	// Type returns the kind of record the codec produces.
	Type() Type
	// Encode returns the record for v.
	Encode(v L) []byte
	// Decode parses a record. An empty record decodes to the bottom element.
	Decode(b []byte) (L, error)
	// Size returns len(Encode(v)) without allocating the record.
	Size(v L) int
}

func malformed(n int, field string) error {
	return errors.Mark(errors.Wrapf(protowire.ParseError(n), "[record] - %s", field), ErrMalformed)
}

// skip consumes an unknown field so records written by newer encoders remain
// readable.
func skip(b []byte, num protowire.Number, typ protowire.Type) (int, error) {
	n := protowire.ConsumeFieldValue(num, typ, b)
	if n < 0 {
		return 0, malformed(n, "unknown field")
	}
	return n, nil
}

func wrongType(field string, typ protowire.Type) error {
	return errors.Mark(errors.Newf("[record] - %s has wire type %d", field, typ), ErrMalformed)
}
