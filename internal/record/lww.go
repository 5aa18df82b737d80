package record

import (
	"github.com/arya-analytics/latticekv/internal/lattice"
	"google.golang.org/protobuf/encoding/protowire"
)

const (
	lwwTimestampField protowire.Number = 1
	lwwValueField     protowire.Number = 2
)

// LWW is the Codec for lattice.LWW values.
var LWW Codec[lattice.LWW] = lwwCodec{}

type lwwCodec struct{}

func (lwwCodec) Type() Type { return TypeLWW }

func (lwwCodec) Encode(v lattice.LWW) []byte {
	p := v.Reveal()
	b := make([]byte, 0, sizeLWW(p))
	if p.Timestamp != 0 {
		b = protowire.AppendTag(b, lwwTimestampField, protowire.VarintType)
		b = protowire.AppendVarint(b, p.Timestamp)
	}
	if len(p.Value) != 0 {
		b = protowire.AppendTag(b, lwwValueField, protowire.BytesType)
		b = protowire.AppendBytes(b, p.Value)
	}
	return b
}

func (lwwCodec) Decode(b []byte) (lattice.LWW, error) {
	var p lattice.TimestampValuePair
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return lattice.LWW{}, malformed(n, "lww tag")
		}
		b = b[n:]
		switch num {
		case lwwTimestampField:
			if typ != protowire.VarintType {
				return lattice.LWW{}, wrongType("lww timestamp", typ)
			}
			p.Timestamp, n = protowire.ConsumeVarint(b)
			if n < 0 {
				return lattice.LWW{}, malformed(n, "lww timestamp")
			}
		case lwwValueField:
			if typ != protowire.BytesType {
				return lattice.LWW{}, wrongType("lww value", typ)
			}
			p.Value, n = protowire.ConsumeBytes(b)
			if n < 0 {
				return lattice.LWW{}, malformed(n, "lww value")
			}
		default:
			var err error
			if n, err = skip(b, num, typ); err != nil {
				return lattice.LWW{}, err
			}
		}
		b = b[n:]
	}
	return lattice.NewLWW(p.Timestamp, p.Value), nil
}

func (lwwCodec) Size(v lattice.LWW) int { return sizeLWW(v.Reveal()) }

func sizeLWW(p lattice.TimestampValuePair) (n int) {
	if p.Timestamp != 0 {
		n += protowire.SizeTag(lwwTimestampField) + protowire.SizeVarint(p.Timestamp)
	}
	if len(p.Value) != 0 {
		n += protowire.SizeTag(lwwValueField) + protowire.SizeBytes(len(p.Value))
	}
	return n
}
