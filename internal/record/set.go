package record

import (
	"github.com/arya-analytics/latticekv/internal/lattice"
	"google.golang.org/protobuf/encoding/protowire"
)

const setValuesField protowire.Number = 1

// Set is the Codec for lattice.Set values. Elements are written in ascending
// byte order so equal sets always produce identical records.
var Set Codec[lattice.Set] = setCodec{}

type setCodec struct{}

func (setCodec) Type() Type { return TypeSet }

func (setCodec) Encode(v lattice.Set) []byte {
	elems := v.Reveal()
	b := make([]byte, 0, sizeSet(elems))
	for _, e := range elems {
		b = protowire.AppendTag(b, setValuesField, protowire.BytesType)
		b = protowire.AppendBytes(b, e)
	}
	return b
}

func (setCodec) Decode(b []byte) (lattice.Set, error) {
	var elems [][]byte
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return lattice.Set{}, malformed(n, "set tag")
		}
		b = b[n:]
		if num == setValuesField {
			if typ != protowire.BytesType {
				return lattice.Set{}, wrongType("set value", typ)
			}
			var e []byte
			if e, n = protowire.ConsumeBytes(b); n < 0 {
				return lattice.Set{}, malformed(n, "set value")
			}
			elems = append(elems, e)
		} else {
			var err error
			if n, err = skip(b, num, typ); err != nil {
				return lattice.Set{}, err
			}
		}
		b = b[n:]
	}
	return lattice.NewSet(elems...), nil
}

func (setCodec) Size(v lattice.Set) int { return sizeSet(v.Reveal()) }

func sizeSet(elems [][]byte) (n int) {
	for _, e := range elems {
		n += protowire.SizeTag(setValuesField) + protowire.SizeBytes(len(e))
	}
	return n
}
