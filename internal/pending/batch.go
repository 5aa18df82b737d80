package pending

import (
	"github.com/arya-analytics/latticekv/internal/record"
	"github.com/cockroachdb/errors"
	"google.golang.org/protobuf/encoding/protowire"
)

// ErrMalformedBatch marks every error returned by DecodeBatch.
var ErrMalformedBatch = errors.New("malformed gossip batch")

// Entry is one replicated update: the record for Key, encoded as Type.
type Entry struct {
	Key    string
	Type   record.Type
	Record []byte
}

// Batch is the unit of gossip exchanged with a peer. On the wire it is the
// protobuf message
//
//	message Batch { repeated Entry entries = 1; }
//	message Entry { string key = 1; uint32 type = 2; bytes record = 3; }
type Batch []Entry

const (
	batchEntryField protowire.Number = 1

	entryKeyField    protowire.Number = 1
	entryTypeField   protowire.Number = 2
	entryRecordField protowire.Number = 3
)

// EncodeBatch returns the wire form of b.
func EncodeBatch(b Batch) []byte {
	var out []byte
	for _, e := range b {
		out = protowire.AppendTag(out, batchEntryField, protowire.BytesType)
		out = protowire.AppendBytes(out, encodeEntry(e))
	}
	return out
}

func encodeEntry(e Entry) []byte {
	var b []byte
	if e.Key != "" {
		b = protowire.AppendTag(b, entryKeyField, protowire.BytesType)
		b = protowire.AppendString(b, e.Key)
	}
	if e.Type != record.TypeUnknown {
		b = protowire.AppendTag(b, entryTypeField, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(e.Type))
	}
	if len(e.Record) != 0 {
		b = protowire.AppendTag(b, entryRecordField, protowire.BytesType)
		b = protowire.AppendBytes(b, e.Record)
	}
	return b
}

// DecodeBatch parses the wire form of a Batch.
func DecodeBatch(b []byte) (Batch, error) {
	var batch Batch
	err := consumeFields(b, func(num protowire.Number, typ protowire.Type, v []byte) (int, error) {
		if num != batchEntryField {
			return -1, nil
		}
		if typ != protowire.BytesType {
			return 0, errors.Mark(errors.Newf("[pending] - entry has wire type %d", typ), ErrMalformedBatch)
		}
		raw, n := protowire.ConsumeBytes(v)
		if n < 0 {
			return 0, malformed(n, "entry")
		}
		e, err := decodeEntry(raw)
		if err != nil {
			return 0, err
		}
		batch = append(batch, e)
		return n, nil
	})
	return batch, err
}

func decodeEntry(b []byte) (e Entry, err error) {
	err = consumeFields(b, func(num protowire.Number, typ protowire.Type, v []byte) (n int, err error) {
		switch {
		case num == entryKeyField && typ == protowire.BytesType:
			var key []byte
			if key, n = protowire.ConsumeBytes(v); n < 0 {
				return 0, malformed(n, "entry key")
			}
			e.Key = string(key)
		case num == entryTypeField && typ == protowire.VarintType:
			var t uint64
			if t, n = protowire.ConsumeVarint(v); n < 0 {
				return 0, malformed(n, "entry type")
			}
			e.Type = record.Type(t)
		case num == entryRecordField && typ == protowire.BytesType:
			var rec []byte
			if rec, n = protowire.ConsumeBytes(v); n < 0 {
				return 0, malformed(n, "entry record")
			}
			e.Record = clone(rec)
		case num >= entryKeyField && num <= entryRecordField:
			return 0, errors.Mark(errors.Newf("[pending] - entry field %d has wire type %d", num, typ), ErrMalformedBatch)
		default:
			return -1, nil
		}
		return n, nil
	})
	return e, err
}

// consumeFields walks the fields of a message. visit returns the number of
// bytes it consumed, or -1 to skip the field.
func consumeFields(b []byte, visit func(protowire.Number, protowire.Type, []byte) (int, error)) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return malformed(n, "tag")
		}
		b = b[n:]
		n, err := visit(num, typ, b)
		if err != nil {
			return err
		}
		if n < 0 {
			if n = protowire.ConsumeFieldValue(num, typ, b); n < 0 {
				return malformed(n, "unknown field")
			}
		}
		b = b[n:]
	}
	return nil
}

func malformed(n int, field string) error {
	return errors.Mark(errors.Wrapf(protowire.ParseError(n), "[pending] - %s", field), ErrMalformedBatch)
}
