package latticekv

import (
	"github.com/arya-analytics/latticekv/internal/lattice"
	"github.com/arya-analytics/latticekv/internal/record"
	"github.com/arya-analytics/latticekv/internal/version"
)

// Clock issues LWW timestamps. See NewClock.
type Clock = version.Clock

// ErrInvalidClockID is returned by NewClock for ids above MaxClockID.
var ErrInvalidClockID = version.ErrInvalidID

// MaxClockID is the largest id a Clock can carry.
const MaxClockID = version.MaxID

// NewClock returns a Clock whose timestamps carry id in their low bits.
func NewClock(id uint32) (*Clock, error) { return version.NewClock(id) }

// EncodeLWW returns the record for a last-writer-wins value.
func EncodeLWW(timestamp uint64, value []byte) []byte {
	return record.LWW.Encode(lattice.NewLWW(timestamp, value))
}

// DecodeLWW parses a last-writer-wins record.
func DecodeLWW(b []byte) (LWWValue, error) { return record.LWW.Decode(b) }

// EncodeSet returns the record for a set of elements.
func EncodeSet(elems ...[]byte) []byte { return record.Set.Encode(lattice.NewSet(elems...)) }

// DecodeSet parses a set record.
func DecodeSet(b []byte) (SetValue, error) { return record.Set.Decode(b) }
