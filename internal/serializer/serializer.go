// Package serializer bridges binary records and live lattice values across
// two storage media. Four concrete serializers exist, one for each pairing of
// value kind (LWW, Set) and medium (memory, disk); they share a single merge
// function per value kind, so a key converges to the same value whichever
// tier stores it.
package serializer

import (
	"github.com/arya-analytics/latticekv/internal/lattice"
	"github.com/cockroachdb/errors"
)

// Serializer is the capability surface consumed by request handlers.
type Serializer interface {
	// Get returns the current record for key. It returns an error marked
	// ErrNotFound if the key has never been written and ErrParse if a stored
	// record exists but cannot be decoded.
	Get(key string) ([]byte, error)
	// Put decodes payload, joins it into the stored value for key, persists
	// the result, and returns the size of the merged record.
	Put(key string, payload []byte) (int, error)
	// Remove deletes every persisted trace of key.
	Remove(key string) error
}

var (
	_ Serializer = (*Memory[lattice.LWW])(nil)
	_ Serializer = (*Memory[lattice.Set])(nil)
	_ Serializer = (*Disk[lattice.LWW])(nil)
	_ Serializer = (*Disk[lattice.Set])(nil)
)

var (
	// ErrNotFound is returned when a key has never been written or its backing
	// file is absent.
	ErrNotFound = errors.New("key not found")
	// ErrParse is returned when a record exists but does not decode as the
	// expected kind.
	ErrParse = errors.New("unparseable record")
	// ErrIO is returned when the storage medium fails to open, write, rename,
	// or delete a record.
	ErrIO = errors.New("storage failure")
	// ErrInvalidKey is returned by disk tiers for keys that cannot name a single
	// file inside the tier directory.
	ErrInvalidKey = errors.New("invalid key")
)

func notFound(key string) error {
	return errors.Wrapf(ErrNotFound, "[serializer] - key %q", key)
}

func parseFailure(err error, key string) error {
	return errors.Mark(errors.Wrapf(err, "[serializer] - failed to parse record for key %q", key), ErrParse)
}

func ioFailure(err error, format string, args ...interface{}) error {
	return errors.Mark(errors.Wrapf(err, "[serializer] - "+format, args...), ErrIO)
}
