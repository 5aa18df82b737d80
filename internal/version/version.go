// Package version generates the timestamps carried by last-writer-wins
// values.
package version

import (
	"sync"
	"time"

	"github.com/cockroachdb/errors"
)

// Clock issues strictly increasing timestamps. Each timestamp is the wall
// clock in microseconds, bumped past the previous timestamp when the wall
// clock stalls or steps backwards. Low bits carry the owner id so two clocks
// with distinct ids never issue the same timestamp.
type Clock struct {
	mu   sync.Mutex
	id   uint64
	last uint64
	now  func() time.Time
}

// idBits is the width of the owner id stamped into each timestamp.
const idBits = 10

// MaxID is the largest owner id a Clock accepts.
const MaxID = 1<<idBits - 1

// ErrInvalidID is returned for owner ids that do not fit in idBits.
var ErrInvalidID = errors.New("invalid clock id")

// NewClock returns a Clock stamping timestamps with id. It returns
// ErrInvalidID if id exceeds MaxID.
func NewClock(id uint32) (*Clock, error) {
	if id > MaxID {
		return nil, errors.Wrapf(ErrInvalidID, "[version] - %d exceeds %d", id, MaxID)
	}
	return &Clock{id: uint64(id), now: time.Now}, nil
}

// Next returns a timestamp greater than every one previously returned by c.
func (c *Clock) Next() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	ts := uint64(c.now().UnixMicro())<<idBits | c.id
	if ts <= c.last {
		ts = (c.last>>idBits+1)<<idBits | c.id
	}
	c.last = ts
	return ts
}

// Observe advances c past ts, so a timestamp received from a peer is never
// outrun by a later local write.
func (c *Clock) Observe(ts uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if ts > c.last {
		c.last = ts
	}
}
