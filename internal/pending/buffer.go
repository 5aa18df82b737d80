package pending

import (
	"sync"

	"github.com/arya-analytics/latticekv/internal/lattice"
	"github.com/arya-analytics/latticekv/internal/record"
	"github.com/cockroachdb/errors"
)

// ErrTypeMismatch is returned when an entry is added for a key already
// buffered with a different record type.
var ErrTypeMismatch = errors.New("record type mismatch")

// GossipBuffer accumulates updates per peer between gossip ticks. Updates to
// the same key are joined as they arrive, so a peer receives at most one
// entry per key per flush. It is safe for concurrent use.
type GossipBuffer struct {
	mu    sync.Mutex
	peers map[Address]*peerBatch
}

type peerBatch struct {
	order   []string
	entries map[string]Entry
}

// NewGossipBuffer returns an empty buffer.
func NewGossipBuffer() *GossipBuffer {
	return &GossipBuffer{peers: make(map[Address]*peerBatch)}
}

// Add buffers e for delivery to addr.
func (g *GossipBuffer) Add(addr Address, e Entry) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	pb := g.peers[addr]
	var (
		cur Entry
		ok  bool
	)
	if pb != nil {
		cur, ok = pb.entries[e.Key]
	}
	if ok && cur.Type != e.Type {
		return errors.Wrapf(ErrTypeMismatch, "[pending] - key %q is buffered as %s, got %s", e.Key, cur.Type, e.Type)
	}
	merged, err := mergeRecords(e.Type, cur.Record, e.Record)
	if err != nil {
		return err
	}
	if pb == nil {
		pb = &peerBatch{entries: make(map[string]Entry)}
		g.peers[addr] = pb
	}
	if !ok {
		pb.order = append(pb.order, e.Key)
	}
	pb.entries[e.Key] = Entry{Key: e.Key, Type: e.Type, Record: merged}
	return nil
}

// Len returns the number of keys buffered for addr.
func (g *GossipBuffer) Len(addr Address) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	if pb, ok := g.peers[addr]; ok {
		return len(pb.order)
	}
	return 0
}

// Flush empties the buffer and returns one Gossip per peer, with entries in
// the order their keys were first buffered.
func (g *GossipBuffer) Flush() map[Address]Gossip {
	g.mu.Lock()
	peers := g.peers
	g.peers = make(map[Address]*peerBatch)
	g.mu.Unlock()
	out := make(map[Address]Gossip, len(peers))
	for addr, pb := range peers {
		b := make(Batch, 0, len(pb.order))
		for _, key := range pb.order {
			b = append(b, pb.entries[key])
		}
		out[addr] = Gossip{Payload: EncodeBatch(b)}
	}
	return out
}

func mergeRecords(t record.Type, a, b []byte) ([]byte, error) {
	switch t {
	case record.TypeLWW:
		return join(record.LWW, a, b)
	case record.TypeSet:
		return join(record.Set, a, b)
	}
	return nil, errors.Newf("[pending] - unknown record type %d", t)
}

func join[L lattice.Lattice[L]](codec record.Codec[L], a, b []byte) ([]byte, error) {
	x, err := codec.Decode(a)
	if err != nil {
		return nil, err
	}
	y, err := codec.Decode(b)
	if err != nil {
		return nil, err
	}
	return codec.Encode(x.Merge(y)), nil
}
