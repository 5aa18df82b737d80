package mock

import (
	"github.com/arya-analytics/latticekv"
	"github.com/arya-analytics/latticekv/internal/pending"
	"github.com/cockroachdb/errors"
)

// Replica is one member of a Network: a serializer per value kind.
type Replica map[latticekv.Kind]latticekv.Serializer

// Network is an in-memory, synchronous stand-in for the gossip layer. Writes
// are applied locally and buffered for every other replica; Flush hands back
// the buffered gossip so tests control delivery order and duplication.
type Network struct {
	replicas map[latticekv.Address]Replica
	buffer   *pending.GossipBuffer
}

func NewNetwork() *Network {
	return &Network{
		replicas: make(map[latticekv.Address]Replica),
		buffer:   pending.NewGossipBuffer(),
	}
}

// Join adds a replica reachable at addr.
func (n *Network) Join(addr latticekv.Address, r Replica) { n.replicas[addr] = r }

// Replica returns the replica at addr.
func (n *Network) Replica(addr latticekv.Address) Replica { return n.replicas[addr] }

// Write puts payload on the replica at from and buffers it for every peer.
func (n *Network) Write(from latticekv.Address, kind latticekv.Kind, key string, payload []byte) error {
	s, err := n.serializer(from, kind)
	if err != nil {
		return err
	}
	if _, err := s.Put(key, payload); err != nil {
		return err
	}
	for addr := range n.replicas {
		if addr == from {
			continue
		}
		if err := n.buffer.Add(addr, pending.Entry{Key: key, Type: kind, Record: payload}); err != nil {
			return err
		}
	}
	return nil
}

// Flush retires the buffered gossip, one payload per peer.
func (n *Network) Flush() map[latticekv.Address]latticekv.PendingGossip { return n.buffer.Flush() }

// Deliver applies a gossip payload to the replica at addr.
func (n *Network) Deliver(addr latticekv.Address, g latticekv.PendingGossip) error {
	batch, err := g.Batch()
	if err != nil {
		return err
	}
	for _, e := range batch {
		s, err := n.serializer(addr, e.Type)
		if err != nil {
			return err
		}
		if _, err := s.Put(e.Key, e.Record); err != nil {
			return err
		}
	}
	return nil
}

func (n *Network) serializer(addr latticekv.Address, kind latticekv.Kind) (latticekv.Serializer, error) {
	r, ok := n.replicas[addr]
	if !ok {
		return nil, errors.Newf("[mock] - no replica at %s", addr)
	}
	s, ok := r[kind]
	if !ok {
		return nil, errors.Newf("[mock] - replica %s has no %s serializer", addr, kind)
	}
	return s, nil
}
