// Package pending holds the value records that cross the boundary between the
// storage core and the network and scheduling layers: requests awaiting a
// response and gossip payloads awaiting the next flush. Records are passed by
// value and never mutated after construction.
package pending

import (
	"github.com/google/uuid"
)

// Address identifies a peer or client endpoint.
type Address string

// Kind is the operation a Request carries.
type Kind uint8

const (
	Get Kind = iota + 1
	Put
	Remove
)

func (k Kind) String() string {
	switch k {
	case Get:
		return "get"
	case Put:
		return "put"
	case Remove:
		return "remove"
	}
	return "unknown"
}

// Request is a client or replica call dispatched to a remote node, or queued
// for local completion, that is awaiting its response.
type Request struct {
	Kind Kind
	// Value is the serialized payload carried by the request.
	Value []byte
	// Addr is where the response is delivered.
	Addr Address
	// ResponseID correlates the eventual response with this request.
	ResponseID string
}

// NewRequest returns a Request holding a copy of value. If responseID is
// empty a fresh one is generated.
func NewRequest(kind Kind, value []byte, addr Address, responseID string) Request {
	if responseID == "" {
		responseID = NewResponseID()
	}
	return Request{Kind: kind, Value: clone(value), Addr: addr, ResponseID: responseID}
}

// NewResponseID returns a random correlation id.
func NewResponseID() string { return uuid.NewString() }

// Gossip is a serialized batch of updates buffered for a peer.
type Gossip struct {
	Payload []byte
}

// NewGossip returns a Gossip holding a copy of payload.
func NewGossip(payload []byte) Gossip { return Gossip{Payload: clone(payload)} }

// Batch decodes the gossip payload.
func (g Gossip) Batch() (Batch, error) { return DecodeBatch(g.Payload) }

func clone(b []byte) []byte {
	if b == nil {
		return nil
	}
	c := make([]byte, len(b))
	copy(c, b)
	return c
}
