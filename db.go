package latticekv

import (
	"github.com/arya-analytics/latticekv/internal/lattice"
	"github.com/arya-analytics/latticekv/internal/pending"
	"github.com/arya-analytics/latticekv/internal/record"
	"github.com/arya-analytics/latticekv/internal/serializer"
	"github.com/arya-analytics/latticekv/internal/store"
)

// Serializer reads and writes lattice records for a single value kind on a
// single medium. See Open.
type Serializer = serializer.Serializer

// Kind selects the lattice a Serializer stores.
type Kind = record.Type

const (
	// LWW stores last-writer-wins registers.
	LWW = record.TypeLWW
	// Set stores grow-only sets.
	Set = record.TypeSet
)

type (
	// LWWValue is a decoded last-writer-wins record.
	LWWValue = lattice.LWW
	// SetValue is a decoded set record.
	SetValue = lattice.Set
	// LWWStore is a process-resident store of LWW values that memory-backed
	// serializers can share.
	LWWStore = store.Store[lattice.LWW]
	// SetStore is a process-resident store of Set values that memory-backed
	// serializers can share.
	SetStore = store.Store[lattice.Set]
)

// NewLWWStore returns an empty LWWStore.
func NewLWWStore() *LWWStore { return store.New(record.LWW) }

// NewSetStore returns an empty SetStore.
func NewSetStore() *SetStore { return store.New(record.Set) }

type (
	Address        = pending.Address
	PendingRequest = pending.Request
	PendingGossip  = pending.Gossip
)

var (
	ErrNotFound   = serializer.ErrNotFound
	ErrParse      = serializer.ErrParse
	ErrIO         = serializer.ErrIO
	ErrInvalidKey = serializer.ErrInvalidKey
)
