package mock

import (
	"github.com/arya-analytics/latticekv"
	"github.com/cockroachdb/pebble/vfs"
)

// NewMemBuilder returns a Builder whose disk tiers write to an in-memory
// filesystem.
func NewMemBuilder(defaultOpts ...latticekv.Option) *Builder {
	return &Builder{
		Root: "/latticekv/",
		DefaultOptions: append([]latticekv.Option{
			latticekv.WithFS(vfs.NewMem()),
		}, defaultOpts...),
	}
}

// NewMemoryTierBuilder returns a Builder that opens memory tiers, each with its
// own stores.
func NewMemoryTierBuilder(defaultOpts ...latticekv.Option) *Builder {
	return &Builder{
		Root:           "/",
		DefaultOptions: append([]latticekv.Option{latticekv.MemBacked()}, defaultOpts...),
	}
}
