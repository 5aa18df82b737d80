package mock

import (
	"os"

	"github.com/arya-analytics/latticekv"
)

// Builder opens disk tiers under a shared root, assigning each one its own
// tier id.
type Builder struct {
	// DataDir is the parent of the temporary root. Ignored when Root is set.
	DataDir        string
	Root           string
	DefaultOptions []latticekv.Option
	nextTier       uint32
	tmpDir         string
}

func (b *Builder) Dir() string {
	if b.Root != "" {
		return b.Root
	}
	if b.tmpDir == "" {
		var err error
		b.tmpDir, err = os.MkdirTemp(b.DataDir, "latticekv")
		if err != nil {
			panic(err)
		}
	}
	return b.tmpDir
}

// New opens a serializer for kind on the next unused tier.
func (b *Builder) New(kind latticekv.Kind, opts ...latticekv.Option) (latticekv.Serializer, error) {
	b.nextTier++
	all := make([]latticekv.Option, 0, len(b.DefaultOptions)+len(opts)+1)
	all = append(all, b.DefaultOptions...)
	all = append(all, latticekv.WithTierID(b.nextTier))
	return latticekv.Open(b.Dir(), kind, append(all, opts...)...)
}

func (b *Builder) Cleanup() error {
	if b.tmpDir == "" {
		return nil
	}
	return os.RemoveAll(b.tmpDir)
}
