package latticekv

import (
	"github.com/arya-analytics/latticekv/internal/config"
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/pebble/vfs"
	"go.uber.org/zap"
)

// Option configures Open.
type Option func(*options)

type options struct {
	// dirname is the storage root under which disk tiers keep their records.
	// This option is ignored if memBacked is set.
	dirname string
	// tierID selects the disk tier's directory under dirname. Each worker must
	// use its own tierID.
	tierID uint32
	// fs sets the filesystem disk tiers write to. This option is ignored if
	// memBacked is set.
	fs vfs.FS
	// memBacked opens a memory tier instead of a disk tier.
	memBacked bool
	// lwwStore and setStore back memory tiers. A fresh store is created when
	// unset.
	lwwStore *LWWStore
	setStore *SetStore
	logger   *zap.Logger
}

func newOptions(dirname string, opts ...Option) *options {
	o := &options{dirname: dirname}
	for _, opt := range opts {
		opt(o)
	}
	mergeDefaultOptions(o)
	return o
}

func validateOptions(o *options) error {
	if !o.memBacked && o.dirname == "" {
		return errors.New("[latticekv] - a storage root must be provided when not memory backed")
	}
	return nil
}

func mergeDefaultOptions(o *options) {
	def := defaultOptions()

	// |||| DIRNAME ||||

	o.dirname = config.NormalizeRoot(o.dirname)

	// |||| FS ||||

	if o.fs == nil {
		o.fs = def.fs
	}

	// |||| LOGGER ||||

	if o.logger == nil {
		o.logger = def.logger
	}

	// |||| STORES ||||

	if o.lwwStore == nil {
		o.lwwStore = NewLWWStore()
	}
	if o.setStore == nil {
		o.setStore = NewSetStore()
	}
}

func defaultOptions() *options {
	return &options{fs: vfs.Default, logger: zap.NewNop()}
}

// MemBacked opens a memory tier. The storage root is ignored.
func MemBacked() Option { return func(o *options) { o.memBacked = true } }

// WithTierID sets the worker identifier that scopes a disk tier's directory.
func WithTierID(id uint32) Option { return func(o *options) { o.tierID = id } }

// WithFS sets the filesystem a disk tier writes to.
func WithFS(fs vfs.FS) Option { return func(o *options) { o.fs = fs } }

// WithLogger sets the logger serializers write to.
func WithLogger(logger *zap.Logger) Option { return func(o *options) { o.logger = logger } }

// WithLWWStore shares s between memory-backed LWW serializers.
func WithLWWStore(s *LWWStore) Option { return func(o *options) { o.lwwStore = s } }

// WithSetStore shares s between memory-backed Set serializers.
func WithSetStore(s *SetStore) Option { return func(o *options) { o.setStore = s } }
