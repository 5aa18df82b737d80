package latticekv

import (
	"github.com/arya-analytics/latticekv/internal/config"
	"github.com/arya-analytics/latticekv/internal/serializer"
	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

// Open returns the Serializer for kind. By default the serializer is a disk
// tier rooted at dirname; pass MemBacked to open a memory tier instead.
func Open(dirname string, kind Kind, opts ...Option) (Serializer, error) {
	o := newOptions(dirname, opts...)
	if err := validateOptions(o); err != nil {
		return nil, err
	}
	o.logger.Debug("opening serializer",
		zap.Stringer("kind", kind),
		zap.Bool("memBacked", o.memBacked),
		zap.String("root", o.dirname),
		zap.Uint32("tier", o.tierID),
	)
	if o.memBacked {
		return openMemory(o, kind)
	}
	return openDisk(o, kind)
}

// OpenFromConfig loads the configuration file at path and opens a disk tier
// under its storage root.
func OpenFromConfig(path string, kind Kind, opts ...Option) (Serializer, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	return Open(cfg.DiskRoot, kind, opts...)
}

func openMemory(o *options, kind Kind) (Serializer, error) {
	cfg := serializer.MemoryConfig{Logger: o.logger}
	switch kind {
	case LWW:
		return serializer.NewMemoryLWW(o.lwwStore, cfg), nil
	case Set:
		return serializer.NewMemorySet(o.setStore, cfg), nil
	}
	return nil, unknownKind(kind)
}

func openDisk(o *options, kind Kind) (Serializer, error) {
	cfg := serializer.DiskConfig{Root: o.dirname, TierID: o.tierID, FS: o.fs, Logger: o.logger}
	var (
		s   Serializer
		err error
	)
	switch kind {
	case LWW:
		s, err = serializer.NewDiskLWW(cfg)
	case Set:
		s, err = serializer.NewDiskSet(cfg)
	default:
		return nil, unknownKind(kind)
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

func unknownKind(kind Kind) error {
	return errors.Newf("[latticekv] - unknown value kind %d", kind)
}
