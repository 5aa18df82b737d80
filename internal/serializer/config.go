package serializer

import (
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/pebble/vfs"
	"go.uber.org/zap"
)

// MemoryConfig configures a memory tier.
type MemoryConfig struct {
	Logger *zap.Logger
}

func (cfg MemoryConfig) Merge(def MemoryConfig) MemoryConfig {
	if cfg.Logger == nil {
		cfg.Logger = def.Logger
	}
	return cfg
}

// DefaultMemoryConfig logs nowhere.
func DefaultMemoryConfig() MemoryConfig {
	return MemoryConfig{Logger: zap.NewNop()}
}

// DiskConfig configures a disk tier. Records live in <Root>/ebs_<TierID>. An
// LWW tier and a Set tier may share a TierID, but two live tiers of the same
// kind may not.
type DiskConfig struct {
	// Root is the storage root under which every tier directory lives.
	Root string
	// TierID identifies the worker that owns the tier's path namespace.
	TierID uint32
	// FS is the filesystem records are written to. Defaults to the host
	// filesystem.
	FS     vfs.FS
	Logger *zap.Logger
}

func (cfg DiskConfig) Merge(def DiskConfig) DiskConfig {
	if cfg.Root == "" {
		cfg.Root = def.Root
	}
	if cfg.FS == nil {
		cfg.FS = def.FS
	}
	if cfg.Logger == nil {
		cfg.Logger = def.Logger
	}
	return cfg
}

func (cfg DiskConfig) Validate() error {
	if cfg.Root == "" {
		return errors.New("[serializer] - disk root must be set")
	}
	if cfg.FS == nil {
		return errors.New("[serializer] - filesystem must be set")
	}
	if cfg.Logger == nil {
		return errors.New("[serializer] - logger must be set")
	}
	return nil
}

// Dir returns the directory holding the tier's records.
func (cfg DiskConfig) Dir() string {
	return cfg.FS.PathJoin(cfg.Root, "ebs_"+strconv.FormatUint(uint64(cfg.TierID), 10))
}

func DefaultDiskConfig() DiskConfig {
	return DiskConfig{FS: vfs.Default, Logger: zap.NewNop()}
}
