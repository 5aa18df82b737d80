// Package config loads the storage configuration file and surfaces the
// thresholds consumed by the scheduler that drives garbage collection, data
// redistribution, and gossip.
package config

import (
	"os"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v2"
)

const (
	// GarbageCollectThreshold is the stored size beyond which the scheduler
	// compacts a tier.
	GarbageCollectThreshold = 10000000
	// DataRedistributeThreshold is the key-count skew between tiers beyond
	// which the scheduler rebalances.
	DataRedistributeThreshold = 50
	// GossipPeriod is the interval at which buffered gossip is flushed.
	GossipPeriod = 10 * time.Second
)

// Config is the parsed storage configuration.
type Config struct {
	// DiskRoot is the directory under which every disk tier lives. It always
	// ends with a path separator once loaded.
	DiskRoot                  string        `yaml:"ebs"`
	GarbageCollectThreshold   int           `yaml:"gc-threshold"`
	DataRedistributeThreshold int           `yaml:"redistribute-threshold"`
	GossipPeriod              time.Duration `yaml:"gossip-period"`
}

func (cfg Config) Merge(def Config) Config {
	if cfg.DiskRoot == "" {
		cfg.DiskRoot = def.DiskRoot
	}
	if cfg.GarbageCollectThreshold == 0 {
		cfg.GarbageCollectThreshold = def.GarbageCollectThreshold
	}
	if cfg.DataRedistributeThreshold == 0 {
		cfg.DataRedistributeThreshold = def.DataRedistributeThreshold
	}
	if cfg.GossipPeriod == 0 {
		cfg.GossipPeriod = def.GossipPeriod
	}
	return cfg
}

func (cfg Config) Validate() error {
	if cfg.DiskRoot == "" {
		return errors.New("[config] - ebs root must be set")
	}
	if cfg.GarbageCollectThreshold < 0 || cfg.DataRedistributeThreshold < 0 {
		return errors.New("[config] - thresholds must be non-negative")
	}
	if cfg.GossipPeriod < 0 {
		return errors.New("[config] - gossip period must be non-negative")
	}
	return nil
}

func DefaultConfig() Config {
	return Config{
		GarbageCollectThreshold:   GarbageCollectThreshold,
		DataRedistributeThreshold: DataRedistributeThreshold,
		GossipPeriod:              GossipPeriod,
	}
}

// Load reads the configuration file at path.
func Load(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(err, "[config] - failed to read %s", path)
	}
	return Parse(b)
}

// Parse decodes a YAML configuration and fills unset fields from
// DefaultConfig. Keys owned by other components of a shared configuration
// file are ignored. The disk root is normalized.
func Parse(b []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, errors.Wrap(err, "[config] - failed to parse")
	}
	cfg = cfg.Merge(DefaultConfig())
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	cfg.DiskRoot = NormalizeRoot(cfg.DiskRoot)
	return cfg, nil
}

// NormalizeRoot appends a trailing separator to root if it lacks one.
func NormalizeRoot(root string) string {
	if root == "" || strings.HasSuffix(root, "/") {
		return root
	}
	return root + "/"
}
