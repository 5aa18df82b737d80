package serializer

import (
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/arya-analytics/latticekv/internal/lattice"
	"github.com/arya-analytics/latticekv/internal/record"
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/errors/oserror"
	"go.uber.org/zap"
)

const stagingSuffix = ".staging"

// stagingSeq distinguishes concurrent staging files, including those of LWW
// and Set tiers sharing a directory.
var stagingSeq uint64

// Disk is a serializer that keeps one record file per key and no in-memory
// index. Writes are read-merge-write cycles; the merged record is staged in a
// sibling directory and renamed over the target, so a crash leaves either the
// old or the new record in place.
//
// A Disk instance serializes its own operations, but nothing coordinates two
// instances (or processes) of the same kind configured with the same Root and
// TierID.
type Disk[L lattice.Lattice[L]] struct {
	DiskConfig
	codec   record.Codec[L]
	dir     string
	staging string
	mu      sync.Mutex
}

// NewDiskLWW opens a disk tier for last-writer-wins values.
func NewDiskLWW(cfg DiskConfig) (*Disk[lattice.LWW], error) { return newDisk(record.LWW, cfg) }

// NewDiskSet opens a disk tier for set values.
func NewDiskSet(cfg DiskConfig) (*Disk[lattice.Set], error) { return newDisk(record.Set, cfg) }

func newDisk[L lattice.Lattice[L]](codec record.Codec[L], cfg DiskConfig) (*Disk[L], error) {
	cfg = cfg.Merge(DefaultDiskConfig())
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	d := &Disk[L]{DiskConfig: cfg, codec: codec}
	d.dir = cfg.Dir()
	d.staging = d.dir + stagingSuffix
	for _, dir := range []string{d.dir, d.staging} {
		if err := d.FS.MkdirAll(dir, 0755); err != nil {
			return nil, ioFailure(err, "failed to create %s", dir)
		}
	}
	return d, nil
}

// Get implements Serializer.
func (d *Disk[L]) Get(key string) (b []byte, err error) {
	defer func() { observe(tierDisk, d.codec.Type(), opGet, err) }()
	path, err := d.path(key)
	if err != nil {
		return nil, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	raw, ok, err := d.read(path)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, notFound(key)
	}
	v, err := d.decode(key, raw)
	if err != nil {
		return nil, err
	}
	return d.codec.Encode(v), nil
}

// Put implements Serializer. The first write for a key stores payload
// verbatim. A stored record that cannot be decoded is left untouched and
// reported as ErrParse.
func (d *Disk[L]) Put(key string, payload []byte) (n int, err error) {
	defer func() { observe(tierDisk, d.codec.Type(), opPut, err) }()
	path, err := d.path(key)
	if err != nil {
		return 0, err
	}
	incoming, err := d.codec.Decode(payload)
	if err != nil {
		d.Logger.Warn("rejected unparseable payload", zap.String("key", key), zap.Error(err))
		return 0, parseFailure(err, key)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	raw, ok, err := d.read(path)
	if err != nil {
		return 0, err
	}
	out := payload
	if ok {
		cur, err := d.decode(key, raw)
		if err != nil {
			return 0, err
		}
		out = d.codec.Encode(cur.Merge(incoming))
	}
	if err := d.write(path, out); err != nil {
		d.Logger.Error("failed to write record", zap.String("key", key), zap.Error(err))
		return 0, err
	}
	BytesWritten.WithLabelValues(tierDisk, d.codec.Type().String()).Add(float64(len(out)))
	d.Logger.Debug("put",
		zap.String("key", key),
		zap.Uint32("tier", d.TierID),
		zap.Bool("merged", ok),
		zap.Int("size", len(out)),
	)
	return len(out), nil
}

// Remove implements Serializer. A failed delete is always returned: an
// orphaned record file would make the key reappear on the next Get.
func (d *Disk[L]) Remove(key string) (err error) {
	defer func() { observe(tierDisk, d.codec.Type(), opRemove, err) }()
	path, err := d.path(key)
	if err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.FS.Remove(path); err != nil {
		if oserror.IsNotExist(err) {
			return notFound(key)
		}
		d.Logger.Error("failed to remove record", zap.String("key", key), zap.Error(err))
		return ioFailure(err, "failed to remove %s", path)
	}
	return d.syncDir()
}

func (d *Disk[L]) path(key string) (string, error) {
	if key == "" || key == "." || key == ".." ||
		strings.ContainsAny(key, "/\x00") || strings.ContainsRune(key, filepath.Separator) {
		return "", errors.Wrapf(ErrInvalidKey, "[serializer] - %q", key)
	}
	return d.FS.PathJoin(d.dir, key), nil
}

// read returns the raw record at path and false if no record exists.
func (d *Disk[L]) read(path string) ([]byte, bool, error) {
	f, err := d.FS.Open(path)
	if err != nil {
		if oserror.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, ioFailure(err, "failed to open %s", path)
	}
	defer func() { _ = f.Close() }()
	b, err := io.ReadAll(f)
	if err != nil {
		return nil, false, ioFailure(err, "failed to read %s", path)
	}
	return b, true, nil
}

func (d *Disk[L]) decode(key string, raw []byte) (L, error) {
	v, err := d.codec.Decode(raw)
	if err != nil {
		d.Logger.Warn("stored record is unparseable", zap.String("key", key), zap.Error(err))
		return v, parseFailure(err, key)
	}
	return v, nil
}

func (d *Disk[L]) write(path string, data []byte) error {
	tmp := d.FS.PathJoin(d.staging, d.FS.PathBase(path)+"."+d.codec.Type().String()+"."+
		strconv.FormatUint(atomic.AddUint64(&stagingSeq, 1), 10))
	f, err := d.FS.Create(tmp)
	if err != nil {
		return ioFailure(err, "failed to create %s", tmp)
	}
	if _, err = f.Write(data); err == nil {
		err = f.Sync()
	}
	err = errors.CombineErrors(err, f.Close())
	if err != nil {
		_ = d.FS.Remove(tmp)
		return ioFailure(err, "failed to write %s", tmp)
	}
	if err := d.FS.Rename(tmp, path); err != nil {
		_ = d.FS.Remove(tmp)
		return ioFailure(err, "failed to rename %s", tmp)
	}
	return d.syncDir()
}

func (d *Disk[L]) syncDir() error {
	dir, err := d.FS.OpenDir(d.dir)
	if err != nil {
		return ioFailure(err, "failed to open %s", d.dir)
	}
	err = errors.CombineErrors(dir.Sync(), dir.Close())
	if err != nil {
		return ioFailure(err, "failed to sync %s", d.dir)
	}
	return nil
}
