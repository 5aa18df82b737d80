package serializer

import (
	"github.com/arya-analytics/latticekv/internal/lattice"
	"github.com/arya-analytics/latticekv/internal/record"
	"github.com/arya-analytics/latticekv/internal/store"
	"go.uber.org/zap"
)

// Memory is a serializer over a process-resident Store. It adds no locking of
// its own; the Store serializes concurrent access.
type Memory[L lattice.Lattice[L]] struct {
	MemoryConfig
	codec record.Codec[L]
	store *store.Store[L]
}

// NewMemoryLWW returns a memory tier for last-writer-wins values held in s.
func NewMemoryLWW(s *store.Store[lattice.LWW], cfg MemoryConfig) *Memory[lattice.LWW] {
	return newMemory(record.LWW, s, cfg)
}

// NewMemorySet returns a memory tier for set values held in s.
func NewMemorySet(s *store.Store[lattice.Set], cfg MemoryConfig) *Memory[lattice.Set] {
	return newMemory(record.Set, s, cfg)
}

func newMemory[L lattice.Lattice[L]](codec record.Codec[L], s *store.Store[L], cfg MemoryConfig) *Memory[L] {
	return &Memory[L]{MemoryConfig: cfg.Merge(DefaultMemoryConfig()), codec: codec, store: s}
}

// Get implements Serializer. A key holding only the bottom element is
// reported as not found.
func (m *Memory[L]) Get(key string) (b []byte, err error) {
	defer func() { observe(tierMemory, m.codec.Type(), opGet, err) }()
	v, ok := m.store.Get(key)
	if !ok || v.IsBottom() {
		return nil, notFound(key)
	}
	return m.codec.Encode(v), nil
}

// Put implements Serializer.
func (m *Memory[L]) Put(key string, payload []byte) (n int, err error) {
	defer func() { observe(tierMemory, m.codec.Type(), opPut, err) }()
	v, err := m.codec.Decode(payload)
	if err != nil {
		m.Logger.Warn("rejected unparseable payload",
			zap.String("key", key),
			zap.Stringer("kind", m.codec.Type()),
			zap.Error(err),
		)
		return 0, parseFailure(err, key)
	}
	n = m.store.Put(key, v)
	m.Logger.Debug("put", zap.String("key", key), zap.Int("size", n))
	return n, nil
}

// Remove implements Serializer.
func (m *Memory[L]) Remove(key string) (err error) {
	defer func() { observe(tierMemory, m.codec.Type(), opRemove, err) }()
	if !m.store.Remove(key) {
		return notFound(key)
	}
	return nil
}
