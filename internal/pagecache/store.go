package pagecache

import (
	"context"
	"sync"
	"time"
)

// Entry is a rendered response.
type Entry struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

// Store keeps entries until their ttl runs out or Clear is called.
type Store interface {
	Get(ctx context.Context, key string) (Entry, bool, error)
	Set(ctx context.Context, key string, e Entry, ttl time.Duration) error
	Clear(ctx context.Context) error
}

type memItem struct {
	entry   Entry
	expires time.Time
}

// MemoryStore is a process-local Store. Expired items are dropped lazily.
type MemoryStore struct {
	mu    sync.Mutex
	now   func() time.Time
	items map[string]memItem
}

// NewMemoryStore uses now as its clock; nil means time.Now.
func NewMemoryStore(now func() time.Time) *MemoryStore {
	if now == nil {
		now = time.Now
	}
	return &MemoryStore{now: now, items: map[string]memItem{}}
}

func (m *MemoryStore) Get(_ context.Context, key string) (Entry, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	it, ok := m.items[key]
	if !ok {
		return Entry{}, false, nil
	}
	if !m.now().Before(it.expires) {
		delete(m.items, key)
		return Entry{}, false, nil
	}
	return it.entry, true, nil
}

func (m *MemoryStore) Set(_ context.Context, key string, e Entry, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = memItem{entry: e, expires: m.now().Add(ttl)}
	return nil
}

func (m *MemoryStore) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = map[string]memItem{}
	return nil
}
