package cachex

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// DefaultMemoryEntries bounds a Memory built with NewMemory.
const DefaultMemoryEntries = 10_000

// Memory is an in-process Cache. It is used when no Redis is configured and
// in tests.
//
// Values live in a size-bounded LRU whose expired entries are reclaimed in the
// background. An entry leaving the LRU is also dropped from every set, so
// sets never point at more keys than the LRU holds.
type Memory struct {
	entries *expirable.LRU[string, []byte]

	mu   sync.Mutex
	sets map[string]map[string]struct{}
}

// NewMemory returns an in-process cache holding up to DefaultMemoryEntries
// values. A ttl of 0 disables expiry.
func NewMemory(ttl time.Duration) *Memory {
	return NewMemorySized(DefaultMemoryEntries, ttl)
}

// NewMemorySized returns an in-process cache holding up to maxEntries values,
// evicting the least recently used beyond that. A maxEntries of 0 means
// unbounded.
func NewMemorySized(maxEntries int, ttl time.Duration) *Memory {
	m := &Memory{sets: make(map[string]map[string]struct{})}
	// The LRU holds its own lock while calling onEvict, so m.mu must never be
	// held across a call into m.entries.
	m.entries = expirable.NewLRU[string, []byte](maxEntries, m.untrack, ttl)
	return m
}

func (m *Memory) untrack(key string, _ []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, set := range m.sets {
		delete(set, key)
	}
}

// Len reports the number of live values.
func (m *Memory) Len() int {
	return m.entries.Len()
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, error) {
	v, ok := m.entries.Get(key)
	if !ok {
		return nil, ErrMiss
	}
	return append([]byte(nil), v...), nil
}

func (m *Memory) Set(_ context.Context, key string, value []byte) error {
	m.entries.Add(key, append([]byte(nil), value...))
	return nil
}

func (m *Memory) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		m.entries.Remove(k)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.sets, k)
	}
	return nil
}

func (m *Memory) AddToSet(_ context.Context, key, member string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	set, ok := m.sets[key]
	if !ok {
		set = make(map[string]struct{})
		m.sets[key] = set
	}
	set[member] = struct{}{}
	return nil
}

// Members returns the set members in sorted order.
func (m *Memory) Members(_ context.Context, key string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]string, 0, len(m.sets[key]))
	for member := range m.sets[key] {
		out = append(out, member)
	}
	sort.Strings(out)
	return out, nil
}

func (m *Memory) Ping(context.Context) error { return nil }

func (m *Memory) Name() string { return "memory" }

func (m *Memory) Close() error {
	m.entries.Purge()
	return nil
}
