package cache

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	value     []byte
	tags      []string
	expiresAt time.Time
}

// Memory is an in-process Store. Tags are kept as a reverse index from tag
// name to member keys so Flush touches only the tagged entries. Expired
// entries are dropped lazily when read or overwritten.
type Memory struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	tags    map[string]map[string]struct{}
	now     func() time.Time
}

// NewMemory creates an empty in-process cache.
func NewMemory() *Memory {
	return &Memory{
		entries: make(map[string]memoryEntry),
		tags:    make(map[string]map[string]struct{}),
		now:     time.Now,
	}
}

// TryGet returns the cached value for key, or false if the key is absent or
// its TTL has passed.
func (m *Memory) TryGet(_ context.Context, key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.entries[key]
	if !ok {
		return nil, false
	}
	if !m.now().Before(entry.expiresAt) {
		m.removeLocked(key, entry)
		return nil, false
	}

	// Copy so callers can't mutate the cached payload.
	value := make([]byte, len(entry.value))
	copy(value, entry.value)
	return value, true
}

// Put stores value under key for ttl, replacing any previous entry and its
// tag memberships.
func (m *Memory) Put(_ context.Context, key string, value []byte, tags []string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if old, ok := m.entries[key]; ok {
		m.removeLocked(key, old)
	}

	stored := make([]byte, len(value))
	copy(stored, value)

	m.entries[key] = memoryEntry{
		value:     stored,
		tags:      tags,
		expiresAt: m.now().Add(ttl),
	}
	for _, tag := range tags {
		members, ok := m.tags[tag]
		if !ok {
			members = make(map[string]struct{})
			m.tags[tag] = members
		}
		members[key] = struct{}{}
	}
	return nil
}

// Flush removes every entry carrying tag. Entries without the tag are left
// untouched.
func (m *Memory) Flush(_ context.Context, tag string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for key := range m.tags[tag] {
		if entry, ok := m.entries[key]; ok {
			m.removeLocked(key, entry)
		}
	}
	delete(m.tags, tag)
	return nil
}

// Ping reports the backend as reachable. An in-process map always is.
func (m *Memory) Ping(_ context.Context) error {
	return nil
}

// Len reports the number of stored entries, including any not yet reaped
// expired ones.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

func (m *Memory) removeLocked(key string, entry memoryEntry) {
	delete(m.entries, key)
	for _, tag := range entry.tags {
		if members, ok := m.tags[tag]; ok {
			delete(members, key)
			if len(members) == 0 {
				delete(m.tags, tag)
			}
		}
	}
}
