// Package cache is a small keyed cache injected into the views that need
// one, instead of ambient shared state. The public survey endpoint uses it
// to de-duplicate repeated fetches of the same live survey.
package cache

import (
	"sync"
	"time"
)

type Cache interface {
	Get(key string) (value any, ok bool)
	Set(key string, value any)
	Invalidate(key string)
}

type entry struct {
	value   any
	expires time.Time
}

// Memory is an in-process Cache with per-entry TTL.
type Memory struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]entry
}

func NewMemory(ttl time.Duration) *Memory {
	return &Memory{
		ttl:     ttl,
		entries: make(map[string]entry),
	}
}

func (m *Memory) Get(key string) (any, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if !ok {
		return nil, false
	}
	if time.Now().After(e.expires) {
		delete(m.entries, key)
		return nil, false
	}
	return e.value, true
}

func (m *Memory) Set(key string, value any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = entry{value: value, expires: time.Now().Add(m.ttl)}
}

func (m *Memory) Invalidate(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
}
