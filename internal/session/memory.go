// Package session provides the key-value persistence substrate for one
// facilitation session, with memory, SQLite, and Postgres backends selected
// through environment variables.
package session

import (
	"sort"
	"sync"

	"landscapecore/pkg/domain"
)

// Compile-time contract assertion.
var _ domain.SessionStore = (*MemoryStore)(nil)

// MemoryStore keeps all payloads in process memory. It backs the durable
// stores, which hydrate it on open and write through on every mutation.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemoryStore constructs an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

// Get returns the payload stored under key.
func (s *MemoryStore) Get(key string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	payload, ok := s.data[key]
	if !ok {
		return nil, false
	}
	cp := make([]byte, len(payload))
	copy(cp, payload)
	return cp, true
}

// Set stores payload under key, replacing any prior value.
func (s *MemoryStore) Set(key string, payload []byte) error {
	cp := make([]byte, len(payload))
	copy(cp, payload)
	s.mu.Lock()
	s.data[key] = cp
	s.mu.Unlock()
	return nil
}

// Remove deletes the key.
func (s *MemoryStore) Remove(key string) error {
	s.mu.Lock()
	delete(s.data, key)
	s.mu.Unlock()
	return nil
}

// Clear removes every key.
func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	s.data = make(map[string][]byte)
	s.mu.Unlock()
	return nil
}

// Keys lists the populated keys sorted ascending for stable iteration.
func (s *MemoryStore) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.data))
	for k := range s.data {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Snapshot returns a full copy of the stored payloads.
func (s *MemoryStore) Snapshot() map[string][]byte {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string][]byte, len(s.data))
	for k, v := range s.data {
		cp := make([]byte, len(v))
		copy(cp, v)
		out[k] = cp
	}
	return out
}

// Restore replaces the stored payloads with the provided snapshot.
func (s *MemoryStore) Restore(snapshot map[string][]byte) {
	data := make(map[string][]byte, len(snapshot))
	for k, v := range snapshot {
		cp := make([]byte, len(v))
		copy(cp, v)
		data[k] = cp
	}
	s.mu.Lock()
	s.data = data
	s.mu.Unlock()
}
