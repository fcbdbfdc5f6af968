// Package session provides the ephemeral keyed store that makes mock
// responses stateful across requests. Entries live for the process lifetime
// or until their TTL elapses; there is no persistence.
package session

import (
	"sync"
	"time"
)

type entry struct {
	value     string
	expiresAt time.Time // zero means the entry never expires
}

// Store is a thread-safe key/value map scoped by namespace.
// Expired entries are deleted lazily on read; no background sweep runs.
type Store struct {
	mu      sync.Mutex
	entries map[string]entry
	now     func() time.Time
}

// New creates an empty Store.
func New() *Store {
	return &Store{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// storageKey combines namespace and key. Namespaces are caller-chosen
// strings (typically derived from an endpoint path), so endpoints sharing
// a namespace observe each other's values.
func storageKey(namespace, key string) string {
	return namespace + "\x00" + key
}

// Set stores a value under the given namespace and key, overwriting any
// existing entry. A ttl of zero means the entry never expires.
func (s *Store) Set(namespace, key, value string, ttl time.Duration) {
	e := entry{value: value}
	if ttl > 0 {
		e.expiresAt = s.now().Add(ttl)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[storageKey(namespace, key)] = e
}

// Get returns the value stored under the given namespace and key.
// Entries past their expiry are deleted and reported as absent.
func (s *Store) Get(namespace, key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := storageKey(namespace, key)
	e, ok := s.entries[k]
	if !ok {
		return "", false
	}
	if !e.expiresAt.IsZero() && s.now().After(e.expiresAt) {
		delete(s.entries, k)
		return "", false
	}
	return e.value, true
}

// Lookup implements the template context's store reader contract.
func (s *Store) Lookup(namespace, key string) (string, bool) {
	return s.Get(namespace, key)
}

// Clear removes all entries.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]entry)
}

// Len returns the number of stored entries, including any that have
// expired but not yet been read.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
