package storage

import (
	"sort"
	"strings"
	"sync"

	"github.com/getmockd/reflectd/pkg/endpoint"
)

// InMemoryEndpointStore is a thread-safe in-memory implementation of
// EndpointStore.
type InMemoryEndpointStore struct {
	mu        sync.RWMutex
	endpoints map[string]*entry
	seq       int
}

type entry struct {
	ep    *endpoint.Endpoint
	order int
}

// NewInMemoryEndpointStore creates a new InMemoryEndpointStore.
func NewInMemoryEndpointStore() *InMemoryEndpointStore {
	return &InMemoryEndpointStore{
		endpoints: make(map[string]*entry),
	}
}

// Get retrieves an endpoint by ID. Returns nil if not found.
func (s *InMemoryEndpointStore) Get(id string) *endpoint.Endpoint {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if e, ok := s.endpoints[id]; ok {
		return e.ep
	}
	return nil
}

// Create stores a new endpoint, enforcing (method, path) uniqueness.
func (s *InMemoryEndpointStore) Create(ep *endpoint.Endpoint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findIdentity(ep.Method, ep.Path, "") != nil {
		return ErrDuplicateEndpoint
	}
	s.endpoints[ep.ID] = &entry{ep: ep, order: s.seq}
	s.seq++
	return nil
}

// Update replaces the endpoint with the given ID, keeping its position in
// registration order.
func (s *InMemoryEndpointStore) Update(id string, ep *endpoint.Endpoint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.endpoints[id]
	if !ok {
		return ErrNotFound
	}
	if s.findIdentity(ep.Method, ep.Path, id) != nil {
		return ErrDuplicateEndpoint
	}
	ep.ID = id
	existing.ep = ep
	return nil
}

// Delete removes an endpoint by ID. Returns true if deleted.
func (s *InMemoryEndpointStore) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.endpoints[id]; ok {
		delete(s.endpoints, id)
		return true
	}
	return false
}

// List returns all endpoints in registration order, so matching precedence
// is stable across calls.
func (s *InMemoryEndpointStore) List() []*endpoint.Endpoint {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]*entry, 0, len(s.endpoints))
	for _, e := range s.endpoints {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].order < entries[j].order
	})

	result := make([]*endpoint.Endpoint, len(entries))
	for i, e := range entries {
		result[i] = e.ep
	}
	return result
}

// Count returns the number of stored endpoints.
func (s *InMemoryEndpointStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.endpoints)
}

// Clear removes all stored endpoints.
func (s *InMemoryEndpointStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.endpoints = make(map[string]*entry)
}

// findIdentity returns the endpoint holding (method, path), ignoring the
// endpoint with excludeID. Paths compare case-insensitively, matching the
// router's behavior. Callers must hold the lock.
func (s *InMemoryEndpointStore) findIdentity(method endpoint.Method, path string, excludeID string) *endpoint.Endpoint {
	for id, e := range s.endpoints {
		if id == excludeID {
			continue
		}
		if e.ep.Method == method && strings.EqualFold(e.ep.Path, path) {
			return e.ep
		}
	}
	return nil
}
