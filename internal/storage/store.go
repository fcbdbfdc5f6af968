// Package storage provides endpoint storage abstractions and implementations.
package storage

import (
	"errors"

	"github.com/getmockd/reflectd/pkg/endpoint"
)

// ErrDuplicateEndpoint is returned when a stored endpoint already claims
// the same (method, path) pair.
var ErrDuplicateEndpoint = errors.New("endpoint with this method and path already exists")

// ErrNotFound is returned when no endpoint has the given ID.
var ErrNotFound = errors.New("endpoint not found")

// EndpointStore defines the interface for storing and retrieving endpoint
// configurations. Implementations must be safe for concurrent use; the
// request path only reads, the admin API writes.
type EndpointStore interface {
	// Get retrieves an endpoint by ID. Returns nil if not found.
	Get(id string) *endpoint.Endpoint

	// Create stores a new endpoint. Fails with ErrDuplicateEndpoint if
	// another endpoint claims the same (method, path).
	Create(ep *endpoint.Endpoint) error

	// Update replaces the endpoint with the given ID. Fails with
	// ErrNotFound if it does not exist, or ErrDuplicateEndpoint if the
	// new (method, path) collides with a different endpoint.
	Update(id string, ep *endpoint.Endpoint) error

	// Delete removes an endpoint by ID. Returns true if deleted.
	Delete(id string) bool

	// List returns all endpoints in registration order.
	List() []*endpoint.Endpoint

	// Count returns the number of stored endpoints.
	Count() int

	// Clear removes all stored endpoints.
	Clear()
}
