package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getmockd/reflectd/pkg/endpoint"
)

func newEndpoint(id string, method endpoint.Method, path string) *endpoint.Endpoint {
	return &endpoint.Endpoint{ID: id, Method: method, Path: path}
}

func TestCreateAndGet(t *testing.T) {
	s := NewInMemoryEndpointStore()
	ep := newEndpoint("ep_1", endpoint.MethodGet, "/ping")
	require.NoError(t, s.Create(ep))

	got := s.Get("ep_1")
	require.NotNil(t, got)
	assert.Equal(t, "/ping", got.Path)
	assert.Nil(t, s.Get("ep_missing"))
}

func TestCreateRejectsDuplicateIdentity(t *testing.T) {
	s := NewInMemoryEndpointStore()
	require.NoError(t, s.Create(newEndpoint("ep_1", endpoint.MethodGet, "/ping")))

	err := s.Create(newEndpoint("ep_2", endpoint.MethodGet, "/ping"))
	assert.ErrorIs(t, err, ErrDuplicateEndpoint)

	// Case differences in the path are still the same identity.
	err = s.Create(newEndpoint("ep_3", endpoint.MethodGet, "/PING"))
	assert.ErrorIs(t, err, ErrDuplicateEndpoint)

	// The same path under another method is a distinct endpoint.
	require.NoError(t, s.Create(newEndpoint("ep_4", endpoint.MethodPost, "/ping")))
	assert.Equal(t, 2, s.Count())
}

func TestUpdate(t *testing.T) {
	s := NewInMemoryEndpointStore()
	require.NoError(t, s.Create(newEndpoint("ep_1", endpoint.MethodGet, "/ping")))
	require.NoError(t, s.Create(newEndpoint("ep_2", endpoint.MethodGet, "/pong")))

	err := s.Update("ep_missing", newEndpoint("", endpoint.MethodGet, "/x"))
	assert.ErrorIs(t, err, ErrNotFound)

	// Moving onto another endpoint's identity is rejected.
	err = s.Update("ep_2", newEndpoint("", endpoint.MethodGet, "/ping"))
	assert.ErrorIs(t, err, ErrDuplicateEndpoint)

	// Updating in place, same identity, is fine.
	replacement := newEndpoint("", endpoint.MethodGet, "/pong")
	replacement.Name = "renamed"
	require.NoError(t, s.Update("ep_2", replacement))
	assert.Equal(t, "renamed", s.Get("ep_2").Name)
	assert.Equal(t, "ep_2", s.Get("ep_2").ID)
}

func TestDelete(t *testing.T) {
	s := NewInMemoryEndpointStore()
	require.NoError(t, s.Create(newEndpoint("ep_1", endpoint.MethodGet, "/ping")))

	assert.True(t, s.Delete("ep_1"))
	assert.False(t, s.Delete("ep_1"))
	assert.Equal(t, 0, s.Count())

	// The identity is free again after deletion.
	assert.NoError(t, s.Create(newEndpoint("ep_2", endpoint.MethodGet, "/ping")))
}

func TestListKeepsRegistrationOrder(t *testing.T) {
	s := NewInMemoryEndpointStore()
	require.NoError(t, s.Create(newEndpoint("ep_c", endpoint.MethodGet, "/c")))
	require.NoError(t, s.Create(newEndpoint("ep_a", endpoint.MethodGet, "/a")))
	require.NoError(t, s.Create(newEndpoint("ep_b", endpoint.MethodGet, "/b")))

	list := s.List()
	require.Len(t, list, 3)
	assert.Equal(t, []string{"ep_c", "ep_a", "ep_b"}, []string{list[0].ID, list[1].ID, list[2].ID})
}

func TestClear(t *testing.T) {
	s := NewInMemoryEndpointStore()
	require.NoError(t, s.Create(newEndpoint("ep_1", endpoint.MethodGet, "/ping")))
	s.Clear()
	assert.Equal(t, 0, s.Count())
	assert.Nil(t, s.Get("ep_1"))
}
