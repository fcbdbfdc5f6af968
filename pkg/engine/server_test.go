package engine

import (
	"context"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServerServesUnderMockPrefix(t *testing.T) {
	h := newTestHandler(t, pingEndpoint())
	srv := NewServer("127.0.0.1:0", h)
	require.NoError(t, srv.Start())
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}()

	resp, err := http.Get("http://" + srv.Addr() + "/mock/ping")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "pong", string(body))

	// Outside the prefix nothing is served.
	resp2, err := http.Get("http://" + srv.Addr() + "/ping")
	require.NoError(t, err)
	resp2.Body.Close()
	assert.Equal(t, 404, resp2.StatusCode)
}

func TestServerStartTwiceFails(t *testing.T) {
	h := newTestHandler(t, pingEndpoint())
	srv := NewServer("127.0.0.1:0", h)
	require.NoError(t, srv.Start())
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}()

	assert.Error(t, srv.Start())
}
