package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getmockd/reflectd/pkg/endpoint"
)

const yamlConfig = `
settings:
  listen: ":8080"
  maxDelaySeconds: 2
endpoints:
  - method: get
    path: ping
    responses:
      - content: pong
  - method: GET
    path: /orders/{id}
    responses:
      - statusCode: 200
        content: '{"id": "{{request.params.id}}"}'
        rules:
          - operator: EQUAL
            arguments: ["{{request.query.env}}", "prod"]
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFromFileYAML(t *testing.T) {
	f, err := LoadFromFile(writeFile(t, "config.yaml", yamlConfig))
	require.NoError(t, err)

	// Explicit settings override defaults, the rest stay.
	assert.Equal(t, ":8080", f.Settings.Listen)
	assert.Equal(t, float64(2), f.Settings.MaxDelaySeconds)
	assert.Equal(t, ":4001", f.Settings.AdminListen)
	assert.Equal(t, "info", f.Settings.LogLevel)

	require.Len(t, f.Endpoints, 2)

	// Endpoints come back normalized with IDs assigned.
	ep := f.Endpoints[0]
	assert.Equal(t, endpoint.MethodGet, ep.Method)
	assert.Equal(t, "/ping", ep.Path)
	assert.NotEmpty(t, ep.ID)
	require.Len(t, ep.Responses, 1)
	assert.Equal(t, 200, ep.Responses[0].StatusCode)
	assert.NotEmpty(t, ep.Responses[0].ID)
}

func TestLoadFromFileJSON(t *testing.T) {
	jsonConfig := `{
		"endpoints": [
			{"method": "POST", "path": "/orders", "responses": [{"statusCode": 201, "content": "created"}]}
		]
	}`
	f, err := LoadFromFile(writeFile(t, "config.json", jsonConfig))
	require.NoError(t, err)
	require.Len(t, f.Endpoints, 1)
	assert.Equal(t, endpoint.MethodPost, f.Endpoints[0].Method)
	assert.Equal(t, ":4000", f.Settings.Listen)
}

func TestLoadFromFileMissing(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestLoadFromFileEmpty(t *testing.T) {
	_, err := LoadFromFile(writeFile(t, "empty.yaml", ""))
	assert.ErrorIs(t, err, ErrEmptyFile)
}

func TestLoadFromFileBadSyntax(t *testing.T) {
	_, err := LoadFromFile(writeFile(t, "bad.yaml", "settings: ["))
	assert.ErrorIs(t, err, ErrInvalidYAML)

	_, err = LoadFromFile(writeFile(t, "bad.json", "{"))
	assert.ErrorIs(t, err, ErrInvalidJSON)
}

func TestLoadFromFileInvalidEndpoint(t *testing.T) {
	bad := `
endpoints:
  - method: BREW
    path: /coffee
`
	_, err := LoadFromFile(writeFile(t, "bad-endpoint.yaml", bad))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "endpoint 0")
}

func TestSettingsDurations(t *testing.T) {
	s := Settings{MaxDelaySeconds: 1.5, SessionTTLMinutes: 2}
	assert.Equal(t, 1500*time.Millisecond, s.MaxDelay())
	assert.Equal(t, 2*time.Minute, s.SessionTTL())
}
