package match

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/they4kman/broadside/transport"
)

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "peer.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
role: client
map: maps/client.txt
host: example.org
transport: ws
readTimeout: 5s
strategy: hunt
`), 0666))

	config := NewConfig()
	require.NoError(t, LoadConfigFile(path, &config))

	assert.Equal(t, Client, config.Role)
	assert.Equal(t, "maps/client.txt", config.MapPath)
	assert.Equal(t, transport.WebSocket, config.Transport)
	assert.Equal(t, 5*time.Second, config.ReadTimeout)
	assert.Equal(t, "hunt", config.Strategy)
	assert.Equal(t, 9999, config.Port)
	assert.Equal(t, "example.org:9999", config.Address())
	assert.NoError(t, config.Validate())
}

func TestLoadConfigFileRejectsUnknownRole(t *testing.T) {
	path := filepath.Join(t.TempDir(), "peer.yaml")
	require.NoError(t, os.WriteFile(path, []byte("role: observer\n"), 0666))

	config := NewConfig()
	assert.Error(t, LoadConfigFile(path, &config))
}

func TestValidate(t *testing.T) {
	config := NewConfig()
	assert.Error(t, config.Validate())

	config.Role = Server
	assert.Error(t, config.Validate())

	config.MapPath = "map.txt"
	assert.NoError(t, config.Validate())
	assert.Equal(t, ":9999", config.Address())

	config.Port = 70000
	assert.Error(t, config.Validate())
}

func TestParseRole(t *testing.T) {
	role, err := ParseRole("server")
	require.NoError(t, err)
	assert.Equal(t, Server, role)
	assert.Equal(t, "client", Client.String())

	_, err = ParseRole("peer")
	assert.Error(t, err)
}
