package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServeCmd_HasAddrFlag(t *testing.T) {
	flag := serveCmd.Flags().Lookup("addr")
	require.NotNil(t, flag)
	assert.Equal(t, "", flag.DefValue)
}

func TestServeCmd_Long(t *testing.T) {
	for _, route := range []string{"POST /chat", "POST /upload", "GET  /chunking-stats", "GET  /verify_system_prompt"} {
		assert.Contains(t, serveCmd.Long, route)
	}
}

func TestServeCmd_RequiresSettings(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()
	appSettings = nil

	_, err := execute(t, "serve")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "settings not loaded")
}

func TestMCPServeCmd_HasPortFlag(t *testing.T) {
	flag := mcpServeCmd.Flags().Lookup("port")
	require.NotNil(t, flag)
	assert.Equal(t, "p", flag.Shorthand)
	assert.Equal(t, "0", flag.DefValue)
}

func TestMCPServeCmd_RequiresChatService(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()
	chatService = nil

	_, err := execute(t, "mcp", "serve")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "validating ports")
}
