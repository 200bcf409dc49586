package authform

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:1337", cfg.ServerEndpoint)
	assert.EqualValues(t, 3000, cfg.Port)
	assert.Equal(t, "./authform.db", cfg.DBPath)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, 100, cfg.QueueLength)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("AUTHFORM_SERVER_ENDPOINT", "https://auth.example.org")
	t.Setenv("AUTHFORM_PORT", "8080")
	t.Setenv("AUTHFORM_REQUEST_TIMEOUT", "3s")
	t.Setenv("AUTHFORM_LOG_FORMAT", "json")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "https://auth.example.org", cfg.ServerEndpoint)
	assert.EqualValues(t, 8080, cfg.Port)
	assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoadConfigInvalid(t *testing.T) {
	t.Setenv("AUTHFORM_PORT", "not-a-port")
	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestConfigValidate(t *testing.T) {
	assert.Error(t, Config{}.Validate())
	assert.Error(t, Config{ServerEndpoint: "http://x", Workers: -1}.Validate())
	assert.Error(t, Config{ServerEndpoint: "http://x", RequestTimeout: -time.Second}.Validate())
	assert.NoError(t, Config{ServerEndpoint: "http://x"}.Validate())
}
