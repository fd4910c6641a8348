package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", c.App.Addr)
	assert.Equal(t, DriverMemory, c.Storage.Driver)
	assert.True(t, c.Storage.Seed)
	assert.Equal(t, time.Hour, c.Auth.TokenTTL)
	assert.Empty(t, c.Auth.RefreshFile)
	assert.False(t, c.App.TrustProxy)
	assert.Equal(t, 20, c.RateLimit.Burst)
	assert.False(t, c.AlertsEnabled())
}

func TestLoadFileAndEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `
app:
  addr: ":9090"
storage:
  latency: 250ms
alerts:
  from: stock@example.com
  to: ops@example.com
  smtp_server: smtp.example.com
auth:
  refresh_file: /var/lib/inventory/refresh.json
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))
	t.Setenv("INVENTORY_AUTH_TOKEN_TTL", "30m")
	t.Setenv("SMTP_PORT", "2525")

	c, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", c.App.Addr)
	assert.Equal(t, 250*time.Millisecond, c.Storage.Latency)
	assert.Equal(t, 30*time.Minute, c.Auth.TokenTTL)
	assert.Equal(t, "/var/lib/inventory/refresh.json", c.Auth.RefreshFile)
	assert.Equal(t, "2525", c.Alerts.SMTPPort)
	assert.True(t, c.AlertsEnabled())
}

func TestLoadRejectsPostgresWithoutDSN(t *testing.T) {
	t.Setenv("INVENTORY_STORAGE_DRIVER", "postgres")
	t.Setenv("DATABASE_URL", "")

	_, err := Load("")
	assert.ErrorContains(t, err, "storage.dsn")
}

func TestLoadUsesDatabaseURL(t *testing.T) {
	t.Setenv("INVENTORY_STORAGE_DRIVER", "postgres")
	t.Setenv("DATABASE_URL", "postgres://inventory@localhost/inventory")

	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "postgres://inventory@localhost/inventory", c.Storage.DSN)
}

func TestValidateUnknownDriver(t *testing.T) {
	t.Setenv("INVENTORY_STORAGE_DRIVER", "mongo")

	_, err := Load("")
	assert.ErrorContains(t, err, `unknown storage.driver "mongo"`)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
