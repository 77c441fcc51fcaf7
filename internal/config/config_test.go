package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Well-known hardhat development key, never holds funds.
const testPrivateKey = "0x59c6995e998f97a5a0044966f0945389dc9e86dae88c7a8412f4603b6b78690d"

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	configFile := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte(content), 0600))
	return configFile
}

func TestLoadAPIConfig(t *testing.T) {
	tests := []struct {
		name        string
		configFile  string
		expectError bool
		validate    func(*testing.T, *APIConfig)
	}{
		{
			name: "valid config file",
			configFile: `
debug: true
sentry_dsn: "https://sentry.example.com"
server:
  host: 127.0.0.1
  port: 9090
database:
  host: localhost
  port: 5432
  user: testuser
  password: testpass
  dbname: testdb
  sslmode: require
nats:
  url: "nats://localhost:4222"
  stream_name: "TEST_STREAM"
  max_reconnects: 5
  reconnect_wait: "5s"
chain:
  rpc_url: "http://localhost:8545"
  chain_id: 60138453033
  soul_contract: "0x1000000000000000000000000000000000000001"
  graffiti_contract: "0x2000000000000000000000000000000000000002"
explorer:
  base_url: "https://explorer.example"
  timeout: "15s"
arkiv:
  rpc_url: "https://arkiv.example/rpc"
wall_limit: 1000
`,
			expectError: false,
			validate: func(t *testing.T, cfg *APIConfig) {
				assert.True(t, cfg.Debug)
				assert.Equal(t, "https://sentry.example.com", cfg.SentryDSN)
				assert.Equal(t, "127.0.0.1", cfg.Server.Host)
				assert.Equal(t, 9090, cfg.Server.Port)
				assert.Equal(t, "require", cfg.Database.SSLMode)
				assert.Equal(t, "TEST_STREAM", cfg.NATS.StreamName)
				assert.Equal(t, 5, cfg.NATS.MaxReconnects)
				assert.Equal(t, 5*time.Second, cfg.NATS.ReconnectWait)
				assert.Equal(t, int64(60138453033), cfg.Chain.ChainID)
				assert.Equal(t, 15*time.Second, cfg.Explorer.Timeout)
				assert.Equal(t, 1000, cfg.WallLimit)
			},
		},
		{
			name: "config with defaults",
			configFile: `
database:
  host: localhost
  user: testuser
  password: testpass
  dbname: testdb
nats:
  url: "nats://localhost:4222"
chain:
  rpc_url: "http://localhost:8545"
  chain_id: 60138453033
  soul_contract: "0x1000000000000000000000000000000000000001"
`,
			expectError: false,
			validate: func(t *testing.T, cfg *APIConfig) {
				// Check defaults
				assert.Equal(t, "0.0.0.0", cfg.Server.Host)
				assert.Equal(t, 8080, cfg.Server.Port)
				assert.Equal(t, 5432, cfg.Database.Port)
				assert.Equal(t, "disable", cfg.Database.SSLMode)
				assert.Equal(t, 10, cfg.NATS.MaxReconnects)
				assert.Equal(t, "SPIRIT_EVENTS", cfg.NATS.StreamName)
				assert.Equal(t, 30*time.Second, cfg.Explorer.Timeout)
				assert.Equal(t, 500, cfg.WallLimit)
			},
		},
		{
			name: "missing rpc url",
			configFile: `
chain:
  chain_id: 60138453033
  soul_contract: "0x1000000000000000000000000000000000000001"
`,
			expectError: true,
		},
		{
			name: "missing soul contract",
			configFile: `
chain:
  rpc_url: "http://localhost:8545"
  chain_id: 60138453033
`,
			expectError: true,
		},
		{
			name: "malformed private key",
			configFile: `
chain:
  rpc_url: "http://localhost:8545"
  chain_id: 60138453033
  soul_contract: "0x1000000000000000000000000000000000000001"
  private_key: "not-a-key"
`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configFile := writeConfig(t, tt.configFile)

			cfg, err := LoadAPIConfig(configFile, t.TempDir())

			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, cfg)
			} else {
				require.NoError(t, err)
				require.NotNil(t, cfg)
				if tt.validate != nil {
					tt.validate(t, cfg)
				}
			}
		})
	}
}

func TestLoadGraffitiSyncConfig_RequiresGraffitiContract(t *testing.T) {
	configFile := writeConfig(t, `
chain:
  rpc_url: "http://localhost:8545"
  chain_id: 60138453033
  soul_contract: "0x1000000000000000000000000000000000000001"
`)

	cfg, err := LoadGraffitiSyncConfig(configFile, t.TempDir())

	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "graffiti_contract")
}

func TestLoadEvolutionRunnerConfig_RequiresPrivateKey(t *testing.T) {
	configFile := writeConfig(t, `
chain:
  rpc_url: "http://localhost:8545"
  chain_id: 60138453033
  soul_contract: "0x1000000000000000000000000000000000000001"
`)

	cfg, err := LoadEvolutionRunnerConfig(configFile, t.TempDir())

	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "private_key")
}

func TestChainConfigSigningKey(t *testing.T) {
	c := ChainConfig{PrivateKey: testPrivateKey}
	key, err := c.SigningKey()
	assert.NoError(t, err)
	assert.NotNil(t, key)

	// Without the 0x prefix the key still parses.
	c.PrivateKey = testPrivateKey[2:]
	key, err = c.SigningKey()
	assert.NoError(t, err)
	assert.NotNil(t, key)

	// No key means a read-only client, not an error.
	c.PrivateKey = ""
	key, err = c.SigningKey()
	assert.NoError(t, err)
	assert.Nil(t, key)

	c.PrivateKey = "0x1234"
	_, err = c.SigningKey()
	assert.Error(t, err)
}

func TestDatabaseConfigDSN(t *testing.T) {
	c := DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "spirit",
		Password: "secret",
		DBName:   "soulscape",
		SSLMode:  "disable",
	}

	dsn := c.DSN()
	assert.Contains(t, dsn, "host=localhost")
	assert.Contains(t, dsn, "port=5432")
	assert.Contains(t, dsn, "dbname=soulscape")
	assert.Contains(t, dsn, "sslmode=disable")
}
