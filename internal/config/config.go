// Package config loads per-binary configuration from config files and
// environment variables.
package config

import (
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// privateKeyPattern matches a 32-byte hex key, with or without 0x prefix.
var privateKeyPattern = regexp.MustCompile(`^(0x)?[0-9a-fA-F]{64}$`)

// BaseConfig holds base configuration
type BaseConfig struct {
	Debug     bool   `mapstructure:"debug"`
	SentryDSN string `mapstructure:"sentry_dsn"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
}

// NATSConfig holds NATS JetStream configuration
type NATSConfig struct {
	URL            string        `mapstructure:"url"`
	StreamName     string        `mapstructure:"stream_name"`
	MaxReconnects  int           `mapstructure:"max_reconnects"`
	ReconnectWait  time.Duration `mapstructure:"reconnect_wait"`
	ConnectionName string        `mapstructure:"connection_name"`
}

// ChainConfig holds the spirit chain connection and contract configuration
type ChainConfig struct {
	RPCURL           string `mapstructure:"rpc_url"`
	ChainID          int64  `mapstructure:"chain_id"`
	SoulContract     string `mapstructure:"soul_contract"`
	GraffitiContract string `mapstructure:"graffiti_contract"`
	PrivateKey       string `mapstructure:"private_key"` // hex, evolution signer
}

// ChainIDBig returns the chain id as a big integer
func (c *ChainConfig) ChainIDBig() *big.Int {
	return big.NewInt(c.ChainID)
}

// SigningKey parses the configured private key. Returns nil without error
// when no key is configured, for read-only deployments.
func (c *ChainConfig) SigningKey() (*ecdsa.PrivateKey, error) {
	if c.PrivateKey == "" {
		return nil, nil
	}
	if !privateKeyPattern.MatchString(c.PrivateKey) {
		return nil, errors.New("chain.private_key must be a 32-byte hex string")
	}

	key, err := ethcrypto.HexToECDSA(strings.TrimPrefix(c.PrivateKey, "0x"))
	if err != nil {
		return nil, fmt.Errorf("invalid chain.private_key: %w", err)
	}

	return key, nil
}

// ExplorerConfig holds the block explorer API configuration
type ExplorerConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// ArkivConfig holds the entity store configuration
type ArkivConfig struct {
	RPCURL  string        `mapstructure:"rpc_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	ReadTimeout  int    `mapstructure:"read_timeout"`  // in seconds
	WriteTimeout int    `mapstructure:"write_timeout"` // in seconds
	IdleTimeout  int    `mapstructure:"idle_timeout"`  // in seconds
}

// APIConfig holds configuration for the API server
type APIConfig struct {
	BaseConfig `mapstructure:",squash"`
	Server     ServerConfig   `mapstructure:"server"`
	Database   DatabaseConfig `mapstructure:"database"`
	NATS       NATSConfig     `mapstructure:"nats"`
	Chain      ChainConfig    `mapstructure:"chain"`
	Explorer   ExplorerConfig `mapstructure:"explorer"`
	Arkiv      ArkivConfig    `mapstructure:"arkiv"`
	WallLimit  int            `mapstructure:"wall_limit"`
}

// GraffitiSyncConfig holds configuration for the graffiti syncer
type GraffitiSyncConfig struct {
	BaseConfig   `mapstructure:",squash"`
	Database     DatabaseConfig `mapstructure:"database"`
	NATS         NATSConfig     `mapstructure:"nats"`
	Chain        ChainConfig    `mapstructure:"chain"`
	Arkiv        ArkivConfig    `mapstructure:"arkiv"`
	SyncInterval time.Duration  `mapstructure:"sync_interval"` // 0 runs a single pass
}

// EvolutionRunnerConfig holds configuration for the batch evolution runner
type EvolutionRunnerConfig struct {
	BaseConfig    `mapstructure:",squash"`
	Database      DatabaseConfig `mapstructure:"database"`
	NATS          NATSConfig     `mapstructure:"nats"`
	Chain         ChainConfig    `mapstructure:"chain"`
	Explorer      ExplorerConfig `mapstructure:"explorer"`
	Arkiv         ArkivConfig    `mapstructure:"arkiv"`
	TargetAddress string         `mapstructure:"target_address"` // empty evolves all owners
}

// LoadAPIConfig loads configuration for the API server
func LoadAPIConfig(configFile string, envPath string) (*APIConfig, error) {
	v := configureViper("api", configFile, envPath)

	// Set defaults
	v.SetDefault("debug", false)
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 30)
	v.SetDefault("server.idle_timeout", 120)
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("nats.max_reconnects", 10)
	v.SetDefault("nats.reconnect_wait", "2s")
	v.SetDefault("nats.stream_name", "SPIRIT_EVENTS")
	v.SetDefault("nats.connection_name", "api")
	v.SetDefault("explorer.timeout", "30s")
	v.SetDefault("arkiv.timeout", "30s")
	v.SetDefault("wall_limit", 500)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config APIConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateChain(&config.Chain); err != nil {
		return nil, err
	}

	return &config, nil
}

// LoadGraffitiSyncConfig loads configuration for the graffiti syncer
func LoadGraffitiSyncConfig(configFile string, envPath string) (*GraffitiSyncConfig, error) {
	v := configureViper("graffiti-sync", configFile, envPath)

	// Set defaults
	v.SetDefault("debug", false)
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("nats.max_reconnects", 10)
	v.SetDefault("nats.reconnect_wait", "2s")
	v.SetDefault("nats.stream_name", "SPIRIT_EVENTS")
	v.SetDefault("nats.connection_name", "graffiti-sync")
	v.SetDefault("arkiv.timeout", "30s")
	v.SetDefault("sync_interval", "0s")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config GraffitiSyncConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateChain(&config.Chain); err != nil {
		return nil, err
	}
	if config.Chain.GraffitiContract == "" {
		return nil, errors.New("chain.graffiti_contract is required")
	}

	return &config, nil
}

// LoadEvolutionRunnerConfig loads configuration for the batch evolution runner
func LoadEvolutionRunnerConfig(configFile string, envPath string) (*EvolutionRunnerConfig, error) {
	v := configureViper("evolution-runner", configFile, envPath)

	// Set defaults
	v.SetDefault("debug", false)
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("nats.max_reconnects", 10)
	v.SetDefault("nats.reconnect_wait", "2s")
	v.SetDefault("nats.stream_name", "SPIRIT_EVENTS")
	v.SetDefault("nats.connection_name", "evolution-runner")
	v.SetDefault("explorer.timeout", "30s")
	v.SetDefault("arkiv.timeout", "30s")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config EvolutionRunnerConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateChain(&config.Chain); err != nil {
		return nil, err
	}
	if config.Chain.PrivateKey == "" {
		return nil, errors.New("chain.private_key is required for evolution writes")
	}

	return &config, nil
}

// validateChain checks the fields every binary needs.
func validateChain(c *ChainConfig) error {
	if c.RPCURL == "" {
		return errors.New("chain.rpc_url is required")
	}
	if c.ChainID == 0 {
		return errors.New("chain.chain_id is required")
	}
	if c.SoulContract == "" {
		return errors.New("chain.soul_contract is required")
	}
	if _, err := c.SigningKey(); err != nil {
		return err
	}

	return nil
}

// configureViper returns a viper instance with the config file and environment variables set
func configureViper(service string, configFile string, envPath string) *viper.Viper {
	v := viper.New()

	// Load environment variables
	loadEnv(envPath, service)

	// Set config file
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		// Search for config.yaml in multiple locations:
		// 1. Current directory
		v.AddConfigPath(".")
		// 2. Service-specific directory (e.g., cmd/api/, cmd/graffiti-sync/)
		v.AddConfigPath(fmt.Sprintf("cmd/%s/", service))
		// 3. Config directory
		v.AddConfigPath("config/")
	}

	// Set environment variables
	v.SetEnvPrefix("SOULSCAPE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Explicitly bind all environment variables
	bindAllEnvVars(v)
	return v
}

// bindAllEnvVars explicitly binds all possible environment variables
// This is required for viper to map env vars to config struct fields when no config file exists
func bindAllEnvVars(v *viper.Viper) {
	commonKeys := []string{
		"debug",
		"sentry_dsn",
		// Database
		"database.host",
		"database.port",
		"database.user",
		"database.password",
		"database.dbname",
		"database.sslmode",
		"database.max_open_conns",
		"database.max_idle_conns",
		"database.conn_max_lifetime",
		"database.conn_max_idle_time",
		// NATS
		"nats.url",
		"nats.stream_name",
		"nats.max_reconnects",
		"nats.reconnect_wait",
		"nats.connection_name",
		// Chain
		"chain.rpc_url",
		"chain.chain_id",
		"chain.soul_contract",
		"chain.graffiti_contract",
		"chain.private_key",
		// Explorer
		"explorer.base_url",
		"explorer.timeout",
		// Arkiv
		"arkiv.rpc_url",
		"arkiv.timeout",
		// Server
		"server.host",
		"server.port",
		"server.read_timeout",
		"server.write_timeout",
		"server.idle_timeout",
		// Service specific
		"wall_limit",
		"sync_interval",
		"target_address",
	}

	for _, key := range commonKeys {
		_ = v.BindEnv(key)
	}
}

// loadEnv loads environment variables from the config directory
func loadEnv(envPath string, service string) {
	// Always try shared base first, then local, then optional per-service local.
	envFiles := []string{".env", ".env.local"}
	if service != "" {
		envFiles = append(envFiles, ".env."+service+".local")
	}

	// Default to config directory
	if envPath == "" {
		envPath = "config/"
	}

	for _, envFile := range envFiles {
		candidate := filepath.Join(envPath, envFile)
		_ = godotenv.Overload(candidate) // Overload lets later files override earlier ones
	}
}

// ChdirRepoRoot changes the current working directory to the repository root
func ChdirRepoRoot() {
	cwd, _ := os.Getwd()
	for range 5 {
		if _, err := os.Stat(filepath.Join(cwd, "config")); err == nil {
			_ = os.Chdir(cwd)
			return
		}
		cwd = filepath.Dir(cwd)
	}
}

// DSN returns the database connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}
