package config

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. INFOBOT_HTTP_PORT.
const EnvPrefix = "INFOBOT"

// Session backends.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the resolved runtime configuration.
type Config struct {
	Catalog CatalogConfig `mapstructure:"catalog"`
	HTTP    HTTPConfig    `mapstructure:"http"`
	MCP     MCPConfig     `mapstructure:"mcp"`
	Session SessionConfig `mapstructure:"session"`
	Redis   RedisConfig   `mapstructure:"redis"`
	Log     LogConfig     `mapstructure:"log"`
	Input   InputConfig   `mapstructure:"input"`
}

type CatalogConfig struct {
	Path  string `mapstructure:"path"`
	Table string `mapstructure:"table"`
	Sheet string `mapstructure:"sheet"`
}

type HTTPConfig struct {
	Port int `mapstructure:"port"`
}

type MCPConfig struct {
	Transport string `mapstructure:"transport"`
	Port      int    `mapstructure:"port"`
}

type SessionConfig struct {
	Backend string `mapstructure:"backend"`
	Dir     string `mapstructure:"dir"`

	// EncryptionKey is a hex encoded 32 byte AES key. Empty disables encryption.
	EncryptionKey string `mapstructure:"encryption_key"`

	// Redact masks emails and phone numbers in stored transcripts.
	Redact bool `mapstructure:"redact"`
}

type RedisConfig struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	Prefix   string        `mapstructure:"prefix"`
	TTL      time.Duration `mapstructure:"ttl"`
}

type LogConfig struct {
	Debug bool `mapstructure:"debug"`
	JSON  bool `mapstructure:"json"`
}

type InputConfig struct {
	MaxSize int `mapstructure:"max_size"`
}

// Defaults seeds v with every key so environment overrides resolve
// even when no config file is present.
func Defaults(v *viper.Viper) {
	v.SetDefault("catalog.path", "colleges.csv")
	v.SetDefault("catalog.table", "colleges")
	v.SetDefault("catalog.sheet", "")
	v.SetDefault("http.port", 8080)
	v.SetDefault("mcp.transport", "stdio")
	v.SetDefault("mcp.port", 8081)
	v.SetDefault("session.backend", BackendMemory)
	v.SetDefault("session.dir", ".infobot/sessions")
	v.SetDefault("session.encryption_key", "")
	v.SetDefault("session.redact", false)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.prefix", "infobot:session:")
	v.SetDefault("redis.ttl", 24*time.Hour)
	v.SetDefault("log.debug", false)
	v.SetDefault("log.json", false)
	v.SetDefault("input.max_size", 4096)
}

// New returns a viper instance reading infobot.yaml from the working
// directory or ./configs, with INFOBOT_* environment overrides.
// A .env file in the working directory is loaded first when present.
func New() *viper.Viper {
	loadEnvFile(".env")

	v := viper.New()
	v.SetConfigName("infobot")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	Defaults(v)
	return v
}

// Load reads the config file when one exists and decodes v.
// A missing file is not an error; a malformed one is.
func Load(v *viper.Viper) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}
	return Decode(v)
}

// LoadFile reads configuration from an explicit path.
func LoadFile(v *viper.Viper, path string) (*Config, error) {
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	return Decode(v)
}

// Decode unmarshals and validates the current state of v.
func Decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.Session.Backend = strings.ToLower(strings.TrimSpace(cfg.Session.Backend))
	cfg.MCP.Transport = strings.ToLower(strings.TrimSpace(cfg.MCP.Transport))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the fields that would otherwise fail late at startup.
func (c *Config) Validate() error {
	switch c.Session.Backend {
	case BackendMemory, BackendFile, BackendRedis:
	default:
		return fmt.Errorf("%w: session.backend must be memory, file or redis, got %q", ErrInvalidConfig, c.Session.Backend)
	}
	if c.Session.Backend == BackendRedis && c.Redis.Addr == "" {
		return fmt.Errorf("%w: redis.addr is required for the redis backend", ErrInvalidConfig)
	}
	if c.Session.Backend == BackendFile && c.Session.Dir == "" {
		return fmt.Errorf("%w: session.dir is required for the file backend", ErrInvalidConfig)
	}
	if c.Session.EncryptionKey != "" {
		if _, err := c.Session.Key(); err != nil {
			return err
		}
	}

	switch c.MCP.Transport {
	case "stdio", "sse":
	default:
		return fmt.Errorf("%w: mcp.transport must be stdio or sse, got %q", ErrInvalidConfig, c.MCP.Transport)
	}
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("%w: http.port out of range: %d", ErrInvalidConfig, c.HTTP.Port)
	}
	if c.MCP.Port <= 0 || c.MCP.Port > 65535 {
		return fmt.Errorf("%w: mcp.port out of range: %d", ErrInvalidConfig, c.MCP.Port)
	}
	if c.Input.MaxSize < 0 {
		return fmt.Errorf("%w: input.max_size must not be negative", ErrInvalidConfig)
	}
	return nil
}

// Key decodes the session encryption key. It returns nil when encryption is off.
func (s SessionConfig) Key() ([]byte, error) {
	if s.EncryptionKey == "" {
		return nil, nil
	}
	key, err := hex.DecodeString(s.EncryptionKey)
	if err != nil {
		return nil, fmt.Errorf("%w: session.encryption_key is not hex: %v", ErrInvalidConfig, err)
	}
	if len(key) != 32 {
		return nil, fmt.Errorf("%w: session.encryption_key must decode to 32 bytes, got %d", ErrInvalidConfig, len(key))
	}
	return key, nil
}

func loadEnvFile(path string) {
	if _, err := os.Stat(path); err != nil {
		return
	}
	// Existing environment variables win over the file.
	_ = godotenv.Load(path)
}
