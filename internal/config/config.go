package config

import (
	"errors"
	"fmt"
	"os"

	"courierdesk/internal/models"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	App         AppConfig         `yaml:"app"`
	RecordStore RecordStoreConfig `yaml:"record_store"`
	Redis       RedisConfig       `yaml:"redis"`
	Logging     LoggingConfig     `yaml:"logging"`
	Monitoring  MonitoringConfig  `yaml:"monitoring"`
	API         APIConfig         `yaml:"api"`
	Exports     ExportConfig      `yaml:"exports"`
	Dispatch    DispatchConfig    `yaml:"dispatch"`
}

type AppConfig struct {
	Name        string `yaml:"name"`
	Environment string `yaml:"environment"`
	Version     string `yaml:"version"`
}

// RecordStoreConfig points the core at the external record store.
type RecordStoreConfig struct {
	BaseURL                 string `yaml:"base_url"`
	SessionToken            string `yaml:"session_token"`
	TimeoutSeconds          int    `yaml:"timeout_seconds"`
	CompaniesCacheTTLSecond int    `yaml:"companies_cache_ttl_seconds"`
}

type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	PoolSize int    `yaml:"pool_size"`
}

type LoggingConfig struct {
	Level    string `yaml:"level"`
	Format   string `yaml:"format"`
	Output   string `yaml:"output"`
	FilePath string `yaml:"file_path"`
}

type MonitoringConfig struct {
	PrometheusEnabled bool `yaml:"prometheus_enabled"`
	PrometheusPort    int  `yaml:"prometheus_port"`
}

type APIConfig struct {
	Enabled   bool               `yaml:"enabled"`
	HTTP      APIHTTPConfig      `yaml:"http"`
	Auth      APIAuthConfig      `yaml:"auth"`
	RateLimit APIRateLimitConfig `yaml:"rate_limit"`
}

type APIHTTPConfig struct {
	Enabled bool `yaml:"enabled"`
	Port    int  `yaml:"port"`
}

type APIAuthConfig struct {
	Enabled      bool           `yaml:"enabled"`
	HeaderAPIKey string         `yaml:"header_api_key"`
	HeaderExtra  string         `yaml:"header_extra"`
	APIKeys      []APIClientKey `yaml:"api_keys"`
}

type APIClientKey struct {
	Key         string   `yaml:"key"`
	Extra       string   `yaml:"extra"`
	Name        string   `yaml:"name"`
	Permissions []string `yaml:"permissions"`
}

type APIRateLimitConfig struct {
	RPS   float64 `yaml:"rps"`
	Burst int     `yaml:"burst"`
}

type ExportConfig struct {
	Path string `yaml:"path"`
}

// DispatchConfig tunes the booking workflow.
type DispatchConfig struct {
	DefaultMessenger   string `yaml:"default_messenger"`
	SnapshotTTLSeconds int    `yaml:"snapshot_ttl_seconds"`
	RefreshMaxRetries  int    `yaml:"refresh_max_retries"`
}

// Load reads .env, expands environment variables inside the YAML file and
// validates the result.
func Load(configPath string) (*Config, error) {
	// .env is optional outside local development.
	_ = godotenv.Load(".env")

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	expandedData := []byte(os.ExpandEnv(string(data)))

	var config Config
	if err := yaml.Unmarshal(expandedData, &config); err != nil {
		return nil, err
	}

	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

func (c *Config) Validate() error {
	if c.RecordStore.BaseURL == "" {
		return errors.New("record store base_url is required")
	}

	// A missing messenger default would let a blank SUCCESS input through
	// as an empty stored name; reject at startup instead.
	if c.Dispatch.DefaultMessenger == "" {
		return errors.New("dispatch default_messenger is required")
	}

	return nil
}

func (c *Config) applyDefaults() {
	if c.RecordStore.TimeoutSeconds == 0 {
		c.RecordStore.TimeoutSeconds = models.DefaultStoreTimeoutSeconds
	}
	if c.RecordStore.CompaniesCacheTTLSecond == 0 {
		c.RecordStore.CompaniesCacheTTLSecond = models.DefaultCompaniesCacheTTLSeconds
	}
	if c.API.HTTP.Port == 0 {
		c.API.HTTP.Port = 8080
	}
	if c.Monitoring.PrometheusEnabled && c.Monitoring.PrometheusPort == 0 {
		c.Monitoring.PrometheusPort = 9090
	}
	if !c.API.Auth.Enabled {
		c.API.Auth.Enabled = true
	}
	if !c.API.HTTP.Enabled && c.API.Enabled {
		c.API.HTTP.Enabled = true
	}
	if c.API.Auth.HeaderAPIKey == "" {
		c.API.Auth.HeaderAPIKey = "x-api-key"
	}
	if c.API.Auth.HeaderExtra == "" {
		c.API.Auth.HeaderExtra = "x-api-extra"
	}
	if c.Dispatch.SnapshotTTLSeconds == 0 {
		c.Dispatch.SnapshotTTLSeconds = models.DefaultSnapshotTTLSeconds
	}
	if c.Dispatch.RefreshMaxRetries == 0 {
		c.Dispatch.RefreshMaxRetries = 5
	}
	if c.Exports.Path == "" {
		c.Exports.Path = "exports"
	}
}
