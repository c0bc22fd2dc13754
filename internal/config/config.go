package config

import (
	"encoding/json"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"

	"itemd/internal/hostname"
	"itemd/internal/logging"
	"itemd/internal/store"
)

// Config represents the complete itemd configuration
type Config struct {
	Server  ServerConfig  `json:"server" mapstructure:"server"`
	Store   StoreConfig   `json:"store" mapstructure:"store"`
	Logging LoggingConfig `json:"logging" mapstructure:"logging"`
}

// ServerConfig contains HTTP listener configuration
type ServerConfig struct {
	Host string `json:"host" mapstructure:"host"`
	Port int    `json:"port" mapstructure:"port"`
}

// StoreConfig contains item store configuration
type StoreConfig struct {
	Capacity int    `json:"capacity" mapstructure:"capacity"`
	SeedFile string `json:"seedFile" mapstructure:"seedFile"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Format string `json:"format" mapstructure:"format"`
	Level  string `json:"level" mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8000,
		},
		Store: StoreConfig{
			Capacity: store.DefaultCapacity,
			SeedFile: "",
		},
		Logging: LoggingConfig{
			Format: "human",
			Level:  "info",
		},
	}
}

// LoadConfig loads configuration from .itemd/config.json
func LoadConfig(root string) (*Config, error) {
	v := viper.New()

	// Defaults back every key so a partial config file still yields a
	// complete Config.
	def := DefaultConfig()
	v.SetDefault("server.host", def.Server.Host)
	v.SetDefault("server.port", def.Server.Port)
	v.SetDefault("store.capacity", def.Store.Capacity)
	v.SetDefault("store.seedFile", def.Store.SeedFile)
	v.SetDefault("logging.format", def.Logging.Format)
	v.SetDefault("logging.level", def.Logging.Level)

	// Environment overrides, e.g. ITEMD_SERVER_PORT=9000. Registering a
	// default for every key above is what lets AutomaticEnv feed
	// Unmarshal.
	v.SetEnvPrefix("ITEMD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Configure viper
	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(filepath.Join(root, ".itemd"))

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine, defaults and environment
		// overrides still apply.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	// Unmarshal into config struct
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes the configuration to .itemd/config.json
func (c *Config) Save(root string) error {
	configPath := filepath.Join(root, ".itemd", "config.json")

	// Marshal to JSON with indentation
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	// Write to file
	return os.WriteFile(configPath, data, 0644)
}

// Addr returns the host:port pair the server should listen on.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return &ConfigError{Field: "server.port", Message: "must be between 1 and 65535"}
	}

	// The host may be an IP address or a hostname.
	if net.ParseIP(c.Server.Host) == nil {
		if err := hostname.Validate(c.Server.Host); err != nil {
			return &ConfigError{Field: "server.host", Message: err.Error()}
		}
	}

	if c.Store.Capacity < 1 {
		return &ConfigError{Field: "store.capacity", Message: "must be at least 1"}
	}

	if _, err := logging.ParseFormat(c.Logging.Format); err != nil {
		return &ConfigError{Field: "logging.format", Message: err.Error()}
	}
	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		return &ConfigError{Field: "logging.level", Message: err.Error()}
	}

	return nil
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error in field '" + e.Field + "': " + e.Message
}
