// Package config manages configuration for the bridgectl CLI.
// It uses Viper for unified configuration management from files and
// environment variables, layered on top of the bridge's discovery record.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bridgectl/bridgectl/internal/constants"
	"github.com/bridgectl/bridgectl/internal/discovery"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config is the resolved client configuration. Endpoint, APIKey, and
// KeyHeader default to the discovery record; the config file and BRIDGECTL_*
// environment variables take precedence.
type Config struct {
	Endpoint      string `mapstructure:"endpoint" yaml:"endpoint" validate:"omitempty,url"`
	WebSocketURL  string `mapstructure:"websocket_url" yaml:"websocket_url" validate:"omitempty,url"`
	APIKey        string `mapstructure:"api_key" yaml:"api_key"`
	KeyHeader     string `mapstructure:"key_header" yaml:"key_header"`
	DiscoveryFile string `mapstructure:"discovery_file" yaml:"discovery_file"`
	LogLevel      string `mapstructure:"log_level" yaml:"log_level"`
}

var validate = validator.New()

// Load resolves the configuration: config file and environment variables
// first, discovery record for anything still unset. The discovery file is
// only required when it has to supply the endpoint or API key.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if err := loadConfigFile(v); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	v.SetEnvPrefix("BRIDGECTL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := cfg.applyDiscovery(); err != nil {
		return nil, err
	}

	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// applyDiscovery fills unset fields from the discovery record.
func (c *Config) applyDiscovery() error {
	if c.Endpoint != "" && c.APIKey != "" {
		if c.KeyHeader == "" {
			c.KeyHeader = constants.DefaultKeyHeader
		}
		if c.WebSocketURL == "" {
			c.WebSocketURL = deriveWebSocketURL(c.Endpoint)
		}
		return nil
	}

	rec, err := discovery.Read(c.DiscoveryFile)
	if err != nil {
		return fmt.Errorf("bridge not discovered (is it running?): %w", err)
	}

	if c.Endpoint == "" {
		c.Endpoint = rec.BaseURL()
	}
	if c.APIKey == "" {
		c.APIKey = rec.DefaultAPIKey
	}
	if c.KeyHeader == "" {
		c.KeyHeader = rec.KeyHeader
	}
	if c.WebSocketURL == "" {
		c.WebSocketURL = rec.WebSocketURL()
	}

	return nil
}

// deriveWebSocketURL converts an HTTP endpoint into the /ws stream URL.
func deriveWebSocketURL(endpoint string) string {
	ws := strings.Replace(endpoint, "https://", "wss://", 1)
	ws = strings.Replace(ws, "http://", "ws://", 1)
	return strings.TrimSuffix(ws, "/") + "/ws"
}

// Save saves the configuration to the user's home directory.
// Overwrites the existing config file if it exists.
func Save(config *Config) error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("error getting home directory: %w", err)
	}

	configDir := constants.ConfigDirPath(homeDir)

	if err = os.MkdirAll(configDir, 0o700); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	configFilePath := filepath.Join(configDir, constants.ConfigFileName)

	v := viper.New()
	v.Set("endpoint", config.Endpoint)
	v.Set("api_key", config.APIKey)
	v.Set("key_header", config.KeyHeader)
	if config.DiscoveryFile != "" {
		v.Set("discovery_file", config.DiscoveryFile)
	}

	if err = v.WriteConfigAs(configFilePath); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	if err = os.Chmod(configFilePath, 0o600); err != nil {
		return fmt.Errorf("error setting config file permissions: %w", err)
	}

	return nil
}

// GetConfigPath returns the path to the config file
func GetConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("error getting home directory: %w", err)
	}

	return constants.ConfigFilePath(homeDir), nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "INFO")
}

func loadConfigFile(v *viper.Viper) error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("error getting home directory: %w", err)
	}

	v.SetConfigFile(constants.ConfigFilePath(homeDir))
	v.SetConfigType("yaml")

	return v.ReadInConfig()
}

func bindEnvVars(v *viper.Viper) {
	envVars := []string{
		"API_KEY",
		"DISCOVERY_FILE",
		"ENDPOINT",
		"KEY_HEADER",
		"LOG_LEVEL",
		"WEBSOCKET_URL",
	}

	for _, envVar := range envVars {
		configKey := strings.ToLower(envVar)
		_ = v.BindEnv(configKey, "BRIDGECTL_"+envVar)
	}
}
