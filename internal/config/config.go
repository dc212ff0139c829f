package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Config holds the application configuration
type Config struct {
	DataDir   string `mapstructure:"data_dir"`
	DBFile    string `mapstructure:"db_file"`
	LogLevel  string `mapstructure:"log_level"`  // debug, info, warn, error
	LogFormat string `mapstructure:"log_format"` // text, json
	NodeID    int64  `mapstructure:"node_id"`
	SeedJobs  bool   `mapstructure:"seed_jobs"`
}

// DBPath returns the full path of the database file
func (c *Config) DBPath() string {
	return filepath.Join(c.DataDir, c.DBFile)
}

// Keys that may be changed with Set
var Keys = []string{"data_dir", "db_file", "log_level", "log_format", "node_id", "seed_jobs"}

// MaxNodeID is the largest snowflake node id
const MaxNodeID = 1023

// ErrInvalidValue is returned by Set for values the app could not start with
var ErrInvalidValue = errors.New("invalid configuration value")

var (
	AppConfig *Config
	v         *viper.Viper
)

// Initialize loads or creates the configuration file in ~/.sonar
func Initialize() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}

	cfg, err := Load(filepath.Join(homeDir, ".sonar", "config.yaml"))
	if err != nil {
		return err
	}
	AppConfig = cfg
	return nil
}

// Load reads the configuration at path, creating it with defaults if missing.
// SONAR_* environment variables override file values.
func Load(configFile string) (*Config, error) {
	configDir := filepath.Dir(configFile)

	// Create config directory if it doesn't exist
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	// Create default config if it doesn't exist
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		if err := createDefaultConfig(configFile); err != nil {
			return nil, err
		}
	}

	v = viper.New()
	v.SetConfigFile(configFile)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("SONAR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set defaults
	v.SetDefault("data_dir", configDir)
	v.SetDefault("db_file", "sonar.db")
	v.SetDefault("log_level", "warn")
	v.SetDefault("log_format", "text")
	v.SetDefault("node_id", 1)
	v.SetDefault("seed_jobs", true)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if cfg.DataDir == "" {
		cfg.DataDir = configDir
	}

	return cfg, nil
}

// createDefaultConfig creates a default config file
func createDefaultConfig(path string) error {
	defaultConfig := `# Sonar Configuration
# Directory and file name of the local record store
# data_dir: defaults to the directory of this file
db_file: sonar.db

# Logging: debug, info, warn, error / text, json
log_level: warn
log_format: text

# Snowflake node used for record identifiers (0-1023)
node_id: 1

# Include the built-in job postings in listings
seed_jobs: true
`
	return os.WriteFile(path, []byte(defaultConfig), 0600)
}

// Set validates and updates a configuration value. Nothing is written when
// the value is rejected.
func Set(key, value string) error {
	if v == nil {
		return fmt.Errorf("config not initialized")
	}
	parsed, err := parseValue(key, value)
	if err != nil {
		return err
	}
	v.Set(key, parsed)
	return v.WriteConfig()
}

func parseValue(key, value string) (any, error) {
	value = strings.TrimSpace(value)
	switch key {
	case "data_dir", "db_file":
		if value == "" {
			return nil, fmt.Errorf("%w: %s must not be empty", ErrInvalidValue, key)
		}
		return value, nil
	case "log_level":
		switch strings.ToLower(value) {
		case "debug", "info", "warn", "error":
			return strings.ToLower(value), nil
		}
		return nil, fmt.Errorf("%w: log_level must be debug, info, warn or error", ErrInvalidValue)
	case "log_format":
		switch strings.ToLower(value) {
		case "text", "json":
			return strings.ToLower(value), nil
		}
		return nil, fmt.Errorf("%w: log_format must be text or json", ErrInvalidValue)
	case "node_id":
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil || n < 0 || n > MaxNodeID {
			return nil, fmt.Errorf("%w: node_id must be an integer between 0 and %d", ErrInvalidValue, MaxNodeID)
		}
		return n, nil
	case "seed_jobs":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return nil, fmt.Errorf("%w: seed_jobs must be true or false", ErrInvalidValue)
		}
		return b, nil
	default:
		return nil, fmt.Errorf("%w: unknown key %q", ErrInvalidValue, key)
	}
}

// Get retrieves a configuration value
func Get(key string) string {
	if v == nil {
		return ""
	}
	return v.GetString(key)
}

// GetConfigPath returns the path to the config file
func GetConfigPath() string {
	if v != nil && v.ConfigFileUsed() != "" {
		return v.ConfigFileUsed()
	}
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".sonar", "config.yaml")
}
