package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

// ConfigDir is the directory under the user's home holding vocab's files.
const ConfigDir = ".config/vocab"

// Config represents the vocab configuration
type Config struct {
	DBPath           string `yaml:"db_path,omitempty"`
	CatalogURL       string `yaml:"catalog_url,omitempty"`
	CatalogFile      string `yaml:"catalog_file,omitempty"`
	WordsPerDay      int    `yaml:"words_per_day"`
	RefreshSchedule  string `yaml:"refresh_schedule"`
	PlatformSafeWipe bool   `yaml:"platform_safe_wipe"`
	LogSQL           bool   `yaml:"log_sql"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		WordsPerDay:     5,
		RefreshSchedule: "5 0 * * *",
	}
}

// ConfigManager manages configuration persistence
type ConfigManager struct {
	configPath string
}

// NewConfigManager creates a new configuration manager
func NewConfigManager() (*ConfigManager, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get user home directory: %w", err)
	}

	return &ConfigManager{
		configPath: filepath.Join(homeDir, ConfigDir, "config.yaml"),
	}, nil
}

// NewConfigManagerWithPath creates a config manager with custom config path
func NewConfigManagerWithPath(configPath string) *ConfigManager {
	return &ConfigManager{
		configPath: configPath,
	}
}

// Load reads the configuration from file, or returns default if file doesn't exist
func (cm *ConfigManager) Load() (*Config, error) {
	if _, err := os.Stat(cm.configPath); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(cm.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Start from defaults so keys missing from the file keep their default.
	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cm.validate(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// Save writes the configuration to file
func (cm *ConfigManager) Save(config *Config) error {
	if err := cm.validate(config); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	configDir := filepath.Dir(cm.configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(cm.configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// validate checks field ranges and the refresh schedule syntax
func (cm *ConfigManager) validate(config *Config) error {
	if config.WordsPerDay <= 0 {
		return fmt.Errorf("words_per_day must be greater than 0")
	}

	if config.WordsPerDay > 100 {
		return fmt.Errorf("words_per_day cannot exceed 100")
	}

	if _, err := cron.ParseStandard(config.RefreshSchedule); err != nil {
		return fmt.Errorf("refresh_schedule: %w", err)
	}

	if config.CatalogURL != "" && config.CatalogFile != "" {
		return fmt.Errorf("catalog_url and catalog_file are mutually exclusive")
	}

	return nil
}

// GetConfigPath returns the path to the config file
func (cm *ConfigManager) GetConfigPath() string {
	return cm.configPath
}

// Keys returns the configuration keys accepted by Get and Update
func Keys() []string {
	keys := []string{
		"db-path", "catalog-url", "catalog-file", "words-per-day",
		"refresh-schedule", "platform-safe-wipe", "log-sql",
	}
	sort.Strings(keys)
	return keys
}

// Update modifies a specific configuration value
func (cm *ConfigManager) Update(key, value string) error {
	config, err := cm.Load()
	if err != nil {
		return err
	}

	switch key {
	case "db-path":
		config.DBPath = value
	case "catalog-url":
		config.CatalogURL = value
	case "catalog-file":
		config.CatalogFile = value
	case "words-per-day":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer value for words-per-day: %s", value)
		}
		config.WordsPerDay = n
	case "refresh-schedule":
		config.RefreshSchedule = value
	case "platform-safe-wipe":
		b, err := parseBool(key, value)
		if err != nil {
			return err
		}
		config.PlatformSafeWipe = b
	case "log-sql":
		b, err := parseBool(key, value)
		if err != nil {
			return err
		}
		config.LogSQL = b
	default:
		return fmt.Errorf("unknown configuration key: %s", key)
	}

	return cm.Save(config)
}

func parseBool(key, value string) (bool, error) {
	switch value {
	case "true":
		return true, nil
	case "false":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean value for %s: %s (must be 'true' or 'false')", key, value)
	}
}

// Get returns the value for a specific configuration key
func (cm *ConfigManager) Get(key string) (string, error) {
	values, err := cm.List()
	if err != nil {
		return "", err
	}
	value, ok := values[key]
	if !ok {
		return "", fmt.Errorf("unknown configuration key: %s", key)
	}
	return value, nil
}

// List returns all configuration keys and values
func (cm *ConfigManager) List() (map[string]string, error) {
	config, err := cm.Load()
	if err != nil {
		return nil, err
	}

	result := map[string]string{
		"db-path":            orDefault(config.DBPath),
		"catalog-url":        orDefault(config.CatalogURL),
		"catalog-file":       orDefault(config.CatalogFile),
		"words-per-day":      strconv.Itoa(config.WordsPerDay),
		"refresh-schedule":   config.RefreshSchedule,
		"platform-safe-wipe": strconv.FormatBool(config.PlatformSafeWipe),
		"log-sql":            strconv.FormatBool(config.LogSQL),
	}

	return result, nil
}

func orDefault(s string) string {
	if s == "" {
		return "[default]"
	}
	return s
}
