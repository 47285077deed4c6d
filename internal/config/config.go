// Package config loads and persists the user's configuration file.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config holds the persistent user preferences. The API key lives under
// the short "key" field for compatibility with existing config.json files.
type Config struct {
	Provider    string  `json:"provider,omitempty"` // openai (default) or anthropic
	APIKey      string  `json:"key,omitempty"`
	Model       string  `json:"model,omitempty"`
	BaseURL     string  `json:"base_url,omitempty"`
	BudgetLimit float64 `json:"budget_limit,omitempty"`
	DBPath      string  `json:"db_path,omitempty"`
}

// Defaults used when the config file or flags leave fields empty.
const (
	DefaultProvider    = "openai"
	DefaultModel       = "qwen-flash"
	DefaultBudgetLimit = 1.0
	DefaultDBPath      = "tokyo_attractions.db"
)

// ApplyDefaults fills unset fields with the package defaults.
func (c *Config) ApplyDefaults() {
	if c.Provider == "" {
		c.Provider = DefaultProvider
	}
	if c.Model == "" {
		c.Model = DefaultModel
	}
	if c.BudgetLimit <= 0 {
		c.BudgetLimit = DefaultBudgetLimit
	}
	if c.DBPath == "" {
		c.DBPath = DefaultDBPath
	}
}

// ApplyEnv overlays environment variables onto the config. Env values win
// over file values so deployments can inject credentials without writing
// them to disk.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("TABIPLAN_PROVIDER"); v != "" {
		c.Provider = v
	}
	if v := os.Getenv("TABIPLAN_API_KEY"); v != "" {
		c.APIKey = v
	}
	if v := os.Getenv("DASHSCOPE_API_KEY"); v != "" && c.APIKey == "" {
		c.APIKey = v
	}
	if v := os.Getenv("ANTHROPIC_API_KEY"); v != "" && c.Provider == "anthropic" && c.APIKey == "" {
		c.APIKey = v
	}
	if v := os.Getenv("TABIPLAN_MODEL"); v != "" {
		c.Model = v
	}
	if v := os.Getenv("TABIPLAN_BASE_URL"); v != "" {
		c.BaseURL = v
	}
}

// Manager handles loading and saving the configuration.
type Manager struct {
	configDir string
}

// NewManager creates a manager rooted at the user config directory.
func NewManager() (*Manager, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get user config dir: %w", err)
	}
	return &Manager{configDir: filepath.Join(configDir, "tabiplan")}, nil
}

// Path returns the absolute path to the config.json file.
func (m *Manager) Path() string {
	return filepath.Join(m.configDir, "config.json")
}

// Exists checks whether the configuration file has been created.
func (m *Manager) Exists() bool {
	_, err := os.Stat(m.Path())
	return !os.IsNotExist(err)
}

// Load reads the configuration from disk. A missing file yields an empty
// Config and no error.
func (m *Manager) Load() (*Config, error) {
	return LoadFile(m.Path())
}

// Save writes the configuration with owner-only permissions; the file
// holds an API key.
func (m *Manager) Save(cfg *Config) error {
	if err := os.MkdirAll(m.configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(m.Path(), data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// LoadFile reads a configuration file from an explicit path. A missing
// file yields an empty Config and no error.
func LoadFile(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return &Config{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config json: %w", err)
	}
	return &cfg, nil
}
