// Package config loads and saves the CLI configuration file and applies
// environment overrides.
package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables that override the configuration file. They make
// headless use possible without a config file at all.
const (
	EnvAccountID = "TRADIER_ACCOUNT_ID"
	EnvSandbox   = "TRADIER_SANDBOX"
	EnvIEXToken  = "IEX_TOKEN"
)

// Config holds the CLI configuration.
type Config struct {
	AccountID  string `yaml:"account_id"`
	Sandbox    bool   `yaml:"sandbox"`
	APIBaseURL string `yaml:"api_base_url,omitempty"`
	IEXToken   string `yaml:"iex_token,omitempty"`
}

// ConfigDir returns the directory holding the configuration file.
func ConfigDir() string {
	if dir := os.Getenv("OPTCAL_CONFIG_DIR"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".optcal"
	}
	return filepath.Join(home, ".optcal")
}

// ConfigPath returns the path of the configuration file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// Load reads the configuration from path, layering environment
// overrides on top. A missing file is not an error; the zero config is
// returned so env-only setups work.
func Load(path string) (*Config, error) {
	// A .env in the working directory supplies env vars for local use.
	_ = godotenv.Load()

	cfg := &Config{}
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	if v := os.Getenv(EnvAccountID); v != "" {
		cfg.AccountID = v
	}
	if v := os.Getenv(EnvSandbox); v != "" {
		if sandbox, err := strconv.ParseBool(v); err == nil {
			cfg.Sandbox = sandbox
		}
	}
	if v := os.Getenv(EnvIEXToken); v != "" {
		cfg.IEXToken = v
	}
	return cfg, nil
}

// Save writes the configuration to path, creating the directory if
// needed.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
