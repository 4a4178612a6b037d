package config

import (
	"fmt"
	"os"

	"dario.cat/mergo"
	yaml "gopkg.in/yaml.v2"
)

// Config is the top level gateway configuration.
type Config struct {
	ListenAddress string       `yaml:"listen_address"`
	LogLevel      string       `yaml:"log_level"`
	LogFormat     string       `yaml:"log_format"`
	Vendor        VendorConfig `yaml:"vendor"`
	Token         TokenConfig  `yaml:"token"`
}

// VendorConfig describes how to reach the vendor camera API.
// The API key is the long-lived credential that must never be
// exposed to browser clients.
type VendorConfig struct {
	BaseURL        string `yaml:"base_url"`
	APIKey         string `yaml:"api_key"`
	Insecure       bool   `yaml:"insecure"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// TokenConfig controls federated session token issuance and the
// background refresher.
type TokenConfig struct {
	ValiditySeconds      int64 `yaml:"validity_seconds"`
	RefreshMarginSeconds int64 `yaml:"refresh_margin_seconds"`
	// DisableAutoRefresh is phrased negatively so the zero value
	// survives the merge with defaults.
	DisableAutoRefresh bool `yaml:"disable_auto_refresh"`
}

// DefaultConfig is merged underneath any loaded configuration file.
var DefaultConfig = Config{
	ListenAddress: ":9595",
	LogLevel:      "info",
	LogFormat:     "text",
	Vendor: VendorConfig{
		TimeoutSeconds: 10,
	},
	Token: TokenConfig{
		ValiditySeconds:      86400,
		RefreshMarginSeconds: 300,
	},
}

// Load reads the YAML configuration at path and merges defaults into
// any field left unset. A missing file is not an error so the gateway
// can be configured entirely from flags.
func Load(path string) (*Config, error) {
	c := &Config{}

	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, err
			}
		} else if err := yaml.Unmarshal(b, c); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := mergo.Merge(c, DefaultConfig); err != nil {
		return nil, err
	}

	return c, nil
}

// Validate halts startup when a required value is missing or still a
// placeholder. It runs before any network call is issued.
func (c *Config) Validate() error {
	if isPlaceholder(c.Vendor.BaseURL) {
		return fmt.Errorf("vendor.base_url is required")
	}
	if isPlaceholder(c.Vendor.APIKey) {
		return fmt.Errorf("vendor.api_key is required")
	}
	if c.Token.ValiditySeconds <= 0 {
		return fmt.Errorf("token.validity_seconds must be positive")
	}
	if c.Token.RefreshMarginSeconds >= c.Token.ValiditySeconds {
		return fmt.Errorf("token.refresh_margin_seconds must be smaller than token.validity_seconds")
	}
	return nil
}

// isPlaceholder reports whether a value is unset or was copied from
// the sample configuration without being filled in.
func isPlaceholder(v string) bool {
	switch v {
	case "", "changeme":
		return true
	}
	return len(v) >= 2 && v[0] == '<' && v[len(v)-1] == '>'
}
