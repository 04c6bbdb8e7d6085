// Package config provides configuration management for coinctl.
package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	Version int          `yaml:"version"`
	Home    string       `yaml:"home"`
	Wallet  WalletConfig `yaml:"wallet"`
	Output  OutputConfig `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
}

// WalletConfig defines how to reach the wallet RPC service.
type WalletConfig struct {
	// RPCURL is the base URL of the wallet RPC service.
	RPCURL string `yaml:"rpc_url"`

	// CertPath and KeyPath hold the client certificate pair used for
	// the daemon's mutual-TLS handshake. Empty disables client certs.
	CertPath string `yaml:"cert_path"`
	KeyPath  string `yaml:"key_path"`

	// TimeoutSeconds is the per-request RPC timeout.
	TimeoutSeconds int `yaml:"timeout_seconds"`

	// DefaultWalletID is used when --wallet-id is not given.
	DefaultWalletID uint32 `yaml:"default_wallet_id"`
}

// OutputConfig defines output formatting settings.
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format"`
	Verbose       bool   `yaml:"verbose"`
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Load reads configuration from the specified file.
func Load(path string) (*Config, error) {
	// #nosec G304 -- config file path is from validated user input
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes configuration to the specified file.
func Save(cfg *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o600)
}

// Path returns the default config file path.
func Path(home string) string {
	return filepath.Join(home, "config.yaml")
}

// GetHome returns the coinctl home directory path.
func (c *Config) GetHome() string {
	return c.Home
}

// GetWalletRPCURL returns the wallet RPC base URL.
func (c *Config) GetWalletRPCURL() string {
	return c.Wallet.RPCURL
}

// GetWalletCertPair returns the client certificate and key paths.
func (c *Config) GetWalletCertPair() (certPath, keyPath string) {
	return c.Wallet.CertPath, c.Wallet.KeyPath
}

// GetWalletTimeoutSeconds returns the per-request RPC timeout.
func (c *Config) GetWalletTimeoutSeconds() int {
	return c.Wallet.TimeoutSeconds
}

// GetDefaultWalletID returns the wallet id used when none is given.
func (c *Config) GetDefaultWalletID() uint32 {
	return c.Wallet.DefaultWalletID
}

// GetLoggingLevel returns the configured logging level.
func (c *Config) GetLoggingLevel() string {
	return c.Logging.Level
}

// GetLoggingFile returns the configured log file path.
func (c *Config) GetLoggingFile() string {
	return c.Logging.File
}

// GetOutputFormat returns the default output format.
func (c *Config) GetOutputFormat() string {
	return c.Output.DefaultFormat
}

// IsVerbose returns true if verbose output is enabled.
func (c *Config) IsVerbose() bool {
	return c.Output.Verbose
}

// DefaultHome returns the default coinctl home directory.
func DefaultHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".coinctl"
	}
	return filepath.Join(home, ".coinctl")
}
