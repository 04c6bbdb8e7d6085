package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variable names.
const (
	EnvHome         = "COINCTL_HOME"
	EnvWalletRPC    = "COINCTL_WALLET_RPC"
	EnvWalletCert   = "COINCTL_WALLET_CERT"
	EnvWalletKey    = "COINCTL_WALLET_KEY"
	EnvOutputFormat = "COINCTL_OUTPUT_FORMAT"
	EnvVerbose      = "COINCTL_VERBOSE"
	EnvLogLevel     = "COINCTL_LOG_LEVEL"
	EnvRPCTimeout   = "COINCTL_RPC_TIMEOUT"
)

// LoadDotEnv loads a .env file from the working directory when present.
// A missing file is not an error.
func LoadDotEnv() {
	_ = godotenv.Load()
}

// ApplyEnvironment applies environment variable overrides to the configuration.
func ApplyEnvironment(cfg *Config) {
	if v := os.Getenv(EnvHome); v != "" {
		cfg.Home = v
	}

	if v := os.Getenv(EnvWalletRPC); v != "" {
		cfg.Wallet.RPCURL = strings.TrimSpace(v)
	}

	if v := os.Getenv(EnvWalletCert); v != "" {
		cfg.Wallet.CertPath = v
	}

	if v := os.Getenv(EnvWalletKey); v != "" {
		cfg.Wallet.KeyPath = v
	}

	if v := os.Getenv(EnvOutputFormat); v != "" {
		cfg.Output.DefaultFormat = strings.ToLower(v)
	}

	if v := os.Getenv(EnvVerbose); v != "" {
		cfg.Output.Verbose = parseBool(v)
	}

	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}

	if v := os.Getenv(EnvRPCTimeout); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			cfg.Wallet.TimeoutSeconds = secs
		}
	}
}

// parseBool parses a boolean string value.
func parseBool(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "1" || s == "true" || s == "yes" || s == "on" {
		return true
	}
	b, _ := strconv.ParseBool(s)
	return b
}
