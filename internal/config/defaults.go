package config

// DefaultWalletRPCURL is the default wallet RPC endpoint. The wallet
// service listens on localhost with a self-signed daemon certificate.
const DefaultWalletRPCURL = "https://localhost:9256"

// DefaultRPCTimeoutSeconds is the default per-request RPC timeout.
const DefaultRPCTimeoutSeconds = 30

// Defaults returns the default configuration.
func Defaults() *Config {
	return &Config{
		Version: 1,
		Home:    "~/.coinctl",
		Wallet: WalletConfig{
			RPCURL:          DefaultWalletRPCURL,
			TimeoutSeconds:  DefaultRPCTimeoutSeconds,
			DefaultWalletID: 1,
		},
		Output: OutputConfig{
			DefaultFormat: "auto",
			Verbose:       false,
		},
		Logging: LoggingConfig{
			Level: "error",
			// File is empty by default; logging goes nowhere until a
			// path is configured.
			File: "",
		},
	}
}
