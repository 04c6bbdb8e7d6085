package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/mojomint/coinctl/internal/config"
	"github.com/mojomint/coinctl/internal/service/coins"
	"github.com/mojomint/coinctl/internal/walletrpc"
)

// coinsCmd is the parent command for coin operations.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var coinsCmd = &cobra.Command{
	Use:   "coins",
	Short: "Manage wallet coins",
	Long:  `List, combine, and split the individual coins held by a wallet.`,
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	rootCmd.AddCommand(coinsCmd)
}

// newWalletRPC builds the wallet RPC client from configuration. Tests
// replace it to inject a fake.
//
//nolint:gochecknoglobals // replaced in tests, same pattern as prompt functions
var newWalletRPC = func(cfg *config.Config) (coins.WalletRPC, error) {
	certPath, keyPath := cfg.GetWalletCertPair()
	return walletrpc.NewClient(&walletrpc.ClientOptions{
		BaseURL:  cfg.GetWalletRPCURL(),
		CertPath: certPath,
		KeyPath:  keyPath,
		Timeout:  time.Duration(cfg.GetWalletTimeoutSeconds()) * time.Second,
		Logger:   logger,
	})
}

// newCoinService wires a coin service writing to the command's stdout.
func newCoinService(cmd *cobra.Command) (*coins.Service, error) {
	rpc, err := newWalletRPC(cfg)
	if err != nil {
		return nil, err
	}
	cmdCtx := NewCommandContext(cfg, logger, formatter).WithRPC(rpc)
	return coins.NewService(cmdCtx.RPC, cmd.OutOrStdout(), cmdCtx.Logger), nil
}

// rpcTimeout is the overall deadline for one coin operation, covering
// the full ordered RPC sequence.
func rpcTimeout() time.Duration {
	secs := cfg.GetWalletTimeoutSeconds()
	if secs <= 0 {
		secs = config.DefaultRPCTimeoutSeconds
	}
	return time.Duration(secs) * time.Second
}
