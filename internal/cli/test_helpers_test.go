package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/mojomint/coinctl/internal/config"
	"github.com/mojomint/coinctl/internal/service/coins"
	"github.com/mojomint/coinctl/internal/walletrpc"
)

// fakeWalletRPC is a scripted wallet RPC for command tests.
type fakeWalletRPC struct {
	wallets     []walletrpc.WalletInfo
	synced      bool
	spendable   *walletrpc.SpendableCoins
	records     []walletrpc.CoinRecord
	combineResp *walletrpc.TransactionResponse
	splitResp   *walletrpc.TransactionResponse

	combineReqs []walletrpc.CombineRequest
	splitReqs   []walletrpc.SplitRequest
}

func newFakeWalletRPC() *fakeWalletRPC {
	return &fakeWalletRPC{
		wallets:     []walletrpc.WalletInfo{{ID: 1, Name: "Standard Wallet"}},
		synced:      true,
		spendable:   &walletrpc.SpendableCoins{},
		combineResp: &walletrpc.TransactionResponse{},
		splitResp:   &walletrpc.TransactionResponse{},
	}
}

func (f *fakeWalletRPC) GetWallets(_ context.Context) ([]walletrpc.WalletInfo, error) {
	return f.wallets, nil
}

func (f *fakeWalletRPC) GetSyncStatus(_ context.Context) (*walletrpc.SyncStatus, error) {
	return &walletrpc.SyncStatus{Synced: f.synced}, nil
}

func (f *fakeWalletRPC) GetSpendableCoins(_ context.Context, _ uint32, _ walletrpc.CoinSelectionConfig) (*walletrpc.SpendableCoins, error) {
	return f.spendable, nil
}

func (f *fakeWalletRPC) GetCoinRecordsByNames(_ context.Context, _ []walletrpc.CoinID, _ bool) ([]walletrpc.CoinRecord, error) {
	return f.records, nil
}

func (f *fakeWalletRPC) CombineCoins(_ context.Context, req walletrpc.CombineRequest, _ walletrpc.TxConfig, _ walletrpc.TimelockInfo) (*walletrpc.TransactionResponse, error) {
	f.combineReqs = append(f.combineReqs, req)
	return f.combineResp, nil
}

func (f *fakeWalletRPC) SplitCoins(_ context.Context, req walletrpc.SplitRequest, _ walletrpc.TxConfig, _ walletrpc.TimelockInfo) (*walletrpc.TransactionResponse, error) {
	f.splitReqs = append(f.splitReqs, req)
	return f.splitResp, nil
}

// withFakeRPC replaces the wallet RPC constructor for the test and
// restores it on cleanup.
func withFakeRPC(t *testing.T, fake *fakeWalletRPC) {
	t.Helper()
	orig := newWalletRPC
	t.Cleanup(func() { newWalletRPC = orig })
	newWalletRPC = func(_ *config.Config) (coins.WalletRPC, error) {
		return fake, nil
	}
}

// resetFlags restores every flag in the command tree to its default so
// values do not leak between tests.
func resetFlags(cmd *cobra.Command) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		// Set appends on slice-valued flags, so Replace is needed to
		// actually clear them back to their (empty) defaults.
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	})
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

// executeCommand runs the root command with the given args and returns
// the combined output.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv(config.EnvHome, t.TempDir())
	t.Setenv(config.EnvLogLevel, "off")
	t.Setenv(config.EnvOutputFormat, "text")

	resetFlags(rootCmd)
	buf := &bytes.Buffer{}
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}
