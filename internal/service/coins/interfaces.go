package coins

import (
	"context"

	"github.com/mojomint/coinctl/internal/walletrpc"
)

// WalletRPC is the wallet service surface the planners depend on.
// *walletrpc.Client satisfies it; tests substitute an in-memory fake.
type WalletRPC interface {
	GetWallets(ctx context.Context) ([]walletrpc.WalletInfo, error)
	GetSyncStatus(ctx context.Context) (*walletrpc.SyncStatus, error)
	GetSpendableCoins(ctx context.Context, walletID uint32, cs walletrpc.CoinSelectionConfig) (*walletrpc.SpendableCoins, error)
	GetCoinRecordsByNames(ctx context.Context, names []walletrpc.CoinID, includeSpent bool) ([]walletrpc.CoinRecord, error)
	CombineCoins(ctx context.Context, req walletrpc.CombineRequest, txc walletrpc.TxConfig, tl walletrpc.TimelockInfo) (*walletrpc.TransactionResponse, error)
	SplitCoins(ctx context.Context, req walletrpc.SplitRequest, txc walletrpc.TxConfig, tl walletrpc.TimelockInfo) (*walletrpc.TransactionResponse, error)
}
