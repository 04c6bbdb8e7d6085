package cli

import (
	"github.com/spf13/cobra"

	"github.com/mojomint/coinctl/internal/service/coins"
)

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level flag variables
var (
	// splitWalletID is the wallet holding the target coin.
	splitWalletID uint32
	// splitFee is the transaction fee in display units.
	splitFee string
	// splitNumberOfCoins drives the split by coin count.
	splitNumberOfCoins uint64
	// splitAmountPerCoin drives the split by per-coin value (display units).
	splitAmountPerCoin string
	// splitTargetCoinID is the coin being split.
	splitTargetCoinID string
	// splitPush submits the transaction instead of only previewing it.
	splitPush bool
	// splitValidAt/splitExpiresAt bound the transaction's validity (unix seconds).
	splitValidAt   uint64
	splitExpiresAt uint64
)

// coinsSplitCmd divides one coin into many smaller coins.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var coinsSplitCmd = &cobra.Command{
	Use:   "split",
	Short: "Split one coin into many smaller coins",
	Long: `Split divides the value of one coin into many smaller coins. The split
is driven either by a coin count (-n) or by a per-coin amount (-a); the
other value is derived from the target coin's total.

Example:
  coinctl coins split -i 1 -t 0xdead... -n 10
  coinctl coins split -i 1 -t 0xdead... -a 0.5 -m 0.000001`,
	RunE: runCoinsSplit,
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	coinsCmd.AddCommand(coinsSplitCmd)

	coinsSplitCmd.Flags().Uint32VarP(&splitWalletID, "wallet-id", "i", 1, "id of the wallet holding the coin")
	coinsSplitCmd.Flags().StringVarP(&splitFee, "fee", "m", "", "transaction fee in display units")
	coinsSplitCmd.Flags().Uint64VarP(&splitNumberOfCoins, "number-of-coins", "n", 0, "number of coins to split into")
	coinsSplitCmd.Flags().StringVarP(&splitAmountPerCoin, "amount-per-coin", "a", "", "value of each resulting coin in display units")
	coinsSplitCmd.Flags().StringVarP(&splitTargetCoinID, "target-coin-id", "t", "", "id of the coin to split (required)")
	coinsSplitCmd.Flags().BoolVar(&splitPush, "push", true, "submit the transaction to the network")
	coinsSplitCmd.Flags().Uint64Var(&splitValidAt, "valid-at", 0, "earliest validity time (unix seconds)")
	coinsSplitCmd.Flags().Uint64Var(&splitExpiresAt, "expires-at", 0, "latest validity time (unix seconds)")

	_ = coinsSplitCmd.MarkFlagRequired("target-coin-id")
}

func runCoinsSplit(cmd *cobra.Command, _ []string) error {
	ctx, cancel := contextWithTimeout(cmd, rpcTimeout())
	defer cancel()

	svc, err := newCoinService(cmd)
	if err != nil {
		return err
	}

	return svc.Split(ctx, coins.SplitOptions{
		WalletID:      splitWalletID,
		Fee:           splitFee,
		NumberOfCoins: splitNumberOfCoins,
		AmountPerCoin: splitAmountPerCoin,
		TargetCoinID:  splitTargetCoinID,
		Push:          splitPush,
		ValidAt:       splitValidAt,
		ExpiresAt:     splitExpiresAt,
	})
}
