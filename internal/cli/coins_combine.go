package cli

import (
	"github.com/spf13/cobra"

	"github.com/mojomint/coinctl/internal/service/coins"
)

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level flag variables
var (
	// combineWalletID is the wallet whose coins are combined.
	combineWalletID uint32
	// combineNumberOfCoins caps how many coins one transaction may merge.
	combineNumberOfCoins uint16
	// combineLargestFirst asks the service to prefer the largest coins.
	combineLargestFirst bool
	// combineFee is the transaction fee in display units.
	combineFee string
	// combineTargetAmount asks the service to select coins totalling this value.
	combineTargetAmount string
	// combineInputCoins pins the combination to explicit coin ids.
	combineInputCoins []string
	// combineMinAmount/combineMaxAmount bound the selectable coin values.
	combineMinAmount string
	combineMaxAmount string
	// combineExcludeAmounts filters coins of given values out of selection.
	combineExcludeAmounts []string
	// combineOverride permits the operation despite an unsafe fee ratio.
	combineOverride bool
	// combinePush submits the transaction instead of only previewing it.
	combinePush bool
	// combineValidAt/combineExpiresAt bound the transaction's validity (unix seconds).
	combineValidAt   uint64
	combineExpiresAt uint64
)

// coinsCombineCmd merges many small coins into fewer larger ones.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var coinsCombineCmd = &cobra.Command{
	Use:   "combine",
	Short: "Combine many coins into fewer larger coins",
	Long: `Combine merges up to --number-of-coins coins from a wallet into fewer
larger ones. A dry run is performed first so the fee can be compared
against the value of the coins the service would select; an unsafe fee
aborts the operation unless --override is given.

Example:
  coinctl coins combine -i 1 -n 200 --largest-first
  coinctl coins combine -i 1 -a 1.5 -m 0.000001
  coinctl coins combine -i 1 --input-coin 0xdead... --input-coin 0xbeef...`,
	RunE: runCoinsCombine,
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	coinsCmd.AddCommand(coinsCombineCmd)

	coinsCombineCmd.Flags().Uint32VarP(&combineWalletID, "wallet-id", "i", 1, "id of the wallet to combine coins in")
	coinsCombineCmd.Flags().Uint16VarP(&combineNumberOfCoins, "number-of-coins", "n", 500, "maximum number of coins to combine (max 500)")
	coinsCombineCmd.Flags().BoolVar(&combineLargestFirst, "largest-first", false, "combine the largest coins first")
	coinsCombineCmd.Flags().StringVarP(&combineFee, "fee", "m", "", "transaction fee in display units")
	coinsCombineCmd.Flags().StringVarP(&combineTargetAmount, "target-amount", "a", "", "select coins until this total is reached")
	coinsCombineCmd.Flags().StringArrayVar(&combineInputCoins, "input-coin", nil, "combine only this coin id (repeatable)")
	coinsCombineCmd.Flags().StringVar(&combineMinAmount, "min-amount", "", "ignore coins worth less than this amount")
	coinsCombineCmd.Flags().StringVar(&combineMaxAmount, "max-amount", "", "ignore coins worth more than this amount")
	coinsCombineCmd.Flags().StringArrayVar(&combineExcludeAmounts, "exclude-amount", nil, "exclude coins of this amount (repeatable)")
	coinsCombineCmd.Flags().BoolVar(&combineOverride, "override", false, "submit even when the fee exceeds the selected coin value")
	coinsCombineCmd.Flags().BoolVar(&combinePush, "push", true, "submit the transaction to the network")
	coinsCombineCmd.Flags().Uint64Var(&combineValidAt, "valid-at", 0, "earliest validity time (unix seconds)")
	coinsCombineCmd.Flags().Uint64Var(&combineExpiresAt, "expires-at", 0, "latest validity time (unix seconds)")
}

func runCoinsCombine(cmd *cobra.Command, _ []string) error {
	ctx, cancel := contextWithTimeout(cmd, rpcTimeout())
	defer cancel()

	svc, err := newCoinService(cmd)
	if err != nil {
		return err
	}

	return svc.Combine(ctx, coins.CombineOptions{
		WalletID:      combineWalletID,
		NumberOfCoins: combineNumberOfCoins,
		LargestFirst:  combineLargestFirst,
		Fee:           combineFee,
		TargetAmount:  combineTargetAmount,
		InputCoinIDs:  combineInputCoins,
		Selection: coins.SelectionInput{
			MinAmount:      combineMinAmount,
			MaxAmount:      combineMaxAmount,
			ExcludeAmounts: combineExcludeAmounts,
		},
		Override:  combineOverride,
		Push:      combinePush,
		ValidAt:   combineValidAt,
		ExpiresAt: combineExpiresAt,
	})
}
