package cli

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/mojomint/coinctl/internal/output"
	"github.com/mojomint/coinctl/internal/service/coins"
)

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level flag variables
var (
	// listWalletID is the wallet whose coins are listed.
	listWalletID uint32
	// listShowUnconfirmed includes unconfirmed additions/removals in the output.
	listShowUnconfirmed bool
	// listMinAmount and listMaxAmount bound the listed coin values (display units).
	listMinAmount string
	listMaxAmount string
	// listExcludeAmounts and listExcludeCoinIDs filter coins out of the listing.
	listExcludeAmounts []string
	listExcludeCoinIDs []string
)

// coinsListCmd lists a wallet's spendable coins.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var coinsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List a wallet's coins",
	Long: `List the spendable coins tracked for a wallet, with optional
selection filters.

Example:
  coinctl coins list -i 1
  coinctl coins list -i 1 -u --min-amount 0.001
  coinctl coins list -i 1 -o json`,
	RunE: runCoinsList,
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	coinsCmd.AddCommand(coinsListCmd)

	coinsListCmd.Flags().Uint32VarP(&listWalletID, "wallet-id", "i", 1, "id of the wallet to list coins for")
	coinsListCmd.Flags().BoolVarP(&listShowUnconfirmed, "show-unconfirmed", "u", false, "include unconfirmed coins")
	coinsListCmd.Flags().StringVar(&listMinAmount, "min-amount", "", "ignore coins worth less than this amount")
	coinsListCmd.Flags().StringVar(&listMaxAmount, "max-amount", "", "ignore coins worth more than this amount")
	coinsListCmd.Flags().StringArrayVar(&listExcludeAmounts, "exclude-amount", nil, "exclude coins of this amount (repeatable)")
	coinsListCmd.Flags().StringArrayVar(&listExcludeCoinIDs, "exclude-coin-id", nil, "exclude this coin id (repeatable)")
}

func runCoinsList(cmd *cobra.Command, _ []string) error {
	ctx, cancel := contextWithTimeout(cmd, rpcTimeout())
	defer cancel()

	rpc, err := newWalletRPC(cfg)
	if err != nil {
		return err
	}

	// In JSON mode the text lines are suppressed and the structured
	// result is rendered instead.
	w := cmd.OutOrStdout()
	textOut := w
	jsonMode := formatter != nil && formatter.Format() == output.FormatJSON
	if jsonMode {
		textOut = io.Discard
	}
	svc := coins.NewService(rpc, textOut, logger)

	result, err := svc.List(ctx, coins.ListOptions{
		WalletID:        listWalletID,
		ShowUnconfirmed: listShowUnconfirmed,
		Selection: coins.SelectionInput{
			MinAmount:      listMinAmount,
			MaxAmount:      listMaxAmount,
			ExcludeAmounts: listExcludeAmounts,
			ExcludeCoinIDs: listExcludeCoinIDs,
		},
	})
	if err != nil {
		return err
	}
	if jsonMode {
		return writeJSON(w, result)
	}
	return nil
}
