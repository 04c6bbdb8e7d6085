package coins

import (
	"context"
	"strconv"

	"github.com/mojomint/coinctl/internal/metrics"
	"github.com/mojomint/coinctl/internal/output"
	"github.com/mojomint/coinctl/internal/units"
	"github.com/mojomint/coinctl/internal/walletrpc"
	clierr "github.com/mojomint/coinctl/pkg/errors"
)

// CombineOptions carries the flags for the combine operation.
type CombineOptions struct {
	WalletID      uint32
	NumberOfCoins uint16
	LargestFirst  bool
	Fee           string
	TargetAmount  string
	InputCoinIDs  []string
	Selection     SelectionInput
	Override      bool
	Push          bool
	ValidAt       uint64
	ExpiresAt     uint64
}

// Combine merges up to NumberOfCoins coins into fewer larger ones. It
// always performs a dry run first so the fee can be checked against the
// value of the coins the service would actually select. The mutating
// submission only happens when the check passes (or --override is set)
// and push is requested.
func (s *Service) Combine(ctx context.Context, opts CombineOptions) (err error) {
	defer func() { metrics.Global.RecordCombine(err) }()

	if opts.NumberOfCoins > walletrpc.MaxCombineCoins {
		return clierr.WithDetails(clierr.ErrTooManyCoins, map[string]string{
			"number_of_coins": strconv.FormatUint(uint64(opts.NumberOfCoins), 10),
			"maximum":         strconv.Itoa(walletrpc.MaxCombineCoins),
		})
	}
	if opts.NumberOfCoins == 0 {
		opts.NumberOfCoins = walletrpc.MaxCombineCoins
	}

	fee, err := parseFee(opts.Fee)
	if err != nil {
		return err
	}

	var targetAmount *uint64
	if opts.TargetAmount != "" {
		v, convErr := units.ToMojo(opts.TargetAmount)
		if convErr != nil {
			return clierr.Wrap(convErr, "parsing --target-amount")
		}
		targetAmount = &v
	}

	targetIDs := make([]walletrpc.CoinID, 0, len(opts.InputCoinIDs))
	for _, raw := range opts.InputCoinIDs {
		id, parseErr := walletrpc.ParseBytes32(raw)
		if parseErr != nil {
			return clierr.Wrap(parseErr, "parsing --input-coin")
		}
		targetIDs = append(targetIDs, id)
	}

	cs, err := BuildSelectionConfig(opts.Selection)
	if err != nil {
		return err
	}
	if err = s.preflight(ctx, opts.WalletID); err != nil {
		return err
	}

	req := walletrpc.CombineRequest{
		WalletID:         opts.WalletID,
		NumberOfCoins:    opts.NumberOfCoins,
		LargestFirst:     opts.LargestFirst,
		TargetCoinIDs:    targetIDs,
		TargetCoinAmount: targetAmount,
		Fee:              fee,
		Push:             false,
	}
	txc := walletrpc.TxConfig{CoinSelectionConfig: cs}
	tl := timelock(opts.ValidAt, opts.ExpiresAt)

	s.debugf("combine dry run: wallet=%d coins=%d fee=%d", opts.WalletID, opts.NumberOfCoins, fee)
	dry, err := s.rpc.CombineCoins(ctx, req, txc, tl)
	if err != nil {
		return err
	}

	if len(dry.Transactions) == 0 {
		output.Line(s.out, "Fee comparison unavailable; proceeding without fee safety check.")
	} else if !opts.Override {
		var selected uint64
		for _, tx := range dry.Transactions {
			for _, coin := range tx.Removals {
				selected += coin.Amount
			}
		}
		if fee >= selected {
			return clierr.WithDetails(clierr.ErrFeeTooHigh, map[string]string{
				"fee":      units.FromMojo(fee),
				"selected": units.FromMojo(selected),
			})
		}
	}

	output.Line(s.out, "Transactions would combine up to %d coins.", opts.NumberOfCoins)

	if !opts.Push {
		return nil
	}

	req.Push = true
	final, err := s.rpc.CombineCoins(ctx, req, txc, tl)
	if err != nil {
		return err
	}
	s.renderTransactions(final.Transactions)
	return nil
}
