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

// DustThresholdMojo is the per-coin amount below which a split result
// is considered uneconomically small (1e-6 display units).
const DustThresholdMojo = 1_000_000

// SplitOptions carries the flags for the split operation. NumberOfCoins
// of 0 and an empty AmountPerCoin both mean "not supplied".
type SplitOptions struct {
	WalletID      uint32
	Fee           string
	NumberOfCoins uint64
	AmountPerCoin string
	TargetCoinID  string
	Push          bool
	ValidAt       uint64
	ExpiresAt     uint64
}

// Split divides one coin's value into many smaller coins. Exactly one
// of the two drivers (count or per-coin amount) may be derived from the
// other; when both are supplied they are forwarded as given.
func (s *Service) Split(ctx context.Context, opts SplitOptions) (err error) {
	defer func() { metrics.Global.RecordSplit(err) }()

	hasCount := opts.NumberOfCoins > 0
	hasAmount := opts.AmountPerCoin != ""
	if !hasCount && !hasAmount {
		return clierr.ErrMissingSplitInput
	}

	target, err := walletrpc.ParseBytes32(opts.TargetCoinID)
	if err != nil {
		return clierr.Wrap(err, "parsing --target-coin-id")
	}

	fee, err := parseFee(opts.Fee)
	if err != nil {
		return err
	}

	var amountPerCoin uint64
	if hasAmount {
		amountPerCoin, err = units.ToMojo(opts.AmountPerCoin)
		if err != nil {
			return clierr.Wrap(err, "parsing --amount-per-coin")
		}
		if amountPerCoin == 0 {
			return clierr.WithDetails(clierr.ErrInvalidAmount, map[string]string{
				"amount_per_coin": opts.AmountPerCoin,
			})
		}
	}

	if err = s.preflight(ctx, opts.WalletID); err != nil {
		return err
	}

	records, err := s.rpc.GetCoinRecordsByNames(ctx, []walletrpc.CoinID{target}, true)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return clierr.ErrCoinNotFound
	}
	total := records[0].Coin.Amount

	numberOfCoins := opts.NumberOfCoins
	switch {
	case hasAmount && !hasCount:
		numberOfCoins = total / amountPerCoin
	case hasCount && !hasAmount:
		amountPerCoin = total / opts.NumberOfCoins
	}

	if numberOfCoins > walletrpc.MaxCombineCoins {
		return clierr.WithDetails(clierr.ErrTooManyCoins, map[string]string{
			"number_of_coins": strconv.FormatUint(numberOfCoins, 10),
			"maximum":         strconv.Itoa(walletrpc.MaxCombineCoins),
		})
	}

	if amountPerCoin < DustThresholdMojo {
		output.Warnf(s.out, "The amount per coin: %s is less than the dust threshold: 1e-06.",
			units.FromMojo(amountPerCoin))
	}

	if !opts.Push {
		output.Line(s.out, "Would split coin %s into %d coins of %s each.",
			target.String(), numberOfCoins, units.FromMojo(amountPerCoin))
		return nil
	}

	req := walletrpc.SplitRequest{
		WalletID:      opts.WalletID,
		NumberOfCoins: uint16(numberOfCoins),
		AmountPerCoin: amountPerCoin,
		TargetCoinID:  target,
		Fee:           fee,
		Push:          true,
	}
	txc := walletrpc.TxConfig{CoinSelectionConfig: walletrpc.DefaultCoinSelectionConfig()}

	s.debugf("split: wallet=%d target=%s coins=%d amount=%d fee=%d",
		opts.WalletID, target.String(), numberOfCoins, amountPerCoin, fee)
	resp, err := s.rpc.SplitCoins(ctx, req, txc, timelock(opts.ValidAt, opts.ExpiresAt))
	if err != nil {
		return err
	}
	s.renderTransactions(resp.Transactions)
	return nil
}
