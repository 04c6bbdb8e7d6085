package coins

import (
	"github.com/mojomint/coinctl/internal/units"
	"github.com/mojomint/coinctl/internal/walletrpc"
	clierr "github.com/mojomint/coinctl/pkg/errors"
)

// SelectionInput carries the raw coin-selection flags. Amounts are
// decimal display-unit strings; coin ids are hex with an optional 0x
// prefix. Empty strings mean unset.
type SelectionInput struct {
	MinAmount       string
	MaxAmount       string
	ExcludeAmounts  []string
	ExcludeCoinIDs  []string
}

// BuildSelectionConfig converts raw selection flags into a typed
// config. A missing minimum defaults to 0 and a missing maximum to the
// unbounded sentinel.
func BuildSelectionConfig(in SelectionInput) (walletrpc.CoinSelectionConfig, error) {
	cs := walletrpc.DefaultCoinSelectionConfig()

	if in.MinAmount != "" {
		v, err := units.ToMojo(in.MinAmount)
		if err != nil {
			return cs, clierr.Wrap(err, "parsing --min-amount")
		}
		cs.MinCoinAmount = v
	}

	if in.MaxAmount != "" {
		v, err := units.ToMojo(in.MaxAmount)
		if err != nil {
			return cs, clierr.Wrap(err, "parsing --max-amount")
		}
		cs.MaxCoinAmount = v
	}

	if len(in.ExcludeAmounts) > 0 {
		amounts, err := units.ToMojoEach(in.ExcludeAmounts)
		if err != nil {
			return cs, clierr.Wrap(err, "parsing --exclude-amount")
		}
		cs.ExcludedCoinAmounts = amounts
	}

	for _, raw := range in.ExcludeCoinIDs {
		id, err := walletrpc.ParseBytes32(raw)
		if err != nil {
			return cs, clierr.Wrap(err, "parsing --exclude-coin-id")
		}
		cs.ExcludedCoinIDs = append(cs.ExcludedCoinIDs, id)
	}

	return cs, nil
}

// parseFee converts an optional decimal fee into mojo. Empty means 0.
func parseFee(raw string) (uint64, error) {
	if raw == "" {
		return 0, nil
	}
	fee, err := units.ToMojo(raw)
	if err != nil {
		return 0, clierr.Wrap(err, "parsing --fee")
	}
	return fee, nil
}
