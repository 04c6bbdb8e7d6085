package coins

import (
	"context"
	"fmt"
	"strconv"

	"github.com/mojomint/coinctl/internal/metrics"
	"github.com/mojomint/coinctl/internal/output"
	"github.com/mojomint/coinctl/internal/units"
)

// ListOptions carries the flags for the list operation.
type ListOptions struct {
	WalletID        uint32
	ShowUnconfirmed bool
	Selection       SelectionInput
}

// ListResult is the JSON-format payload for a list operation.
type ListResult struct {
	WalletID             uint32           `json:"wallet_id"`
	TotalCoins           int              `json:"total_coins"`
	ConfirmedCoins       []ListedCoin     `json:"confirmed_coins"`
	UnconfirmedAdditions []ListedCoin     `json:"unconfirmed_additions,omitempty"`
	UnconfirmedRemovals  []ListedCoin     `json:"unconfirmed_removals,omitempty"`
}

// ListedCoin is one coin row in a list result.
type ListedCoin struct {
	ID             string `json:"id"`
	Amount         string `json:"amount"`
	ConfirmedBlock uint32 `json:"confirmed_block,omitempty"`
}

// List fetches and renders the spendable coin set for a wallet.
func (s *Service) List(ctx context.Context, opts ListOptions) (result *ListResult, err error) {
	defer func() { metrics.Global.RecordList(err) }()

	cs, err := BuildSelectionConfig(opts.Selection)
	if err != nil {
		return nil, err
	}
	if err = s.preflight(ctx, opts.WalletID); err != nil {
		return nil, err
	}

	coins, err := s.rpc.GetSpendableCoins(ctx, opts.WalletID, cs)
	if err != nil {
		return nil, err
	}

	result = &ListResult{
		WalletID:   opts.WalletID,
		TotalCoins: len(coins.ConfirmedRecords) + len(coins.UnconfirmedAdditions),
	}
	for _, rec := range coins.ConfirmedRecords {
		result.ConfirmedCoins = append(result.ConfirmedCoins, ListedCoin{
			ID:             rec.Coin.ID().String(),
			Amount:         units.FromMojo(rec.Coin.Amount),
			ConfirmedBlock: rec.ConfirmedBlockIndex,
		})
	}
	for _, coin := range coins.UnconfirmedAdditions {
		result.UnconfirmedAdditions = append(result.UnconfirmedAdditions, ListedCoin{
			ID:     coin.ID().String(),
			Amount: units.FromMojo(coin.Amount),
		})
	}
	for _, rec := range coins.UnconfirmedRemovals {
		result.UnconfirmedRemovals = append(result.UnconfirmedRemovals, ListedCoin{
			ID:             rec.Coin.ID().String(),
			Amount:         units.FromMojo(rec.Coin.Amount),
			ConfirmedBlock: rec.ConfirmedBlockIndex,
		})
	}

	s.renderList(result, opts.ShowUnconfirmed)
	return result, nil
}

func (s *Service) renderList(r *ListResult, showUnconfirmed bool) {
	output.Line(s.out, "There are a total of %d coins in wallet %d.", r.TotalCoins, r.WalletID)
	output.Line(s.out, "%d confirmed coins.", len(r.ConfirmedCoins))
	output.Line(s.out, "%d unconfirmed additions.", len(r.UnconfirmedAdditions))
	output.Line(s.out, "%d unconfirmed removals.", len(r.UnconfirmedRemovals))

	if len(r.ConfirmedCoins) > 0 {
		output.Line(s.out, "Confirmed coins:")
		renderCoinTable(s, r.ConfirmedCoins, true)
	}

	if !showUnconfirmed {
		return
	}
	if len(r.UnconfirmedAdditions) > 0 {
		output.Line(s.out, "Unconfirmed additions:")
		renderCoinTable(s, r.UnconfirmedAdditions, false)
	}
	if len(r.UnconfirmedRemovals) > 0 {
		output.Line(s.out, "Unconfirmed removals:")
		renderCoinTable(s, r.UnconfirmedRemovals, true)
	}
}

func renderCoinTable(s *Service, coins []ListedCoin, withHeight bool) {
	headers := []string{"Coin ID", "Amount"}
	if withHeight {
		headers = append(headers, "Confirmed Height")
	}
	table := output.NewTable(headers...)
	for _, c := range coins {
		row := []string{c.ID, c.Amount}
		if withHeight {
			row = append(row, strconv.FormatUint(uint64(c.ConfirmedBlock), 10))
		}
		table.AddRow(row...)
	}
	if err := table.Render(s.out); err != nil {
		fmt.Fprintln(s.out, err)
	}
}
