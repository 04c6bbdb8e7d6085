package coins

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mojomint/coinctl/internal/walletrpc"
	clierr "github.com/mojomint/coinctl/pkg/errors"
)

// fakeRPC is a scripted wallet RPC used by the planner tests. It records
// every call in order along with the request payloads.
type fakeRPC struct {
	wallets     []walletrpc.WalletInfo
	synced      bool
	spendable   *walletrpc.SpendableCoins
	records     []walletrpc.CoinRecord
	combineResp *walletrpc.TransactionResponse
	splitResp   *walletrpc.TransactionResponse

	calls       []string
	combineReqs []walletrpc.CombineRequest
	combineTxcs []walletrpc.TxConfig
	combineTLs  []walletrpc.TimelockInfo
	splitReqs   []walletrpc.SplitRequest
	splitTLs    []walletrpc.TimelockInfo
}

func newFakeRPC() *fakeRPC {
	return &fakeRPC{
		wallets: []walletrpc.WalletInfo{{ID: 1, Name: "Standard Wallet"}},
		synced:  true,
		spendable: &walletrpc.SpendableCoins{},
		combineResp: &walletrpc.TransactionResponse{},
		splitResp:   &walletrpc.TransactionResponse{},
	}
}

func (f *fakeRPC) GetWallets(_ context.Context) ([]walletrpc.WalletInfo, error) {
	f.calls = append(f.calls, "get_wallets")
	return f.wallets, nil
}

func (f *fakeRPC) GetSyncStatus(_ context.Context) (*walletrpc.SyncStatus, error) {
	f.calls = append(f.calls, "get_sync_status")
	return &walletrpc.SyncStatus{Synced: f.synced}, nil
}

func (f *fakeRPC) GetSpendableCoins(_ context.Context, _ uint32, _ walletrpc.CoinSelectionConfig) (*walletrpc.SpendableCoins, error) {
	f.calls = append(f.calls, "get_spendable_coins")
	return f.spendable, nil
}

func (f *fakeRPC) GetCoinRecordsByNames(_ context.Context, _ []walletrpc.CoinID, _ bool) ([]walletrpc.CoinRecord, error) {
	f.calls = append(f.calls, "get_coin_records_by_names")
	return f.records, nil
}

func (f *fakeRPC) CombineCoins(_ context.Context, req walletrpc.CombineRequest, txc walletrpc.TxConfig, tl walletrpc.TimelockInfo) (*walletrpc.TransactionResponse, error) {
	f.calls = append(f.calls, "combine_coins")
	f.combineReqs = append(f.combineReqs, req)
	f.combineTxcs = append(f.combineTxcs, txc)
	f.combineTLs = append(f.combineTLs, tl)
	return f.combineResp, nil
}

func (f *fakeRPC) SplitCoins(_ context.Context, req walletrpc.SplitRequest, _ walletrpc.TxConfig, tl walletrpc.TimelockInfo) (*walletrpc.TransactionResponse, error) {
	f.calls = append(f.calls, "split_coins")
	f.splitReqs = append(f.splitReqs, req)
	f.splitTLs = append(f.splitTLs, tl)
	return f.splitResp, nil
}

func newTestService(rpc WalletRPC) (*Service, *bytes.Buffer) {
	out := &bytes.Buffer{}
	return NewService(rpc, out, nil), out
}

func testBytes32(t *testing.T, pair string) walletrpc.Bytes32 {
	t.Helper()
	b, err := walletrpc.ParseBytes32(strings.Repeat(pair, 32))
	require.NoError(t, err)
	return b
}

// targetCoin builds a coin record holding the given mojo amount and
// returns it with its id.
func targetCoin(t *testing.T, amount uint64) (walletrpc.CoinRecord, walletrpc.CoinID) {
	t.Helper()
	coin := walletrpc.Coin{
		ParentCoinInfo: testBytes32(t, "01"),
		PuzzleHash:     testBytes32(t, "02"),
		Amount:         amount,
	}
	return walletrpc.CoinRecord{Coin: coin, ConfirmedBlockIndex: 10}, coin.ID()
}

func txResponse(t *testing.T, removalAmounts ...uint64) *walletrpc.TransactionResponse {
	t.Helper()
	tx := walletrpc.TransactionRecord{Name: testBytes32(t, "ff")}
	for _, amt := range removalAmounts {
		tx.Removals = append(tx.Removals, walletrpc.Coin{
			ParentCoinInfo: testBytes32(t, "03"),
			PuzzleHash:     testBytes32(t, "04"),
			Amount:         amt,
		})
	}
	return &walletrpc.TransactionResponse{Transactions: []walletrpc.TransactionRecord{tx}}
}

func TestCombineFeeSafetyBlocksWithoutOverride(t *testing.T) {
	rpc := newFakeRPC()
	// Dry run selects coins worth 250 mojo total while the fee is 0.0001 XCH.
	rpc.combineResp = txResponse(t, 100, 150)
	svc, _ := newTestService(rpc)

	err := svc.Combine(context.Background(), CombineOptions{
		WalletID:      1,
		NumberOfCoins: 500,
		Fee:           "0.0001",
		Push:          true,
	})
	require.Error(t, err)
	assert.True(t, clierr.Is(err, clierr.ErrFeeTooHigh))
	assert.Contains(t, err.Error(),
		"Fee is >= the amount of coins selected. To continue, please use --override flag.")

	// Only the dry run went out; the push submission never happened.
	require.Len(t, rpc.combineReqs, 1)
	assert.False(t, rpc.combineReqs[0].Push)
}

func TestCombineOverrideSubmits(t *testing.T) {
	rpc := newFakeRPC()
	rpc.combineResp = txResponse(t, 100, 150)
	svc, out := newTestService(rpc)

	err := svc.Combine(context.Background(), CombineOptions{
		WalletID:      1,
		NumberOfCoins: 200,
		Fee:           "0.0001",
		Override:      true,
		Push:          true,
	})
	require.NoError(t, err)

	require.Len(t, rpc.combineReqs, 2)
	assert.False(t, rpc.combineReqs[0].Push)
	assert.True(t, rpc.combineReqs[1].Push)
	assert.Contains(t, out.String(), "Transactions would combine up to 200 coins.")
	assert.Contains(t, out.String(), "Transaction sent: "+testBytes32(t, "ff").String())
}

func TestCombineSafeFeeSubmits(t *testing.T) {
	rpc := newFakeRPC()
	// Selected value is 2 XCH, fee is 1 mojo.
	rpc.combineResp = txResponse(t, 1_000_000_000_000, 1_000_000_000_000)
	svc, out := newTestService(rpc)

	err := svc.Combine(context.Background(), CombineOptions{
		WalletID:      1,
		NumberOfCoins: 500,
		Fee:           "0.000000000001",
		Push:          true,
	})
	require.NoError(t, err)
	require.Len(t, rpc.combineReqs, 2)
	assert.Equal(t, uint64(1), rpc.combineReqs[0].Fee)
	assert.Contains(t, out.String(), "Transactions would combine up to 500 coins.")
}

func TestCombineDryRunOnly(t *testing.T) {
	rpc := newFakeRPC()
	rpc.combineResp = txResponse(t, 1_000_000_000_000)
	svc, out := newTestService(rpc)

	err := svc.Combine(context.Background(), CombineOptions{
		WalletID:      1,
		NumberOfCoins: 500,
		Push:          false,
	})
	require.NoError(t, err)

	require.Len(t, rpc.combineReqs, 1)
	assert.False(t, rpc.combineReqs[0].Push)
	assert.Contains(t, out.String(), "Transactions would combine up to 500 coins.")
	assert.NotContains(t, out.String(), "Transaction sent")
}

func TestCombineFeeComparisonUnavailable(t *testing.T) {
	rpc := newFakeRPC()
	rpc.combineResp = &walletrpc.TransactionResponse{}
	svc, out := newTestService(rpc)

	err := svc.Combine(context.Background(), CombineOptions{
		WalletID:      1,
		NumberOfCoins: 500,
		Fee:           "100",
		Push:          false,
	})
	require.NoError(t, err)
	assert.Contains(t, out.String(),
		"Fee comparison unavailable; proceeding without fee safety check.")
	assert.Contains(t, out.String(), "Transactions would combine up to 500 coins.")
}

func TestCombineTooManyCoins(t *testing.T) {
	rpc := newFakeRPC()
	svc, _ := newTestService(rpc)

	err := svc.Combine(context.Background(), CombineOptions{
		WalletID:      1,
		NumberOfCoins: 501,
	})
	require.Error(t, err)
	assert.True(t, clierr.Is(err, clierr.ErrTooManyCoins))
	assert.Empty(t, rpc.calls)
}

func TestCombineDefaultsCountTo500(t *testing.T) {
	rpc := newFakeRPC()
	rpc.combineResp = txResponse(t, 1_000_000_000_000)
	svc, _ := newTestService(rpc)

	err := svc.Combine(context.Background(), CombineOptions{WalletID: 1, Push: false})
	require.NoError(t, err)
	require.Len(t, rpc.combineReqs, 1)
	assert.Equal(t, uint16(500), rpc.combineReqs[0].NumberOfCoins)
}

func TestCombineCallOrdering(t *testing.T) {
	rpc := newFakeRPC()
	rpc.combineResp = txResponse(t, 1_000_000_000_000)
	svc, _ := newTestService(rpc)

	err := svc.Combine(context.Background(), CombineOptions{
		WalletID:      1,
		NumberOfCoins: 500,
		Push:          true,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"get_wallets", "get_sync_status", "combine_coins", "combine_coins",
	}, rpc.calls)
}

func TestCombineForwardsSelectionAndTimelock(t *testing.T) {
	rpc := newFakeRPC()
	rpc.combineResp = txResponse(t, 1_000_000_000_000)
	svc, _ := newTestService(rpc)

	amount := uint64(500_000_000_000)
	target := testBytes32(t, "aa")
	err := svc.Combine(context.Background(), CombineOptions{
		WalletID:      1,
		NumberOfCoins: 500,
		LargestFirst:  true,
		TargetAmount:  "0.5",
		InputCoinIDs:  []string{target.String()},
		Selection: SelectionInput{
			MinAmount:      "0.000000000100",
			ExcludeAmounts: []string{"0.25"},
		},
		ValidAt:   100,
		ExpiresAt: 200,
		Push:      false,
	})
	require.NoError(t, err)

	require.Len(t, rpc.combineReqs, 1)
	req := rpc.combineReqs[0]
	assert.True(t, req.LargestFirst)
	require.NotNil(t, req.TargetCoinAmount)
	assert.Equal(t, amount, *req.TargetCoinAmount)
	assert.Equal(t, []walletrpc.CoinID{target}, req.TargetCoinIDs)

	txc := rpc.combineTxcs[0]
	assert.Equal(t, uint64(100), txc.MinCoinAmount)
	assert.Equal(t, []uint64{250_000_000_000}, txc.ExcludedCoinAmounts)

	tl := rpc.combineTLs[0]
	assert.Equal(t, uint64(100), tl.MinTime)
	assert.Equal(t, uint64(200), tl.MaxTime)
}

func TestCombineWalletNotFound(t *testing.T) {
	rpc := newFakeRPC()
	svc, _ := newTestService(rpc)

	err := svc.Combine(context.Background(), CombineOptions{
		WalletID:      7,
		NumberOfCoins: 500,
	})
	require.Error(t, err)
	assert.True(t, clierr.Is(err, clierr.ErrWalletNotFound))
	assert.NotContains(t, rpc.calls, "combine_coins")
}

func TestCombineWalletNotSynced(t *testing.T) {
	rpc := newFakeRPC()
	rpc.synced = false
	svc, _ := newTestService(rpc)

	err := svc.Combine(context.Background(), CombineOptions{
		WalletID:      1,
		NumberOfCoins: 500,
	})
	require.Error(t, err)
	assert.True(t, clierr.Is(err, clierr.ErrWalletNotSynced))
	assert.NotContains(t, rpc.calls, "combine_coins")
}

func TestSplitMissingDrivers(t *testing.T) {
	rpc := newFakeRPC()
	svc, _ := newTestService(rpc)

	err := svc.Split(context.Background(), SplitOptions{
		WalletID:     1,
		TargetCoinID: strings.Repeat("aa", 32),
		Push:         true,
	})
	require.Error(t, err)
	assert.True(t, clierr.Is(err, clierr.ErrMissingSplitInput))
	assert.Equal(t, "Must use either -a or -n. For more information run --help.", err.Error())
	assert.Empty(t, rpc.calls)
}

func TestSplitCoinNotFound(t *testing.T) {
	// Both driver paths report the identical fixed message when the
	// target coin cannot be resolved.
	tests := []struct {
		name string
		opts SplitOptions
	}{
		{
			name: "count driven",
			opts: SplitOptions{WalletID: 1, NumberOfCoins: 10, Push: true},
		},
		{
			name: "amount driven",
			opts: SplitOptions{WalletID: 1, AmountPerCoin: "0.5", Push: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rpc := newFakeRPC()
			rpc.records = nil
			svc, _ := newTestService(rpc)

			tt.opts.TargetCoinID = strings.Repeat("aa", 32)
			err := svc.Split(context.Background(), tt.opts)
			require.Error(t, err)
			assert.True(t, clierr.Is(err, clierr.ErrCoinNotFound))
			assert.Equal(t, "Could not find target coin.", err.Error())
			assert.NotContains(t, rpc.calls, "split_coins")
		})
	}
}

func TestSplitEquivalence(t *testing.T) {
	// Driving a 10 XCH coin by amount 0.5 and by count 20 must build
	// the same request.
	record, id := targetCoin(t, 10_000_000_000_000)

	run := func(opts SplitOptions) walletrpc.SplitRequest {
		rpc := newFakeRPC()
		rpc.records = []walletrpc.CoinRecord{record}
		svc, _ := newTestService(rpc)

		opts.WalletID = 1
		opts.TargetCoinID = id.String()
		opts.Push = true
		require.NoError(t, svc.Split(context.Background(), opts))
		require.Len(t, rpc.splitReqs, 1)
		return rpc.splitReqs[0]
	}

	byAmount := run(SplitOptions{AmountPerCoin: "0.5"})
	byCount := run(SplitOptions{NumberOfCoins: 20})

	assert.Equal(t, byCount, byAmount)
	assert.Equal(t, uint16(20), byAmount.NumberOfCoins)
	assert.Equal(t, uint64(500_000_000_000), byAmount.AmountPerCoin)
	assert.True(t, byAmount.Push)
}

func TestSplitCountDerivesAmount(t *testing.T) {
	record, id := targetCoin(t, 10_000_000_000_000)
	rpc := newFakeRPC()
	rpc.records = []walletrpc.CoinRecord{record}
	svc, _ := newTestService(rpc)

	err := svc.Split(context.Background(), SplitOptions{
		WalletID:      1,
		NumberOfCoins: 10,
		TargetCoinID:  id.String(),
		Push:          true,
	})
	require.NoError(t, err)
	require.Len(t, rpc.splitReqs, 1)
	assert.Equal(t, uint16(10), rpc.splitReqs[0].NumberOfCoins)
	assert.Equal(t, uint64(1_000_000_000_000), rpc.splitReqs[0].AmountPerCoin)
}

func TestSplitBothDriversForwardedAsGiven(t *testing.T) {
	record, id := targetCoin(t, 10_000_000_000_000)
	rpc := newFakeRPC()
	rpc.records = []walletrpc.CoinRecord{record}
	svc, _ := newTestService(rpc)

	err := svc.Split(context.Background(), SplitOptions{
		WalletID:      1,
		NumberOfCoins: 10,
		AmountPerCoin: "0.0000001",
		TargetCoinID:  id.String(),
		Push:          true,
	})
	require.NoError(t, err)
	require.Len(t, rpc.splitReqs, 1)
	// Neither value is derived; both pass through untouched.
	assert.Equal(t, uint16(10), rpc.splitReqs[0].NumberOfCoins)
	assert.Equal(t, uint64(100_000), rpc.splitReqs[0].AmountPerCoin)
}

func TestSplitDustWarning(t *testing.T) {
	record, id := targetCoin(t, 10_000_000_000_000)
	rpc := newFakeRPC()
	rpc.records = []walletrpc.CoinRecord{record}
	svc, out := newTestService(rpc)

	err := svc.Split(context.Background(), SplitOptions{
		WalletID:      1,
		NumberOfCoins: 10,
		AmountPerCoin: "0.0000001",
		TargetCoinID:  id.String(),
		Push:          true,
	})
	require.NoError(t, err)
	assert.Contains(t, out.String(),
		"WARNING: The amount per coin: 0.0000001 is less than the dust threshold: 1e-06.")
	// The warning is non-fatal; the split still goes out.
	assert.Contains(t, rpc.calls, "split_coins")
}

func TestSplitNoDustWarningAtThreshold(t *testing.T) {
	record, id := targetCoin(t, 10_000_000)
	rpc := newFakeRPC()
	rpc.records = []walletrpc.CoinRecord{record}
	svc, out := newTestService(rpc)

	// 10_000_000 mojo over 10 coins is exactly the 1e-6 threshold.
	err := svc.Split(context.Background(), SplitOptions{
		WalletID:      1,
		NumberOfCoins: 10,
		TargetCoinID:  id.String(),
		Push:          true,
	})
	require.NoError(t, err)
	assert.NotContains(t, out.String(), "WARNING")
}

func TestSplitTooManyCoins(t *testing.T) {
	record, id := targetCoin(t, 10_000_000_000_000)
	rpc := newFakeRPC()
	rpc.records = []walletrpc.CoinRecord{record}
	svc, _ := newTestService(rpc)

	// 10 XCH at 0.01 per coin derives 1000 coins.
	err := svc.Split(context.Background(), SplitOptions{
		WalletID:      1,
		AmountPerCoin: "0.01",
		TargetCoinID:  id.String(),
		Push:          true,
	})
	require.Error(t, err)
	assert.True(t, clierr.Is(err, clierr.ErrTooManyCoins))
	assert.NotContains(t, rpc.calls, "split_coins")
}

func TestSplitPushFalseSkipsSubmission(t *testing.T) {
	record, id := targetCoin(t, 10_000_000_000_000)
	rpc := newFakeRPC()
	rpc.records = []walletrpc.CoinRecord{record}
	svc, out := newTestService(rpc)

	err := svc.Split(context.Background(), SplitOptions{
		WalletID:      1,
		NumberOfCoins: 10,
		TargetCoinID:  id.String(),
		Push:          false,
	})
	require.NoError(t, err)
	assert.NotContains(t, rpc.calls, "split_coins")
	assert.Contains(t, out.String(), "Would split coin "+id.String()+" into 10 coins of 1 each.")
}

func TestSplitCallOrdering(t *testing.T) {
	record, id := targetCoin(t, 10_000_000_000_000)
	rpc := newFakeRPC()
	rpc.records = []walletrpc.CoinRecord{record}
	rpc.splitResp = txResponse(t)
	svc, out := newTestService(rpc)

	err := svc.Split(context.Background(), SplitOptions{
		WalletID:      1,
		NumberOfCoins: 10,
		TargetCoinID:  id.String(),
		Push:          true,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"get_wallets", "get_sync_status", "get_coin_records_by_names", "split_coins",
	}, rpc.calls)
	assert.Contains(t, out.String(),
		"To get status, use command: coinctl wallet get-transaction -tx "+testBytes32(t, "ff").String())
}

func TestSplitInvalidTargetCoinID(t *testing.T) {
	rpc := newFakeRPC()
	svc, _ := newTestService(rpc)

	err := svc.Split(context.Background(), SplitOptions{
		WalletID:      1,
		NumberOfCoins: 10,
		TargetCoinID:  "nothex",
		Push:          true,
	})
	require.Error(t, err)
	assert.True(t, clierr.Is(err, clierr.ErrInvalidCoinID))
	assert.Empty(t, rpc.calls)
}

func TestListRendersSummaryAndSections(t *testing.T) {
	confirmed, _ := targetCoin(t, 1_000_000_000_000)
	pending := walletrpc.Coin{
		ParentCoinInfo: testBytes32(t, "05"),
		PuzzleHash:     testBytes32(t, "06"),
		Amount:         250_000_000_000,
	}
	removal, _ := targetCoin(t, 500_000_000_000)

	rpc := newFakeRPC()
	rpc.spendable = &walletrpc.SpendableCoins{
		ConfirmedRecords:     []walletrpc.CoinRecord{confirmed},
		UnconfirmedAdditions: []walletrpc.Coin{pending},
		UnconfirmedRemovals:  []walletrpc.CoinRecord{removal},
	}
	svc, out := newTestService(rpc)

	result, err := svc.List(context.Background(), ListOptions{
		WalletID:        1,
		ShowUnconfirmed: true,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, result.TotalCoins)

	text := out.String()
	assert.Contains(t, text, "There are a total of 2 coins in wallet 1.")
	assert.Contains(t, text, "1 confirmed coins.")
	assert.Contains(t, text, "1 unconfirmed additions.")
	assert.Contains(t, text, "1 unconfirmed removals.")
	assert.Contains(t, text, "Confirmed coins:")
	assert.Contains(t, text, "Unconfirmed additions:")
	assert.Contains(t, text, "Unconfirmed removals:")
	assert.Contains(t, text, confirmed.Coin.ID().String())
}

func TestListHidesUnconfirmedByDefault(t *testing.T) {
	confirmed, _ := targetCoin(t, 1_000_000_000_000)
	rpc := newFakeRPC()
	rpc.spendable = &walletrpc.SpendableCoins{
		ConfirmedRecords:     []walletrpc.CoinRecord{confirmed},
		UnconfirmedAdditions: []walletrpc.Coin{confirmed.Coin},
	}
	svc, out := newTestService(rpc)

	_, err := svc.List(context.Background(), ListOptions{WalletID: 1})
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "1 unconfirmed additions.")
	assert.NotContains(t, text, "Unconfirmed additions:")
}

func TestListWalletNotFound(t *testing.T) {
	rpc := newFakeRPC()
	svc, _ := newTestService(rpc)

	_, err := svc.List(context.Background(), ListOptions{WalletID: 9})
	require.Error(t, err)
	assert.True(t, clierr.Is(err, clierr.ErrWalletNotFound))
	assert.NotContains(t, rpc.calls, "get_spendable_coins")
}
