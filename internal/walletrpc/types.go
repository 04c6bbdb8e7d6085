// Package walletrpc defines the wallet RPC wire types and an HTTP client
// for the wallet service's JSON endpoints.
package walletrpc

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	clierr "github.com/mojomint/coinctl/pkg/errors"
)

// Bytes32 is a 32-byte identifier (coin ids, parent ids, puzzle hashes,
// transaction names). Its JSON form is 0x-prefixed hex.
type Bytes32 [32]byte

// CoinID identifies a single coin.
type CoinID = Bytes32

// ParseBytes32 parses a 64-character hex string, with or without a
// leading 0x.
func ParseBytes32(s string) (Bytes32, error) {
	var b Bytes32
	s = strings.TrimPrefix(strings.TrimSpace(s), "0x")
	raw, err := hex.DecodeString(s)
	if err != nil || len(raw) != 32 {
		return b, clierr.WithDetails(clierr.ErrInvalidCoinID, map[string]string{
			"value": s,
		})
	}
	copy(b[:], raw)
	return b, nil
}

// String returns the 0x-prefixed hex form.
func (b Bytes32) String() string {
	return "0x" + hex.EncodeToString(b[:])
}

// MarshalJSON implements json.Marshaler.
func (b Bytes32) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (b *Bytes32) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseBytes32(s)
	if err != nil {
		return fmt.Errorf("invalid bytes32 %q", s)
	}
	*b = parsed
	return nil
}

// Coin is an individual value unit tracked by the wallet.
type Coin struct {
	ParentCoinInfo Bytes32 `json:"parent_coin_info"`
	PuzzleHash     Bytes32 `json:"puzzle_hash"`
	Amount         uint64  `json:"amount"`
}

// ID computes the coin's id: the hash of its parent id, puzzle hash,
// and amount, with the amount serialized as a minimal signed
// big-endian integer.
func (c Coin) ID() CoinID {
	h := sha256.New()
	h.Write(c.ParentCoinInfo[:])
	h.Write(c.PuzzleHash[:])
	h.Write(amountBytes(c.Amount))
	var id CoinID
	copy(id[:], h.Sum(nil))
	return id
}

// amountBytes encodes an amount as a minimal signed big-endian integer:
// empty for zero, and with a leading zero byte when the top bit is set.
func amountBytes(amount uint64) []byte {
	if amount == 0 {
		return nil
	}
	buf := make([]byte, 8)
	for i := 7; i >= 0; i-- {
		buf[i] = byte(amount)
		amount >>= 8
	}
	i := 0
	for i < 7 && buf[i] == 0 {
		i++
	}
	buf = buf[i:]
	if buf[0]&0x80 != 0 {
		buf = append([]byte{0}, buf...)
	}
	return buf
}

// CoinRecord is a coin plus its chain bookkeeping, as returned by the
// wallet service.
type CoinRecord struct {
	Coin                Coin   `json:"coin"`
	ConfirmedBlockIndex uint32 `json:"confirmed_block_index"`
	SpentBlockIndex     uint32 `json:"spent_block_index"`
	Coinbase            bool   `json:"coinbase"`
	Timestamp           uint64 `json:"timestamp"`
}

// WalletInfo describes one wallet held by the service.
type WalletInfo struct {
	ID   uint32 `json:"id"`
	Name string `json:"name"`
	Type int    `json:"type"`
}

// SyncStatus reports the wallet service's chain sync state.
type SyncStatus struct {
	Synced             bool `json:"synced"`
	Syncing            bool `json:"syncing"`
	GenesisInitialized bool `json:"genesis_initialized"`
}

// UnboundedMaxCoinAmount is the sentinel for "no upper bound" in coin
// selection.
const UnboundedMaxCoinAmount uint64 = math.MaxUint64

// CoinSelectionConfig constrains which coins the wallet may select.
// Amount bounds are inclusive.
type CoinSelectionConfig struct {
	MinCoinAmount       uint64   `json:"min_coin_amount"`
	MaxCoinAmount       uint64   `json:"max_coin_amount"`
	ExcludedCoinAmounts []uint64 `json:"excluded_coin_amounts"`
	ExcludedCoinIDs     []CoinID `json:"excluded_coin_ids"`
}

// DefaultCoinSelectionConfig returns an unconstrained selection config.
func DefaultCoinSelectionConfig() CoinSelectionConfig {
	return CoinSelectionConfig{
		MinCoinAmount:       0,
		MaxCoinAmount:       UnboundedMaxCoinAmount,
		ExcludedCoinAmounts: []uint64{},
		ExcludedCoinIDs:     []CoinID{},
	}
}

// TxConfig is the transaction configuration submitted with every
// mutating request.
type TxConfig struct {
	CoinSelectionConfig
	ReusePuzhash bool `json:"reuse_puzhash"`
}

// TimelockInfo is the validity window attached to outgoing requests.
// Zero values mean unset and are omitted on the wire.
type TimelockInfo struct {
	MinTime uint64 `json:"min_time,omitempty"`
	MaxTime uint64 `json:"max_time,omitempty"`
}

// MaxCombineCoins bounds how many coins one combine request may touch.
const MaxCombineCoins = 500

// CombineRequest asks the wallet to merge coins into fewer, larger ones.
type CombineRequest struct {
	WalletID         uint32   `json:"wallet_id"`
	NumberOfCoins    uint16   `json:"number_of_coins"`
	LargestFirst     bool     `json:"largest_first"`
	TargetCoinIDs    []CoinID `json:"target_coin_ids"`
	TargetCoinAmount *uint64  `json:"target_coin_amount,omitempty"`
	Fee              uint64   `json:"fee"`
	Push             bool     `json:"push"`
}

// SplitRequest asks the wallet to divide one coin into smaller ones.
type SplitRequest struct {
	WalletID      uint32 `json:"wallet_id"`
	NumberOfCoins uint16 `json:"number_of_coins"`
	AmountPerCoin uint64 `json:"amount_per_coin"`
	TargetCoinID  CoinID `json:"target_coin_id"`
	Fee           uint64 `json:"fee"`
	Push          bool   `json:"push"`
}

// TransactionRecord is the subset of a wallet transaction the CLI
// renders: its name and the coins it removes and creates.
type TransactionRecord struct {
	Name      Bytes32 `json:"name"`
	Removals  []Coin  `json:"removals"`
	Additions []Coin  `json:"additions"`
}

// SpendableCoins is the wallet's view of a wallet id's coin set.
type SpendableCoins struct {
	ConfirmedRecords     []CoinRecord `json:"confirmed_records"`
	UnconfirmedRemovals  []CoinRecord `json:"unconfirmed_removals"`
	UnconfirmedAdditions []Coin       `json:"unconfirmed_additions"`
}

// TransactionResponse is returned by the mutating combine/split
// endpoints.
type TransactionResponse struct {
	Transactions []TransactionRecord `json:"transactions"`
}
