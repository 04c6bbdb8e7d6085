// Package units converts between display units (XCH) and the wallet's
// integer base units (mojo). 1 XCH is 10^12 mojo; conversions are exact
// and never round.
package units

import (
	"math/big"
	"strings"

	"github.com/shopspring/decimal"

	clierr "github.com/mojomint/coinctl/pkg/errors"
)

// Scale is the number of decimal digits between XCH and mojo.
const Scale = 12

// MojoPerXCH is the number of base units in one display unit.
const MojoPerXCH uint64 = 1_000_000_000_000

// ToMojo converts a decimal display-unit amount to mojo. It fails for
// malformed or negative input and for literals with more than Scale
// fractional digits, which could not be represented without rounding.
func ToMojo(amount string) (uint64, error) {
	amount = strings.TrimSpace(amount)
	if amount == "" {
		return 0, clierr.ErrInvalidAmount
	}

	d, err := decimal.NewFromString(amount)
	if err != nil {
		return 0, clierr.WithDetails(clierr.ErrInvalidAmount, map[string]string{
			"amount": amount,
		})
	}
	if d.IsNegative() {
		return 0, clierr.WithDetails(clierr.ErrInvalidAmount, map[string]string{
			"amount": amount,
			"reason": "amount cannot be negative",
		})
	}

	shifted := d.Shift(Scale)
	if !shifted.IsInteger() {
		return 0, clierr.WithDetails(clierr.ErrAmountPrecision, map[string]string{
			"amount": amount,
		})
	}

	bi := shifted.BigInt()
	if !bi.IsUint64() {
		return 0, clierr.WithDetails(clierr.ErrInvalidAmount, map[string]string{
			"amount": amount,
			"reason": "amount too large",
		})
	}

	return bi.Uint64(), nil
}

// FromMojo converts a mojo amount to its canonical display form:
// a plain decimal string with trailing zeros trimmed.
func FromMojo(mojo uint64) string {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(mojo), -Scale).String()
}

// ToMojoEach converts a slice of decimal display amounts, preserving order.
func ToMojoEach(amounts []string) ([]uint64, error) {
	if len(amounts) == 0 {
		return nil, nil
	}
	converted := make([]uint64, 0, len(amounts))
	for _, a := range amounts {
		mojo, err := ToMojo(a)
		if err != nil {
			return nil, err
		}
		converted = append(converted, mojo)
	}
	return converted, nil
}
