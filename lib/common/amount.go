// Amounts are integers in the smallest unit of their currency: wei for ether,
// and 10^-18 of a token for the governance token, which has the same number
// of decimals.
//
// `ParseUnits` and `FormatUnits` convert from and to the decimal
// representation operators type and read.
package common

import (
	"math/big"
	"strings"

	"boscoin.io/tokenvote/lib/errors"
)

const EtherDecimals = 18

// ParseUnits parses a non-negative decimal string like "10" or "0.01" into
// its integer amount with `decimals` digits after the point.
func ParseUnits(input string, decimals int) (*big.Int, error) {
	s := strings.TrimSpace(input)
	if len(s) < 1 {
		return nil, errors.InvalidAmount.Clone().SetData("amount", input)
	}

	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return nil, errors.InvalidAmount.Clone().SetData("amount", input)
	}

	whole := parts[0]
	var fraction string
	if len(parts) == 2 {
		fraction = parts[1]
	}
	if len(whole) < 1 {
		whole = "0"
	}
	if len(fraction) > decimals {
		return nil, errors.InvalidAmount.Clone().
			SetData("amount", input).
			SetData("reason", "too many decimals")
	}
	if !isDigits(whole) || !isDigits(fraction) {
		return nil, errors.InvalidAmount.Clone().SetData("amount", input)
	}

	fraction += strings.Repeat("0", decimals-len(fraction))

	v, ok := new(big.Int).SetString(whole+fraction, 10)
	if !ok {
		return nil, errors.InvalidAmount.Clone().SetData("amount", input)
	}

	return v, nil
}

func ParseEther(input string) (*big.Int, error) {
	return ParseUnits(input, EtherDecimals)
}

// MustParseEther is for constants and tests only.
func MustParseEther(input string) *big.Int {
	v, err := ParseEther(input)
	if err != nil {
		panic(err)
	}

	return v
}

// FormatUnits renders `v` with `decimals` digits after the point, keeping at
// least one fractional digit: 10^19 with 18 decimals is "10.0".
func FormatUnits(v *big.Int, decimals int) string {
	if v == nil {
		return "0.0"
	}

	s := new(big.Int).Abs(v).String()
	if decimals < 1 {
		if v.Sign() < 0 {
			return "-" + s
		}
		return s
	}

	if len(s) <= decimals {
		s = strings.Repeat("0", decimals-len(s)+1) + s
	}

	whole := s[:len(s)-decimals]
	fraction := strings.TrimRight(s[len(s)-decimals:], "0")
	if len(fraction) < 1 {
		fraction = "0"
	}

	formatted := whole + "." + fraction
	if v.Sign() < 0 {
		formatted = "-" + formatted
	}

	return formatted
}

func FormatEther(v *big.Int) string {
	return FormatUnits(v, EtherDecimals)
}

func isDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}

	return true
}
