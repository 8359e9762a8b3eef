package utils

import (
	"fmt"
	"math"
	"math/big"
	"strings"

	"go-ao-staking/internal/models"
)

// shortUnits is ordered smallest first
var shortUnits = []struct {
	suffix string
	value  float64
}{
	{"", 1},
	{"K", 1e3},
	{"M", 1e6},
	{"B", 1e9},
	{"T", 1e12},
}

// FormatUnits converts a raw integer amount into a decimal string using denomination decimals.
// Trailing zeros are trimmed: ("500000000", 8) is "5", ("123450000", 8) is "1.2345".
func FormatUnits(raw string, decimals int) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "0", nil
	}
	if decimals < 0 {
		return "", fmt.Errorf("%w: negative denomination %d", models.ErrMalformedResponse, decimals)
	}

	amount, ok := new(big.Int).SetString(raw, 10)
	if !ok {
		return "", fmt.Errorf("%w: amount %q is not an integer", models.ErrMalformedResponse, raw)
	}

	sign := ""
	if amount.Sign() < 0 {
		sign = "-"
		amount.Abs(amount)
	}

	divisor := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
	whole, frac := new(big.Int).QuoRem(amount, divisor, new(big.Int))

	if frac.Sign() == 0 {
		return sign + whole.String(), nil
	}

	fracStr := frac.String()
	fracStr = strings.Repeat("0", decimals-len(fracStr)) + fracStr
	fracStr = strings.TrimRight(fracStr, "0")
	return sign + whole.String() + "." + fracStr, nil
}

// FormatShort renders a decimal string for display with at most two fraction digits
// and a K, M, B or T suffix: "1234.5" is "1.23K", "4500000" is "4.5M".
func FormatShort(decimal string) string {
	value, ok := new(big.Float).SetString(decimal)
	if !ok {
		return decimal
	}
	f, _ := value.Float64()

	sign := ""
	if f < 0 {
		sign = "-"
		f = -f
	}

	unit := 0
	for unit+1 < len(shortUnits) && f >= shortUnits[unit+1].value {
		unit++
	}

	// rounding can carry into the next unit: 999999 is 999.999K, shown as 1M
	scaled := round2(f / shortUnits[unit].value)
	if scaled >= 1000 && unit+1 < len(shortUnits) {
		unit++
		scaled = round2(f / shortUnits[unit].value)
	}
	return sign + trimFixed(scaled) + shortUnits[unit].suffix
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

// FormatAmount is FormatUnits followed by FormatShort
func FormatAmount(raw string, decimals int) (string, error) {
	decimal, err := FormatUnits(raw, decimals)
	if err != nil {
		return "", err
	}
	return FormatShort(decimal), nil
}

func trimFixed(f float64) string {
	s := fmt.Sprintf("%.2f", f)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}
