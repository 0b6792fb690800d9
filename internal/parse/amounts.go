package parse

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/dropforge/dropforge/internal/config"
)

// ParseUnits converts a decimal string into an exact integer in the token's
// smallest unit: value × 10^decimals. Parsing goes through big.Int string
// math only; floating point never touches the value.
func ParseUnits(value string, decimals uint8) (*big.Int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, fmt.Errorf("%w: empty value", config.ErrInvalidAmount)
	}
	if strings.HasPrefix(value, "-") {
		return nil, fmt.Errorf("%w: negative value %q", config.ErrInvalidAmount, value)
	}

	whole, frac, _ := strings.Cut(value, ".")
	if whole == "" {
		whole = "0"
	}
	if !isDigits(whole) || (frac != "" && !isDigits(frac)) {
		return nil, fmt.Errorf("%w: %q is not a decimal number", config.ErrInvalidAmount, value)
	}
	if len(frac) > int(decimals) {
		return nil, fmt.Errorf("%w: %q has more than %d decimal places", config.ErrInvalidAmount, value, decimals)
	}

	// Pad the fractional part to exactly `decimals` digits, then read the
	// concatenation as one integer.
	frac += strings.Repeat("0", int(decimals)-len(frac))

	scaled, ok := new(big.Int).SetString(whole+frac, 10)
	if !ok {
		return nil, fmt.Errorf("%w: cannot parse %q", config.ErrInvalidAmount, value)
	}
	return scaled, nil
}

// ParseInteger converts a plain non-negative integer string (token ids,
// ERC-1155 quantities) into a big.Int. No scaling is applied.
func ParseInteger(value string) (*big.Int, error) {
	value = strings.TrimSpace(value)
	if value == "" || !isDigits(value) {
		return nil, fmt.Errorf("%w: %q is not a non-negative integer", config.ErrInvalidAmount, value)
	}
	n, ok := new(big.Int).SetString(value, 10)
	if !ok {
		return nil, fmt.Errorf("%w: cannot parse %q", config.ErrInvalidAmount, value)
	}
	return n, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// FormatUnits renders an integer amount in the token's smallest unit back to
// a decimal string, trimming trailing fractional zeros.
func FormatUnits(amount *big.Int, decimals uint8) string {
	if amount == nil {
		return "0"
	}
	s := amount.String()
	if decimals == 0 {
		return s
	}

	d := int(decimals)
	if len(s) <= d {
		s = strings.Repeat("0", d-len(s)+1) + s
	}
	whole := s[:len(s)-d]
	frac := strings.TrimRight(s[len(s)-d:], "0")
	if frac == "" {
		return whole
	}
	return whole + "." + frac
}
