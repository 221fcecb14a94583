package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Price is a fixed-point decimal amount with two fraction digits, stored as
// hundredths. It round-trips the wire format "5.25" exactly, which a float
// would not.
type Price int64

// ParsePrice parses a decimal string such as "5.25", "7", or "0.50" into a
// Price. At most two fraction digits are accepted; negative amounts are
// rejected.
func ParsePrice(s string) (Price, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("price is empty")
	}
	if strings.HasPrefix(s, "-") {
		return 0, fmt.Errorf("price cannot be negative: %q", s)
	}

	whole := s
	frac := ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		whole, frac = s[:i], s[i+1:]
	}
	if whole == "" {
		whole = "0"
	}
	if len(frac) > 2 {
		return 0, fmt.Errorf("price has more than two fraction digits: %q", s)
	}
	// Digits only; ParseInt alone would accept a signed fraction like "5.-1".
	for i := 0; i < len(frac); i++ {
		if frac[i] < '0' || frac[i] > '9' {
			return 0, fmt.Errorf("invalid price %q", s)
		}
	}
	// Right-pad to hundredths ("5.2" -> 20).
	for len(frac) < 2 {
		frac += "0"
	}

	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid price %q: %w", s, err)
	}
	cents, err := strconv.ParseInt(frac, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid price %q: %w", s, err)
	}

	return Price(units*100 + cents), nil
}

// String renders the price in the canonical wire format ("5.25").
func (p Price) String() string {
	return fmt.Sprintf("%d.%02d", int64(p)/100, int64(p)%100)
}

// Hundredths returns the raw fixed-point value for storage.
func (p Price) Hundredths() int64 {
	return int64(p)
}

// PriceFromHundredths restores a Price from its stored representation.
func PriceFromHundredths(v int64) Price {
	return Price(v)
}

// MarshalText encodes the price as its decimal string.
func (p Price) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText parses the decimal string form.
func (p *Price) UnmarshalText(b []byte) error {
	v, err := ParsePrice(string(b))
	if err != nil {
		return err
	}
	*p = v
	return nil
}
