package policy

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrInvalidPrice is returned when a price string cannot be parsed.
// A malformed price is a data-integrity failure and must never silently
// become a zero-price booking.
var ErrInvalidPrice = errors.New("invalid price value")

// ParsePrice parses a decimal money amount from its stored text form.
func ParsePrice(raw string) (decimal.Decimal, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return decimal.Zero, ErrInvalidPrice
	}
	price, err := decimal.NewFromString(trimmed)
	if err != nil {
		return decimal.Zero, ErrInvalidPrice
	}
	if price.IsNegative() {
		return decimal.Zero, ErrInvalidPrice
	}
	return price, nil
}
