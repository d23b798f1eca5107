package currency

import (
	"database/sql/driver"
	"errors"
	"math"
)

type Currency string

const (
	CurrencyUSD Currency = "USD"
)

var ErrInvalidCurrency = errors.New("invalid currency")

func (c Currency) String() string {
	return string(c)
}

func (c Currency) Value() (driver.Value, error) {
	return c.String(), nil
}

func ParseCurrency(s string) (Currency, error) {
	switch s {
	case CurrencyUSD.String():
		return CurrencyUSD, nil
	default:
		return "", ErrInvalidCurrency
	}
}

// ToCents converts a decimal amount of currency units to integer cents,
// rounding half a cent up.
func ToCents(amount float64) int64 {
	return int64(math.Floor(amount*100 + 0.5))
}

// FromCents converts integer cents back to decimal currency units.
func FromCents(cents int64) float64 {
	return float64(cents) / 100
}
