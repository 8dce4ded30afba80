package market

import "github.com/shopspring/decimal"

// PriceExp is the decimal exponent of prices stored in day files.
// A stored value of 1234 means 12.34.
const PriceExp int32 = -2

// FromCents converts a fixed-point price into an exact decimal.
func FromCents(c uint32) decimal.Decimal {
	return decimal.New(int64(c), PriceExp)
}
