package market

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the display form of a bar date.
const DateLayout = "2006-01-02"

// Bar is one trading day for an instrument. Date carries no time of day;
// it is always midnight UTC.
type Bar struct {
	Date   time.Time
	Open   decimal.Decimal
	High   decimal.Decimal
	Low    decimal.Decimal
	Close  decimal.Decimal
	Volume uint64
}

func (b Bar) DateString() string {
	return b.Date.Format(DateLayout)
}

// Closes returns closing prices as float64, the form indicator libraries
// expect.
func Closes(bars []Bar) []float64 {
	out := make([]float64, len(bars))
	for i, b := range bars {
		out[i] = b.Close.InexactFloat64()
	}
	return out
}

// Day returns midnight UTC of the given calendar day.
func Day(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
