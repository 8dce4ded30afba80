// Package indicators computes moving averages over daily closes.
package indicators

import (
	"fmt"

	"github.com/cinar/indicator"
)

// Value is one point of an indicator series. OK is false while the
// indicator is still warming up.
type Value struct {
	V  float64
	OK bool
}

// SMA returns the simple moving average of closes for period, aligned with
// closes. The first period-1 entries are not OK.
func SMA(closes []float64, period int) ([]Value, error) {
	if period <= 0 {
		return nil, fmt.Errorf("period must be positive, got %d", period)
	}
	out := make([]Value, len(closes))
	if len(closes) == 0 {
		return out, nil
	}

	// indicator.Sma averages whatever it has during warm-up.
	raw := indicator.Sma(period, closes)
	for i, v := range raw {
		out[i] = Value{V: v, OK: i >= period-1}
	}
	return out, nil
}

// Last returns the latest valid value of s.
func Last(s []Value) (float64, bool) {
	if len(s) == 0 || !s[len(s)-1].OK {
		return 0, false
	}
	return s[len(s)-1].V, true
}
