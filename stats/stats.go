// Package stats computes session performance from a ledger's trade log and
// equity curve. Nothing here reads the session or the cursor.
package stats

import (
	"github.com/shopspring/decimal"

	"github.com/rustyeddy/dayreplay/sim"
)

// Summary is the end-of-session report.
type Summary struct {
	Initial     decimal.Decimal
	Final       decimal.Decimal
	TotalReturn float64
	WinRate     float64
	Wins        int
	Losses      int
	Paired      int
	MaxDrawdown float64
	Actions     int
}

// WinRate pairs every sell with the buy before it. A pair wins when the
// sell price is strictly above the buy price.
func WinRate(trades []sim.TradeRecord) (rate float64, wins, paired int) {
	var (
		entry   decimal.Decimal
		pending bool
	)
	for _, t := range trades {
		switch t.Action {
		case sim.Buy:
			entry, pending = t.Price, true
		case sim.Sell:
			if !pending {
				continue
			}
			paired++
			if t.Price.GreaterThan(entry) {
				wins++
			}
			pending = false
		}
	}
	if paired == 0 {
		return 0, 0, 0
	}
	return float64(wins) / float64(paired), wins, paired
}

// MaxDrawdown is the largest fractional fall from a running peak.
func MaxDrawdown(curve []decimal.Decimal) float64 {
	if len(curve) == 0 {
		return 0
	}
	peak := curve[0]
	maxDD := decimal.Zero
	for _, v := range curve {
		if v.GreaterThan(peak) {
			peak = v
		}
		if !peak.IsPositive() || !v.LessThan(peak) {
			continue
		}
		dd := peak.Sub(v).Div(peak)
		if dd.GreaterThan(maxDD) {
			maxDD = dd
		}
	}
	return maxDD.InexactFloat64()
}

// TotalReturn is final/initial - 1 where initial is the first curve point.
func TotalReturn(curve []decimal.Decimal) float64 {
	if len(curve) == 0 || !curve[0].IsPositive() {
		return 0
	}
	first, last := curve[0], curve[len(curve)-1]
	return last.Div(first).Sub(decimal.NewFromInt(1)).InexactFloat64()
}

func Summarize(trades []sim.TradeRecord, curve []decimal.Decimal) Summary {
	rate, wins, paired := WinRate(trades)
	s := Summary{
		TotalReturn: TotalReturn(curve),
		WinRate:     rate,
		Wins:        wins,
		Losses:      paired - wins,
		Paired:      paired,
		MaxDrawdown: MaxDrawdown(curve),
		Actions:     len(trades),
	}
	if len(curve) > 0 {
		s.Initial = curve[0]
		s.Final = curve[len(curve)-1]
	}
	return s
}
