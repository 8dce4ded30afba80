package stats

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/dayreplay/market"
	"github.com/rustyeddy/dayreplay/sim"
)

func trade(a sim.Action, price string) sim.TradeRecord {
	return sim.TradeRecord{
		Date:   market.Day(2024, 1, 2),
		Action: a,
		Price:  decimal.RequireFromString(price),
	}
}

func curve(vals ...int64) []decimal.Decimal {
	out := make([]decimal.Decimal, len(vals))
	for i, v := range vals {
		out[i] = decimal.NewFromInt(v)
	}
	return out
}

func TestWinRate(t *testing.T) {
	tests := []struct {
		name   string
		trades []sim.TradeRecord
		rate   float64
		wins   int
		paired int
	}{
		{"empty", nil, 0, 0, 0},
		{"open buy only", []sim.TradeRecord{trade(sim.Buy, "10")}, 0, 0, 0},
		{
			"one win one flat",
			[]sim.TradeRecord{
				trade(sim.Buy, "10"), trade(sim.Sell, "12"),
				trade(sim.Buy, "8"), trade(sim.Sell, "8"),
			},
			0.5, 1, 2,
		},
		{
			"holds ignored",
			[]sim.TradeRecord{
				trade(sim.Hold, "9"), trade(sim.Buy, "10"),
				trade(sim.Hold, "11"), trade(sim.Sell, "10.01"),
			},
			1, 1, 1,
		},
		{
			"loss then open position",
			[]sim.TradeRecord{
				trade(sim.Buy, "10"), trade(sim.Sell, "9.99"),
				trade(sim.Buy, "5"),
			},
			0, 0, 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rate, wins, paired := WinRate(tt.trades)
			assert.InDelta(t, tt.rate, rate, 1e-12)
			assert.Equal(t, tt.wins, wins)
			assert.Equal(t, tt.paired, paired)
		})
	}
}

func TestMaxDrawdown(t *testing.T) {
	assert.InDelta(t, 15000.0/110000.0, MaxDrawdown(curve(100000, 110000, 95000, 105000)), 1e-12)
	assert.Zero(t, MaxDrawdown(nil))
	assert.Zero(t, MaxDrawdown(curve(100, 110, 120)))
	assert.Zero(t, MaxDrawdown(curve(0, 0, 0)))
	assert.InDelta(t, 0.5, MaxDrawdown(curve(100, 50, 200, 150)), 1e-12)
}

func TestTotalReturn(t *testing.T) {
	assert.InDelta(t, 0.05, TotalReturn(curve(100000, 110000, 95000, 105000)), 1e-12)
	assert.Zero(t, TotalReturn(nil))
	assert.Zero(t, TotalReturn(curve(0, 10)))
	assert.InDelta(t, -0.25, TotalReturn(curve(100, 75)), 1e-12)
}

func TestSummarize(t *testing.T) {
	trades := []sim.TradeRecord{
		trade(sim.Buy, "10"), trade(sim.Sell, "12"),
		trade(sim.Buy, "8"), trade(sim.Sell, "8"),
	}
	s := Summarize(trades, curve(100000, 110000, 95000, 105000))

	assert.True(t, s.Initial.Equal(decimal.NewFromInt(100000)))
	assert.True(t, s.Final.Equal(decimal.NewFromInt(105000)))
	assert.Equal(t, 1, s.Wins)
	assert.Equal(t, 1, s.Losses)
	assert.Equal(t, 2, s.Paired)
	assert.Equal(t, 4, s.Actions)
	assert.InDelta(t, 0.5, s.WinRate, 1e-12)
}

func TestPrintSummary(t *testing.T) {
	s := Summarize(nil, curve(100000, 125000))
	var buf bytes.Buffer
	PrintSummary(&buf, s)

	out := buf.String()
	require.NotEmpty(t, out)
	assert.Contains(t, out, "100,000.00")
	assert.Contains(t, out, "125,000.00")
	assert.Contains(t, out, "25.00%")
	assert.Contains(t, out, "Win Rate:        0.00%")
}
