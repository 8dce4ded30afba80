// Package view builds what the player is allowed to see at the cursor: the
// trailing window of bars, moving averages and trade markers.
package view

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rustyeddy/dayreplay/indicators"
	"github.com/rustyeddy/dayreplay/market"
	"github.com/rustyeddy/dayreplay/sim"
)

// MASeries is one moving average aligned with Window.Bars.
type MASeries struct {
	Period int
	Values []indicators.Value
}

// Window is a read-only display model.
type Window struct {
	Start  int // session index of Bars[0]
	Cursor int
	Bars   []market.Bar
	MA     []MASeries
	Buys   map[time.Time]decimal.Decimal
	Sells  map[time.Time]decimal.Decimal
}

// Build returns the window of at most size bars ending at cursor. Bars past
// the cursor are never read. A moving average is included only when its
// period is shorter than the window; it is computed over all history up to
// the cursor so it is valid from the first bar of the window when enough
// history exists.
func Build(bars []market.Bar, cursor, size int, periods []int, trades []sim.TradeRecord) (Window, error) {
	if cursor < 0 || cursor >= len(bars) {
		return Window{}, fmt.Errorf("cursor %d outside %d bars", cursor, len(bars))
	}
	if size <= 0 {
		return Window{}, fmt.Errorf("window size must be positive, got %d", size)
	}

	history := bars[:cursor+1]
	start := max(0, cursor-size+1)

	w := Window{
		Start:  start,
		Cursor: cursor,
		Bars:   append([]market.Bar(nil), history[start:]...),
		Buys:   make(map[time.Time]decimal.Decimal),
		Sells:  make(map[time.Time]decimal.Decimal),
	}

	closes := market.Closes(history)
	for _, p := range periods {
		if p >= len(w.Bars) {
			continue
		}
		vals, err := indicators.SMA(closes, p)
		if err != nil {
			return Window{}, err
		}
		w.MA = append(w.MA, MASeries{Period: p, Values: vals[start:]})
	}

	first, last := w.Bars[0].Date, w.Bars[len(w.Bars)-1].Date
	for _, t := range trades {
		if t.Date.Before(first) || t.Date.After(last) {
			continue
		}
		switch t.Action {
		case sim.Buy:
			w.Buys[t.Date] = t.Price
		case sim.Sell:
			w.Sells[t.Date] = t.Price
		}
	}
	return w, nil
}

// Marker returns "B", "S" or "" for the bar at i.
func (w Window) Marker(i int) string {
	d := w.Bars[i].Date
	if _, ok := w.Buys[d]; ok {
		return "B"
	}
	if _, ok := w.Sells[d]; ok {
		return "S"
	}
	return ""
}
