// journal/journal.go
package journal

import (
	"time"

	"github.com/shopspring/decimal"
)

// SessionRun describes one replay session and, once finished, its results.
type SessionRun struct {
	SessionID      string
	Market         string
	Code           string
	Source         string
	Start          time.Time // first bar of the window
	End            time.Time // last bar of the window
	TradeStart     time.Time // bar under the cursor when trading began
	InitialCapital decimal.Decimal
	Created        time.Time

	Finished    bool
	FinalEquity decimal.Decimal
	TotalReturn float64
	WinRate     float64
	MaxDrawdown float64
	Paired      int
	Wins        int
}

// SessionResult carries the end-of-session statistics.
type SessionResult struct {
	SessionID   string
	FinalEquity decimal.Decimal
	TotalReturn float64
	WinRate     float64
	MaxDrawdown float64
	Paired      int
	Wins        int
}

// TradeRecord is one ledger action.
type TradeRecord struct {
	SessionID string
	Seq       int
	Date      time.Time
	Action    string
	Price     decimal.Decimal
	Shares    int64
	Cash      decimal.Decimal
}

// EquitySnapshot is one point of the equity curve. Seq 0 is the initial
// capital.
type EquitySnapshot struct {
	SessionID string
	Seq       int
	Date      time.Time
	Equity    decimal.Decimal
}

// Journal persists sessions. RecordSession also writes the opening equity
// point (seq 0, the initial capital at TradeStart). RecordAction writes a
// trade and the equity point that follows it; either both are stored or
// neither is.
type Journal interface {
	RecordSession(SessionRun) error
	RecordAction(TradeRecord, EquitySnapshot) error
	FinishSession(SessionResult) error
	Close() error
}

// Nop discards everything.
type Nop struct{}

func (Nop) RecordSession(SessionRun) error { return nil }
func (Nop) RecordAction(TradeRecord, EquitySnapshot) error { return nil }
func (Nop) FinishSession(SessionResult) error { return nil }
func (Nop) Close() error { return nil }

func openingEquity(r SessionRun) EquitySnapshot {
	return EquitySnapshot{
		SessionID: r.SessionID,
		Seq:       0,
		Date:      r.TradeStart,
		Equity:    r.InitialCapital,
	}
}

const dateLayout = "2006-01-02"
