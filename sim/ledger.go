package sim

import (
	"fmt"
	"slices"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/rustyeddy/dayreplay/internal/logging"
	"github.com/rustyeddy/dayreplay/journal"
	"github.com/rustyeddy/dayreplay/market"
)

// Options configure a Ledger.
type Options struct {
	InitialCapital decimal.Decimal
	StartCursor    int
	SessionID      string
	Journal        journal.Journal    // optional, receives every accepted action
	Logger         logrus.FieldLogger // optional
}

// DefaultOptions starts with 100000 in cash and 64 bars of history behind
// the cursor.
func DefaultOptions() Options {
	return Options{
		InitialCapital: decimal.NewFromInt(100000),
		StartCursor:    64,
	}
}

// Ledger tracks cash, position, the trade log and the equity curve for one
// session. It is not safe for concurrent use; callers apply one action at a
// time.
type Ledger struct {
	bars    []market.Bar
	initial decimal.Decimal
	session string

	cursor   int
	cash     decimal.Decimal
	position int64
	trades   []TradeRecord
	equity   []decimal.Decimal

	journal journal.Journal
	log     logrus.FieldLogger
}

func NewLedger(bars []market.Bar, opts Options) (*Ledger, error) {
	if len(bars) == 0 {
		return nil, fmt.Errorf("%w: no bars", ErrBadSession)
	}
	if opts.StartCursor < 0 || opts.StartCursor >= len(bars) {
		return nil, fmt.Errorf("%w: start cursor %d outside %d bars", ErrBadSession, opts.StartCursor, len(bars))
	}
	if opts.InitialCapital.IsNegative() {
		return nil, fmt.Errorf("%w: negative capital %s", ErrBadSession, opts.InitialCapital)
	}

	j := opts.Journal
	if j == nil {
		j = journal.Nop{}
	}

	return &Ledger{
		bars:    bars,
		initial: opts.InitialCapital,
		session: opts.SessionID,
		cursor:  opts.StartCursor,
		cash:    opts.InitialCapital,
		equity:  []decimal.Decimal{opts.InitialCapital},
		journal: j,
		log:     logging.Or(opts.Logger).WithField("session", opts.SessionID),
	}, nil
}

// Done reports whether the cursor sits on the last bar.
func (l *Ledger) Done() bool {
	return l.cursor >= len(l.bars)-1
}

func (l *Ledger) Cursor() int { return l.cursor }

// Remaining is the number of actions still accepted.
func (l *Ledger) Remaining() int {
	return len(l.bars) - 1 - l.cursor
}

// Current returns the bar under the cursor.
func (l *Ledger) Current() market.Bar {
	return l.bars[l.cursor]
}

// Bars returns the whole session including bars past the cursor.
func (l *Ledger) Bars() []market.Bar {
	return slices.Clone(l.bars)
}

// Visible returns the bars up to and including the cursor.
func (l *Ledger) Visible() []market.Bar {
	return slices.Clone(l.bars[:l.cursor+1])
}

func (l *Ledger) Trades() []TradeRecord {
	return slices.Clone(l.trades)
}

func (l *Ledger) Equity() []decimal.Decimal {
	return slices.Clone(l.equity)
}

func (l *Ledger) InitialCapital() decimal.Decimal { return l.initial }

func (l *Ledger) Snapshot() Snapshot {
	bar := l.bars[l.cursor]
	return Snapshot{
		Date:      bar.Date,
		Open:      bar.Open,
		Close:     bar.Close,
		Position:  l.position,
		Cash:      l.cash,
		Equity:    l.cash.Add(bar.Close.Mul(decimal.NewFromInt(l.position))),
		Cursor:    l.cursor,
		Remaining: l.Remaining(),
		Done:      l.Done(),
	}
}

func (l *Ledger) Buy() (Snapshot, error) { return l.Execute(Buy) }
func (l *Ledger) Sell() (Snapshot, error) { return l.Execute(Sell) }
func (l *Ledger) Hold() (Snapshot, error) { return l.Execute(Hold) }

// Execute applies a at the close of the bar under the cursor and advances
// the cursor. A rejected action returns the unchanged snapshot and an error.
func (l *Ledger) Execute(a Action) (Snapshot, error) {
	if l.Done() {
		return l.Snapshot(), ErrEndOfData
	}

	bar := l.bars[l.cursor]
	price := bar.Close
	cash, position := l.cash, l.position

	switch a {
	case Buy:
		if position > 0 {
			return l.reject(a, ErrAlreadyHolding)
		}
		if !price.IsPositive() {
			return l.reject(a, fmt.Errorf("%w: close %s on %s", ErrInvalidPrice, price, bar.DateString()))
		}
		q, _ := cash.QuoRem(price, 0)
		shares := q.IntPart()
		if shares < 1 {
			return l.reject(a, fmt.Errorf("%w: price %s, cash %s", ErrNoCash, price.StringFixed(2), cash.StringFixed(2)))
		}
		position = shares
		cash = cash.Sub(price.Mul(decimal.NewFromInt(shares)))
	case Sell:
		if position == 0 {
			return l.reject(a, ErrNoPosition)
		}
		cash = cash.Add(price.Mul(decimal.NewFromInt(position)))
		position = 0
	case Hold:
	default:
		return l.reject(a, fmt.Errorf("%w: %q", ErrUnknownAction, a))
	}

	var shares int64
	if a == Buy {
		shares = position
	}
	rec := TradeRecord{
		Seq:    len(l.trades) + 1,
		Date:   bar.Date,
		Action: a,
		Price:  price,
		Shares: shares,
		Cash:   cash,
	}
	equity := cash.Add(price.Mul(decimal.NewFromInt(position)))

	if err := l.record(rec, equity); err != nil {
		return l.reject(a, err)
	}

	l.cash = cash
	l.position = position
	l.trades = append(l.trades, rec)
	l.equity = append(l.equity, equity)
	l.cursor++

	l.log.WithFields(logrus.Fields{
		"action":   a,
		"date":     bar.DateString(),
		"price":    price.String(),
		"position": position,
		"cash":     cash.String(),
		"equity":   equity.String(),
	}).Debug("action applied")

	return l.Snapshot(), nil
}

func (l *Ledger) record(rec TradeRecord, equity decimal.Decimal) error {
	err := l.journal.RecordAction(journal.TradeRecord{
		SessionID: l.session,
		Seq:       rec.Seq,
		Date:      rec.Date,
		Action:    string(rec.Action),
		Price:     rec.Price,
		Shares:    rec.Shares,
		Cash:      rec.Cash,
	}, journal.EquitySnapshot{
		SessionID: l.session,
		Seq:       rec.Seq,
		Date:      rec.Date,
		Equity:    equity,
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrJournal, err)
	}
	return nil
}

func (l *Ledger) reject(a Action, err error) (Snapshot, error) {
	l.log.WithError(err).WithField("action", a).Debug("action rejected")
	return l.Snapshot(), err
}
