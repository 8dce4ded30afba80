package sim

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Action string

const (
	Buy  Action = "buy"
	Sell Action = "sell"
	Hold Action = "hold"
)

// ParseAction accepts the action names and their one-letter forms.
func ParseAction(s string) (Action, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "buy", "b":
		return Buy, nil
	case "sell", "s":
		return Sell, nil
	case "hold", "h":
		return Hold, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAction, s)
}

// TradeRecord is one entry of the ledger's append-only log. Shares is the
// position after a buy and zero otherwise. Cash is the balance after the
// action.
type TradeRecord struct {
	Seq    int
	Date   time.Time
	Action Action
	Price  decimal.Decimal
	Shares int64
	Cash   decimal.Decimal
}

// Snapshot is the read-only state handed to the presentation layer.
type Snapshot struct {
	Date      time.Time
	Open      decimal.Decimal
	Close     decimal.Decimal
	Position  int64
	Cash      decimal.Decimal
	Equity    decimal.Decimal
	Cursor    int
	Remaining int
	Done      bool
}
