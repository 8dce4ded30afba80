package sim

import "errors"

var (
	ErrEndOfData      = errors.New("end of data: no more bars to trade")
	ErrAlreadyHolding = errors.New("already holding a position: sell first")
	ErrNoCash         = errors.New("insufficient cash for one share")
	ErrNoPosition     = errors.New("no position to sell")
	ErrInvalidPrice   = errors.New("bar has no tradable price")
	ErrUnknownAction  = errors.New("unknown action")
	ErrBadSession     = errors.New("bad session")
	ErrJournal        = errors.New("journal write failed")
)
