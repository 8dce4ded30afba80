// Package replay ties a session loader, a ledger and a journal together
// into one playable simulation.
package replay

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/rustyeddy/dayreplay/config"
	"github.com/rustyeddy/dayreplay/internal/logging"
	"github.com/rustyeddy/dayreplay/journal"
	"github.com/rustyeddy/dayreplay/session"
	"github.com/rustyeddy/dayreplay/sim"
	"github.com/rustyeddy/dayreplay/stats"
	"github.com/rustyeddy/dayreplay/view"
)

var (
	ErrNoSession = errors.New("no active session")
	ErrNoTrades  = errors.New("no trade records")
)

type Simulator struct {
	cfg     *config.Config
	loader  *session.Loader
	journal journal.Journal
	log     logrus.FieldLogger
	now     func() time.Time

	session *session.Session
	ledger  *sim.Ledger
}

// New builds a Simulator. j and log may be nil.
func New(cfg *config.Config, loader *session.Loader, j journal.Journal, log logrus.FieldLogger) *Simulator {
	if j == nil {
		j = journal.Nop{}
	}
	return &Simulator{
		cfg:     cfg,
		loader:  loader,
		journal: j,
		log:     logging.Or(log),
		now:     time.Now,
	}
}

// Start loads a random session from market. On error the current session,
// if any, stays active.
func (s *Simulator) Start(market string) (*session.Session, error) {
	sess, err := s.loader.Load(market)
	if err != nil {
		return nil, err
	}
	if err := s.begin(sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// StartFile loads a session from an explicit day file.
func (s *Simulator) StartFile(market, path string) (*session.Session, error) {
	sess, err := s.loader.LoadFile(market, path)
	if err != nil {
		return nil, err
	}
	if err := s.begin(sess); err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *Simulator) begin(sess *session.Session) error {
	capital := decimal.NewFromFloat(s.cfg.Account.InitialCapital)
	cursor := s.cfg.Session.StartCursor()
	if cursor >= len(sess.Bars) {
		return fmt.Errorf("%w: start cursor %d outside %d bars", sim.ErrBadSession, cursor, len(sess.Bars))
	}

	ledger, err := sim.NewLedger(sess.Bars, sim.Options{
		InitialCapital: capital,
		StartCursor:    cursor,
		SessionID:      sess.ID,
		Journal:        s.journal,
		Logger:         s.log,
	})
	if err != nil {
		return err
	}

	err = s.journal.RecordSession(journal.SessionRun{
		SessionID:      sess.ID,
		Market:         sess.Market,
		Code:           sess.Code,
		Source:         sess.Source,
		Start:          sess.Bars[0].Date,
		End:            sess.Bars[len(sess.Bars)-1].Date,
		TradeStart:     sess.Bars[cursor].Date,
		InitialCapital: capital,
		Created:        s.now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("%w: %v", sim.ErrJournal, err)
	}

	s.session, s.ledger = sess, ledger
	s.log.WithFields(logrus.Fields{
		"session": sess.ID,
		"market":  sess.Market,
		"code":    sess.Code,
	}).Info("session started")
	return nil
}

// Session returns the active session or nil.
func (s *Simulator) Session() *session.Session { return s.session }

func (s *Simulator) Execute(a sim.Action) (sim.Snapshot, error) {
	if s.ledger == nil {
		return sim.Snapshot{}, ErrNoSession
	}
	return s.ledger.Execute(a)
}

func (s *Simulator) Snapshot() (sim.Snapshot, error) {
	if s.ledger == nil {
		return sim.Snapshot{}, ErrNoSession
	}
	return s.ledger.Snapshot(), nil
}

// View returns the display window at the cursor.
func (s *Simulator) View() (view.Window, error) {
	if s.ledger == nil {
		return view.Window{}, ErrNoSession
	}
	return view.Build(
		s.ledger.Visible(),
		s.ledger.Cursor(),
		s.cfg.Session.LookbackDays,
		s.cfg.Display.MAPeriods,
		s.ledger.Trades(),
	)
}

// Summary reports the session statistics so far.
func (s *Simulator) Summary() (stats.Summary, error) {
	if s.ledger == nil {
		return stats.Summary{}, ErrNoSession
	}
	trades := s.ledger.Trades()
	if len(trades) == 0 {
		return stats.Summary{}, ErrNoTrades
	}
	return stats.Summarize(trades, s.ledger.Equity()), nil
}

// Finish stores the session results in the journal. A session with no
// actions is left unfinished.
func (s *Simulator) Finish() (stats.Summary, error) {
	sum, err := s.Summary()
	if err != nil {
		return sum, err
	}
	err = s.journal.FinishSession(journal.SessionResult{
		SessionID:   s.session.ID,
		FinalEquity: sum.Final,
		TotalReturn: sum.TotalReturn,
		WinRate:     sum.WinRate,
		MaxDrawdown: sum.MaxDrawdown,
		Paired:      sum.Paired,
		Wins:        sum.Wins,
	})
	if err != nil {
		return sum, fmt.Errorf("%w: %v", sim.ErrJournal, err)
	}
	s.log.WithFields(logrus.Fields{
		"session":      s.session.ID,
		"final_equity": sum.Final.String(),
		"return":       sum.TotalReturn,
	}).Info("session finished")
	return sum, nil
}

// Close closes the journal.
func (s *Simulator) Close() error {
	return s.journal.Close()
}
