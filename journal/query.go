package journal

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

const sessionColumns = `session_id, market, code, source, start_date, end_date, trade_start,
	initial_capital, created, finished, final_equity, total_return, win_rate, max_drawdown, paired, wins`

type scanner interface {
	Scan(dest ...any) error
}

func scanSession(row scanner) (SessionRun, error) {
	var (
		r                      SessionRun
		start, end, tradeStart string
		initial, final         string
		finished               int
	)
	err := row.Scan(
		&r.SessionID, &r.Market, &r.Code, &r.Source,
		&start, &end, &tradeStart,
		&initial, &r.Created, &finished, &final,
		&r.TotalReturn, &r.WinRate, &r.MaxDrawdown, &r.Paired, &r.Wins,
	)
	if err != nil {
		return SessionRun{}, err
	}
	r.Finished = finished != 0
	if r.Start, err = time.Parse(dateLayout, start); err != nil {
		return SessionRun{}, err
	}
	if r.End, err = time.Parse(dateLayout, end); err != nil {
		return SessionRun{}, err
	}
	if r.TradeStart, err = time.Parse(dateLayout, tradeStart); err != nil {
		return SessionRun{}, err
	}
	if r.InitialCapital, err = decimal.NewFromString(initial); err != nil {
		return SessionRun{}, err
	}
	if r.FinalEquity, err = decimal.NewFromString(final); err != nil {
		return SessionRun{}, err
	}
	return r, nil
}

// GetSession returns a single session run by ID.
func (j *SQLite) GetSession(sessionID string) (SessionRun, error) {
	row := j.db.QueryRow(`SELECT `+sessionColumns+` FROM sessions WHERE session_id = ?`, sessionID)
	r, err := scanSession(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return SessionRun{}, fmt.Errorf("session %q not found", sessionID)
		}
		return SessionRun{}, err
	}
	return r, nil
}

// ListSessions returns session runs, newest first. limit <= 0 means all.
func (j *SQLite) ListSessions(limit int) ([]SessionRun, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := j.db.Query(`SELECT `+sessionColumns+` FROM sessions ORDER BY created DESC, session_id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SessionRun
	for rows.Next() {
		r, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// ListTrades returns a session's trade records in action order.
func (j *SQLite) ListTrades(sessionID string) ([]TradeRecord, error) {
	rows, err := j.db.Query(`
		SELECT session_id, seq, date, action, price, shares, cash
		FROM trades
		WHERE session_id = ?
		ORDER BY seq ASC`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TradeRecord
	for rows.Next() {
		var (
			rec               TradeRecord
			date, price, cash string
		)
		if err := rows.Scan(&rec.SessionID, &rec.Seq, &date, &rec.Action, &price, &rec.Shares, &cash); err != nil {
			return nil, err
		}
		if rec.Date, err = time.Parse(dateLayout, date); err != nil {
			return nil, err
		}
		if rec.Price, err = decimal.NewFromString(price); err != nil {
			return nil, err
		}
		if rec.Cash, err = decimal.NewFromString(cash); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// ListEquity returns a session's equity curve in order.
func (j *SQLite) ListEquity(sessionID string) ([]EquitySnapshot, error) {
	rows, err := j.db.Query(`
		SELECT session_id, seq, date, equity
		FROM equity
		WHERE session_id = ?
		ORDER BY seq ASC`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []EquitySnapshot
	for rows.Next() {
		var (
			snap         EquitySnapshot
			date, equity string
		)
		if err := rows.Scan(&snap.SessionID, &snap.Seq, &date, &equity); err != nil {
			return nil, err
		}
		if snap.Date, err = time.Parse(dateLayout, date); err != nil {
			return nil, err
		}
		if snap.Equity, err = decimal.NewFromString(equity); err != nil {
			return nil, err
		}
		out = append(out, snap)
	}
	return out, rows.Err()
}
