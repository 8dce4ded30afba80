package journal

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

type SQLite struct {
	db *sql.DB
}

type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &SQLite{db: db}, nil
}

// RecordSession stores the run and its opening equity point in one
// transaction.
func (j *SQLite) RecordSession(r SessionRun) error {
	return j.inTx(func(tx *sql.Tx) error {
		_, err := tx.Exec(`
			INSERT INTO sessions
			(session_id, market, code, source, start_date, end_date, trade_start, initial_capital, created)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			r.SessionID, r.Market, r.Code, r.Source,
			r.Start.Format(dateLayout), r.End.Format(dateLayout), r.TradeStart.Format(dateLayout),
			r.InitialCapital.String(), r.Created.UTC(),
		)
		if err != nil {
			return err
		}
		return insertEquity(tx, openingEquity(r))
	})
}

// RecordAction stores a trade and the equity point after it in one
// transaction, so a failed write can be retried with the same seq.
func (j *SQLite) RecordAction(t TradeRecord, e EquitySnapshot) error {
	return j.inTx(func(tx *sql.Tx) error {
		if err := insertTrade(tx, t); err != nil {
			return err
		}
		return insertEquity(tx, e)
	})
}

func insertTrade(x execer, t TradeRecord) error {
	_, err := x.Exec(`
		INSERT INTO trades
		(session_id, seq, date, action, price, shares, cash)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		t.SessionID, t.Seq, t.Date.Format(dateLayout), t.Action,
		t.Price.String(), t.Shares, t.Cash.String(),
	)
	return err
}

func insertEquity(x execer, e EquitySnapshot) error {
	_, err := x.Exec(`
		INSERT INTO equity
		(session_id, seq, date, equity)
		VALUES (?, ?, ?, ?)`,
		e.SessionID, e.Seq, e.Date.Format(dateLayout), e.Equity.String(),
	)
	return err
}

func (j *SQLite) inTx(fn func(tx *sql.Tx) error) error {
	tx, err := j.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

func (j *SQLite) FinishSession(r SessionResult) error {
	res, err := j.db.Exec(`
		UPDATE sessions
		SET finished = 1, final_equity = ?, total_return = ?, win_rate = ?, max_drawdown = ?, paired = ?, wins = ?
		WHERE session_id = ?`,
		r.FinalEquity.String(), r.TotalReturn, r.WinRate, r.MaxDrawdown, r.Paired, r.Wins, r.SessionID,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("session %q not found", r.SessionID)
	}
	return nil
}

func (j *SQLite) Close() error {
	return j.db.Close()
}
