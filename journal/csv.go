package journal

import (
	"encoding/csv"
	"os"
	"strconv"
)

var (
	tradesHeader = []string{"session_id", "seq", "date", "action", "price", "shares", "cash"}
	equityHeader = []string{"session_id", "seq", "date", "equity"}
)

// CSVJournal writes trades and equity to two files. Session runs are not
// kept; use the SQLite journal for those.
type CSVJournal struct {
	trades *csv.Writer
	equity *csv.Writer
	tf, ef *os.File
}

func NewCSV(tradesPath, equityPath string) (*CSVJournal, error) {
	tf, err := os.Create(tradesPath)
	if err != nil {
		return nil, err
	}
	ef, err := os.Create(equityPath)
	if err != nil {
		_ = tf.Close()
		return nil, err
	}

	j := &CSVJournal{trades: csv.NewWriter(tf), equity: csv.NewWriter(ef), tf: tf, ef: ef}
	if err := j.write(j.trades, tradesHeader); err != nil {
		_ = j.Close()
		return nil, err
	}
	if err := j.write(j.equity, equityHeader); err != nil {
		_ = j.Close()
		return nil, err
	}
	return j, nil
}

// RecordSession writes only the opening equity row.
func (j *CSVJournal) RecordSession(r SessionRun) error {
	return j.recordEquity(openingEquity(r))
}

func (j *CSVJournal) FinishSession(SessionResult) error { return nil }

func (j *CSVJournal) RecordAction(t TradeRecord, e EquitySnapshot) error {
	if err := j.recordTrade(t); err != nil {
		return err
	}
	return j.recordEquity(e)
}

func (j *CSVJournal) recordTrade(t TradeRecord) error {
	return j.write(j.trades, []string{
		t.SessionID,
		strconv.Itoa(t.Seq),
		t.Date.Format(dateLayout),
		t.Action,
		t.Price.StringFixed(2),
		strconv.FormatInt(t.Shares, 10),
		t.Cash.StringFixed(2),
	})
}

func (j *CSVJournal) recordEquity(e EquitySnapshot) error {
	return j.write(j.equity, []string{
		e.SessionID,
		strconv.Itoa(e.Seq),
		e.Date.Format(dateLayout),
		e.Equity.StringFixed(2),
	})
}

func (j *CSVJournal) write(w *csv.Writer, row []string) error {
	if err := w.Write(row); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

func (j *CSVJournal) Close() error {
	j.trades.Flush()
	if err := j.trades.Error(); err != nil {
		return err
	}
	j.equity.Flush()
	if err := j.equity.Error(); err != nil {
		return err
	}

	if err := j.tf.Close(); err != nil {
		return err
	}
	return j.ef.Close()
}
