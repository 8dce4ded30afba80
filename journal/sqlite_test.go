package journal

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSQLite(t *testing.T) (*SQLite, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	j, err := NewSQLite(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = j.Close() })

	return j, path
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func testRun(sessionID string, created time.Time) SessionRun {
	return SessionRun{
		SessionID:      sessionID,
		Market:         "sh",
		Code:           "sh600000",
		Source:         "/tdx/vipdoc/sh/lday/sh600000.day",
		Start:          day(2020, 1, 2),
		End:            day(2020, 9, 30),
		TradeStart:     day(2020, 4, 8),
		InitialCapital: decimal.NewFromInt(100000),
		Created:        created,
	}
}

func TestSQLiteSchemaCreated(t *testing.T) {
	t.Parallel()

	j, path := newTestSQLite(t)
	require.NoError(t, j.Close())

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	rows, err := db.Query(`SELECT name FROM sqlite_master WHERE type='table' AND name IN ('sessions','trades','equity')`)
	require.NoError(t, err)
	defer rows.Close()

	found := map[string]bool{}
	for rows.Next() {
		var name string
		assert.NoError(t, rows.Scan(&name))
		found[name] = true
	}
	assert.NoError(t, rows.Err())

	assert.True(t, found["sessions"])
	assert.True(t, found["trades"])
	assert.True(t, found["equity"])
}

func TestSQLiteSessionLifecycle(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	created := time.Date(2024, 3, 4, 5, 6, 7, 0, time.UTC)
	run := testRun("S1", created)

	require.NoError(t, j.RecordSession(run))

	got, err := j.GetSession("S1")
	require.NoError(t, err)
	assert.Equal(t, "sh600000", got.Code)
	assert.True(t, got.Start.Equal(run.Start))
	assert.True(t, got.End.Equal(run.End))
	assert.True(t, got.TradeStart.Equal(run.TradeStart))
	assert.True(t, got.InitialCapital.Equal(run.InitialCapital))
	assert.True(t, got.Created.Equal(created))
	assert.False(t, got.Finished)

	require.NoError(t, j.FinishSession(SessionResult{
		SessionID:   "S1",
		FinalEquity: decimal.RequireFromString("104250.5"),
		TotalReturn: 0.042505,
		WinRate:     0.5,
		MaxDrawdown: 0.1364,
		Paired:      4,
		Wins:        2,
	}))

	got, err = j.GetSession("S1")
	require.NoError(t, err)
	assert.True(t, got.Finished)
	assert.Equal(t, "104250.5", got.FinalEquity.String())
	assert.InDelta(t, 0.042505, got.TotalReturn, 1e-12)
	assert.InDelta(t, 0.5, got.WinRate, 1e-12)
	assert.InDelta(t, 0.1364, got.MaxDrawdown, 1e-12)
	assert.Equal(t, 4, got.Paired)
	assert.Equal(t, 2, got.Wins)

	assert.Error(t, j.FinishSession(SessionResult{SessionID: "nope"}))
	_, err = j.GetSession("nope")
	assert.Error(t, err)
}

func action(sid string, seq int, date time.Time, act, price, cash, equity string, shares int64) (TradeRecord, EquitySnapshot) {
	tr := TradeRecord{
		SessionID: sid,
		Seq:       seq,
		Date:      date,
		Action:    act,
		Price:     decimal.RequireFromString(price),
		Shares:    shares,
		Cash:      decimal.RequireFromString(cash),
	}
	eq := EquitySnapshot{
		SessionID: sid,
		Seq:       seq,
		Date:      date,
		Equity:    decimal.RequireFromString(equity),
	}
	return tr, eq
}

func TestSQLiteTradesAndEquity(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	require.NoError(t, j.RecordSession(testRun("S1", time.Now())))

	type row struct {
		trade  TradeRecord
		equity EquitySnapshot
	}
	var rows []row
	for _, a := range []struct {
		seq                      int
		act, price, cash, equity string
		shares                   int64
	}{
		{1, "buy", "333.33", "1", "100000", 300},
		{2, "hold", "340", "1", "102001", 0},
		{3, "sell", "350.01", "105004", "105004", 0},
	} {
		tr, eq := action("S1", a.seq, day(2020, 4, 7+a.seq), a.act, a.price, a.cash, a.equity, a.shares)
		rows = append(rows, row{tr, eq})
	}
	// Insert out of order; listing sorts by seq.
	for _, i := range []int{2, 0, 1} {
		require.NoError(t, j.RecordAction(rows[i].trade, rows[i].equity))
	}
	require.NoError(t, j.RecordAction(action("other", 1, day(2020, 1, 1), "buy", "1", "0", "1", 1)))

	got, err := j.ListTrades("S1")
	require.NoError(t, err)
	require.Len(t, got, 3)
	for i, r := range rows {
		assert.Equal(t, r.trade.Seq, got[i].Seq)
		assert.Equal(t, r.trade.Action, got[i].Action)
		assert.True(t, r.trade.Date.Equal(got[i].Date))
		assert.True(t, r.trade.Price.Equal(got[i].Price))
		assert.True(t, r.trade.Cash.Equal(got[i].Cash))
		assert.Equal(t, r.trade.Shares, got[i].Shares)
	}

	eq, err := j.ListEquity("S1")
	require.NoError(t, err)
	require.Len(t, eq, 4)
	assert.Equal(t, 0, eq[0].Seq)
	assert.Equal(t, "100000", eq[0].Equity.String())
	assert.True(t, eq[0].Date.Equal(day(2020, 4, 8)))
	assert.Equal(t, "102001", eq[2].Equity.String())
	assert.Equal(t, "105004", eq[3].Equity.String())
}

func TestSQLiteRecordActionIsAtomic(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	require.NoError(t, j.RecordSession(testRun("S1", time.Now())))

	// The equity row collides with the opening point, so the trade must
	// not be kept either.
	tr, _ := action("S1", 1, day(2020, 4, 8), "buy", "10", "0", "100000", 10000)
	err := j.RecordAction(tr, EquitySnapshot{SessionID: "S1", Seq: 0, Date: day(2020, 4, 8), Equity: decimal.Zero})
	require.Error(t, err)

	trades, err := j.ListTrades("S1")
	require.NoError(t, err)
	assert.Empty(t, trades)

	// Same seq again succeeds.
	require.NoError(t, j.RecordAction(action("S1", 1, day(2020, 4, 8), "buy", "10", "0", "100000", 10000)))
	trades, err = j.ListTrades("S1")
	require.NoError(t, err)
	assert.Len(t, trades, 1)

	eq, err := j.ListEquity("S1")
	require.NoError(t, err)
	assert.Len(t, eq, 2)
}

func TestSQLiteRecordSessionIsAtomic(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)

	// Occupy the opening equity slot of S2 so the session insert fails.
	require.NoError(t, j.RecordAction(action("S2", 0, day(2020, 4, 8), "hold", "10", "0", "1", 0)))

	err := j.RecordSession(testRun("S2", time.Now()))
	require.Error(t, err)

	_, err = j.GetSession("S2")
	assert.Error(t, err, "no session row may be left behind")

	runs, err := j.ListSessions(0)
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestSQLiteListSessions(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	for i, sid := range []string{"A", "B", "C"} {
		require.NoError(t, j.RecordSession(testRun(sid, base.Add(time.Duration(i)*time.Hour))))
	}

	all, err := j.ListSessions(0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "C", all[0].SessionID)
	assert.Equal(t, "A", all[2].SessionID)

	two, err := j.ListSessions(2)
	require.NoError(t, err)
	assert.Len(t, two, 2)
}
