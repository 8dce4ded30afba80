// journal/schema.go
package journal

// Money columns are TEXT so decimals round-trip exactly.
const Schema = `
CREATE TABLE IF NOT EXISTS sessions (
	session_id TEXT PRIMARY KEY,
	market TEXT NOT NULL,
	code TEXT NOT NULL,
	source TEXT NOT NULL,
	start_date TEXT NOT NULL,
	end_date TEXT NOT NULL,
	trade_start TEXT NOT NULL,
	initial_capital TEXT NOT NULL,
	created DATETIME NOT NULL,
	finished INTEGER NOT NULL DEFAULT 0,
	final_equity TEXT NOT NULL DEFAULT '0',
	total_return REAL NOT NULL DEFAULT 0,
	win_rate REAL NOT NULL DEFAULT 0,
	max_drawdown REAL NOT NULL DEFAULT 0,
	paired INTEGER NOT NULL DEFAULT 0,
	wins INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS trades (
	session_id TEXT NOT NULL,
	seq INTEGER NOT NULL,
	date TEXT NOT NULL,
	action TEXT NOT NULL,
	price TEXT NOT NULL,
	shares INTEGER NOT NULL,
	cash TEXT NOT NULL,
	PRIMARY KEY (session_id, seq)
);

CREATE TABLE IF NOT EXISTS equity (
	session_id TEXT NOT NULL,
	seq INTEGER NOT NULL,
	date TEXT NOT NULL,
	equity TEXT NOT NULL,
	PRIMARY KEY (session_id, seq)
);

CREATE INDEX IF NOT EXISTS idx_sessions_created ON sessions(created);
`
