package journal

import (
	"fmt"

	"github.com/rustyeddy/dayreplay/config"
)

// Open returns the journal cfg selects. An empty or "none" type yields Nop.
func Open(cfg config.JournalConfig) (Journal, error) {
	switch cfg.Type {
	case "", "none":
		return Nop{}, nil
	case "csv":
		return NewCSV(cfg.TradesFile, cfg.EquityFile)
	case "sqlite":
		return NewSQLite(cfg.DBPath)
	default:
		return nil, fmt.Errorf("unknown journal type %q", cfg.Type)
	}
}
