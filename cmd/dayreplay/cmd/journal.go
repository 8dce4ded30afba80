package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/dayreplay/journal"
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Query the session journal",
	Long: `Query and display replay sessions recorded in the SQLite journal.

Subcommands:
  sessions      - List recorded sessions, newest first
  trades <id>   - List the actions of one session
  org <id>      - Print one session as an Org-mode entry

Examples:
  dayreplay journal sessions --limit 5
  dayreplay journal trades 01HZX3...
  dayreplay journal org 01HZX3... > session.org`,
}

var journalSessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List recorded sessions",
	Args:  cobra.NoArgs,
	RunE:  runJournalSessions,
}

var journalTradesCmd = &cobra.Command{
	Use:   "trades <session-id>",
	Short: "List the actions of a session",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalTrades,
}

var journalOrgCmd = &cobra.Command{
	Use:   "org <session-id>",
	Short: "Print a session as an Org-mode entry",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalOrg,
}

var (
	journalDBPath string
	journalLimit  int
)

func init() {
	rootCmd.AddCommand(journalCmd)
	journalCmd.AddCommand(journalSessionsCmd)
	journalCmd.AddCommand(journalTradesCmd)
	journalCmd.AddCommand(journalOrgCmd)

	journalCmd.PersistentFlags().StringVarP(&journalDBPath, "db", "d", "", "path to SQLite journal DB (default from config)")
	journalSessionsCmd.Flags().IntVarP(&journalLimit, "limit", "n", 20, "maximum sessions to list (0 for all)")
}

func openJournal() (*journal.SQLite, error) {
	path := journalDBPath
	if path == "" {
		cfg, err := loadConfig()
		if err != nil {
			return nil, err
		}
		path = cfg.Journal.DBPath
	}
	if path == "" {
		path = "./dayreplay.sqlite"
	}
	j, err := journal.NewSQLite(path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	return j, nil
}

func runJournalSessions(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	j, err := openJournal()
	if err != nil {
		return err
	}
	defer j.Close()

	runs, err := j.ListSessions(journalLimit)
	if err != nil {
		return fmt.Errorf("query sessions: %w", err)
	}
	if len(runs) == 0 {
		fmt.Fprintln(out, "No sessions recorded.")
		return nil
	}

	fmt.Fprintf(out, "%-26s %-16s %-6s %-10s %-10s %9s %8s %8s\n",
		"id", "created", "market", "code", "from", "return", "winrate", "maxdd")
	for _, r := range runs {
		ret, win, dd := "-", "-", "-"
		if r.Finished {
			ret = fmt.Sprintf("%.2f%%", r.TotalReturn*100)
			win = fmt.Sprintf("%.0f%%", r.WinRate*100)
			dd = fmt.Sprintf("%.2f%%", r.MaxDrawdown*100)
		}
		fmt.Fprintf(out, "%-26s %-16s %-6s %-10s %-10s %9s %8s %8s\n",
			r.SessionID,
			r.Created.Local().Format("2006-01-02 15:04"),
			r.Market, r.Code,
			r.TradeStart.Format("2006-01-02"),
			ret, win, dd)
	}
	return nil
}

func runJournalTrades(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	j, err := openJournal()
	if err != nil {
		return err
	}
	defer j.Close()

	trades, err := j.ListTrades(args[0])
	if err != nil {
		return fmt.Errorf("query trades: %w", err)
	}
	if len(trades) == 0 {
		fmt.Fprintln(out, "No trade records.")
		return nil
	}

	fmt.Fprintf(out, "%4s %-10s %-6s %9s %8s %14s\n", "seq", "date", "action", "price", "shares", "cash")
	for _, t := range trades {
		fmt.Fprintf(out, "%4d %-10s %-6s %9s %8d %14s\n",
			t.Seq, t.Date.Format("2006-01-02"), t.Action, t.Price.StringFixed(2), t.Shares, t.Cash.StringFixed(2))
	}
	return nil
}

func runJournalOrg(cmd *cobra.Command, args []string) error {
	j, err := openJournal()
	if err != nil {
		return err
	}
	defer j.Close()

	run, err := j.GetSession(args[0])
	if err != nil {
		return err
	}
	trades, err := j.ListTrades(args[0])
	if err != nil {
		return fmt.Errorf("query trades: %w", err)
	}
	s, err := journal.FormatSessionOrg(run, trades)
	if err != nil {
		return fmt.Errorf("format: %w", err)
	}
	fmt.Fprint(cmd.OutOrStdout(), s)
	return nil
}
