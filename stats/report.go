package stats

import (
	"io"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// PrintSummary writes a human readable report. Money gets thousands
// separators.
func PrintSummary(w io.Writer, s Summary) {
	p := message.NewPrinter(language.English)

	p.Fprintln(w, "==================================================")
	p.Fprintln(w, " Session Summary")
	p.Fprintln(w, "==================================================")
	p.Fprintf(w, "Initial Capital: %.2f\n", s.Initial.InexactFloat64())
	p.Fprintf(w, "Final Equity:    %.2f\n", s.Final.InexactFloat64())
	p.Fprintf(w, "Return:          %.2f%%\n", s.TotalReturn*100)
	p.Fprintf(w, "Win Rate:        %.2f%%\n", s.WinRate*100)
	p.Fprintf(w, "Max Drawdown:    %.2f%%\n", s.MaxDrawdown*100)
	p.Fprintf(w, "Round Trips:     %d (wins %d, losses %d)\n", s.Paired, s.Wins, s.Losses)
	p.Fprintf(w, "Actions:         %d\n", s.Actions)
}
