package view

import (
	"fmt"
	"io"
	"strings"
)

// Print writes the last n bars of w as a table, or all of them when n <= 0.
func Print(out io.Writer, w Window, n int) {
	from := 0
	if n > 0 && n < len(w.Bars) {
		from = len(w.Bars) - n
	}

	var hdr strings.Builder
	fmt.Fprintf(&hdr, "%-10s %9s %9s %9s %9s %12s", "date", "open", "high", "low", "close", "volume")
	for _, ma := range w.MA {
		fmt.Fprintf(&hdr, " %8s", fmt.Sprintf("MA%d", ma.Period))
	}
	fmt.Fprintln(out, hdr.String())

	for i := from; i < len(w.Bars); i++ {
		b := w.Bars[i]
		fmt.Fprintf(out, "%-10s %9s %9s %9s %9s %12d",
			b.DateString(),
			b.Open.StringFixed(2), b.High.StringFixed(2), b.Low.StringFixed(2), b.Close.StringFixed(2),
			b.Volume)
		for _, ma := range w.MA {
			if v := ma.Values[i]; v.OK {
				fmt.Fprintf(out, " %8.2f", v.V)
			} else {
				fmt.Fprintf(out, " %8s", "-")
			}
		}
		fmt.Fprintf(out, "  %s\n", w.Marker(i))
	}
}
