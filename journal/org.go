package journal

import (
	"bytes"
	"fmt"
	"text/template"
	"time"

	"github.com/rustyeddy/dayreplay/pkg/id"
)

var sessionOrgFuncs = template.FuncMap{
	"pct":    func(x float64) string { return fmt.Sprintf("%.2f%%", x*100) },
	"date":   func(t time.Time) string { return t.Format(dateLayout) },
	"short":  id.Short,
	"losses": func(r SessionRun) int { return r.Paired - r.Wins },
}

var sessionOrg = template.Must(template.New("session").Funcs(sessionOrgFuncs).Parse(SessionOrgTemplate))

// FormatSessionOrg renders a session and its trades as an Org-mode entry.
// Hold actions are left out of the trade table.
func FormatSessionOrg(r SessionRun, trades []TradeRecord) (string, error) {
	var filtered []TradeRecord
	for _, t := range trades {
		if t.Action != "hold" {
			filtered = append(filtered, t)
		}
	}

	buf := new(bytes.Buffer)
	err := sessionOrg.Execute(buf, struct {
		SessionRun
		Trades []TradeRecord
	}{r, filtered})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

const SessionOrgTemplate = `* REPLAY: {{.Code}} ({{short .SessionID}})
:PROPERTIES:
:SESSION_ID:  {{.SessionID}}
:MARKET:      {{.Market}}
:CODE:        {{.Code}}
:SOURCE:      {{.Source}}
:WINDOW:      {{date .Start}} .. {{date .End}}
:TRADE_FROM:  {{date .TradeStart}}
:START_CASH:  {{.InitialCapital.StringFixed 2}}
:CREATED:     [{{.Created.Format "2006-01-02 Mon 15:04"}}]
:END:
{{- if .Finished}}

** Performance Summary
- Final Equity:  *{{.FinalEquity.StringFixed 2}}*
- Return:        *{{pct .TotalReturn}}*
- Win Rate:      *{{pct .WinRate}}*
- Max Drawdown:  *{{pct .MaxDrawdown}}*

| Outcome | Count |
|---------+-------|
| Wins    | {{.Wins}} |
| Losses  | {{losses .SessionRun}} |
| Total   | {{.Paired}} |
{{- end}}
{{- if .Trades}}

** Trades
| # | Date | Action | Price | Shares | Cash |
|---+------+--------+-------+--------+------|
{{- range .Trades}}
| {{.Seq}} | {{date .Date}} | {{.Action}} | {{.Price.StringFixed 2}} | {{.Shares}} | {{.Cash.StringFixed 2}} |
{{- end}}
{{- end}}
`
