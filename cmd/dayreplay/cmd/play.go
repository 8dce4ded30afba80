package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/rustyeddy/dayreplay/journal"
	"github.com/rustyeddy/dayreplay/replay"
	"github.com/rustyeddy/dayreplay/session"
	"github.com/rustyeddy/dayreplay/sim"
	"github.com/rustyeddy/dayreplay/stats"
	"github.com/rustyeddy/dayreplay/view"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a replay session",
	Long: `Load a random stock from the chosen market and trade it forward one day
at a time. Every action fills at the close of the current bar.

Commands:
  b, buy     - buy as many whole shares as cash allows
  s, sell    - sell the whole position
  h, hold    - do nothing for a day
  v, view    - show the recent bars with moving averages
  stats      - show statistics so far
  new        - finish this session and start another
  q, quit    - finish and exit

Examples:
  dayreplay play --market sh
  dayreplay play --market cyb --seed 42
  dayreplay play --file ./tdx/vipdoc/sh/lday/sh600000.day`,
	RunE: runPlay,
}

var (
	playMarket string
	playFile   string
	playSeed   uint64
	playRows   int
)

func init() {
	rootCmd.AddCommand(playCmd)

	playCmd.Flags().StringVarP(&playMarket, "market", "m", "sh", "market key (sh, sz, cyb or any configured market)")
	playCmd.Flags().StringVar(&playFile, "file", "", "play an explicit .day file instead of a random one")
	playCmd.Flags().Uint64Var(&playSeed, "seed", 0, "seed for reproducible sessions")
	playCmd.Flags().IntVar(&playRows, "rows", 20, "bars shown by the view command")
}

func runPlay(cmd *cobra.Command, args []string) (err error) {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}

	rnd := session.Default()
	if cmd.Flags().Changed("seed") {
		rnd = session.NewSeeded(playSeed)
	}

	j, err := journal.Open(cfg.Journal)
	if err != nil {
		return fmt.Errorf("create journal: %w", err)
	}

	loader := session.New(cfg.Data, cfg.Session, rnd, log)
	s := replay.New(cfg, loader, j, log)
	defer closeJournal(s, &err)

	p := &player{
		sim:    s,
		out:    cmd.OutOrStdout(),
		market: playMarket,
		file:   playFile,
		rows:   playRows,
	}
	return p.run(cmd.InOrStdin())
}

// closeJournal closes c and reports its error through err unless err is
// already set.
func closeJournal(c io.Closer, err *error) {
	if cerr := c.Close(); cerr != nil && *err == nil {
		*err = fmt.Errorf("close journal: %w", cerr)
	}
}

// player drives a Simulator from line oriented input.
type player struct {
	sim    *replay.Simulator
	out    io.Writer
	market string
	file   string
	rows   int
}

func (p *player) start() error {
	var (
		sess *session.Session
		err  error
	)
	if p.file != "" {
		sess, err = p.sim.StartFile(p.market, p.file)
	} else {
		sess, err = p.sim.Start(p.market)
	}
	if err != nil {
		return err
	}
	snap, err := p.sim.Snapshot()
	if err != nil {
		return err
	}
	fmt.Fprintf(p.out, "New session %s: %d days to trade\n", sess.ID, snap.Remaining)
	p.printSnapshot(snap)
	return nil
}

func (p *player) run(in io.Reader) error {
	if err := p.start(); err != nil {
		return err
	}

	sc := bufio.NewScanner(in)
	p.prompt()
	for sc.Scan() {
		line := strings.ToLower(strings.TrimSpace(sc.Text()))
		switch line {
		case "":
		case "q", "quit", "exit":
			p.finish()
			return nil
		case "v", "view":
			p.view()
		case "stats":
			p.stats()
		case "new":
			p.finish()
			if err := p.start(); err != nil {
				fmt.Fprintf(p.out, "cannot start a new session: %v\n", err)
			}
		default:
			p.act(line)
		}
		p.prompt()
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	p.finish()
	return nil
}

func (p *player) act(line string) {
	a, err := sim.ParseAction(line)
	if err != nil {
		fmt.Fprintf(p.out, "unknown command %q (b, s, h, v, stats, new, q)\n", line)
		return
	}
	snap, err := p.sim.Execute(a)
	if err != nil {
		if errors.Is(err, sim.ErrEndOfData) {
			fmt.Fprintln(p.out, "session over: type new or q")
			return
		}
		fmt.Fprintf(p.out, "%s rejected: %v\n", a, err)
		return
	}
	p.printSnapshot(snap)
	if snap.Done {
		fmt.Fprintln(p.out, "End of data.")
		p.stats()
	}
}

func (p *player) view() {
	w, err := p.sim.View()
	if err != nil {
		fmt.Fprintf(p.out, "view: %v\n", err)
		return
	}
	view.Print(p.out, w, p.rows)
}

func (p *player) stats() {
	sum, err := p.sim.Summary()
	if errors.Is(err, replay.ErrNoTrades) {
		fmt.Fprintln(p.out, "No trade records.")
		return
	}
	if err != nil {
		fmt.Fprintf(p.out, "stats: %v\n", err)
		return
	}
	stats.PrintSummary(p.out, sum)
}

func (p *player) finish() {
	sum, err := p.sim.Finish()
	switch {
	case errors.Is(err, replay.ErrNoTrades), errors.Is(err, replay.ErrNoSession):
		return
	case err != nil:
		fmt.Fprintf(p.out, "journal: %v\n", err)
	}
	stats.PrintSummary(p.out, sum)
}

func (p *player) prompt() {
	fmt.Fprint(p.out, "> ")
}

func (p *player) printSnapshot(s sim.Snapshot) {
	mp := message.NewPrinter(language.English)
	mp.Fprintf(p.out, "%s  open %s  close %s  position %d  cash %.2f  equity %.2f  remaining %d\n",
		s.Date.Format("2006-01-02"),
		s.Open.StringFixed(2), s.Close.StringFixed(2),
		s.Position,
		s.Cash.InexactFloat64(), s.Equity.InexactFloat64(),
		s.Remaining)
}
