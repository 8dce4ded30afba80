// Package session picks a random instrument from the local data directory
// and cuts a random window of contiguous bars out of its history.
package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/rustyeddy/dayreplay/config"
	"github.com/rustyeddy/dayreplay/internal/logging"
	"github.com/rustyeddy/dayreplay/market"
	"github.com/rustyeddy/dayreplay/pkg/id"
	"github.com/rustyeddy/dayreplay/tdx"
)

var (
	ErrNoMarket            = errors.New("no market selected")
	ErrUnknownMarket       = errors.New("unknown market")
	ErrNoData              = errors.New("no data files")
	ErrInsufficientHistory = errors.New("insufficient history")
)

// Session is one replay: a window of bars from a single instrument.
type Session struct {
	ID     string
	Market string
	Code   string
	Source string
	Offset int // index of Bars[0] in the source file
	Bars   []market.Bar
}

type Loader struct {
	data    config.DataConfig
	session config.SessionConfig
	rnd     Rand
	log     logrus.FieldLogger
}

// New returns a Loader. A nil rnd uses Default and a nil log discards.
func New(data config.DataConfig, sess config.SessionConfig, rnd Rand, log logrus.FieldLogger) *Loader {
	if rnd == nil {
		rnd = Default()
	}
	return &Loader{
		data:    data,
		session: sess,
		rnd:     rnd,
		log:     logging.Or(log),
	}
}

// Required is the number of bars every session holds.
func (l *Loader) Required() int {
	return l.session.Required()
}

// Files lists the day files for market in sorted order.
func (l *Loader) Files(marketKey string) ([]string, error) {
	if marketKey == "" {
		return nil, ErrNoMarket
	}
	m, ok := l.data.Markets[marketKey]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMarket, marketKey)
	}

	dir := filepath.Join(l.data.Root, m.Dir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrNoData, dir, err)
	}

	var files []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.EqualFold(filepath.Ext(name), tdx.Ext) {
			continue
		}
		if !hasPrefix(strings.ToLower(name), m.Prefixes) {
			continue
		}
		files = append(files, filepath.Join(dir, name))
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoData, dir)
	}
	sort.Strings(files)
	return files, nil
}

// Load picks a file for market at random and cuts a session from it.
func (l *Loader) Load(marketKey string) (*Session, error) {
	files, err := l.Files(marketKey)
	if err != nil {
		return nil, err
	}
	path := files[l.rnd.IntN(len(files))]
	l.log.WithFields(logrus.Fields{
		"market":     marketKey,
		"file":       path,
		"candidates": len(files),
	}).Debug("picked data file")
	return l.LoadFile(marketKey, path)
}

// LoadFile cuts a session from an explicit file.
func (l *Loader) LoadFile(marketKey, path string) (*Session, error) {
	bars, err := tdx.ReadFile(path)
	if err != nil {
		return nil, err
	}

	bars, offset, err := Window(bars, l.Required(), l.rnd)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}

	s := &Session{
		ID:     id.New(),
		Market: marketKey,
		Code:   tdx.Code(path),
		Source: path,
		Offset: offset,
		Bars:   bars,
	}
	l.log.WithFields(logrus.Fields{
		"market":  marketKey,
		"file":    path,
		"session": s.ID,
		"offset":  offset,
		"from":    bars[0].DateString(),
		"to":      bars[len(bars)-1].DateString(),
	}).Info("session loaded")
	return s, nil
}

// Window returns required contiguous bars starting at a random index in
// [0, len(bars)-required], and that index.
func Window(bars []market.Bar, required int, rnd Rand) ([]market.Bar, int, error) {
	if required <= 0 {
		return nil, 0, fmt.Errorf("window size must be positive, got %d", required)
	}
	if len(bars) < required {
		return nil, 0, fmt.Errorf("%w: need %d bars, found %d", ErrInsufficientHistory, required, len(bars))
	}
	start := rnd.IntN(len(bars) - required + 1)
	out := make([]market.Bar, required)
	copy(out, bars[start:start+required])
	return out, start, nil
}

func hasPrefix(name string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(name, strings.ToLower(p)) {
			return true
		}
	}
	return false
}
