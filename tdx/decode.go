// Package tdx reads the TDX daily quote format (.day files).
//
// Every record is 32 bytes, little-endian:
//
//	0   uint32  date as YYYYMMDD
//	4   uint32  open  x100
//	8   uint32  high  x100
//	12  uint32  low   x100
//	16  uint32  close x100
//	20  float32 turnover (ignored)
//	24  uint32  volume
//	28  uint32  reserved (ignored)
package tdx

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rustyeddy/dayreplay/market"
)

const (
	RecordSize = 32
	Ext        = ".day"
)

const (
	offDate   = 0
	offOpen   = 4
	offHigh   = 8
	offLow    = 12
	offClose  = 16
	offVolume = 24
)

var ErrBadDate = errors.New("bad date")

// DecodeError reports which record could not be decoded.
type DecodeError struct {
	Index int
	Raw   uint32
	Err   error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("record %d: %v %d", e.Index, e.Err, e.Raw)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Decode parses a buffer of day records. A trailing partial record is
// dropped.
func Decode(buf []byte) ([]market.Bar, error) {
	n := len(buf) / RecordSize
	bars := make([]market.Bar, 0, n)
	for i := 0; i < n; i++ {
		b, err := DecodeRecord(buf[i*RecordSize : (i+1)*RecordSize])
		if err != nil {
			var de *DecodeError
			if errors.As(err, &de) {
				de.Index = i
			}
			return nil, err
		}
		bars = append(bars, b)
	}
	return bars, nil
}

// DecodeRecord parses a single 32 byte record.
func DecodeRecord(rec []byte) (market.Bar, error) {
	if len(rec) < RecordSize {
		return market.Bar{}, fmt.Errorf("short record: %d bytes", len(rec))
	}

	raw := binary.LittleEndian.Uint32(rec[offDate:])
	date, err := parseDate(raw)
	if err != nil {
		return market.Bar{}, &DecodeError{Raw: raw, Err: err}
	}

	return market.Bar{
		Date:   date,
		Open:   market.FromCents(binary.LittleEndian.Uint32(rec[offOpen:])),
		High:   market.FromCents(binary.LittleEndian.Uint32(rec[offHigh:])),
		Low:    market.FromCents(binary.LittleEndian.Uint32(rec[offLow:])),
		Close:  market.FromCents(binary.LittleEndian.Uint32(rec[offClose:])),
		Volume: uint64(binary.LittleEndian.Uint32(rec[offVolume:])),
	}, nil
}

func parseDate(raw uint32) (time.Time, error) {
	s := strconv.FormatUint(uint64(raw), 10)
	if len(s) != 8 {
		return time.Time{}, ErrBadDate
	}
	t, err := time.ParseInLocation("20060102", s, time.UTC)
	if err != nil {
		return time.Time{}, ErrBadDate
	}
	return t, nil
}

// ReadFile reads and decodes a .day file.
func ReadFile(path string) ([]market.Bar, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	bars, err := Decode(buf)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return bars, nil
}

// Code returns the instrument code of a day file, sh600000.day -> sh600000.
func Code(path string) string {
	return strings.TrimSuffix(filepath.Base(path), Ext)
}
