// Package tdxtest builds synthetic day files for tests.
package tdxtest

import (
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// Record is one raw day record. Prices are in hundredths.
type Record struct {
	Date     uint32
	Open     uint32
	High     uint32
	Low      uint32
	Close    uint32
	Turnover float32
	Volume   uint32
	Reserved uint32
}

// Encode lays records out exactly as a .day file stores them.
func Encode(recs ...Record) []byte {
	buf := make([]byte, 0, len(recs)*32)
	for _, r := range recs {
		buf = binary.LittleEndian.AppendUint32(buf, r.Date)
		buf = binary.LittleEndian.AppendUint32(buf, r.Open)
		buf = binary.LittleEndian.AppendUint32(buf, r.High)
		buf = binary.LittleEndian.AppendUint32(buf, r.Low)
		buf = binary.LittleEndian.AppendUint32(buf, r.Close)
		buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(r.Turnover))
		buf = binary.LittleEndian.AppendUint32(buf, r.Volume)
		buf = binary.LittleEndian.AppendUint32(buf, r.Reserved)
	}
	return buf
}

// Series returns n consecutive calendar days of records starting at start.
// Closes follow the closes slice when given, otherwise they climb by one
// cent a day from 10.00.
func Series(start time.Time, n int, closes ...uint32) []Record {
	recs := make([]Record, n)
	for i := 0; i < n; i++ {
		d := start.AddDate(0, 0, i)
		c := uint32(1000 + i)
		if i < len(closes) {
			c = closes[i]
		}
		recs[i] = Record{
			Date:     uint32(d.Year()*10000 + int(d.Month())*100 + d.Day()),
			Open:     c,
			High:     c + 5,
			Low:      c - min(c, 5),
			Close:    c,
			Turnover: float32(c) * 100,
			Volume:   uint32(10000 + i),
			Reserved: 0x00010000,
		}
	}
	return recs
}

// WriteFile writes recs to dir/name and returns the path.
func WriteFile(t testing.TB, dir, name string, recs ...Record) string {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", dir, err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, Encode(recs...), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}
