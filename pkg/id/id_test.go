package id

import (
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIsOrdered(t *testing.T) {
	prev := New()
	for i := 0; i < 100; i++ {
		next := New()
		assert.Less(t, prev, next)
		prev = next
	}
}

func TestNewAtTimestamp(t *testing.T) {
	ts := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)
	s := NewAt(ts)

	parsed, err := ulid.Parse(s)
	require.NoError(t, err)
	assert.Equal(t, ulid.Timestamp(ts), parsed.Time())
}

func TestShort(t *testing.T) {
	assert.Equal(t, "01HX0000", Short("01HX0000ABCDEFGHJKMNPQRSTV"))
	assert.Equal(t, "abc", Short("abc"))
}
