package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDate_Time(t *testing.T) {
	now := time.Date(2026, 3, 15, 18, 0, 0, 0, time.UTC)

	got, ok := NormalizeDate(now)
	require.True(t, ok)
	assert.Equal(t, now, got)

	got, ok = NormalizeDate(&now)
	require.True(t, ok)
	assert.Equal(t, now, got)
}

func TestNormalizeDate_ZeroTime(t *testing.T) {
	_, ok := NormalizeDate(time.Time{})
	assert.False(t, ok)

	var nilTime *time.Time
	_, ok = NormalizeDate(nilTime)
	assert.False(t, ok)
}

func TestNormalizeDate_Strings(t *testing.T) {
	cases := []struct {
		input string
		want  time.Time
	}{
		{"2026-03-15T18:00:00Z", time.Date(2026, 3, 15, 18, 0, 0, 0, time.UTC)},
		{"2026-03-15T18:00:00+03:00", time.Date(2026, 3, 15, 18, 0, 0, 0, time.FixedZone("", 3*60*60))},
		{"2026-03-15T18:00:00", time.Date(2026, 3, 15, 18, 0, 0, 0, time.UTC)},
		{"2026-03-15 18:00:00", time.Date(2026, 3, 15, 18, 0, 0, 0, time.UTC)},
		{"2026-03-15", time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)},
	}

	for _, tc := range cases {
		got, ok := NormalizeDate(tc.input)
		require.True(t, ok, "input %q", tc.input)
		assert.True(t, tc.want.Equal(got), "input %q: want %v, got %v", tc.input, tc.want, got)
	}
}

func TestNormalizeDate_Epoch(t *testing.T) {
	want := time.Date(2026, 3, 15, 18, 0, 0, 0, time.UTC)
	seconds := want.Unix()
	millis := want.UnixMilli()

	got, ok := NormalizeDate(seconds)
	require.True(t, ok)
	assert.True(t, want.Equal(got))

	got, ok = NormalizeDate(millis)
	require.True(t, ok)
	assert.True(t, want.Equal(got))

	// JSON numbers arrive as float64
	got, ok = NormalizeDate(float64(seconds))
	require.True(t, ok)
	assert.True(t, want.Equal(got))
}

func TestNormalizeDate_Invalid(t *testing.T) {
	for _, input := range []interface{}{nil, "", "not-a-date", int64(0), int64(-5), struct{}{}} {
		_, ok := NormalizeDate(input)
		assert.False(t, ok, "input %v", input)
	}
}

func TestUTCDayString(t *testing.T) {
	utc := time.Date(2026, 3, 15, 23, 30, 0, 0, time.UTC)
	assert.Equal(t, "2026-03-15", UTCDayString(utc))

	// A late-evening local time can fall on the next UTC day
	plus3 := time.Date(2026, 3, 16, 1, 30, 0, 0, time.FixedZone("", 3*60*60))
	assert.Equal(t, "2026-03-15", UTCDayString(plus3))
}

func TestEnsureUTC(t *testing.T) {
	local := time.Date(2026, 3, 15, 18, 0, 0, 0, time.FixedZone("", -5*60*60))
	got := EnsureUTC(local)
	assert.Equal(t, time.UTC, got.Location())
	assert.True(t, local.Equal(got))
}
