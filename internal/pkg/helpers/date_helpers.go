package helpers

import (
	"time"
)

// Accepted layouts for string-shaped event dates. The store historically
// produced RFC3339 timestamps, but older records carry date-only strings.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// NormalizeDate converts any of the event date shapes the store can return
// into a time.Time: a native time.Time (or pointer), an RFC3339-ish string,
// or an epoch value in seconds or milliseconds. It never panics; the second
// return value is false when the input is nil, empty, or unparseable.
func NormalizeDate(value interface{}) (time.Time, bool) {
	switch v := value.(type) {
	case nil:
		return time.Time{}, false
	case time.Time:
		if v.IsZero() {
			return time.Time{}, false
		}
		return v, true
	case *time.Time:
		if v == nil || v.IsZero() {
			return time.Time{}, false
		}
		return *v, true
	case string:
		if v == "" {
			return time.Time{}, false
		}
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, v); err == nil {
				return t, true
			}
		}
		return time.Time{}, false
	case int64:
		return fromEpoch(v)
	case int:
		return fromEpoch(int64(v))
	case float64:
		// JSON numbers decode as float64
		return fromEpoch(int64(v))
	default:
		return time.Time{}, false
	}
}

// fromEpoch interprets an epoch value, treating magnitudes above 1e12 as
// milliseconds and everything else as seconds.
func fromEpoch(v int64) (time.Time, bool) {
	if v <= 0 {
		return time.Time{}, false
	}
	if v > 1_000_000_000_000 {
		return time.UnixMilli(v).UTC(), true
	}
	return time.Unix(v, 0).UTC(), true
}

// UTCDayString returns the canonical calendar-day string (year-month-day)
// for a point in time, computed in UTC so grouping does not shift across
// viewer timezones.
func UTCDayString(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// EnsureUTC normalizes a database timestamp to UTC.
func EnsureUTC(t time.Time) time.Time {
	return t.UTC()
}
