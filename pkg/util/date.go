package util

import (
	"strconv"
	"time"
)

// ParseTime tries RFC3339, RFC3339Nano, plain dates, and unix seconds.
// Returns (t, true) if any worked.
func ParseTime(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, true
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, true
	}
	if ts, err := strconv.ParseInt(s, 10, 64); err == nil && ts > 0 {
		return time.Unix(ts, 0), true
	}
	return time.Time{}, false
}

// ParseTimeDefault parses time or returns default if empty/invalid.
func ParseTimeDefault(s string, def time.Time) time.Time {
	if t, ok := ParseTime(s); ok {
		return t
	}
	return def
}

// RangeDuration maps a Yahoo-style range token ("1d", "5d", "1mo", "3mo",
// "6mo", "1y", "2y", "5y", "max") to an approximate lookback duration.
// Unknown tokens fall back to def.
func RangeDuration(rng string, def time.Duration) time.Duration {
	const day = 24 * time.Hour
	switch rng {
	case "1d":
		return day
	case "5d":
		return 5 * day
	case "1mo":
		return 31 * day
	case "3mo":
		return 92 * day
	case "6mo":
		return 183 * day
	case "1y":
		return 365 * day
	case "2y":
		return 2 * 365 * day
	case "5y":
		return 5 * 365 * day
	case "max":
		return 25 * 365 * day
	default:
		return def
	}
}

// AlignFromTo rounds the time range to bar boundaries for the interval.
func AlignFromTo(from, to time.Time, interval string) (time.Time, time.Time) {
	switch interval {
	case "1m":
		from = from.Truncate(time.Minute)
		to = to.Truncate(time.Minute)
	case "1h", "60m":
		from = from.Truncate(time.Hour)
		to = to.Truncate(time.Hour)
	default:
		from = from.Truncate(24 * time.Hour)
		to = to.Truncate(24 * time.Hour)
	}
	return from, to
}
