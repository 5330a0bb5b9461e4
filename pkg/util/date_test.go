package util

import (
	"strconv"
	"testing"
	"time"
)

func TestParseTimeRFC3339(t *testing.T) {
	s := "2025-03-10T14:30:00Z"
	got, ok := ParseTime(s)
	if !ok {
		t.Fatalf("expected ok")
	}
	if got.UTC().Format(time.RFC3339) != s {
		t.Fatalf("unexpected time %v", got)
	}
}

func TestParseTimeDateOnly(t *testing.T) {
	got, ok := ParseTime("2025-03-10")
	if !ok {
		t.Fatalf("expected ok")
	}
	if got.Year() != 2025 || got.Month() != time.March || got.Day() != 10 {
		t.Fatalf("unexpected time %v", got)
	}
}

func TestParseTimeUnix(t *testing.T) {
	ts := time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC).Unix()
	got, ok := ParseTime(strconv.FormatInt(ts, 10))
	if !ok {
		t.Fatalf("expected ok")
	}
	if got.Unix() != ts {
		t.Fatalf("unexpected unix %v", got.Unix())
	}
}

func TestParseTimeDefault(t *testing.T) {
	def := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	got := ParseTimeDefault("", def)
	if !got.Equal(def) {
		t.Fatalf("expected default")
	}
}

func TestRangeDuration(t *testing.T) {
	if d := RangeDuration("1mo", 0); d != 31*24*time.Hour {
		t.Fatalf("1mo: got %v", d)
	}
	if d := RangeDuration("bogus", 24*time.Hour); d != 24*time.Hour {
		t.Fatalf("fallback: got %v", d)
	}
}

func TestAlignFromTo(t *testing.T) {
	from := time.Date(2025, 3, 10, 14, 37, 12, 0, time.UTC)
	to := time.Date(2025, 3, 12, 9, 5, 0, 0, time.UTC)

	f, tt := AlignFromTo(from, to, "1d")
	if f.Hour() != 0 || tt.Hour() != 0 {
		t.Fatalf("daily: got %v %v", f, tt)
	}

	f, tt = AlignFromTo(from, to, "1h")
	if f.Minute() != 0 || tt.Minute() != 0 {
		t.Fatalf("hourly: got %v %v", f, tt)
	}
}
