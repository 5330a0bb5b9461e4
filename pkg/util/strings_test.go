package util

import "testing"

func TestParseIntDefault(t *testing.T) {
	if got := ParseIntDefault("", 7); got != 7 {
		t.Fatalf("empty: got %d", got)
	}
	if got := ParseIntDefault("abc", 7); got != 7 {
		t.Fatalf("invalid: got %d", got)
	}
	if got := ParseIntDefault("42", 7); got != 42 {
		t.Fatalf("valid: got %d", got)
	}
}

func TestParseFloatDefault(t *testing.T) {
	if got := ParseFloatDefault("", 0.5); got != 0.5 {
		t.Fatalf("empty: got %v", got)
	}
	if got := ParseFloatDefault("x", 0.5); got != 0.5 {
		t.Fatalf("invalid: got %v", got)
	}
	if got := ParseFloatDefault("0.25", 0.5); got != 0.25 {
		t.Fatalf("valid: got %v", got)
	}
}

func TestNormalizeSymbol(t *testing.T) {
	if got := NormalizeSymbol("  aapl "); got != "AAPL" {
		t.Fatalf("got %q", got)
	}
}
