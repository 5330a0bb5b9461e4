package cache

import (
	"bytes"
	"testing"
	"time"
)

func TestTTLCacheExpiry(t *testing.T) {
	c := NewTTLCache()
	if err := c.SetBytes("k", []byte("v"), 10*time.Millisecond); err != nil {
		t.Fatalf("set: %v", err)
	}

	b, ok, err := c.GetBytes("k")
	if err != nil || !ok || !bytes.Equal(b, []byte("v")) {
		t.Fatalf("expected hit, got ok=%v err=%v b=%q", ok, err, b)
	}

	time.Sleep(20 * time.Millisecond)
	if _, ok, _ := c.GetBytes("k"); ok {
		t.Fatal("expected entry to expire")
	}
}

func TestTTLCacheZeroTTLNeverExpires(t *testing.T) {
	c := NewTTLCache()
	if err := c.SetBytes("k", []byte("v"), 0); err != nil {
		t.Fatalf("set: %v", err)
	}
	if _, ok, _ := c.GetBytes("k"); !ok {
		t.Fatal("expected hit for zero-ttl entry")
	}
}

func TestLayeredBackfill(t *testing.T) {
	l1 := NewTTLCache()
	l2 := NewTTLCache()
	layered := NewLayered(l1, l2)

	// Seed only the lower layer.
	if err := l2.SetBytes("k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("seed: %v", err)
	}

	b, ok, err := layered.GetBytes("k")
	if err != nil || !ok || !bytes.Equal(b, []byte("v")) {
		t.Fatalf("expected layered hit, got ok=%v err=%v", ok, err)
	}

	// Upper layer should have been backfilled.
	if _, ok, _ := l1.GetBytes("k"); !ok {
		t.Fatal("expected backfill into upper layer")
	}
}

func TestLayeredWriteThrough(t *testing.T) {
	l1 := NewTTLCache()
	l2 := NewTTLCache()
	layered := NewLayered(l1, l2)

	if err := layered.SetBytes("k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}
	if _, ok, _ := l1.GetBytes("k"); !ok {
		t.Fatal("expected write into first layer")
	}
	if _, ok, _ := l2.GetBytes("k"); !ok {
		t.Fatal("expected write into second layer")
	}
}

func TestSQLiteCacheRoundTrip(t *testing.T) {
	c, err := NewSQLiteCache(t.TempDir()+"/cache.db", 0)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer c.Close()

	if err := c.SetBytes("k", []byte("payload"), time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}
	b, ok, err := c.GetBytes("k")
	if err != nil || !ok || !bytes.Equal(b, []byte("payload")) {
		t.Fatalf("expected hit, got ok=%v err=%v", ok, err)
	}

	// Overwrite.
	if err := c.SetBytes("k", []byte("other"), time.Minute); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	b, _, _ = c.GetBytes("k")
	if !bytes.Equal(b, []byte("other")) {
		t.Fatalf("expected overwritten value, got %q", b)
	}

	if _, ok, _ := c.GetBytes("missing"); ok {
		t.Fatal("expected miss for unknown key")
	}
}

func TestSQLiteCacheExpiredRowDropped(t *testing.T) {
	c, err := NewSQLiteCache(t.TempDir()+"/cache.db", 0)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer c.Close()

	if err := c.SetBytes("k", []byte("v"), time.Second); err != nil {
		t.Fatalf("set: %v", err)
	}
	// Force the expiry into the past.
	if _, err := c.db.Exec(`UPDATE cache_entries SET expires_at = 1 WHERE key = 'k'`); err != nil {
		t.Fatalf("update: %v", err)
	}
	if _, ok, _ := c.GetBytes("k"); ok {
		t.Fatal("expected expired entry to miss")
	}
}
