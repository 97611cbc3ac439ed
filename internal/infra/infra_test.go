package infra

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"
)

// ── Cache Tests ──

func TestCacheGetSet(t *testing.T) {
	c := NewCache[int](time.Minute)
	c.Set("a", 1)
	if v, ok := c.Get("a"); !ok || v != 1 {
		t.Errorf("Get(a) = %d, %v", v, ok)
	}
	if _, ok := c.Get("missing"); ok {
		t.Error("missing key should not be found")
	}
	c.Invalidate("a")
	if _, ok := c.Get("a"); ok {
		t.Error("invalidated key should not be found")
	}
}

func TestCacheExpiry(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewCache[string](time.Minute)
	c.now = func() time.Time { return now }

	c.Set("k", "v")
	c.SetWithTTL("long", "v", time.Hour)
	now = now.Add(2 * time.Minute)

	if _, ok := c.Get("k"); ok {
		t.Error("expired key should not be found")
	}
	if _, ok := c.Get("long"); !ok {
		t.Error("long TTL key should still be found")
	}
	c.Cleanup()
	if c.Len() != 1 {
		t.Errorf("Cleanup should drop expired entries, Len = %d", c.Len())
	}
	c.Flush()
	if c.Len() != 0 {
		t.Error("Flush should empty the cache")
	}
}

func TestCacheJanitorStops(t *testing.T) {
	c := NewCache[int](time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		c.RunJanitor(ctx, time.Millisecond)
		close(done)
	}()
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("janitor did not stop")
	}
}

// ── Logger Tests ──

func TestNewLoggerJSON(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewLogger("warn", "json", &buf)
	if err != nil {
		t.Fatalf("NewLogger error: %v", err)
	}
	log.Info().Msg("hidden")
	log.Warn().Str("component", "test").Msg("shown")
	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("info should be filtered at warn level")
	}
	if !strings.Contains(out, `"component":"test"`) || !strings.Contains(out, `"message":"shown"`) {
		t.Errorf("unexpected output %q", out)
	}
}

func TestNewLoggerErrors(t *testing.T) {
	if _, err := NewLogger("loud", "json", nil); err == nil {
		t.Error("expected error for an unknown level")
	}
	if _, err := NewLogger("info", "xml", nil); err == nil {
		t.Error("expected error for an unknown format")
	}
	if _, err := NewLogger("", "text", &bytes.Buffer{}); err != nil {
		t.Errorf("empty level should default to info: %v", err)
	}
}
