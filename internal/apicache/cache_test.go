package apicache

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func newTestCache(t *testing.T, ttl time.Duration) *Cache {
	t.Helper()
	c, err := Open(filepath.Join(t.TempDir(), "cache", "cache.db"), ttl)
	if err != nil {
		t.Fatalf("failed to open cache: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func TestKeyDeterministic(t *testing.T) {
	k1 := Key("summarize the logs", "claude-3", 1024, false)
	k2 := Key("summarize the logs", "claude-3", 1024, false)
	if k1 != k2 {
		t.Error("same parameters produced different keys")
	}

	variants := []string{
		Key("summarize the logs", "claude-3", 1024, true),
		Key("summarize the logs", "claude-3", 2048, false),
		Key("summarize the logs", "claude-4", 1024, false),
		Key("summarize the code", "claude-3", 1024, false),
	}
	for i, v := range variants {
		if v == k1 {
			t.Errorf("variant %d collided with base key", i)
		}
	}
}

func TestPutGetRoundtrip(t *testing.T) {
	c := newTestCache(t, time.Hour)
	ctx := context.Background()
	key := Key("hello", "claude-3", 100, false)

	if _, ok, err := c.Get(ctx, key); err != nil || ok {
		t.Fatalf("expected miss before put, got ok=%v err=%v", ok, err)
	}

	if err := c.Put(ctx, key, "hello", "hi there"); err != nil {
		t.Fatalf("put failed: %v", err)
	}

	resp, ok, err := c.Get(ctx, key)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if !ok || resp != "hi there" {
		t.Errorf("got (%q, %v), want (hi there, true)", resp, ok)
	}
}

func TestPutReplacesExisting(t *testing.T) {
	c := newTestCache(t, time.Hour)
	ctx := context.Background()
	key := Key("hello", "claude-3", 100, false)

	if err := c.Put(ctx, key, "hello", "first"); err != nil {
		t.Fatal(err)
	}
	if err := c.Put(ctx, key, "hello", "second"); err != nil {
		t.Fatal(err)
	}

	resp, ok, _ := c.Get(ctx, key)
	if !ok || resp != "second" {
		t.Errorf("got (%q, %v), want (second, true)", resp, ok)
	}
}

func TestExpiredEntryIsEvicted(t *testing.T) {
	c := newTestCache(t, 50*time.Millisecond)
	ctx := context.Background()
	key := Key("hello", "claude-3", 100, false)

	if err := c.Put(ctx, key, "hello", "stale soon"); err != nil {
		t.Fatal(err)
	}
	time.Sleep(100 * time.Millisecond)

	if _, ok, err := c.Get(ctx, key); err != nil || ok {
		t.Fatalf("expected expired miss, got ok=%v err=%v", ok, err)
	}

	count, _, err := c.Stats(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if count != 0 {
		t.Errorf("expired entry still present, count = %d", count)
	}
}

func TestListNewestFirst(t *testing.T) {
	c := newTestCache(t, time.Hour)
	ctx := context.Background()

	longPrompt := strings.Repeat("x", 150)
	prompts := []string{"first prompt", "second prompt", longPrompt}
	for i, p := range prompts {
		key := Key(p, "claude-3", 100, false)
		if err := c.Put(ctx, key, p, "resp"); err != nil {
			t.Fatal(err)
		}
		// created_at has second precision in SQLite comparisons.
		if i < len(prompts)-1 {
			time.Sleep(1100 * time.Millisecond)
		}
	}

	entries, err := c.List(ctx, 2)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if !strings.HasPrefix(entries[0].PromptPreview, "xxx") {
		t.Errorf("newest entry not first: %q", entries[0].PromptPreview)
	}
	if !strings.HasSuffix(entries[0].PromptPreview, "...") || len(entries[0].PromptPreview) != previewLen+3 {
		t.Errorf("long prompt not truncated to preview: %q", entries[0].PromptPreview)
	}
}

func TestStatsWithEntries(t *testing.T) {
	c := newTestCache(t, time.Hour)
	ctx := context.Background()

	before := time.Now().UTC().Add(-time.Second)
	if err := c.Put(ctx, Key("hello", "claude-3", 100, false), "hello", "hi"); err != nil {
		t.Fatal(err)
	}

	count, oldest, err := c.Stats(ctx)
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}
	if oldest.IsZero() {
		t.Error("oldest is the zero time for a non-empty cache")
	}
	if oldest.Before(before) || oldest.After(time.Now().UTC().Add(time.Second)) {
		t.Errorf("oldest = %v, outside the put window", oldest)
	}
}

func TestPrune(t *testing.T) {
	c := newTestCache(t, 0)
	ctx := context.Background()

	for _, p := range []string{"a", "b", "c"} {
		if err := c.Put(ctx, Key(p, "claude-3", 100, false), p, "resp"); err != nil {
			t.Fatal(err)
		}
	}

	// Nothing is older than an hour yet.
	removed, err := c.Prune(ctx, time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	if removed != 0 {
		t.Errorf("pruned %d fresh entries", removed)
	}

	removed, err = c.Prune(ctx, 0)
	if err != nil {
		t.Fatal(err)
	}
	if removed != 3 {
		t.Errorf("cleared %d entries, want 3", removed)
	}

	count, _, err := c.Stats(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if count != 0 {
		t.Errorf("count = %d after clear, want 0", count)
	}
}
