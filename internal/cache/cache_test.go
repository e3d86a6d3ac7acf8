package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemoryClientRoundTrip(t *testing.T) {
	t.Parallel()
	c := NewMemoryClient(10)
	defer c.Close()
	ctx := context.Background()

	if _, err := c.Get(ctx, "absent"); !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("Get(absent) = %v, want ErrCacheMiss", err)
	}

	if err := c.Set(ctx, "greeting", []byte("hello"), time.Minute); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	got, err := c.Get(ctx, "greeting")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if string(got) != "hello" {
		t.Errorf("Get() = %q, want %q", got, "hello")
	}

	if err := c.Delete(ctx, "greeting"); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if _, err := c.Get(ctx, "greeting"); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("Get() after delete = %v, want ErrCacheMiss", err)
	}
}

func TestMemoryClientExpiry(t *testing.T) {
	t.Parallel()
	c := NewMemoryClient(10)
	defer c.Close()
	ctx := context.Background()

	if err := c.Set(ctx, "stale", []byte("old"), time.Minute); err != nil {
		t.Fatalf("Set() error: %v", err)
	}

	// Back-date the entry past its deadline; the read path must report a
	// miss on its own, without waiting on the janitor sweep.
	c.mu.Lock()
	entry := c.entries["stale"]
	entry.expiresAt = time.Now().Add(-time.Second)
	c.entries["stale"] = entry
	c.mu.Unlock()

	if _, err := c.Get(ctx, "stale"); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("Get(expired) = %v, want ErrCacheMiss", err)
	}

	// Non-positive ttl means no expiry.
	for _, ttl := range []time.Duration{0, -time.Second} {
		if err := c.Set(ctx, "pinned", []byte("keep"), ttl); err != nil {
			t.Fatalf("Set(ttl=%v) error: %v", ttl, err)
		}
		if _, err := c.Get(ctx, "pinned"); err != nil {
			t.Errorf("Get(pinned, ttl=%v) = %v, want nil", ttl, err)
		}
	}
}

func TestMemoryClientDeleteByPrefix(t *testing.T) {
	t.Parallel()
	c := NewMemoryClient(10)
	defer c.Close()
	ctx := context.Background()

	c.Set(ctx, "answers:a", []byte("1"), time.Minute)
	c.Set(ctx, "answers:b", []byte("2"), time.Minute)
	c.Set(ctx, "tickets:c", []byte("3"), time.Minute)

	if err := c.DeleteByPrefix(ctx, "answers:"); err != nil {
		t.Fatalf("DeleteByPrefix() error: %v", err)
	}

	if _, err := c.Get(ctx, "answers:a"); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("answers:a survived prefix delete")
	}
	if _, err := c.Get(ctx, "answers:b"); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("answers:b survived prefix delete")
	}
	if _, err := c.Get(ctx, "tickets:c"); err != nil {
		t.Errorf("tickets:c was deleted by an unrelated prefix")
	}
}

func TestMemoryClientEviction(t *testing.T) {
	t.Parallel()
	c := NewMemoryClient(2)
	defer c.Close()
	ctx := context.Background()

	c.Set(ctx, "first", []byte("1"), time.Minute)
	c.Set(ctx, "second", []byte("2"), time.Hour)
	c.Set(ctx, "third", []byte("3"), time.Hour)

	if got := c.Len(); got != 2 {
		t.Fatalf("Len() = %d, want 2 after eviction", got)
	}
	// The soonest-expiring entry goes first.
	if _, err := c.Get(ctx, "first"); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("expected oldest entry to be evicted")
	}
}

func TestKey(t *testing.T) {
	t.Parallel()
	if got := Key("answers", "abc"); got != "answers:abc" {
		t.Errorf("Key() = %q, want answers:abc", got)
	}
}

func TestQuestionKeyNormalizes(t *testing.T) {
	t.Parallel()
	a := QuestionKey("  How many vacation days?  ")
	b := QuestionKey("how many vacation days?")
	if a != b {
		t.Errorf("QuestionKey should match across case and whitespace: %q vs %q", a, b)
	}
	c := QuestionKey("what is the sick leave policy")
	if a == c {
		t.Errorf("distinct questions should produce distinct keys")
	}
}
