package memory

import (
	"context"
	"testing"
	"time"
)

func TestTokenStore_SetGetRemove(t *testing.T) {
	ctx := context.Background()
	s := NewTokenStore(0)

	if _, ok, _ := s.Get(ctx, "sid"); ok {
		t.Fatal("expected empty slot")
	}
	if err := s.Set(ctx, "sid", "a"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s.Set(ctx, "sid", "b"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	v, ok, err := s.Get(ctx, "sid")
	if err != nil || !ok || v != "b" {
		t.Fatalf("expected last write to win, got %q ok=%v err=%v", v, ok, err)
	}
	if err := s.Remove(ctx, "sid"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if err := s.Remove(ctx, "sid"); err != nil {
		t.Fatalf("Remove on empty slot: %v", err)
	}
	if _, ok, _ := s.Get(ctx, "sid"); ok {
		t.Fatal("expected slot cleared")
	}
}

func TestTokenStore_StoresAnyValueVerbatim(t *testing.T) {
	ctx := context.Background()
	s := NewTokenStore(0)
	for _, v := range []string{"", "not-a-jwt", "a.b", "  spaced  "} {
		_ = s.Set(ctx, "sid", v)
		got, ok, _ := s.Get(ctx, "sid")
		if !ok || got != v {
			t.Fatalf("expected %q stored verbatim, got %q ok=%v", v, got, ok)
		}
	}
}

func TestTokenStore_SessionsAreIsolated(t *testing.T) {
	ctx := context.Background()
	s := NewTokenStore(0)
	_ = s.Set(ctx, "one", "t1")
	_ = s.Set(ctx, "two", "t2")
	_ = s.Remove(ctx, "one")

	if v, ok, _ := s.Get(ctx, "two"); !ok || v != "t2" {
		t.Fatalf("expected other session untouched, got %q ok=%v", v, ok)
	}
}

func TestTokenStore_TTL(t *testing.T) {
	ctx := context.Background()
	now := time.Unix(1_700_000_000, 0)
	s := NewTokenStore(time.Minute)
	s.now = func() time.Time { return now }

	_ = s.Set(ctx, "sid", "tok")
	now = now.Add(59 * time.Second)
	if _, ok, _ := s.Get(ctx, "sid"); !ok {
		t.Fatal("expected slot before ttl")
	}
	now = now.Add(time.Second)
	if _, ok, _ := s.Get(ctx, "sid"); ok {
		t.Fatal("expected slot expired at ttl")
	}
	if n := s.Purge(); n != 1 {
		t.Fatalf("expected 1 purged, got %d", n)
	}
}
