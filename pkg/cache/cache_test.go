package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/newsaura/news-gateway/pkg/store"
)

func newTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	st := store.NewWithClient(rdb, zerolog.Nop())
	st.Connect(context.Background())

	return New(st, zerolog.Nop()), mr
}

type sentimentResult struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

func TestCache_RoundTrip(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	want := sentimentResult{Label: "positive", Score: 0.82}
	c.Set(ctx, "sentiment:abc", want)

	var got sentimentResult
	if !c.Get(ctx, "sentiment:abc", &got) {
		t.Fatal("Get() miss after Set()")
	}
	if got != want {
		t.Errorf("Get() = %+v, want %+v", got, want)
	}
}

func TestCache_RepeatedGetsAreIdempotent(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	c.Set(ctx, "news:science", []string{"a", "b"})

	for i := 0; i < 3; i++ {
		var got []string
		if !c.Get(ctx, "news:science", &got) {
			t.Fatalf("Get() #%d miss", i)
		}
		if len(got) != 2 || got[0] != "a" || got[1] != "b" {
			t.Errorf("Get() #%d = %v", i, got)
		}
	}
}

func TestCache_Miss(t *testing.T) {
	c, _ := newTestCache(t)

	var got string
	if c.Get(context.Background(), "news:none", &got) {
		t.Error("Get() hit for missing key")
	}
}

func TestCache_TTLOverride(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	c.SetWithTTL(ctx, "gnews:hits:today:2026-08-29", 5, 24*time.Hour)
	c.Set(ctx, "news:sports", []string{"x"})

	// Past the default TTL: the default-TTL entry is gone, the 24h
	// entry is not.
	mr.FastForward(DefaultTTL + time.Minute)

	var hits int
	if !c.Get(ctx, "gnews:hits:today:2026-08-29", &hits) {
		t.Error("24h entry expired with the default TTL")
	}
	var articles []string
	if c.Get(ctx, "news:sports", &articles) {
		t.Error("default-TTL entry survived past its TTL")
	}
}

func TestCache_CorruptEntryIsMiss(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	// Write garbage behind the typed layer's back.
	mr.Set("sentiment:bad", "{not json")
	mr.SetTTL("sentiment:bad", time.Minute)

	var got sentimentResult
	if c.Get(ctx, "sentiment:bad", &got) {
		t.Error("corrupt entry surfaced as a hit")
	}
}

func TestCache_Invalidate(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	c.Set(ctx, "comments:article-1", []string{"nice"})
	c.Invalidate(ctx, "comments:article-1")

	var got []string
	if c.Get(ctx, "comments:article-1", &got) {
		t.Error("Get() hit after Invalidate()")
	}
}

func TestCache_InvalidatePrefix(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	c.Set(ctx, "comments:a", 1)
	c.Set(ctx, "comments:b", 2)
	c.Set(ctx, "news:world", 3)

	c.InvalidatePrefix(ctx, CommentsPrefix)

	var n int
	if c.Get(ctx, "comments:a", &n) || c.Get(ctx, "comments:b", &n) {
		t.Error("comment entries survived prefix invalidation")
	}
	if !c.Get(ctx, "news:world", &n) {
		t.Error("unrelated entry was invalidated")
	}
}

func TestCache_DisabledBackend(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	rdb := redis.NewClient(&redis.Options{Addr: addr})
	defer rdb.Close()

	st := store.NewWithClient(rdb, zerolog.Nop())
	st.Connect(context.Background())
	c := New(st, zerolog.Nop())

	ctx := context.Background()

	// With the backend down the cache is transparent: writes are
	// swallowed, reads always miss, nothing errors.
	c.Set(ctx, "news:world", []string{"a"})
	var got []string
	if c.Get(ctx, "news:world", &got) {
		t.Error("Get() hit with disabled backend")
	}
	c.Invalidate(ctx, "news:world")
	c.InvalidatePrefix(ctx, "news:*")
}
