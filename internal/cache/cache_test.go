package cache

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestCache_GetOrFetch_CacheHitAndError(t *testing.T) {
	c := New[bool](200 * time.Millisecond)
	ctx := context.Background()
	calls := 0
	fetch := func(context.Context) (bool, error) {
		calls++
		return true, nil
	}
	// first call -> fetch
	v, src, err := c.GetOrFetch(ctx, "k1", fetch)
	if err != nil || !v || src != SourceFetch { t.Fatalf("first: v=%v src=%s err=%v", v, src, err) }
	// second call -> cache (no new fetch)
	v2, src2, err := c.GetOrFetch(ctx, "k1", fetch)
	if err != nil || !v2 || src2 != SourceCache { t.Fatalf("second: v=%v src=%s err=%v", v2, src2, err) }
	if calls != 1 { t.Fatalf("fetch calls=%d", calls) }

	// error path: use a different key so it doesn't use existing cache
	badFetch := func(context.Context) (bool, error) { return false, errors.New("fetch-fail") }
	_, src3, err := c.GetOrFetch(ctx, "k2", badFetch)
	if err == nil || src3 != "" { t.Fatalf("expected error, src='%s' err=%v", src3, err) }
	if _, ok := c.Get("k2"); ok { t.Fatalf("failed fetch should not be cached") }
}

func TestCache_SingleflightCoalesces(t *testing.T) {
	c := New[int](10 * time.Second)
	var mu sync.Mutex
	calls := 0

	fetch := func(ctx context.Context) (int, error) {
		mu.Lock(); calls++; mu.Unlock()
		time.Sleep(50 * time.Millisecond)
		return 1_234, nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, _, err := c.GetOrFetch(context.Background(), "k", fetch)
			if err != nil || v != 1_234 { t.Errorf("v=%d err=%v", v, err) }
		}()
	}
	wg.Wait()
	if calls != 1 { t.Fatalf("fetch calls=%d (want 1)", calls) }
}

func TestCache_ExpiryAndPurge(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	c := New[string](time.Minute)
	c.now = func() time.Time { return now }

	c.Set("a", "x")
	c.Set("b", "y")
	if v, ok := c.Get("a"); !ok || v != "x" { t.Fatalf("get a=%q ok=%v", v, ok) }

	now = now.Add(2 * time.Minute)
	if _, ok := c.Get("a"); ok { t.Fatalf("expected a expired") }
	c.Set("c", "z")
	if n := c.Purge(); n != 2 { t.Fatalf("purged=%d", n) }
	if c.Len() != 1 { t.Fatalf("len=%d", c.Len()) }

	c.Delete("c")
	if c.Len() != 0 { t.Fatalf("len after delete=%d", c.Len()) }
}
