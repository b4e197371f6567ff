package cache

import (
	"context"
	"testing"
	"time"
)

func TestMemoryCache_SetGet(t *testing.T) {
	c := NewMemoryCache(DefaultOptions())
	defer c.Close()
	ctx := context.Background()

	if err := c.Set(ctx, "k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, err := c.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != "v" {
		t.Errorf("expected v, got %s", got)
	}
}

func TestMemoryCache_GetMissReturnsErrKeyNotFound(t *testing.T) {
	c := NewMemoryCache(DefaultOptions())
	defer c.Close()

	if _, err := c.Get(context.Background(), "missing"); err != ErrKeyNotFound {
		t.Errorf("expected ErrKeyNotFound, got %v", err)
	}
}

func TestMemoryCache_Expiry(t *testing.T) {
	c := NewMemoryCache(DefaultOptions())
	defer c.Close()
	ctx := context.Background()

	_ = c.Set(ctx, "k", []byte("v"), 1*time.Millisecond)
	time.Sleep(5 * time.Millisecond)

	if _, err := c.Get(ctx, "k"); err != ErrKeyNotFound {
		t.Errorf("expected expired key to miss, got err=%v", err)
	}
}

func TestMemoryCache_Delete(t *testing.T) {
	c := NewMemoryCache(DefaultOptions())
	defer c.Close()
	ctx := context.Background()

	_ = c.Set(ctx, "k", []byte("v"), time.Minute)
	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := c.Get(ctx, "k"); err != ErrKeyNotFound {
		t.Errorf("expected miss after delete, got %v", err)
	}
}

func TestMemoryCache_Exists(t *testing.T) {
	c := NewMemoryCache(DefaultOptions())
	defer c.Close()
	ctx := context.Background()

	_ = c.Set(ctx, "k", []byte("v"), time.Minute)

	ok, err := c.Exists(ctx, "k")
	if err != nil || !ok {
		t.Errorf("expected key to exist, ok=%v err=%v", ok, err)
	}
	ok, err = c.Exists(ctx, "missing")
	if err != nil || ok {
		t.Errorf("expected missing key to not exist, ok=%v err=%v", ok, err)
	}
}

func TestMemoryCache_MGetMSetMDelete(t *testing.T) {
	c := NewMemoryCache(DefaultOptions())
	defer c.Close()
	ctx := context.Background()

	entries := map[string][]byte{"a": []byte("1"), "b": []byte("2")}
	if err := c.MSet(ctx, entries, time.Minute); err != nil {
		t.Fatalf("MSet: %v", err)
	}

	got, err := c.MGet(ctx, []string{"a", "b", "missing"})
	if err != nil {
		t.Fatalf("MGet: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("expected 2 hits, got %d", len(got))
	}

	count, err := c.MDelete(ctx, []string{"a", "missing"})
	if err != nil {
		t.Fatalf("MDelete: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 deleted, got %d", count)
	}
}

func TestMemoryCache_KeysAndDeleteByPattern(t *testing.T) {
	c := NewMemoryCache(DefaultOptions())
	defer c.Close()
	ctx := context.Background()

	_ = c.Set(ctx, "matrix:a", []byte("1"), time.Minute)
	_ = c.Set(ctx, "matrix:b", []byte("2"), time.Minute)
	_ = c.Set(ctx, "solve:a", []byte("3"), time.Minute)

	keys, err := c.Keys(ctx, "matrix:*")
	if err != nil {
		t.Fatalf("Keys: %v", err)
	}
	if len(keys) != 2 {
		t.Errorf("expected 2 matrix keys, got %d", len(keys))
	}

	count, err := c.DeleteByPattern(ctx, "matrix:*")
	if err != nil {
		t.Fatalf("DeleteByPattern: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 deleted, got %d", count)
	}

	if ok, _ := c.Exists(ctx, "solve:a"); !ok {
		t.Error("expected unrelated key to survive pattern delete")
	}
}

func TestMemoryCache_EvictsWhenAtCapacity(t *testing.T) {
	opts := DefaultOptions()
	opts.MaxEntries = 2
	c := NewMemoryCache(opts)
	defer c.Close()
	ctx := context.Background()

	_ = c.Set(ctx, "a", []byte("1"), time.Minute)
	_ = c.Set(ctx, "b", []byte("2"), time.Minute)
	_ = c.Set(ctx, "c", []byte("3"), time.Minute)

	stats, err := c.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.TotalKeys > 2 {
		t.Errorf("expected eviction to cap entries at 2, got %d", stats.TotalKeys)
	}
}

func TestMemoryCache_Stats_HitRate(t *testing.T) {
	c := NewMemoryCache(DefaultOptions())
	defer c.Close()
	ctx := context.Background()

	_ = c.Set(ctx, "k", []byte("v"), time.Minute)
	_, _ = c.Get(ctx, "k")
	_, _ = c.Get(ctx, "missing")

	stats, err := c.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.Hits != 1 || stats.Misses != 1 {
		t.Errorf("expected 1 hit and 1 miss, got hits=%d misses=%d", stats.Hits, stats.Misses)
	}
	if stats.HitRate != 0.5 {
		t.Errorf("expected hit rate 0.5, got %f", stats.HitRate)
	}
}

func TestMemoryCache_ClearAndClose(t *testing.T) {
	c := NewMemoryCache(DefaultOptions())
	ctx := context.Background()

	_ = c.Set(ctx, "k", []byte("v"), time.Minute)
	if err := c.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if _, err := c.Get(ctx, "k"); err != ErrKeyNotFound {
		t.Errorf("expected miss after clear, got %v", err)
	}

	if err := c.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if _, err := c.Get(ctx, "k"); err != ErrCacheClosed {
		t.Errorf("expected ErrCacheClosed after close, got %v", err)
	}
}

func TestMemoryCache_EvictionPrefersCheaperKinds(t *testing.T) {
	opts := DefaultOptions()
	opts.MaxEntries = 2
	c := NewMemoryCache(opts)
	defer c.Close()
	ctx := context.Background()

	_ = c.Set(ctx, "matrix:api:loc1", []byte("1"), time.Minute)
	_ = c.Set(ctx, "solve:req1", []byte("2"), time.Minute)
	// at capacity: adding a third entry must evict the solve result,
	// not the paid-API matrix entry, regardless of access order.
	_ = c.Set(ctx, "solve:req2", []byte("3"), time.Minute)

	if ok, _ := c.Exists(ctx, "matrix:api:loc1"); !ok {
		t.Error("expected the matrix:api entry to survive eviction over solve results")
	}
}

func TestMemoryCache_Stats_GroupsByCacheKind(t *testing.T) {
	c := NewMemoryCache(DefaultOptions())
	defer c.Close()
	ctx := context.Background()

	_ = c.Set(ctx, "matrix:api:a", []byte("1"), time.Minute)
	_ = c.Set(ctx, "matrix:haversine:b", []byte("2"), time.Minute)
	_ = c.Set(ctx, "solve:c", []byte("3"), time.Minute)

	stats, err := c.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.KeysByPrefix["matrix_api"] != 1 {
		t.Errorf("matrix_api = %d, want 1", stats.KeysByPrefix["matrix_api"])
	}
	if stats.KeysByPrefix["matrix_haversine"] != 1 {
		t.Errorf("matrix_haversine = %d, want 1", stats.KeysByPrefix["matrix_haversine"])
	}
	if stats.KeysByPrefix["solve_result"] != 1 {
		t.Errorf("solve_result = %d, want 1", stats.KeysByPrefix["solve_result"])
	}
}

func TestNew_DefaultsToMemoryBackend(t *testing.T) {
	c, err := New(&Options{Backend: BackendMemory})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer c.Close()
	if _, ok := c.(*MemoryCache); !ok {
		t.Error("expected a *MemoryCache for the memory backend")
	}
}
