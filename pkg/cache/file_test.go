package cache

import (
	"bytes"
	"context"
	"testing"
	"time"
)

func newTestCache(t *testing.T) Cache {
	t.Helper()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error = %v", err)
	}
	return c
}

func TestFileCacheSetGet(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	if err := c.Set(ctx, "key", []byte("value"), 0); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	data, ok, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !ok {
		t.Fatal("Get() ok = false, want hit")
	}
	if !bytes.Equal(data, []byte("value")) {
		t.Errorf("Get() = %q, want %q", data, "value")
	}
}

func TestFileCacheMiss(t *testing.T) {
	c := newTestCache(t)

	_, ok, err := c.Get(context.Background(), "absent")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if ok {
		t.Error("Get() ok = true for absent key")
	}
}

func TestFileCacheExpiry(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	if err := c.Set(ctx, "short", []byte("v"), time.Nanosecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(time.Millisecond)

	if _, ok, _ := c.Get(ctx, "short"); ok {
		t.Error("expired entry still returned")
	}
}

func TestFileCacheDelete(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	if err := c.Set(ctx, "key", []byte("v"), 0); err != nil {
		t.Fatal(err)
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, ok, _ := c.Get(ctx, "key"); ok {
		t.Error("deleted entry still returned")
	}

	// Deleting a missing key is not an error.
	if err := c.Delete(ctx, "absent"); err != nil {
		t.Errorf("Delete(absent) error = %v", err)
	}
}

func TestFileCacheClear(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	for _, k := range []string{"a", "b", "c"} {
		if err := c.Set(ctx, k, []byte(k), 0); err != nil {
			t.Fatal(err)
		}
	}

	if err := c.(*FileCache).Clear(); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	for _, k := range []string{"a", "b", "c"} {
		if _, ok, _ := c.Get(ctx, k); ok {
			t.Errorf("key %q survived Clear()", k)
		}
	}
}

func TestNullCacheNeverHits(t *testing.T) {
	c := NewNullCache()
	ctx := context.Background()

	if err := c.Set(ctx, "key", []byte("v"), 0); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if _, ok, _ := c.Get(ctx, "key"); ok {
		t.Error("null cache returned a hit")
	}
}

func TestArtifactKey(t *testing.T) {
	base := ArtifactKey("hash1", ArtifactKeyOpts{Format: "html", Title: "t"})

	if got := ArtifactKey("hash1", ArtifactKeyOpts{Format: "html", Title: "t"}); got != base {
		t.Error("same inputs produced different keys")
	}

	variants := []ArtifactKeyOpts{
		{Format: "svg", Title: "t"},
		{Format: "html", Title: "other"},
	}
	for _, v := range variants {
		if ArtifactKey("hash1", v) == base {
			t.Errorf("opts %+v collided with base key", v)
		}
	}
	if ArtifactKey("hash2", ArtifactKeyOpts{Format: "html", Title: "t"}) == base {
		t.Error("different config hash collided with base key")
	}
}
