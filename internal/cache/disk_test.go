package cache_test

import (
	"testing"

	"tabc/internal/cache"
)

func TestPutThenGetRoundTrips(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", dir)

	c, err := cache.Open("tabc-test")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	key := cache.Sum([]byte("function main() -> void:\n\treturn\n"))
	in := &cache.DiskPayload{Path: "main.tab", ContentHash: key, FuncNames: []string{"main"}}
	if err := c.Put(key, in); err != nil {
		t.Fatalf("Put: %v", err)
	}

	var out cache.DiskPayload
	ok, err := c.Get(key, &out)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok {
		t.Fatal("expected a cache hit")
	}
	if out.Path != "main.tab" || len(out.FuncNames) != 1 || out.FuncNames[0] != "main" {
		t.Fatalf("unexpected payload: %+v", out)
	}
}

func TestGetMissReturnsFalse(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", dir)

	c, err := cache.Open("tabc-test")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	var out cache.DiskPayload
	ok, err := c.Get(cache.Sum([]byte("nope")), &out)
	if err != nil {
		t.Fatalf("unexpected error on miss: %v", err)
	}
	if ok {
		t.Fatal("expected a cache miss")
	}
}

func TestCombineDiffersFromBase(t *testing.T) {
	base := cache.Sum([]byte("a"))
	extra := cache.Sum([]byte("b"))
	combined := cache.Combine(base, extra)
	if combined == base {
		t.Fatal("expected Combine to change the digest")
	}
}
