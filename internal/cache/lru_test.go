package cache

import (
	"testing"
	"time"
)

func TestLRUCacheGetSet(t *testing.T) {
	c := NewLRUCache[string](2, time.Minute)

	if _, ok := c.Get("missing"); ok {
		t.Fatal("empty cache must miss")
	}

	c.Set("a", "1")
	if v, ok := c.Get("a"); !ok || v != "1" {
		t.Fatalf("got %q %v", v, ok)
	}
}

func TestLRUCacheEvictsOldest(t *testing.T) {
	c := NewLRUCache[int](2, time.Minute)
	c.Set("a", 1)
	c.Set("b", 2)
	c.Get("a") // refresh a
	c.Set("c", 3)

	if _, ok := c.Get("b"); ok {
		t.Fatal("b should have been evicted")
	}
	if _, ok := c.Get("a"); !ok {
		t.Fatal("a was recently used and must survive")
	}
	if c.Size() != 2 {
		t.Fatalf("size = %d", c.Size())
	}
}

func TestLRUCacheTTL(t *testing.T) {
	c := NewLRUCache[int](10, 10*time.Millisecond)
	c.Set("a", 1)
	time.Sleep(20 * time.Millisecond)

	if _, ok := c.Get("a"); ok {
		t.Fatal("expired entry must miss")
	}
	if c.Size() != 0 {
		t.Fatalf("expired entry should be removed on read, size = %d", c.Size())
	}
}

func TestLRUCachePurge(t *testing.T) {
	c := NewLRUCache[int](10, time.Minute)
	c.Set("a", 1)
	c.Set("b", 2)
	c.Purge()

	if c.Size() != 0 {
		t.Fatalf("size after purge = %d", c.Size())
	}
	c.Set("c", 3)
	if v, ok := c.Get("c"); !ok || v != 3 {
		t.Fatal("cache must be usable after purge")
	}
}

func TestCleanExpired(t *testing.T) {
	c := NewLRUCache[int](10, 10*time.Millisecond)
	c.Set("a", 1)
	c.Set("b", 2)
	time.Sleep(20 * time.Millisecond)
	c.Set("fresh", 3)

	if n := c.CleanExpired(); n != 2 {
		t.Fatalf("cleaned %d, want 2", n)
	}
	if _, ok := c.Get("fresh"); !ok {
		t.Fatal("fresh entry must survive the sweep")
	}
}

func TestManagerSweep(t *testing.T) {
	m := NewManager()
	c := NewLRUCache[int](10, 5*time.Millisecond)
	m.Register(c)
	c.Set("a", 1)

	m.StartCleanup(10 * time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	m.Stop()

	if c.Size() != 0 {
		t.Fatalf("sweep did not run, size = %d", c.Size())
	}
}
