package ttlcache

import (
	"fmt"
	"testing"
	"time"
)

func TestGetExpiry(t *testing.T) {
	c := New[string, string](5*time.Minute, 10)
	current := time.Unix(1000, 0)
	c.now = func() time.Time { return current }

	c.Put("k", "v")

	if v, ok := c.Get("k"); !ok || v != "v" {
		t.Fatalf("expected fresh hit, got %q %v", v, ok)
	}

	current = current.Add(5*time.Minute + time.Second)
	if _, ok := c.Get("k"); ok {
		t.Errorf("expected miss after TTL")
	}
	if c.Len() != 0 {
		t.Errorf("expired entry should be evicted lazily on Get, len=%d", c.Len())
	}
}

func TestCapacityEvictsOldest(t *testing.T) {
	c := New[string, int](time.Hour, 3)
	current := time.Unix(1000, 0)
	c.now = func() time.Time { return current }

	for i := 0; i < 3; i++ {
		c.Put(fmt.Sprintf("k%d", i), i)
		current = current.Add(time.Second)
	}

	c.Put("k3", 3)

	if c.Len() != 3 {
		t.Fatalf("capacity exceeded: len=%d", c.Len())
	}
	if _, ok := c.Get("k0"); ok {
		t.Errorf("oldest entry k0 should have been evicted")
	}
	for _, k := range []string{"k1", "k2", "k3"} {
		if _, ok := c.Get(k); !ok {
			t.Errorf("expected %s to survive eviction", k)
		}
	}
}

func TestPutExistingKeyDoesNotEvict(t *testing.T) {
	c := New[string, int](time.Hour, 2)
	c.Put("a", 1)
	c.Put("b", 2)
	c.Put("a", 3)

	if c.Len() != 2 {
		t.Fatalf("len=%d, want 2", c.Len())
	}
	if v, _ := c.Get("a"); v != 3 {
		t.Errorf("overwrite lost: got %d", v)
	}
	if _, ok := c.Get("b"); !ok {
		t.Errorf("b should not be evicted on overwrite of a")
	}
}

func TestUnboundedCapacity(t *testing.T) {
	c := New[int, int](time.Hour, 0)
	for i := 0; i < 500; i++ {
		c.Put(i, i)
	}
	if c.Len() != 500 {
		t.Errorf("len=%d, want 500", c.Len())
	}
}
