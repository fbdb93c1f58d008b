package cache

import (
	"testing"
	"time"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }
func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestCache(cfg Config) (*Cache[string], *clock) {
	c := New[string](cfg)
	clk := &clock{t: time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)}
	c.now = clk.now
	return c, clk
}

func TestCache_GetSet(t *testing.T) {
	c, _ := newTestCache(DefaultConfig())

	if _, ok := c.Get("print 1;"); ok {
		t.Fatal("empty cache reported a hit")
	}
	c.Set("print 1;", "tree")
	got, ok := c.Get("print 1;")
	if !ok || got != "tree" {
		t.Errorf("Get() = %q, %v", got, ok)
	}

	hits, misses, rate := c.Stats()
	if hits != 1 || misses != 1 || rate != 50 {
		t.Errorf("Stats() = %d, %d, %v", hits, misses, rate)
	}
}

func TestCache_TTL(t *testing.T) {
	c, clk := newTestCache(Config{MaxItems: 10, TTL: time.Minute})
	c.Set("a", "1")

	clk.advance(30 * time.Second)
	if _, ok := c.Get("a"); !ok {
		t.Error("entry expired early")
	}

	clk.advance(31 * time.Second)
	if _, ok := c.Get("a"); ok {
		t.Error("entry outlived its TTL")
	}
	if c.Size() != 0 {
		t.Errorf("Size() = %d, expired entry kept", c.Size())
	}
}

func TestCache_EvictsLeastRecentlyUsed(t *testing.T) {
	c, clk := newTestCache(Config{MaxItems: 2})

	c.Set("a", "1")
	clk.advance(time.Second)
	c.Set("b", "2")
	clk.advance(time.Second)
	c.Get("a")
	clk.advance(time.Second)
	c.Set("c", "3")

	if _, ok := c.Get("b"); ok {
		t.Error("least recently used entry survived")
	}
	for _, key := range []string{"a", "c"} {
		if _, ok := c.Get(key); !ok {
			t.Errorf("%s evicted", key)
		}
	}
}

func TestCache_DeleteClear(t *testing.T) {
	c, _ := newTestCache(DefaultConfig())
	c.Set("a", "1")
	c.Set("b", "2")

	c.Delete("a")
	if c.Size() != 1 {
		t.Errorf("Size() after Delete = %d", c.Size())
	}
	c.Clear()
	if c.Size() != 0 {
		t.Errorf("Size() after Clear = %d", c.Size())
	}
}
