package cache

import (
	"testing"
	"time"
)

func TestGetInstance(t *testing.T) {
	inst := GetInstance()
	if inst == nil {
		t.Fatal("GetInstance returned nil")
	}
	if GetInstance() != inst {
		t.Error("GetInstance should return same instance")
	}
}

func TestSet_Get(t *testing.T) {
	c := NewCache()
	c.Set("k", "val", 0, nil)
	got, ok := c.Get("k")
	if !ok {
		t.Fatal("Get: want true")
	}
	if got != "val" {
		t.Errorf("Get = %v, want val", got)
	}
}

func TestGet_Missing(t *testing.T) {
	c := NewCache()
	if _, ok := c.Get("nonexistent-key-xyz"); ok {
		t.Error("Get missing key: want false")
	}
}

func TestGet_ExpiredEntryIsDropped(t *testing.T) {
	c := NewCache()
	c.m.Store("stale", cacheItem{Value: "v", ExpiresAt: time.Now().Add(-time.Second).UnixNano()})
	if _, ok := c.Get("stale"); ok {
		t.Error("expired entry should not be returned")
	}
	if _, loaded := c.m.Load("stale"); loaded {
		t.Error("expired entry should be evicted on read")
	}
}

func TestSet_ZeroTTLNeverExpires(t *testing.T) {
	c := NewCache()
	c.Set("forever", 42, 0, nil)
	if v, ok := c.Get("forever"); !ok || v != 42 {
		t.Errorf("Get = %v, %v; want 42, true", v, ok)
	}
}

func TestDelete(t *testing.T) {
	c := NewCache()
	c.Set("k", "x", 0, nil)
	c.Delete("k")
	if _, ok := c.Get("k"); ok {
		t.Error("Delete: key should be gone")
	}
}

func TestTagKey_KeysByTag_InvalidateTag(t *testing.T) {
	c := NewCache()
	c.Set("t1-k1", "v1", 0, []string{"t1"})
	c.Set("t1-k2", "v2", 0, []string{"t1"})
	c.Set("other", "v3", 0, []string{"t2"})

	if keys := c.KeysByTag("t1"); len(keys) != 2 {
		t.Errorf("KeysByTag = %d keys, want 2", len(keys))
	}

	c.InvalidateTag("t1")
	if _, ok := c.Get("t1-k1"); ok {
		t.Error("InvalidateTag: t1-k1 should be gone")
	}
	if _, ok := c.Get("t1-k2"); ok {
		t.Error("InvalidateTag: t1-k2 should be gone")
	}
	if _, ok := c.Get("other"); !ok {
		t.Error("InvalidateTag: untagged key must survive")
	}
	if keys := c.KeysByTag("t1"); len(keys) != 0 {
		t.Errorf("KeysByTag after invalidate = %d keys, want 0", len(keys))
	}
}

func TestInvalidateTag_UnknownTagIsNoop(t *testing.T) {
	c := NewCache()
	c.Set("k", "v", 0, nil)
	c.InvalidateTag("never-used")
	if _, ok := c.Get("k"); !ok {
		t.Error("unrelated key lost")
	}
}
