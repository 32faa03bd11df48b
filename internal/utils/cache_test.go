package utils

import (
	"testing"
	"time"
)

func TestSearchCacheBasics(t *testing.T) {
	c := NewSearchCache[[]string](4, time.Minute)

	c.Set("a", []string{"x"})
	got, ok := c.Get("a")
	if !ok || len(got) != 1 || got[0] != "x" {
		t.Fatalf("Get(a) = %v, %v", got, ok)
	}

	if _, ok := c.Get("missing"); ok {
		t.Error("未写入的键不应命中")
	}

	c.Delete("a")
	if _, ok := c.Get("a"); ok {
		t.Error("删除后仍命中")
	}
}

func TestSearchCacheTTL(t *testing.T) {
	c := NewSearchCache[int](4, 10*time.Millisecond)
	c.Set("k", 42)
	time.Sleep(25 * time.Millisecond)
	if _, ok := c.Get("k"); ok {
		t.Error("过期条目不应命中")
	}
	if c.Len() != 0 {
		t.Errorf("过期条目应被顺手删除, Len=%d", c.Len())
	}
}

func TestSearchCacheEviction(t *testing.T) {
	c := NewSearchCache[int](2, time.Minute)
	c.Set("a", 1)
	c.Set("b", 2)
	c.Set("c", 3) // 容量 2，最久未用的 a 被逐出
	if _, ok := c.Get("a"); ok {
		t.Error("超出容量后最旧条目应被逐出")
	}
	if _, ok := c.Get("c"); !ok {
		t.Error("新条目应命中")
	}
}
