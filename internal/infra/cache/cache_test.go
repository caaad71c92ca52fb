package cache_test

import (
	"testing"
	"time"

	"github.com/boddenberg/bankup-app-go/internal/infra/cache"
)

func TestCache_SetAndGet(t *testing.T) {
	c := cache.New[string](5 * time.Minute)

	c.Set("key1", "value1")
	val, ok := c.Get("key1")
	if !ok {
		t.Fatal("expected key to exist")
	}
	if val != "value1" {
		t.Errorf("expected 'value1', got '%s'", val)
	}
}

func TestCache_GetMiss(t *testing.T) {
	c := cache.New[string](5 * time.Minute)

	_, ok := c.Get("nonexistent")
	if ok {
		t.Fatal("expected cache miss for nonexistent key")
	}
}

func TestCache_Expiration(t *testing.T) {
	c := cache.New[string](50 * time.Millisecond)

	c.Set("key1", "value1")
	time.Sleep(100 * time.Millisecond)

	_, ok := c.Get("key1")
	if ok {
		t.Fatal("expected cache entry to be expired")
	}
}

func TestCache_Delete(t *testing.T) {
	c := cache.New[string](5 * time.Minute)

	c.Set("key1", "value1")
	c.Delete("key1")

	_, ok := c.Get("key1")
	if ok {
		t.Fatal("expected key to be deleted")
	}
}

func TestCache_DeletePrefixAndClear(t *testing.T) {
	c := cache.New[int](5 * time.Minute)
	defer c.Close()

	c.Set("payers:1", 1)
	c.Set("payers:2", 2)
	c.Set("profile:1", 3)

	c.DeletePrefix("payers:")
	if _, ok := c.Get("payers:1"); ok {
		t.Error("expected payers:1 to be removed")
	}
	if _, ok := c.Get("profile:1"); !ok {
		t.Error("expected profile:1 to survive")
	}

	c.Clear()
	if _, ok := c.Get("profile:1"); ok {
		t.Error("expected cache to be empty after Clear")
	}

	c.Close()
	c.Close()
}
