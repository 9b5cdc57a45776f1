package memo

import (
	"testing"

	"github.com/kirillkom/product-advisor/internal/core/domain"
)

func TestCache_StoreAndGet(t *testing.T) {
	cache, err := New(8, nil, "test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, ok := cache.Get("P001"); ok {
		t.Fatal("unexpected hit on empty cache")
	}

	digest := domain.ReviewDigest{TotalReviews: 4, PositivePercent: 75, Overall: domain.OverallPositive}
	cache.Store("P001", digest)

	got, ok := cache.Get("P001")
	if !ok {
		t.Fatal("expected hit")
	}
	if got.PositivePercent != 75 || got.Overall != domain.OverallPositive {
		t.Errorf("got %+v", got)
	}
}

func TestCache_KeysAndLen(t *testing.T) {
	cache, err := New(8, nil, "test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cache.Store("P001", domain.ReviewDigest{})
	cache.Store("P002", domain.ReviewDigest{})

	if cache.Len() != 2 {
		t.Errorf("Len = %d, want 2", cache.Len())
	}
	if keys := cache.Keys(); len(keys) != 2 {
		t.Errorf("Keys = %v", keys)
	}
}

func TestCache_Reset(t *testing.T) {
	cache, err := New(8, nil, "test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cache.Store("P001", domain.ReviewDigest{})
	cache.Reset()

	if cache.Len() != 0 {
		t.Errorf("Len after reset = %d", cache.Len())
	}
	if _, ok := cache.Get("P001"); ok {
		t.Error("hit after reset")
	}
}

func TestCache_EvictsAtCapacity(t *testing.T) {
	cache, err := New(2, nil, "test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cache.Store("P001", domain.ReviewDigest{})
	cache.Store("P002", domain.ReviewDigest{})
	cache.Store("P003", domain.ReviewDigest{})

	if cache.Len() != 2 {
		t.Errorf("Len = %d, want capacity 2", cache.Len())
	}
	if _, ok := cache.Get("P001"); ok {
		t.Error("oldest entry should have been evicted")
	}
}

func TestCache_DefaultSize(t *testing.T) {
	if _, err := New(0, nil, "test"); err != nil {
		t.Fatalf("zero size must fall back to the default: %v", err)
	}
}
