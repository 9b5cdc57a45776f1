package memory

import (
	"context"
	"testing"

	"github.com/kirillkom/product-advisor/internal/core/domain"
)

func TestSource_DropsInvalidReviews(t *testing.T) {
	source := NewSource(
		[]domain.Product{{ID: "P001", Title: "Widget", Stock: 1}},
		[]domain.Review{
			{ProductID: "P001", Body: "solid", Rating: 4},
			{ProductID: "P001", Body: "   ", Rating: 5},
			{ProductID: "P001", Body: "rating out of range", Rating: 6},
			{ProductID: "P001", Body: "rating out of range", Rating: 0},
		},
	)

	reviews, err := source.ListReviews(context.Background(), "P001")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(reviews) != 1 || reviews[0].Body != "solid" {
		t.Errorf("reviews = %v, want only the valid one", reviews)
	}
}

func TestSource_GetProduct(t *testing.T) {
	source := NewSampleSource()

	product, err := source.GetProduct(context.Background(), "P003")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if product.Title != "Gaming Phone X1" {
		t.Errorf("title = %q", product.Title)
	}

	_, err = source.GetProduct(context.Background(), "P999")
	if !domain.IsKind(err, domain.ErrProductNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestSource_ListProductsReturnsCopy(t *testing.T) {
	source := NewSampleSource()

	first, _ := source.ListProducts(context.Background())
	first[0].Title = "mutated"

	second, _ := source.ListProducts(context.Background())
	if second[0].Title == "mutated" {
		t.Error("caller mutation leaked into the source")
	}
}

func TestSource_UnknownProductHasNoReviews(t *testing.T) {
	source := NewSampleSource()

	reviews, err := source.ListReviews(context.Background(), "P999")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(reviews) != 0 {
		t.Errorf("reviews = %v, want none", reviews)
	}
}

func TestSource_Stats(t *testing.T) {
	stats := NewSampleSource().Stats()

	if stats.TotalProducts != 6 {
		t.Errorf("TotalProducts = %d, want 6", stats.TotalProducts)
	}
	if stats.InStock != 5 || stats.OutOfStock != 1 {
		t.Errorf("stock split = %d/%d, want 5/1", stats.InStock, stats.OutOfStock)
	}
	want := []string{"Cameras", "Laptops", "Phones"}
	if len(stats.Categories) != len(want) {
		t.Fatalf("categories = %v", stats.Categories)
	}
	for i, category := range want {
		if stats.Categories[i] != category {
			t.Errorf("categories[%d] = %q, want %q", i, stats.Categories[i], category)
		}
	}
}
