package memory

import (
	"context"
	"log/slog"
	"sort"

	"github.com/kirillkom/product-advisor/internal/core/domain"
)

// Source is an immutable in-memory catalog. Reviews are validated once
// at construction; every accessor returns copies, so callers can never
// mutate the backing data.
type Source struct {
	products []domain.Product
	reviews  map[string][]domain.Review
}

func NewSource(products []domain.Product, reviews []domain.Review) *Source {
	byProduct := make(map[string][]domain.Review)
	dropped := 0
	for _, review := range reviews {
		if !review.Valid() {
			dropped++
			continue
		}
		byProduct[review.ProductID] = append(byProduct[review.ProductID], review)
	}
	if dropped > 0 {
		slog.Warn("reviews_dropped_at_ingestion", "dropped", dropped, "kept", len(reviews)-dropped)
	}

	owned := make([]domain.Product, len(products))
	copy(owned, products)

	return &Source{products: owned, reviews: byProduct}
}

func (s *Source) ListProducts(ctx context.Context) ([]domain.Product, error) {
	out := make([]domain.Product, len(s.products))
	copy(out, s.products)
	return out, nil
}

func (s *Source) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	for _, product := range s.products {
		if product.ID == id {
			found := product
			return &found, nil
		}
	}
	return nil, domain.WrapError(domain.ErrProductNotFound, "get product", errNoSuchProduct(id))
}

func (s *Source) ListReviews(ctx context.Context, productID string) ([]domain.Review, error) {
	reviews := s.reviews[productID]
	out := make([]domain.Review, len(reviews))
	copy(out, reviews)
	return out, nil
}

// Stats summarizes the catalog for the products endpoint and the
// console demo.
func (s *Source) Stats() domain.CatalogStats {
	stats := domain.CatalogStats{TotalProducts: len(s.products)}
	seen := make(map[string]bool)
	for _, product := range s.products {
		if !seen[product.Category] {
			seen[product.Category] = true
			stats.Categories = append(stats.Categories, product.Category)
		}
		if product.InStock() {
			stats.InStock++
		} else {
			stats.OutOfStock++
		}
	}
	sort.Strings(stats.Categories)
	return stats
}

type errNoSuchProduct string

func (e errNoSuchProduct) Error() string {
	return "no product with id " + string(e)
}
