package ports

import (
	"context"

	"github.com/kirillkom/product-advisor/internal/core/domain"
)

// CatalogSource provides read-only access to products and their reviews.
// Implementations validate reviews at ingestion: invalid records never
// reach the pipeline.
type CatalogSource interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	ListReviews(ctx context.Context, productID string) ([]domain.Review, error)
}

// TextGenerator is the external summarization/synthesis call.
// A failed or empty result is recovered by the calling stage.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string, temperature float32, maxTokens int) (string, error)
}

// DigestCache memoizes per-product review digests. Entries never expire
// on their own; Reset is the only invalidation path.
type DigestCache interface {
	Get(productID string) (domain.ReviewDigest, bool)
	Store(productID string, digest domain.ReviewDigest)
	Keys() []string
	Len() int
	Reset()
}

// EventPublisher emits answered-query events for downstream consumers.
type EventPublisher interface {
	PublishQueryAnswered(ctx context.Context, result domain.QueryResult) error
	Close()
}
