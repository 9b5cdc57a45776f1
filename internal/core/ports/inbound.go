package ports

import (
	"context"

	"github.com/kirillkom/product-advisor/internal/core/domain"
)

// ProductSearcher is the inbound contract for relevance search.
type ProductSearcher interface {
	Search(ctx context.Context, query string, topK int) ([]domain.RankedProduct, error)
}

// ReviewAnalyzer is the inbound contract for memoized sentiment digestion.
type ReviewAnalyzer interface {
	Digest(ctx context.Context, productID string) (domain.ReviewDigest, error)
	CachedProducts() []string
	ResetCache()
}

// AnswerSynthesizer produces natural-language answers; never returns an
// empty answer.
type AnswerSynthesizer interface {
	Answer(ctx context.Context, query string, product domain.RankedProduct, digest domain.ReviewDigest) string
	Compare(ctx context.Context, a domain.Product, digestA domain.ReviewDigest, b domain.Product, digestB domain.ReviewDigest) string
}

// Recommender applies the availability and quality rules to a product.
type Recommender interface {
	Advise(ctx context.Context, product domain.Product, digest domain.ReviewDigest) (domain.Recommendation, error)
}

// QueryProcessor runs the full pipeline for one query.
type QueryProcessor interface {
	Process(ctx context.Context, query string) (*domain.QueryResult, error)
}
