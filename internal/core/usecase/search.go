package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/kirillkom/product-advisor/internal/core/domain"
	"github.com/kirillkom/product-advisor/internal/core/ports"
)

const (
	titleTokenWeight       = 1.5
	descriptionTokenWeight = 1.0
	categoryTokenWeight    = 0.5
	titlePhraseBonus       = 3.0
	descriptionPhraseBonus = 1.5

	// Query tokens this short are treated as stop words.
	minTokenLength = 4

	defaultTopK = 3
)

type SearchUseCase struct {
	catalog ports.CatalogSource
}

func NewSearchUseCase(catalog ports.CatalogSource) *SearchUseCase {
	return &SearchUseCase{catalog: catalog}
}

func (uc *SearchUseCase) Search(ctx context.Context, query string, topK int) ([]domain.RankedProduct, error) {
	products, err := uc.catalog.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return RankProducts(query, products, topK), nil
}

// RankProducts scores every product against the query and returns the
// topK best matches in non-increasing score order. Ties keep catalog
// order. A zero score means "no evidence of relevance", not an error.
func RankProducts(query string, products []domain.Product, topK int) []domain.RankedProduct {
	if topK <= 0 {
		topK = defaultTopK
	}

	ranked := make([]domain.RankedProduct, 0, len(products))
	for _, product := range products {
		ranked = append(ranked, domain.RankedProduct{
			Product: product,
			Score:   relevanceScore(query, product),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	if len(ranked) > topK {
		ranked = ranked[:topK]
	}
	for i := range ranked {
		ranked[i].StockStatus = ranked[i].StockLabel()
	}
	return ranked
}

// relevanceScore is strictly additive: each query token contributes
// from at most one field (title beats description beats category), and
// the phrase bonus applies to the title or, failing that, the
// description, never both.
func relevanceScore(query string, product domain.Product) float64 {
	queryLower := strings.ToLower(strings.TrimSpace(query))
	title := strings.ToLower(product.Title)
	description := strings.ToLower(product.Description)
	category := strings.ToLower(product.Category)

	score := 0.0
	for _, token := range strings.Fields(queryLower) {
		if len(token) < minTokenLength {
			continue
		}
		switch {
		case strings.Contains(title, token):
			score += titleTokenWeight
		case strings.Contains(description, token):
			score += descriptionTokenWeight
		case strings.Contains(category, token):
			score += categoryTokenWeight
		}
	}

	if queryLower != "" {
		switch {
		case strings.Contains(title, queryLower):
			score += titlePhraseBonus
		case strings.Contains(description, queryLower):
			score += descriptionPhraseBonus
		}
	}
	return score
}
