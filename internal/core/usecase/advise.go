package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/kirillkom/product-advisor/internal/core/domain"
	"github.com/kirillkom/product-advisor/internal/core/ports"
)

// defaultQualityFloor is the positive-share below which an in-stock
// product is considered poorly reviewed.
const defaultQualityFloor = 70.0

// AdviseUseCase applies the recommendation rules to a product and its
// digest. Rules are ordered: availability is checked before review
// quality, and quality is only judged when at least one review exists.
type AdviseUseCase struct {
	catalog      ports.CatalogSource
	qualityFloor float64
}

func NewAdviseUseCase(catalog ports.CatalogSource, qualityFloor float64) *AdviseUseCase {
	if qualityFloor <= 0 {
		qualityFloor = defaultQualityFloor
	}
	return &AdviseUseCase{catalog: catalog, qualityFloor: qualityFloor}
}

func (uc *AdviseUseCase) Advise(ctx context.Context, product domain.Product, digest domain.ReviewDigest) (domain.Recommendation, error) {
	products, err := uc.catalog.ListProducts(ctx)
	if err != nil {
		return domain.Recommendation{}, fmt.Errorf("list products: %w", err)
	}
	return Recommend(product, digest, products, uc.qualityFloor), nil
}

// Recommend is the pure rule evaluation behind Advise.
func Recommend(product domain.Product, digest domain.ReviewDigest, catalog []domain.Product, qualityFloor float64) domain.Recommendation {
	if qualityFloor <= 0 {
		qualityFloor = defaultQualityFloor
	}
	if !product.InStock() {
		alt := firstAlternative(catalog, product)
		if alt == nil {
			return domain.Recommendation{
				Outcome: domain.OutcomeNoAlternative,
				Reason:  domain.ReasonOutOfStock,
				Message: fmt.Sprintf("The %s is out of stock and no similar alternative is currently available.", product.Title),
			}
		}
		return domain.Recommendation{
			Outcome:     domain.OutcomeAlternative,
			Reason:      domain.ReasonOutOfStock,
			Alternative: alt,
			Message:     fmt.Sprintf("The %s is out of stock. Consider the %s ($%.2f) instead.", product.Title, alt.Title, alt.Price),
		}
	}

	if digest.TotalReviews < 1 {
		return domain.Recommendation{
			Outcome: domain.OutcomeInsufficientData,
			Message: fmt.Sprintf("The %s has no customer reviews yet, so there is not enough data to judge it.", product.Title),
		}
	}

	if digest.PositivePercent < qualityFloor {
		if alt := firstAlternative(catalog, product); alt != nil {
			return domain.Recommendation{
				Outcome:     domain.OutcomeAlternative,
				Reason:      domain.ReasonLowRating,
				Alternative: alt,
				Message: fmt.Sprintf("Only %.1f%% of reviews for the %s are positive. The %s ($%.2f) may be a better pick.",
					digest.PositivePercent, product.Title, alt.Title, alt.Price),
			}
		}
		return domain.Recommendation{
			Outcome: domain.OutcomeKeep,
			Message: fmt.Sprintf("Reviews for the %s are mixed, but it is the best available option in its category.", product.Title),
		}
	}

	return domain.Recommendation{
		Outcome: domain.OutcomeKeep,
		Message: fmt.Sprintf("The %s is in stock and well-reviewed. Good choice!", product.Title),
	}
}

// firstAlternative picks the first in-stock product from the same
// category, in catalog order. Catalog order is the tiebreak on purpose.
func firstAlternative(catalog []domain.Product, product domain.Product) *domain.Product {
	for _, candidate := range catalog {
		if candidate.ID == product.ID || candidate.Category != product.Category || !candidate.InStock() {
			continue
		}
		alt := candidate
		return &alt
	}
	return nil
}

// AlternativesByCategory lists every in-stock product in the category,
// excluding the given product.
func AlternativesByCategory(catalog []domain.Product, category, excludeID string) []domain.Product {
	var out []domain.Product
	for _, candidate := range catalog {
		if candidate.ID == excludeID || candidate.Category != category || !candidate.InStock() {
			continue
		}
		out = append(out, candidate)
	}
	return out
}

// SimilarByPrice lists same-category in-stock products whose price is
// within the given fraction of the target's price, closest first.
func SimilarByPrice(catalog []domain.Product, target domain.Product, tolerance float64) []domain.Product {
	if tolerance <= 0 {
		tolerance = 0.3
	}
	var out []domain.Product
	for _, candidate := range catalog {
		if candidate.ID == target.ID || candidate.Category != target.Category || !candidate.InStock() {
			continue
		}
		diff := candidate.Price - target.Price
		if diff < 0 {
			diff = -diff
		}
		if diff <= target.Price*tolerance {
			out = append(out, candidate)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		di := out[i].Price - target.Price
		if di < 0 {
			di = -di
		}
		dj := out[j].Price - target.Price
		if dj < 0 {
			dj = -dj
		}
		return di < dj
	})
	return out
}

// Upgrades lists pricier in-stock products from the same category,
// cheapest upgrade first.
func Upgrades(catalog []domain.Product, target domain.Product) []domain.Product {
	var out []domain.Product
	for _, candidate := range catalog {
		if candidate.ID == target.ID || candidate.Category != target.Category {
			continue
		}
		if candidate.InStock() && candidate.Price > target.Price {
			out = append(out, candidate)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	return out
}

// BudgetOptions lists strictly cheaper in-stock products from the same
// category, priciest first.
func BudgetOptions(catalog []domain.Product, target domain.Product) []domain.Product {
	var out []domain.Product
	for _, candidate := range catalog {
		if candidate.ID == target.ID || candidate.Category != target.Category {
			continue
		}
		if candidate.InStock() && candidate.Price < target.Price {
			out = append(out, candidate)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Price > out[j].Price })
	return out
}
