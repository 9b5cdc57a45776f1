package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/kirillkom/product-advisor/internal/core/domain"
	"github.com/kirillkom/product-advisor/internal/core/ports"
)

const answerTemperature = 0.7

const noMentionPlaceholder = "Not mentioned in reviews"

// AnswerUseCase turns a ranked product and its review digest into a
// natural-language answer. Generation failures degrade to a templated
// answer built from the same data, so callers always get a non-empty
// string.
type AnswerUseCase struct {
	gen       ports.TextGenerator
	maxTokens int
}

func NewAnswerUseCase(gen ports.TextGenerator, maxTokens int) *AnswerUseCase {
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}
	return &AnswerUseCase{gen: gen, maxTokens: maxTokens}
}

func (uc *AnswerUseCase) Answer(ctx context.Context, query string, product domain.RankedProduct, digest domain.ReviewDigest) string {
	reply, err := uc.gen.Generate(ctx, buildAnswerPrompt(query, product, digest), answerTemperature, uc.maxTokens)
	reply = strings.TrimSpace(reply)
	if err != nil || reply == "" {
		slog.Warn("answer_degraded", "product_id", product.ID, "error", err)
		return fallbackAnswer(product.Product, digest)
	}
	return reply
}

func (uc *AnswerUseCase) Compare(ctx context.Context, a domain.Product, digestA domain.ReviewDigest, b domain.Product, digestB domain.ReviewDigest) string {
	reply, err := uc.gen.Generate(ctx, buildComparePrompt(a, digestA, b, digestB), answerTemperature, uc.maxTokens)
	reply = strings.TrimSpace(reply)
	if err != nil || reply == "" {
		slog.Warn("compare_degraded", "product_a", a.ID, "product_b", b.ID, "error", err)
		return fallbackComparison(a, digestA, b, digestB)
	}
	return reply
}

func buildAnswerPrompt(query string, product domain.RankedProduct, digest domain.ReviewDigest) string {
	var b strings.Builder
	b.WriteString("You are a helpful shopping assistant. Answer the customer's question using ONLY the product data below.\n\n")
	fmt.Fprintf(&b, "Product: %s\n", product.Title)
	fmt.Fprintf(&b, "Price: $%.2f\n", product.Price)
	fmt.Fprintf(&b, "Category: %s\n", product.Category)
	fmt.Fprintf(&b, "Availability: %s\n", product.StockLabel())
	fmt.Fprintf(&b, "Description: %s\n\n", product.Description)
	fmt.Fprintf(&b, "Customer reviews: %d total, average rating %.1f/5\n", digest.TotalReviews, digest.AvgRating)
	fmt.Fprintf(&b, "Sentiment: %.1f%% positive, %.1f%% negative, %.1f%% neutral (%s overall)\n", digest.PositivePercent, digest.NegativePercent, digest.NeutralPercent, digest.Overall)
	fmt.Fprintf(&b, "Top pros: %s\n", joinOrPlaceholder(digest.Pros))
	fmt.Fprintf(&b, "Top cons: %s\n\n", joinOrPlaceholder(digest.Cons))
	fmt.Fprintf(&b, "Question: %s\n\n", query)
	b.WriteString("Answer in 2-3 sentences. Be specific and mention the sentiment data. Do not invent facts that are not in the data above.")
	return b.String()
}

func buildComparePrompt(a domain.Product, digestA domain.ReviewDigest, b domain.Product, digestB domain.ReviewDigest) string {
	var sb strings.Builder
	sb.WriteString("You are a helpful shopping assistant. Compare the two products below for a customer deciding between them.\n\n")
	writeCompareEntry(&sb, 1, a, digestA)
	writeCompareEntry(&sb, 2, b, digestB)
	sb.WriteString("Recommend one of the two in 2-3 sentences, grounded in price and customer sentiment.")
	return sb.String()
}

func writeCompareEntry(sb *strings.Builder, n int, product domain.Product, digest domain.ReviewDigest) {
	fmt.Fprintf(sb, "Product %d: %s\n", n, product.Title)
	fmt.Fprintf(sb, "Price: $%.2f, %s\n", product.Price, product.StockLabel())
	fmt.Fprintf(sb, "Reviews: %d total, %.1f%% positive, average rating %.1f/5\n", digest.TotalReviews, digest.PositivePercent, digest.AvgRating)
	fmt.Fprintf(sb, "Top pros: %s\n", joinOrPlaceholder(digest.Pros))
	fmt.Fprintf(sb, "Top cons: %s\n\n", joinOrPlaceholder(digest.Cons))
}

// fallbackAnswer templates an answer straight from the digest when
// generation is unavailable.
func fallbackAnswer(product domain.Product, digest domain.ReviewDigest) string {
	if digest.TotalReviews == 0 {
		answer := fmt.Sprintf("The %s ($%.2f) has no customer reviews yet.", product.Title, product.Price)
		if !product.InStock() {
			answer += " Note that it is currently out of stock."
		}
		return answer
	}

	answer := fmt.Sprintf(
		"Based on %d customer reviews, the %s ($%.2f) is %s with %.1f%% positive sentiment and an average rating of %.1f/5.",
		digest.TotalReviews,
		product.Title,
		product.Price,
		qualityPhrase(digest.PositivePercent),
		digest.PositivePercent,
		digest.AvgRating,
	)
	if !product.InStock() {
		answer += " Note that it is currently out of stock."
	}
	return answer
}

// fallbackComparison favors the product with the higher positive share;
// a tie goes to the second product.
func fallbackComparison(a domain.Product, digestA domain.ReviewDigest, b domain.Product, digestB domain.ReviewDigest) string {
	winner, winnerDigest := b, digestB
	if digestA.PositivePercent > digestB.PositivePercent {
		winner, winnerDigest = a, digestA
	}
	return fmt.Sprintf(
		"Between the %s and the %s, the %s comes out ahead with %.1f%% positive sentiment across %d reviews.",
		a.Title, b.Title, winner.Title, winnerDigest.PositivePercent, winnerDigest.TotalReviews,
	)
}

func qualityPhrase(positivePercent float64) string {
	switch {
	case positivePercent >= 70:
		return "well-received by customers"
	case positivePercent >= 50:
		return "generally positively reviewed"
	default:
		return "receiving mixed feedback"
	}
}

func joinOrPlaceholder(items []string) string {
	if len(items) == 0 {
		return noMentionPlaceholder
	}
	return strings.Join(items, "; ")
}
