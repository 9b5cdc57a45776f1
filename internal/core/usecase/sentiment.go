package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"sync"

	"github.com/kirillkom/product-advisor/internal/core/domain"
	"github.com/kirillkom/product-advisor/internal/core/ports"
)

const (
	defaultBatchSize     = 3
	sentimentTemperature = 0.3
	defaultMaxTokens     = 300
	maxRepresentative    = 3
)

// SentimentUseCase aggregates review sentiment per product. Results are
// memoized in the injected cache; a digest is computed at most once per
// product until an explicit reset, even under concurrent callers.
type SentimentUseCase struct {
	catalog   ports.CatalogSource
	gen       ports.TextGenerator
	cache     ports.DigestCache
	batchSize int
	maxTokens int

	mu       sync.Mutex
	inflight map[string]chan struct{}
}

func NewSentimentUseCase(
	catalog ports.CatalogSource,
	gen ports.TextGenerator,
	cache ports.DigestCache,
	batchSize int,
	maxTokens int,
) *SentimentUseCase {
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}
	return &SentimentUseCase{
		catalog:   catalog,
		gen:       gen,
		cache:     cache,
		batchSize: batchSize,
		maxTokens: maxTokens,
		inflight:  make(map[string]chan struct{}),
	}
}

func (uc *SentimentUseCase) Digest(ctx context.Context, productID string) (domain.ReviewDigest, error) {
	for {
		if digest, ok := uc.cache.Get(productID); ok {
			return digest, nil
		}

		uc.mu.Lock()
		if wait, computing := uc.inflight[productID]; computing {
			uc.mu.Unlock()
			select {
			case <-wait:
			case <-ctx.Done():
				return domain.ReviewDigest{}, ctx.Err()
			}
			continue
		}
		wait := make(chan struct{})
		uc.inflight[productID] = wait
		uc.mu.Unlock()

		digest, err := uc.compute(ctx, productID)
		if err == nil {
			uc.cache.Store(productID, digest)
		}

		uc.mu.Lock()
		delete(uc.inflight, productID)
		uc.mu.Unlock()
		close(wait)

		return digest, err
	}
}

func (uc *SentimentUseCase) CachedProducts() []string {
	return uc.cache.Keys()
}

func (uc *SentimentUseCase) ResetCache() {
	uc.cache.Reset()
}

func (uc *SentimentUseCase) compute(ctx context.Context, productID string) (domain.ReviewDigest, error) {
	reviews, err := uc.catalog.ListReviews(ctx, productID)
	if err != nil {
		return domain.ReviewDigest{}, fmt.Errorf("list reviews: %w", err)
	}
	if len(reviews) == 0 {
		return domain.NoReviewsDigest(), nil
	}

	// Ordered fold over fixed-size batches: pros/cons truncation depends
	// on batch order, so batches are never reordered or parallelized.
	var labels, pros, cons []string
	for start := 0; start < len(reviews); start += uc.batchSize {
		if err := ctx.Err(); err != nil {
			return domain.ReviewDigest{}, err
		}
		end := min(start+uc.batchSize, len(reviews))
		batchLabels, batchPros, batchCons := uc.digestBatch(ctx, reviews[start:end])
		labels = append(labels, batchLabels...)
		pros = append(pros, batchPros...)
		cons = append(cons, batchCons...)
	}

	return aggregateDigest(labels, pros, cons, reviews), nil
}

// digestBatch issues one summarization call for the whole batch and
// guarantees one sentiment label per review: labels missing from the
// reply (parse failure or call failure) are backfilled from ratings.
func (uc *SentimentUseCase) digestBatch(ctx context.Context, batch []domain.Review) (labels, pros, cons []string) {
	reply, err := uc.gen.Generate(ctx, buildSentimentPrompt(batch), sentimentTemperature, uc.maxTokens)
	if err != nil {
		slog.Warn("sentiment_batch_degraded",
			"reviews", len(batch),
			"rate_limited", domain.IsKind(err, domain.ErrRateLimited),
			"error", err,
		)
	} else {
		labels, pros, cons = parseSentimentReply(reply, len(batch))
	}

	for i := len(labels); i < len(batch); i++ {
		labels = append(labels, domain.FallbackSentiment(batch[i].Rating))
	}
	return labels, pros, cons
}

func buildSentimentPrompt(batch []domain.Review) string {
	var b strings.Builder
	b.WriteString("Analyze these customer reviews. For EACH review, provide:\n")
	b.WriteString("1. Sentiment: positive OR negative OR neutral\n")
	b.WriteString("2. Pro: one positive point (or \"none\")\n")
	b.WriteString("3. Con: one negative point (or \"none\")\n\n")

	for i, review := range batch {
		fmt.Fprintf(&b, "Review %d:\nText: %q\nRating: %d/5\n\n", i+1, review.Body, review.Rating)
	}

	b.WriteString("Format your response EXACTLY like this for each review:\n")
	b.WriteString("Review 1:\nSentiment: positive\nPro: great performance\nCon: none\n\n")
	b.WriteString("Review 2:\nSentiment: negative\nPro: none\nCon: expensive\n\n")
	fmt.Fprintf(&b, "Do this for all %d reviews.", len(batch))
	return b.String()
}

// parseSentimentReply scans the reply line by line for the sentiment:,
// pro: and con: markers. The literal value "none" means no pro/con was
// offered. At most expected sentiment labels are taken.
func parseSentimentReply(reply string, expected int) (labels, pros, cons []string) {
	for _, line := range strings.Split(strings.ToLower(reply), "\n") {
		line = strings.TrimSpace(line)

		switch {
		case strings.Contains(line, "sentiment:"):
			if len(labels) >= expected {
				continue
			}
			switch {
			case strings.Contains(line, domain.SentimentPositive):
				labels = append(labels, domain.SentimentPositive)
			case strings.Contains(line, domain.SentimentNegative):
				labels = append(labels, domain.SentimentNegative)
			case strings.Contains(line, domain.SentimentNeutral):
				labels = append(labels, domain.SentimentNeutral)
			}
		case strings.Contains(line, "pro:"):
			if value := markerValue(line, "pro:"); value != "" {
				pros = append(pros, value)
			}
		case strings.Contains(line, "con:"):
			if value := markerValue(line, "con:"); value != "" {
				cons = append(cons, value)
			}
		}
	}
	return labels, pros, cons
}

func markerValue(line, marker string) string {
	_, after, found := strings.Cut(line, marker)
	if !found {
		return ""
	}
	value := strings.TrimSpace(after)
	if value == "" || strings.Contains(value, "none") {
		return ""
	}
	return value
}

func aggregateDigest(labels, pros, cons []string, reviews []domain.Review) domain.ReviewDigest {
	var positive, negative, neutral int
	for _, label := range labels {
		switch label {
		case domain.SentimentPositive:
			positive++
		case domain.SentimentNegative:
			negative++
		case domain.SentimentNeutral:
			neutral++
		}
	}

	total := len(labels)
	var posPct, negPct, neuPct float64
	if total > 0 {
		posPct = round1(float64(positive) / float64(total) * 100)
		negPct = round1(float64(negative) / float64(total) * 100)
		neuPct = round1(float64(neutral) / float64(total) * 100)
	}

	overall := domain.OverallMixed
	switch {
	case positive > negative && positive > neutral:
		overall = domain.OverallPositive
	case negative > positive && negative > neutral:
		overall = domain.OverallNegative
	}

	var ratingSum int
	for _, review := range reviews {
		ratingSum += review.Rating
	}
	avgRating := round1(float64(ratingSum) / float64(len(reviews)))

	return domain.ReviewDigest{
		TotalReviews:    len(reviews),
		AvgRating:       avgRating,
		PositivePercent: posPct,
		NegativePercent: negPct,
		NeutralPercent:  neuPct,
		Overall:         overall,
		Pros:            clampList(pros, maxRepresentative),
		Cons:            clampList(cons, maxRepresentative),
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func clampList(items []string, limit int) []string {
	if len(items) > limit {
		items = items[:limit]
	}
	out := make([]string, len(items))
	copy(out, items)
	return out
}
