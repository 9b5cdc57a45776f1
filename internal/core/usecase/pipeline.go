package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/kirillkom/product-advisor/internal/core/domain"
	"github.com/kirillkom/product-advisor/internal/core/ports"
)

// PipelineUseCase sequences the four stages for a single query: rank
// the catalog, digest the best match's reviews, synthesize an answer,
// then apply the recommendation rules. Stages always run in that order
// because each consumes the previous stage's output.
type PipelineUseCase struct {
	searcher    ports.ProductSearcher
	analyzer    ports.ReviewAnalyzer
	answerer    ports.AnswerSynthesizer
	recommender ports.Recommender
	events      ports.EventPublisher
	topK        int
}

func NewPipelineUseCase(
	searcher ports.ProductSearcher,
	analyzer ports.ReviewAnalyzer,
	answerer ports.AnswerSynthesizer,
	recommender ports.Recommender,
	events ports.EventPublisher,
	topK int,
) *PipelineUseCase {
	if topK <= 0 {
		topK = defaultTopK
	}
	return &PipelineUseCase{
		searcher:    searcher,
		analyzer:    analyzer,
		answerer:    answerer,
		recommender: recommender,
		events:      events,
		topK:        topK,
	}
}

func (uc *PipelineUseCase) Process(ctx context.Context, query string) (result *domain.QueryResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = domain.WrapError(domain.ErrTemporary, "process query", fmt.Errorf("panic: %v", r))
		}
	}()

	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domain.WrapError(domain.ErrInvalidInput, "process query", errors.New("empty query"))
	}

	runID := uuid.NewString()
	log := slog.With("run_id", runID, "query", query)

	ranked, err := uc.searcher.Search(ctx, query, uc.topK)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	if len(ranked) == 0 {
		return nil, domain.WrapError(domain.ErrNoMatches, "process query", fmt.Errorf("query %q matched nothing", query))
	}
	// A zero score is "no evidence of relevance", not a failure: the
	// pipeline still answers best-effort for the top-ranked product.
	best := ranked[0]

	digest, err := uc.analyzer.Digest(ctx, best.ID)
	if err != nil {
		return nil, fmt.Errorf("digest reviews for %s: %w", best.ID, err)
	}

	answer := uc.answerer.Answer(ctx, query, best, digest)

	recommendation, err := uc.recommender.Advise(ctx, best.Product, digest)
	if err != nil {
		return nil, fmt.Errorf("advise on %s: %w", best.ID, err)
	}

	result = &domain.QueryResult{
		RunID:          runID,
		Query:          query,
		Product:        best,
		Digest:         digest,
		Answer:         answer,
		Recommendation: recommendation,
	}

	// Event delivery is best effort and never fails the query.
	if uc.events != nil {
		if err := uc.events.PublishQueryAnswered(ctx, *result); err != nil {
			log.Warn("query_event_publish_failed", "error", err)
		}
	}

	log.Info("query_processed",
		"product_id", best.ID,
		"score", best.Score,
		"sentiment", digest.Overall,
		"outcome", recommendation.Outcome,
	)
	return result, nil
}
