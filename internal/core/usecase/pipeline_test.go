package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/kirillkom/product-advisor/internal/core/domain"
)

type fakeSearcher struct {
	ranked []domain.RankedProduct
	err    error
	panics bool
}

func (f *fakeSearcher) Search(ctx context.Context, query string, topK int) ([]domain.RankedProduct, error) {
	if f.panics {
		panic("searcher exploded")
	}
	return f.ranked, f.err
}

type fakeAnalyzer struct {
	digest domain.ReviewDigest
	err    error
	calls  int
}

func (f *fakeAnalyzer) Digest(ctx context.Context, productID string) (domain.ReviewDigest, error) {
	f.calls++
	return f.digest, f.err
}

func (f *fakeAnalyzer) CachedProducts() []string { return nil }
func (f *fakeAnalyzer) ResetCache()              {}

type fakeAnswerer struct {
	answer string
}

func (f *fakeAnswerer) Answer(ctx context.Context, query string, product domain.RankedProduct, digest domain.ReviewDigest) string {
	return f.answer
}

func (f *fakeAnswerer) Compare(ctx context.Context, a domain.Product, digestA domain.ReviewDigest, b domain.Product, digestB domain.ReviewDigest) string {
	return f.answer
}

type fakeRecommender struct {
	rec domain.Recommendation
	err error
}

func (f *fakeRecommender) Advise(ctx context.Context, product domain.Product, digest domain.ReviewDigest) (domain.Recommendation, error) {
	return f.rec, f.err
}

type fakePublisher struct {
	published []domain.QueryResult
	err       error
}

func (f *fakePublisher) PublishQueryAnswered(ctx context.Context, result domain.QueryResult) error {
	f.published = append(f.published, result)
	return f.err
}

func (f *fakePublisher) Close() {}

func happyPipeline(publisher *fakePublisher) (*PipelineUseCase, *fakeAnalyzer) {
	analyzer := &fakeAnalyzer{digest: positiveDigest()}
	uc := NewPipelineUseCase(
		&fakeSearcher{ranked: []domain.RankedProduct{rankedLaptop()}},
		analyzer,
		&fakeAnswerer{answer: "Yes, it is a strong pick."},
		&fakeRecommender{rec: domain.Recommendation{Outcome: domain.OutcomeKeep, Message: "Good choice!"}},
		publisher,
		3,
	)
	return uc, analyzer
}

func TestProcess_HappyPath(t *testing.T) {
	publisher := &fakePublisher{}
	uc, analyzer := happyPipeline(publisher)

	result, err := uc.Process(context.Background(), "  is the gaming laptop good?  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.RunID == "" {
		t.Error("missing run id")
	}
	if result.Query != "is the gaming laptop good?" {
		t.Errorf("query not trimmed: %q", result.Query)
	}
	if result.Product.ID != "P001" {
		t.Errorf("product = %s, want P001", result.Product.ID)
	}
	if result.Answer != "Yes, it is a strong pick." {
		t.Errorf("answer = %q", result.Answer)
	}
	if result.Recommendation.Outcome != domain.OutcomeKeep {
		t.Errorf("outcome = %q", result.Recommendation.Outcome)
	}
	if analyzer.calls != 1 {
		t.Errorf("analyzer calls = %d, want 1", analyzer.calls)
	}
	if len(publisher.published) != 1 || publisher.published[0].RunID != result.RunID {
		t.Errorf("published events = %+v", publisher.published)
	}
}

func TestProcess_EmptyQuery(t *testing.T) {
	uc, _ := happyPipeline(&fakePublisher{})

	_, err := uc.Process(context.Background(), "   ")
	if !domain.IsKind(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestProcess_EmptyRankingIsNoMatches(t *testing.T) {
	uc := NewPipelineUseCase(
		&fakeSearcher{},
		&fakeAnalyzer{},
		&fakeAnswerer{},
		&fakeRecommender{},
		nil,
		3,
	)

	_, err := uc.Process(context.Background(), "quantum telescope")
	if !domain.IsKind(err, domain.ErrNoMatches) {
		t.Fatalf("expected no matches, got %v", err)
	}
}

func TestProcess_ZeroScoreBestMatchStillAnswers(t *testing.T) {
	zeroScored := rankedLaptop()
	zeroScored.Score = 0
	uc := NewPipelineUseCase(
		&fakeSearcher{ranked: []domain.RankedProduct{zeroScored}},
		&fakeAnalyzer{digest: positiveDigest()},
		&fakeAnswerer{answer: "It is a capable machine."},
		&fakeRecommender{rec: domain.Recommendation{Outcome: domain.OutcomeKeep}},
		nil,
		3,
	)

	result, err := uc.Process(context.Background(), "quantum telescope")
	if err != nil {
		t.Fatalf("zero relevance must answer best-effort, got %v", err)
	}
	if result.Product.ID != "P001" || result.Product.Score != 0 {
		t.Errorf("product = %+v", result.Product)
	}
	if result.Answer != "It is a capable machine." {
		t.Errorf("answer = %q", result.Answer)
	}
}

func TestProcess_DigestErrorPropagates(t *testing.T) {
	wantErr := errors.New("backend down")
	uc := NewPipelineUseCase(
		&fakeSearcher{ranked: []domain.RankedProduct{rankedLaptop()}},
		&fakeAnalyzer{err: wantErr},
		&fakeAnswerer{},
		&fakeRecommender{},
		nil,
		3,
	)

	_, err := uc.Process(context.Background(), "gaming laptop")
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected digest error, got %v", err)
	}
}

func TestProcess_PublishFailureDoesNotFailQuery(t *testing.T) {
	publisher := &fakePublisher{err: errors.New("broker down")}
	uc, _ := happyPipeline(publisher)

	result, err := uc.Process(context.Background(), "gaming laptop")
	if err != nil {
		t.Fatalf("publish failure must be best effort: %v", err)
	}
	if result == nil {
		t.Fatal("expected a result")
	}
}

func TestProcess_NilPublisher(t *testing.T) {
	analyzer := &fakeAnalyzer{digest: positiveDigest()}
	uc := NewPipelineUseCase(
		&fakeSearcher{ranked: []domain.RankedProduct{rankedLaptop()}},
		analyzer,
		&fakeAnswerer{answer: "fine"},
		&fakeRecommender{rec: domain.Recommendation{Outcome: domain.OutcomeKeep}},
		nil,
		3,
	)

	if _, err := uc.Process(context.Background(), "gaming laptop"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestProcess_RecoversPanic(t *testing.T) {
	uc := NewPipelineUseCase(
		&fakeSearcher{panics: true},
		&fakeAnalyzer{},
		&fakeAnswerer{},
		&fakeRecommender{},
		nil,
		3,
	)

	result, err := uc.Process(context.Background(), "gaming laptop")
	if result != nil {
		t.Error("expected nil result after panic")
	}
	if !domain.IsKind(err, domain.ErrTemporary) {
		t.Fatalf("expected temporary failure, got %v", err)
	}
}

func TestProcess_DistinctRunIDs(t *testing.T) {
	uc, _ := happyPipeline(&fakePublisher{})

	first, err := uc.Process(context.Background(), "gaming laptop")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := uc.Process(context.Background(), "gaming laptop")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.RunID == second.RunID {
		t.Errorf("run ids must differ, both %q", first.RunID)
	}
}
