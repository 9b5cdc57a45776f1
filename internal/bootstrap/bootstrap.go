package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	httpadapter "github.com/kirillkom/product-advisor/internal/adapters/http"
	"github.com/kirillkom/product-advisor/internal/config"
	"github.com/kirillkom/product-advisor/internal/core/ports"
	"github.com/kirillkom/product-advisor/internal/core/usecase"
	"github.com/kirillkom/product-advisor/internal/infrastructure/cache/memo"
	"github.com/kirillkom/product-advisor/internal/infrastructure/catalog/memory"
	"github.com/kirillkom/product-advisor/internal/infrastructure/catalog/postgres"
	"github.com/kirillkom/product-advisor/internal/infrastructure/catalog/xlsx"
	natspub "github.com/kirillkom/product-advisor/internal/infrastructure/events/nats"
	"github.com/kirillkom/product-advisor/internal/infrastructure/llm/gemini"
	"github.com/kirillkom/product-advisor/internal/infrastructure/resilience"
	"github.com/kirillkom/product-advisor/internal/observability/logging"
	"github.com/kirillkom/product-advisor/internal/observability/metrics"
)

// App wires the catalog backend, the Gemini generator, the pipeline
// usecases and the HTTP surface for one service instance.
type App struct {
	Config    config.Config
	Logger    *slog.Logger
	Metrics   *metrics.PipelineMetrics
	Catalog   ports.CatalogSource
	Analyzer  ports.ReviewAnalyzer
	Processor ports.QueryProcessor
	Handler   http.Handler

	closers []func()
}

func New(ctx context.Context, cfg config.Config, service string) (*App, error) {
	logger := logging.NewJSONLogger(service, cfg.LogLevel)
	slog.SetDefault(logger)

	app := &App{Config: cfg, Logger: logger}
	app.Metrics = metrics.NewPipelineMetrics(service)
	executor := resilience.NewExecutor(resilience.DefaultConfig())

	catalog, err := app.buildCatalog(ctx, cfg)
	if err != nil {
		app.Close()
		return nil, err
	}
	app.Catalog = catalog

	gen, err := gemini.New(ctx, gemini.Config{
		APIKey:            cfg.GeminiAPIKey,
		Model:             cfg.GeminiModel,
		CallsPerMinute:    cfg.LLMCallsPerMinute,
		RateLimitCooldown: cfg.LLMRateLimitCooldown,
	}, executor, app.Metrics, service)
	if err != nil {
		app.Close()
		return nil, err
	}

	cache, err := memo.New(cfg.DigestCacheSize, app.Metrics, service)
	if err != nil {
		app.Close()
		return nil, err
	}

	var events ports.EventPublisher
	if cfg.NATSEnabled {
		publisher, err := natspub.NewPublisher(natspub.Config{
			URL:     cfg.NATSURL,
			Subject: cfg.NATSSubject,
			Name:    service,
		}, executor)
		if err != nil {
			app.Close()
			return nil, err
		}
		app.closers = append(app.closers, publisher.Close)
		events = publisher
	}

	searcher := usecase.NewSearchUseCase(catalog)
	analyzer := usecase.NewSentimentUseCase(catalog, gen, cache, cfg.SentimentBatchSize, cfg.LLMMaxOutputTokens)
	answerer := usecase.NewAnswerUseCase(gen, cfg.LLMMaxOutputTokens)
	recommender := usecase.NewAdviseUseCase(catalog, cfg.QualityFloorPercent)
	processor := usecase.NewPipelineUseCase(searcher, analyzer, answerer, recommender, events, cfg.SearchTopK)

	app.Analyzer = analyzer
	app.Processor = processor
	app.Handler = httpadapter.NewRouter(processor, analyzer, answerer, catalog, app.Metrics, service).Handler()

	return app, nil
}

func (a *App) buildCatalog(ctx context.Context, cfg config.Config) (ports.CatalogSource, error) {
	switch {
	case cfg.PostgresDSN != "":
		db, err := postgres.OpenDB(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, func() { _ = db.Close() })

		repo := postgres.NewRepository(db)
		if err := repo.EnsureSchema(ctx); err != nil {
			return nil, err
		}
		slog.Info("catalog_backend", "kind", "postgres")
		return repo, nil

	case cfg.CatalogFile != "":
		source, err := xlsx.Load(cfg.CatalogFile)
		if err != nil {
			return nil, fmt.Errorf("load catalog file: %w", err)
		}
		slog.Info("catalog_backend", "kind", "xlsx", "path", cfg.CatalogFile)
		return source, nil

	default:
		slog.Info("catalog_backend", "kind", "sample")
		return memory.NewSampleSource(), nil
	}
}

// Close releases backends in reverse construction order.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}
