package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
	genai "google.golang.org/genai"

	"github.com/kirillkom/product-advisor/internal/core/domain"
	"github.com/kirillkom/product-advisor/internal/infrastructure/resilience"
	"github.com/kirillkom/product-advisor/internal/observability/metrics"
)

type Config struct {
	APIKey            string
	Model             string
	CallsPerMinute    int
	RateLimitCooldown time.Duration
}

// Client implements ports.TextGenerator on the Gemini API. Outbound
// calls are paced to the provider quota before they leave the process;
// 429 responses that slip through wait out a fixed cooldown instead of
// the usual exponential backoff.
type Client struct {
	cli      *genai.Client
	model    string
	limiter  *rate.Limiter
	executor *resilience.Executor
	cooldown time.Duration
	metrics  *metrics.PipelineMetrics
	service  string
}

func New(
	ctx context.Context,
	cfg Config,
	executor *resilience.Executor,
	m *metrics.PipelineMetrics,
	service string,
) (*Client, error) {
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	callsPerMinute := cfg.CallsPerMinute
	if callsPerMinute <= 0 {
		callsPerMinute = 15
	}
	cooldown := cfg.RateLimitCooldown
	if cooldown <= 0 {
		cooldown = 60 * time.Second
	}

	return &Client{
		cli:      cli,
		model:    cfg.Model,
		limiter:  rate.NewLimiter(rate.Every(time.Minute/time.Duration(callsPerMinute)), 1),
		executor: executor,
		cooldown: cooldown,
		metrics:  m,
		service:  service,
	}, nil
}

func (c *Client) Generate(ctx context.Context, prompt string, temperature float32, maxTokens int) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}

	start := time.Now()
	var text string
	err := c.executor.Execute(ctx, "gemini_generate", func(ctx context.Context) error {
		resp, err := c.cli.Models.GenerateContent(ctx, c.model,
			[]*genai.Content{{Parts: []*genai.Part{{Text: prompt}}}},
			&genai.GenerateContentConfig{
				Temperature:     genai.Ptr(temperature),
				MaxOutputTokens: int32(maxTokens),
			},
		)
		if err != nil {
			return wrapAPIError(err)
		}
		text = firstText(resp)
		if text == "" {
			return domain.WrapError(domain.ErrTemporary, "generate completion", errors.New("empty completion"))
		}
		return nil
	}, c.classify)

	c.metrics.RecordLLMCall(c.service, "generate", err)
	if err != nil {
		if resilience.IsCircuitOpen(err) {
			err = domain.WrapError(domain.ErrTemporary, "generate completion", err)
		}
		return "", err
	}

	slog.Debug("gemini_completion",
		"model", c.model,
		"prompt_chars", len(prompt),
		"reply_chars", len(text),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return text, nil
}

func (c *Client) classify(err error) resilience.ErrorClassification {
	if domain.IsKind(err, domain.ErrRateLimited) {
		// The quota window resets on the provider's clock, not ours.
		return resilience.ErrorClassification{
			Retryable:        true,
			RecordFailure:    false,
			CooldownOverride: c.cooldown,
		}
	}
	if domain.IsKind(err, domain.ErrTemporary) {
		return resilience.ErrorClassification{Retryable: true, RecordFailure: true}
	}
	return resilience.ErrorClassification{Retryable: false, RecordFailure: true}
}

func wrapAPIError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Code == http.StatusTooManyRequests:
			return domain.WrapError(domain.ErrRateLimited, "generate completion", err)
		case apiErr.Code >= http.StatusInternalServerError:
			return domain.WrapError(domain.ErrTemporary, "generate completion", err)
		}
	}
	return err
}

func firstText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	content := resp.Candidates[0].Content
	if content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range content.Parts {
		if part != nil {
			b.WriteString(part.Text)
		}
	}
	return strings.TrimSpace(b.String())
}
