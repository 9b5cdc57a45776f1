package gemini

import (
	"errors"
	"fmt"
	"testing"
	"time"

	genai "google.golang.org/genai"

	"github.com/kirillkom/product-advisor/internal/core/domain"
)

func TestWrapAPIError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind error
	}{
		{"quota exhausted", genai.APIError{Code: 429, Message: "quota"}, domain.ErrRateLimited},
		{"server error", genai.APIError{Code: 503, Message: "overloaded"}, domain.ErrTemporary},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := wrapAPIError(fmt.Errorf("call: %w", tt.err))
			if !domain.IsKind(wrapped, tt.kind) {
				t.Fatalf("wrapped = %v, want kind %v", wrapped, tt.kind)
			}
		})
	}
}

func TestWrapAPIError_PassThrough(t *testing.T) {
	badRequest := genai.APIError{Code: 400, Message: "bad prompt"}
	if got := wrapAPIError(badRequest); domain.IsKind(got, domain.ErrRateLimited) || domain.IsKind(got, domain.ErrTemporary) {
		t.Errorf("400 must not be reclassified: %v", got)
	}

	plain := errors.New("dial tcp: connection refused")
	if got := wrapAPIError(plain); got != plain {
		t.Errorf("non-API error must pass through unchanged: %v", got)
	}
}

func TestClassify_RateLimitUsesCooldown(t *testing.T) {
	c := &Client{cooldown: 60 * time.Second}

	class := c.classify(domain.WrapError(domain.ErrRateLimited, "generate completion", errors.New("429")))

	if !class.Retryable {
		t.Error("rate limit must be retryable")
	}
	if class.RecordFailure {
		t.Error("rate limit must not count against the breaker")
	}
	if class.CooldownOverride != 60*time.Second {
		t.Errorf("cooldown = %v, want 60s", class.CooldownOverride)
	}
}

func TestClassify_TemporaryRetriesWithBackoff(t *testing.T) {
	c := &Client{cooldown: 60 * time.Second}

	class := c.classify(domain.WrapError(domain.ErrTemporary, "generate completion", errors.New("503")))

	if !class.Retryable || !class.RecordFailure {
		t.Errorf("temporary failure classification = %+v", class)
	}
	if class.CooldownOverride != 0 {
		t.Errorf("temporary failures use exponential backoff, got override %v", class.CooldownOverride)
	}
}

func TestClassify_OtherErrorsFailFast(t *testing.T) {
	c := &Client{}

	class := c.classify(errors.New("invalid argument"))

	if class.Retryable {
		t.Error("unclassified errors must not retry")
	}
}

func TestFirstText(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []*genai.Part{
				{Text: "  Yes, it handles "},
				{Text: "modern games well.  "},
			}},
		}},
	}

	if got := firstText(resp); got != "Yes, it handles modern games well." {
		t.Errorf("firstText = %q", got)
	}
}

func TestFirstText_Empty(t *testing.T) {
	if got := firstText(nil); got != "" {
		t.Errorf("nil response: %q", got)
	}
	if got := firstText(&genai.GenerateContentResponse{}); got != "" {
		t.Errorf("no candidates: %q", got)
	}
	if got := firstText(&genai.GenerateContentResponse{Candidates: []*genai.Candidate{{}}}); got != "" {
		t.Errorf("nil content: %q", got)
	}
}
