package resilience

import (
	"testing"
	"time"
)

func TestNormalize_ZeroValuesGetDefaults(t *testing.T) {
	got := Config{}.normalize()
	def := DefaultConfig()

	if got.RetryMaxAttempts != def.RetryMaxAttempts {
		t.Errorf("RetryMaxAttempts = %d", got.RetryMaxAttempts)
	}
	if got.RetryInitialBackoff != def.RetryInitialBackoff {
		t.Errorf("RetryInitialBackoff = %v", got.RetryInitialBackoff)
	}
	if got.BreakerMinRequests != def.BreakerMinRequests {
		t.Errorf("BreakerMinRequests = %d", got.BreakerMinRequests)
	}
	if got.BreakerFailureRatio != def.BreakerFailureRatio {
		t.Errorf("BreakerFailureRatio = %v", got.BreakerFailureRatio)
	}
}

func TestNormalize_KeepsExplicitValues(t *testing.T) {
	in := Config{
		RetryMaxAttempts:    5,
		RetryInitialBackoff: 50 * time.Millisecond,
		RetryMaxBackoff:     time.Second,
		RetryMultiplier:     1.5,
		BreakerMinRequests:  3,
		BreakerFailureRatio: 0.9,
	}

	got := in.normalize()

	if got.RetryMaxAttempts != 5 || got.RetryMultiplier != 1.5 {
		t.Errorf("retry settings changed: %+v", got)
	}
	if got.BreakerMinRequests != 3 || got.BreakerFailureRatio != 0.9 {
		t.Errorf("breaker settings changed: %+v", got)
	}
}

func TestNormalize_MaxBackoffAtLeastInitial(t *testing.T) {
	in := Config{
		RetryInitialBackoff: time.Second,
		RetryMaxBackoff:     100 * time.Millisecond,
	}

	got := in.normalize()

	if got.RetryMaxBackoff != got.RetryInitialBackoff {
		t.Errorf("max backoff = %v, want clamped to %v", got.RetryMaxBackoff, got.RetryInitialBackoff)
	}
}

func TestNormalize_InvalidFailureRatio(t *testing.T) {
	got := Config{BreakerFailureRatio: 1.5}.normalize()
	if got.BreakerFailureRatio != DefaultConfig().BreakerFailureRatio {
		t.Errorf("BreakerFailureRatio = %v, want the default", got.BreakerFailureRatio)
	}
}
