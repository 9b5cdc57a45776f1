package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	APIPort  string
	LogLevel string

	// Catalog backend selection: a DSN wins over a workbook path, and
	// with neither set the built-in sample catalog is used.
	PostgresDSN string
	CatalogFile string

	NATSEnabled bool
	NATSURL     string
	NATSSubject string

	GeminiAPIKey         string
	GeminiModel          string
	LLMCallsPerMinute    int
	LLMRateLimitCooldown time.Duration
	LLMMaxOutputTokens   int

	SearchTopK          int
	SentimentBatchSize  int
	DigestCacheSize     int
	QualityFloorPercent float64
}

// fileOverrides is the optional YAML overlay. Only fields the operator
// actually sets override the environment values.
type fileOverrides struct {
	APIPort  *string `yaml:"api_port"`
	LogLevel *string `yaml:"log_level"`

	PostgresDSN *string `yaml:"postgres_dsn"`
	CatalogFile *string `yaml:"catalog_file"`

	NATSEnabled *bool   `yaml:"nats_enabled"`
	NATSURL     *string `yaml:"nats_url"`
	NATSSubject *string `yaml:"nats_subject"`

	GeminiModel        *string `yaml:"gemini_model"`
	LLMCallsPerMinute  *int    `yaml:"llm_calls_per_minute"`
	LLMMaxOutputTokens *int    `yaml:"llm_max_output_tokens"`

	SearchTopK          *int     `yaml:"search_top_k"`
	SentimentBatchSize  *int     `yaml:"sentiment_batch_size"`
	DigestCacheSize     *int     `yaml:"digest_cache_size"`
	QualityFloorPercent *float64 `yaml:"quality_floor_percent"`
}

func Load() (Config, error) {
	cfg := Config{
		APIPort:  mustEnv("API_PORT", "8080"),
		LogLevel: mustEnv("LOG_LEVEL", "info"),

		PostgresDSN: mustEnv("POSTGRES_DSN", ""),
		CatalogFile: mustEnv("CATALOG_FILE", ""),

		NATSEnabled: mustEnvBool("NATS_ENABLED", false),
		NATSURL:     mustEnv("NATS_URL", "nats://localhost:4222"),
		NATSSubject: mustEnv("NATS_SUBJECT", "advisor.query.answered"),

		GeminiAPIKey:         mustEnv("GEMINI_API_KEY", ""),
		GeminiModel:          mustEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		LLMCallsPerMinute:    mustEnvInt("LLM_CALLS_PER_MINUTE", 15),
		LLMRateLimitCooldown: time.Duration(mustEnvInt("LLM_RATE_LIMIT_COOLDOWN_SECONDS", 60)) * time.Second,
		LLMMaxOutputTokens:   mustEnvInt("LLM_MAX_OUTPUT_TOKENS", 300),

		SearchTopK:          mustEnvInt("SEARCH_TOP_K", 3),
		SentimentBatchSize:  mustEnvInt("SENTIMENT_BATCH_SIZE", 3),
		DigestCacheSize:     mustEnvInt("DIGEST_CACHE_SIZE", 256),
		QualityFloorPercent: mustEnvFloat("QUALITY_FLOOR_PERCENT", 70),
	}

	if path := os.Getenv("ADVISOR_CONFIG_FILE"); path != "" {
		if err := applyFile(&cfg, path); err != nil {
			return Config{}, err
		}
	}
	return cfg, nil
}

func applyFile(cfg *Config, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file %s: %w", path, err)
	}
	var overrides fileOverrides
	if err := yaml.Unmarshal(raw, &overrides); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	setString(&cfg.APIPort, overrides.APIPort)
	setString(&cfg.LogLevel, overrides.LogLevel)
	setString(&cfg.PostgresDSN, overrides.PostgresDSN)
	setString(&cfg.CatalogFile, overrides.CatalogFile)
	setString(&cfg.NATSURL, overrides.NATSURL)
	setString(&cfg.NATSSubject, overrides.NATSSubject)
	setString(&cfg.GeminiModel, overrides.GeminiModel)
	if overrides.NATSEnabled != nil {
		cfg.NATSEnabled = *overrides.NATSEnabled
	}
	setInt(&cfg.LLMCallsPerMinute, overrides.LLMCallsPerMinute)
	setInt(&cfg.LLMMaxOutputTokens, overrides.LLMMaxOutputTokens)
	setInt(&cfg.SearchTopK, overrides.SearchTopK)
	setInt(&cfg.SentimentBatchSize, overrides.SentimentBatchSize)
	setInt(&cfg.DigestCacheSize, overrides.DigestCacheSize)
	if overrides.QualityFloorPercent != nil {
		cfg.QualityFloorPercent = *overrides.QualityFloorPercent
	}
	return nil
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func setInt(dst *int, src *int) {
	if src != nil {
		*dst = *src
	}
}

func mustEnv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func mustEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func mustEnvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}

func mustEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}
