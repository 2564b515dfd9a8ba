package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Config is the complete runtime configuration of recapd.
type Config struct {
	Server ServerConfig `koanf:"server"`
	Log    LogConfig    `koanf:"log"`
	TMDB   TMDBConfig   `koanf:"tmdb"`
	Canon  CanonConfig  `koanf:"canon"`
	LLM    LLMConfig    `koanf:"llm"`
	Retry  RetryConfig  `koanf:"retry"`
	Cache  CacheConfig  `koanf:"cache"`
	Recap  RecapConfig  `koanf:"recap"`
}

type ServerConfig struct {
	Host           string        `koanf:"host"`
	Port           int           `koanf:"port"`
	ReadTimeout    time.Duration `koanf:"read_timeout"`
	WriteTimeout   time.Duration `koanf:"write_timeout"`
	AllowedOrigins []string      `koanf:"allowed_origins"`
	// APIKey, when set, is required as a bearer token on /recap routes.
	APIKey         string        `koanf:"api_key"`
	// RateLimit caps recap requests per client IP per minute; 0 disables it.
	RateLimit      int           `koanf:"rate_limit"`
}

// Addr returns host:port for net/http.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type LogConfig struct {
	Level      string `koanf:"level"`
	Format     string `koanf:"format"`
	// File enables a rotated log file next to stdout output when non-empty.
	File       string `koanf:"file"`
	MaxSizeMB  int    `koanf:"max_size_mb"`
	MaxBackups int    `koanf:"max_backups"`
	MaxAgeDays int    `koanf:"max_age_days"`
	Compress   bool   `koanf:"compress"`
}

type TMDBConfig struct {
	APIKey        string        `koanf:"api_key"`
	BaseURL       string        `koanf:"base_url"`
	Language      string        `koanf:"language"`
	Timeout       time.Duration `koanf:"timeout"`
	// CacheDir holds JSON copies of provider responses. Empty disables the cache.
	CacheDir      string        `koanf:"cache_dir"`
	CacheTTLHours int           `koanf:"cache_ttl_hours"`
}

type CanonConfig struct {
	Enabled           bool          `koanf:"enabled"`
	// ScraperAPIKey switches page fetching to the paid relay exclusively.
	ScraperAPIKey     string        `koanf:"scraper_api_key"`
	RelayURL          string        `koanf:"relay_url"`
	UseBrowser        bool          `koanf:"use_browser"`
	DirectTimeout     time.Duration `koanf:"direct_timeout"`
	RelayTimeout      time.Duration `koanf:"relay_timeout"`
	BrowserTimeout    time.Duration `koanf:"browser_timeout"`
	BrowserSettle     time.Duration `koanf:"browser_settle"`
	MaxConcurrency    int           `koanf:"max_concurrency"`
	RequestsPerSecond float64       `koanf:"requests_per_second"`
	BreakerFailures   uint32        `koanf:"breaker_failures"`
	BreakerCooldown   time.Duration `koanf:"breaker_cooldown"`
}

type LLMConfig struct {
	Provider        string        `koanf:"provider"`
	APIKey          string        `koanf:"api_key"`
	Model           string        `koanf:"model"`
	// BaseURL overrides the provider's public endpoint when set.
	BaseURL         string        `koanf:"base_url"`
	Timeout         time.Duration `koanf:"timeout"`
	Temperature     float64       `koanf:"temperature"`
	MaxOutputTokens int           `koanf:"max_output_tokens"`
}

type RetryConfig struct {
	MaxAttempts int           `koanf:"max_attempts"`
	Backoff     time.Duration `koanf:"backoff"`
}

type CacheConfig struct {
	// MaxEntries of 0 keeps every recap for the process lifetime.
	MaxEntries int           `koanf:"max_entries"`
	TTL        time.Duration `koanf:"ttl"`
}

type RecapConfig struct {
	// ChunkEpisodeLimit is the largest cumulative history rendered as a single prompt
	// before previously-on recaps switch to per-season recaps plus a merge.
	ChunkEpisodeLimit int `koanf:"chunk_episode_limit"`
}

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:         "0.0.0.0",
			Port:         7788,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 5 * time.Minute,
			RateLimit:    30,
		},
		Log: LogConfig{
			Level:      "info",
			Format:     "text",
			MaxSizeMB:  50,
			MaxBackups: 3,
			MaxAgeDays: 14,
		},
		TMDB: TMDBConfig{
			BaseURL:       "https://api.themoviedb.org/3",
			Language:      "en-US",
			Timeout:       15 * time.Second,
			CacheTTLHours: 24,
		},
		Canon: CanonConfig{
			Enabled:           true,
			RelayURL:          "https://api.scraperapi.com",
			DirectTimeout:     8 * time.Second,
			RelayTimeout:      30 * time.Second,
			BrowserTimeout:    20 * time.Second,
			BrowserSettle:     4 * time.Second,
			MaxConcurrency:    4,
			RequestsPerSecond: 5,
			BreakerFailures:   5,
			BreakerCooldown:   time.Minute,
		},
		LLM: LLMConfig{
			Provider:        ProviderGemini,
			Model:           "gemini-2.0-flash",
			Timeout:         60 * time.Second,
			Temperature:     0.4,
			MaxOutputTokens: 2048,
		},
		Retry: RetryConfig{
			MaxAttempts: 3,
		},
		Recap: RecapConfig{
			ChunkEpisodeLimit: 40,
		},
	}
}

// Validate rejects configurations the pipeline cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port %d out of range", c.Server.Port))
	}
	switch strings.ToLower(c.LLM.Provider) {
	case ProviderGemini, ProviderOpenAI:
	default:
		errs = append(errs, fmt.Errorf("llm.provider %q is not supported", c.LLM.Provider))
	}
	if c.LLM.Timeout <= 0 {
		errs = append(errs, errors.New("llm.timeout must be positive"))
	}
	if c.Retry.MaxAttempts < 1 {
		errs = append(errs, errors.New("retry.max_attempts must be at least 1"))
	}
	if c.Retry.Backoff < 0 {
		errs = append(errs, errors.New("retry.backoff must not be negative"))
	}
	if c.Cache.MaxEntries < 0 {
		errs = append(errs, errors.New("cache.max_entries must not be negative"))
	}
	if c.Canon.MaxConcurrency < 1 {
		errs = append(errs, errors.New("canon.max_concurrency must be at least 1"))
	}
	if c.Recap.ChunkEpisodeLimit < 1 {
		errs = append(errs, errors.New("recap.chunk_episode_limit must be at least 1"))
	}
	return errors.Join(errs...)
}
