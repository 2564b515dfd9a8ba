package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvTransform(t *testing.T) {
	tests := map[string]string{
		"RECAP_LLM_API_KEY":       "llm.api_key",
		"RECAP_CANON_USE_BROWSER": "canon.use_browser",
		"RECAP_SERVER_PORT":       "server.port",
		"TMDB_API_KEY":            "tmdb.api_key",
		"GOOGLE_GEMINI_API_KEY":   "llm.api_key",
		"SCRAPER_API_KEY":         "canon.scraper_api_key",
		"CANON_USE_BROWSER":       "canon.use_browser",
		"RECAP_CONFIG_PATH":       "",
		"RECAP_LOG":               "",
		"HOME":                    "",
		"PATH":                    "",
	}
	for input, expect := range tests {
		if got := envTransform(input); got != expect {
			t.Fatalf("envTransform(%q) = %q, want %q", input, got, expect)
		}
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Retry.MaxAttempts)
	assert.Equal(t, time.Duration(0), cfg.Retry.Backoff)
	assert.Equal(t, 30, cfg.Server.RateLimit)
	assert.Empty(t, cfg.Server.APIKey)
	assert.Equal(t, 60*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, 8*time.Second, cfg.Canon.DirectTimeout)
	assert.Equal(t, 30*time.Second, cfg.Canon.RelayTimeout)
	assert.Equal(t, 20*time.Second, cfg.Canon.BrowserTimeout)
	assert.Equal(t, 0, cfg.Cache.MaxEntries)
	assert.False(t, cfg.Canon.UseBrowser)
}

func TestLoadFileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "recap.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
llm:
  provider: openai
  model: gpt-4o-mini
cache:
  max_entries: 500
  ttl: 6h
retry:
  max_attempts: 5
`), 0o600))

	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("RECAP_RETRY_MAX_ATTEMPTS", "2")
	t.Setenv("SCRAPER_API_KEY", "  relay-key ")
	t.Setenv("CANON_USE_BROWSER", "true")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ProviderOpenAI, cfg.LLM.Provider)
	assert.Equal(t, "gpt-4o-mini", cfg.LLM.Model)
	assert.Equal(t, 500, cfg.Cache.MaxEntries)
	assert.Equal(t, 6*time.Hour, cfg.Cache.TTL)
	assert.Equal(t, 2, cfg.Retry.MaxAttempts)
	assert.Equal(t, "relay-key", cfg.Canon.ScraperAPIKey)
	assert.True(t, cfg.Canon.UseBrowser)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	cfg.LLM.Provider = "claude"
	cfg.Retry.MaxAttempts = 0
	cfg.Server.Port = 70000
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "llm.provider")
	assert.Contains(t, err.Error(), "retry.max_attempts")
	assert.Contains(t, err.Error(), "server.port")
}
