package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

const (
	// ConfigPathEnvVar points at a YAML file that overrides the defaults.
	ConfigPathEnvVar = "RECAP_CONFIG_PATH"
	envPrefix        = "RECAP_"
)

var defaultConfigPaths = []string{"config.yaml", "config.yml"}

// legacyEnv maps the variable names used by earlier deployments onto config keys.
var legacyEnv = map[string]string{
	"TMDB_API_KEY":          "tmdb.api_key",
	"GOOGLE_GEMINI_API_KEY": "llm.api_key",
	"GOOGLE_GEMINI_MODEL":   "llm.model",
	"SCRAPER_API_KEY":       "canon.scraper_api_key",
	"CANON_USE_BROWSER":     "canon.use_browser",
}

// Load layers defaults, an optional YAML file and the environment, in that order of
// increasing priority, and validates the result.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.Canon.ScraperAPIKey = strings.TrimSpace(cfg.Canon.ScraperAPIKey)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func findConfigFile() string {
	if p := strings.TrimSpace(os.Getenv(ConfigPathEnvVar)); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p
		}
		return ""
	}
	for _, p := range defaultConfigPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// envTransform turns RECAP_LLM_API_KEY into llm.api_key. Unrelated variables map to ""
// and are skipped by the provider.
func envTransform(key string) string {
	if mapped, ok := legacyEnv[key]; ok {
		return mapped
	}
	if !strings.HasPrefix(key, envPrefix) || key == ConfigPathEnvVar {
		return ""
	}
	rest := strings.ToLower(strings.TrimPrefix(key, envPrefix))
	section, field, ok := strings.Cut(rest, "_")
	if !ok || field == "" {
		return ""
	}
	return section + "." + field
}
