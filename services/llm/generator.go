// Package llm talks to generative text providers and retries failed generations.
package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"recapstream/config"
)

// ErrEmptyResponse is returned when a provider answers without any text.
var ErrEmptyResponse = errors.New("llm: empty response")

// Generator turns a single-turn prompt into generated text.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// NewFromConfig builds the client for cfg.Provider. httpc is only used by the Gemini
// client; nil gets a client with cfg.Timeout.
func NewFromConfig(cfg config.LLMConfig, httpc *http.Client) (Generator, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "", config.ProviderGemini:
		return NewGeminiClient(cfg, httpc), nil
	case config.ProviderOpenAI:
		return NewOpenAIClient(cfg), nil
	default:
		return nil, fmt.Errorf("llm: unsupported provider %q", cfg.Provider)
	}
}
