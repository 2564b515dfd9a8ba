package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"recapstream/config"
)

const (
	geminiBaseURL      = "https://generativelanguage.googleapis.com/v1beta"
	geminiDefaultModel = "gemini-2.0-flash"
)

// GeminiClient calls the generateContent endpoint once per Generate. Retrying is left
// to the caller.
type GeminiClient struct {
	apiKey      string
	model       string
	baseURL     string
	temperature float64
	maxTokens   int
	timeout     time.Duration
	httpc       *http.Client
	limiter     *rate.Limiter
}

func NewGeminiClient(cfg config.LLMConfig, httpc *http.Client) *GeminiClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	if httpc == nil {
		httpc = &http.Client{Timeout: timeout}
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = geminiDefaultModel
	}
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = geminiBaseURL
	}
	maxTokens := cfg.MaxOutputTokens
	if maxTokens <= 0 {
		maxTokens = 2048
	}
	return &GeminiClient{
		apiKey:      strings.TrimSpace(cfg.APIKey),
		model:       model,
		baseURL:     baseURL,
		temperature: cfg.Temperature,
		maxTokens:   maxTokens,
		timeout:     timeout,
		httpc:       httpc,
		limiter:     rate.NewLimiter(rate.Every(100*time.Millisecond), 1),
	}
}

func (c *GeminiClient) isConfigured() bool {
	return c.apiKey != ""
}

// geminiRequest is the request body for the Gemini generateContent API.
type geminiRequest struct {
	Contents         []geminiContent         `json:"contents"`
	GenerationConfig *geminiGenerationConfig `json:"generationConfig,omitempty"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiGenerationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

// geminiResponse is the response from the Gemini generateContent API.
type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
	Error *struct {
		Message string `json:"message"`
		Code    int    `json:"code"`
	} `json:"error,omitempty"`
}

// Generate sends prompt as a single user turn and returns the trimmed text of the first
// candidate.
func (c *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	if !c.isConfigured() {
		return "", errors.New("gemini api key not configured")
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("gemini throttle: %w", err)
	}

	bodyBytes, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{
			{Parts: []geminiPart{{Text: prompt}}},
		},
		GenerationConfig: &geminiGenerationConfig{
			Temperature:     c.temperature,
			MaxOutputTokens: c.maxTokens,
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshal gemini request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, url.PathEscape(c.model), url.QueryEscape(c.apiKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("create gemini request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", fmt.Errorf("gemini request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("gemini API error %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var geminiResp geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&geminiResp); err != nil {
		return "", fmt.Errorf("decode gemini response: %w", err)
	}
	if geminiResp.Error != nil {
		return "", fmt.Errorf("gemini API error: %s", geminiResp.Error.Message)
	}
	if len(geminiResp.Candidates) == 0 || len(geminiResp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini: %w", ErrEmptyResponse)
	}

	var sb strings.Builder
	for _, part := range geminiResp.Candidates[0].Content.Parts {
		sb.WriteString(part.Text)
	}
	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", fmt.Errorf("gemini: %w", ErrEmptyResponse)
	}

	log.Printf("[gemini] generation complete model=%s finishReason=%s chars=%d duration=%s",
		c.model, geminiResp.Candidates[0].FinishReason, len(text), time.Since(start))
	return text, nil
}
