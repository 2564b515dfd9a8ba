package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"recapstream/config"
)

// OpenAIClient generates through any OpenAI-compatible chat completions endpoint.
type OpenAIClient struct {
	client      openai.Client
	model       string
	temperature float64
	maxTokens   int
	configured  bool
}

func NewOpenAIClient(cfg config.LLMConfig) *OpenAIClient {
	key := strings.TrimSpace(cfg.APIKey)
	opts := []option.RequestOption{
		option.WithAPIKey(key),
		option.WithMaxRetries(0),
	}
	if cfg.Timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(cfg.Timeout))
	}
	if base := strings.TrimSpace(cfg.BaseURL); base != "" {
		opts = append(opts, option.WithBaseURL(base))
	}
	return &OpenAIClient{
		client:      openai.NewClient(opts...),
		model:       strings.TrimSpace(cfg.Model),
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxOutputTokens,
		configured:  key != "",
	}
}

func (o *OpenAIClient) Generate(ctx context.Context, prompt string) (string, error) {
	if !o.configured {
		return "", errors.New("openai api key not configured")
	}
	if o.model == "" {
		return "", errors.New("openai model not configured")
	}

	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(o.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		Temperature: openai.Float(o.temperature),
	}
	if o.maxTokens > 0 {
		params.MaxTokens = openai.Int(int64(o.maxTokens))
	}

	resp, err := o.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("openai completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai: %w", ErrEmptyResponse)
	}
	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", fmt.Errorf("openai: %w", ErrEmptyResponse)
	}
	return text, nil
}
