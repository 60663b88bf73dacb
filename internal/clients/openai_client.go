package clients

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/spacesedan/feedback-sentiment/config"
)

type OpenAIClient struct {
	Client *openai.Client
	model  string
}

// NewOpenAIClient builds a client for an OpenAI-compatible API. SDK retries
// are disabled; every call is a single attempt. Extra options are appended
// after the config-derived ones.
func NewOpenAIClient(cfg config.Config, extra ...option.RequestOption) *OpenAIClient {
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithBaseURL(baseURL),
		option.WithMaxRetries(0),
		option.WithHeader("User-Agent", USER_AGENT),
		option.WithHeader("X-Title", APP_TITLE),
	}
	if cfg.RequestTimeout > 0 {
		opts = append(opts, option.WithRequestTimeout(cfg.RequestTimeout))
	}
	opts = append(opts, extra...)

	slog.Info("[OpenAIClient] OpenAI client initialized",
		slog.String("base_url", baseURL),
		slog.String("model", cfg.Model),
		slog.Duration("timeout", cfg.RequestTimeout))

	return &OpenAIClient{
		Client: openai.NewClient(opts...),
		model:  cfg.Model,
	}
}

// Complete sends a system+user message pair at temperature 0 and returns
// the assistant content of the first choice. Errors are *UpstreamError.
func (c *OpenAIClient) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	start := time.Now()

	completion, err := c.Client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: openai.F([]openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(userPrompt),
		}),
		Model:       openai.F(openai.ChatModel(c.model)),
		Temperature: openai.Float(0),
	})
	if err != nil {
		ue := ClassifyError(err)
		slog.Debug("[OpenAIClient] Chat completion failed",
			slog.String("kind", string(ue.Kind)),
			slog.Int("status", ue.StatusCode),
			slog.Duration("elapsed", time.Since(start)))
		return "", ue
	}

	if len(completion.Choices) == 0 {
		return "", Malformed(errors.New("chat completion returned no choices"))
	}

	slog.Debug("[OpenAIClient] Chat completion finished",
		slog.String("finish_reason", string(completion.Choices[0].FinishReason)),
		slog.Duration("elapsed", time.Since(start)))

	return completion.Choices[0].Message.Content, nil
}

// Ping lists the upstream models to verify the key and base URL are usable.
func (c *OpenAIClient) Ping(ctx context.Context) error {
	if _, err := c.Client.Models.List(ctx); err != nil {
		return ClassifyError(err)
	}
	return nil
}
