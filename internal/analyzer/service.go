package analyzer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spacesedan/feedback-sentiment/internal/clients"
	"github.com/spacesedan/feedback-sentiment/internal/models"
	"github.com/spacesedan/feedback-sentiment/internal/sentiment"
)

const SystemPrompt = `You are a customer feedback analyzer.
Return response strictly in JSON format like:
{
  "sentiment": "positive/negative/neutral",
  "rating": 1-5
}`

// Completer sends one system+user exchange to the model and returns the
// assistant content.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

type Service struct {
	llm      Completer
	fallback sentiment.Fallback
}

func NewService(llm Completer, fallback sentiment.Fallback) *Service {
	if fallback == nil {
		fallback = sentiment.KeywordFallback
	}
	return &Service{llm: llm, fallback: fallback}
}

// Analyze classifies a comment with the model. A rate-limited upstream is
// answered by the local fallback; every other failure is returned as an
// *clients.UpstreamError.
func (s *Service) Analyze(ctx context.Context, comment string) (models.SentimentResult, error) {
	start := time.Now()

	content, err := s.llm.Complete(ctx, SystemPrompt, comment)
	if err == nil {
		var result models.SentimentResult
		result, err = sentiment.ParseReply(content)
		if err == nil {
			slog.Debug("[Analyzer] Comment classified",
				slog.String("sentiment", result.Sentiment),
				slog.Int("rating", result.Rating),
				slog.Duration("elapsed", time.Since(start)))
			return result, nil
		}
		err = clients.Malformed(err)
	}

	ue := clients.ClassifyError(err)
	if ue.Kind == clients.KindRateLimit {
		result := s.fallback(comment)
		slog.Warn("[Analyzer] Upstream rate limited, using fallback classifier",
			slog.Int("status", ue.StatusCode),
			slog.String("sentiment", result.Sentiment),
			slog.Int("rating", result.Rating))
		return result, nil
	}

	slog.Error("[Analyzer] Failed to classify comment",
		slog.String("kind", string(ue.Kind)),
		slog.Int("status", ue.StatusCode),
		slog.String("error", ue.Error()),
		slog.Duration("elapsed", time.Since(start)))
	return models.SentimentResult{}, fmt.Errorf("analyze comment: %w", ue)
}
