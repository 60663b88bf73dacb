package sentiment

import (
	"strings"

	"github.com/spacesedan/feedback-sentiment/config"
	"github.com/spacesedan/feedback-sentiment/internal/models"
)

var positiveKeywords = []string{"love", "amazing", "great"}

// Fallback produces a result locally when the model API is out of quota.
type Fallback func(comment string) models.SentimentResult

// KeywordFallback marks a comment positive when it contains any of a few
// fixed keywords (substring, case-insensitive) and neutral otherwise.
func KeywordFallback(comment string) models.SentimentResult {
	text := strings.ToLower(comment)
	for _, word := range positiveKeywords {
		if strings.Contains(text, word) {
			return models.SentimentResult{Sentiment: models.SentimentPositive, Rating: 5}
		}
	}
	return models.SentimentResult{Sentiment: models.SentimentNeutral, Rating: models.DefaultRating}
}

// FallbackFor returns the fallback selected by FALLBACK_MODE.
func FallbackFor(mode string) Fallback {
	if mode == config.FallbackVader {
		return VaderFallback
	}
	return KeywordFallback
}
