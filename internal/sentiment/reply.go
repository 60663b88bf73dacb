package sentiment

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/spacesedan/feedback-sentiment/internal/models"
)

// ErrInvalidReply marks model content that cannot be turned into a result.
var ErrInvalidReply = errors.New("invalid model reply")

// ParseReply decodes the model's JSON content and sanitizes it. The content
// must be a JSON object; nothing is stripped or repaired beforehand.
func ParseReply(content string) (models.SentimentResult, error) {
	var reply models.OpenAISentimentReply
	trimmed := strings.TrimSpace(content)
	if !strings.HasPrefix(trimmed, "{") {
		return models.SentimentResult{}, fmt.Errorf("%w: expected a JSON object, got %s", ErrInvalidReply, snippet(trimmed))
	}
	if err := json.Unmarshal([]byte(trimmed), &reply); err != nil {
		return models.SentimentResult{}, fmt.Errorf("%w: %w", ErrInvalidReply, err)
	}

	label, err := sanitizeSentiment(reply.Sentiment)
	if err != nil {
		return models.SentimentResult{}, err
	}
	rating, err := coerceRating(reply.Rating)
	if err != nil {
		return models.SentimentResult{}, err
	}

	return models.SentimentResult{Sentiment: label, Rating: rating}, nil
}

func sanitizeSentiment(raw json.RawMessage) (string, error) {
	if len(raw) == 0 {
		return models.SentimentNeutral, nil
	}
	var label string
	if err := json.Unmarshal(raw, &label); err != nil || isNull(raw) {
		return "", fmt.Errorf("%w: sentiment must be a string, got %s", ErrInvalidReply, raw)
	}
	label = strings.ToLower(label)
	if !models.IsKnownSentiment(label) {
		return models.SentimentNeutral, nil
	}
	return label, nil
}

// 2^63 on 64-bit platforms; exactly representable as a float64.
const maxIntFloat = float64(1 << (strconv.IntSize - 1))

// coerceRating accepts integers, floats (truncated), numeric strings and
// booleans. The value is not clamped to 1-5.
func coerceRating(raw json.RawMessage) (int, error) {
	if len(raw) == 0 {
		return models.DefaultRating, nil
	}

	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return 0, fmt.Errorf("%w: rating: %w", ErrInvalidReply, err)
	}

	switch v := value.(type) {
	case float64:
		// any finite value that fits the platform int
		if t := math.Trunc(v); t >= -maxIntFloat && t < maxIntFloat {
			return int(t), nil
		}
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n, nil
		}
	case bool:
		if v {
			return 1, nil
		}
		return 0, nil
	}
	return 0, fmt.Errorf("%w: rating is not an integer: %s", ErrInvalidReply, raw)
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func snippet(s string) string {
	const limit = 80
	if s == "" {
		return "<empty>"
	}
	if runes := []rune(s); len(runes) > limit {
		return string(runes[:limit]) + "..."
	}
	return s
}
