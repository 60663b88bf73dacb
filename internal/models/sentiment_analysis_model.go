package models

const (
	SentimentPositive = "positive"
	SentimentNegative = "negative"
	SentimentNeutral  = "neutral"

	DefaultRating = 3
)

// CommentRequest is the body accepted by POST /comment. Comment is a pointer
// so a missing field can be told apart from an empty string.
type CommentRequest struct {
	Comment *string `json:"comment"`
}

type SentimentResult struct {
	Sentiment string `json:"sentiment"`
	Rating    int    `json:"rating"`
}

type ErrorResponse struct {
	Detail string `json:"detail"`
}

// IsKnownSentiment reports whether label is one of the three accepted labels.
func IsKnownSentiment(label string) bool {
	switch label {
	case SentimentPositive, SentimentNegative, SentimentNeutral:
		return true
	}
	return false
}
