package sentiment

import (
	"html"
	"math"
	"regexp"
	"strings"

	"github.com/jonreiter/govader"
	"github.com/russross/blackfriday/v2"
	"github.com/spacesedan/feedback-sentiment/internal/models"
)

const vaderThreshold = 0.20

var (
	analyzer    = govader.NewSentimentIntensityAnalyzer()
	linkPattern = regexp.MustCompile(`\[(.*?)\]\((https?:\/\/[^\s\)]+)\)`)
	urlPattern  = regexp.MustCompile(`https?://\S+|www\.\S+`)
	tagPattern  = regexp.MustCompile(`<[^>]*>`)
)

func RemoveLinks(input string) string {
	input = linkPattern.ReplaceAllString(input, "$1") // Keep only the text
	return urlPattern.ReplaceAllString(input, "")
}

// ConvertMarkdownToText renders Markdown and drops the resulting HTML tags
// and links, leaving whitespace-normalized prose.
func ConvertMarkdownToText(input string) string {
	input = RemoveLinks(input)
	output := blackfriday.Run([]byte(input), blackfriday.WithNoExtensions())
	plain := html.UnescapeString(tagPattern.ReplaceAllString(string(output), " "))
	return strings.Join(strings.Fields(plain), " ")
}

func AnalyzeWithVADER(text string) (float64, string) {
	plainText := ConvertMarkdownToText(text)

	score := analyzer.PolarityScores(plainText).Compound

	var label string
	if score >= vaderThreshold {
		label = models.SentimentPositive
	} else if score <= -vaderThreshold {
		label = models.SentimentNegative
	} else {
		label = models.SentimentNeutral
	}

	return score, label
}

// VaderFallback scores the comment offline with VADER and spreads the
// compound score over the 1-5 rating scale.
func VaderFallback(comment string) models.SentimentResult {
	score, label := AnalyzeWithVADER(comment)
	return models.SentimentResult{
		Sentiment: label,
		Rating:    ratingFromCompound(score),
	}
}

func ratingFromCompound(score float64) int {
	rating := int(math.Round(3 + 2*score))
	return max(1, min(5, rating))
}
