package clients

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/openai/openai-go"
	"github.com/stretchr/testify/assert"
)

func apiError(status int) *openai.Error {
	return &openai.Error{
		StatusCode: status,
		Request:    httptest.NewRequest(http.MethodPost, "http://127.0.0.1:34291/chat/completions", nil),
		Response:   &http.Response{StatusCode: status},
	}
}

func TestClassifyErrorUsesStatusCode(t *testing.T) {
	assert.Equal(t, KindRateLimit, ClassifyError(apiError(http.StatusTooManyRequests)).Kind)
	assert.Equal(t, KindAuth, ClassifyError(apiError(http.StatusUnauthorized)).Kind)
	assert.Equal(t, KindUpstream, ClassifyError(apiError(http.StatusBadGateway)).Kind)

	wrapped := fmt.Errorf("calling model: %w", apiError(http.StatusTooManyRequests))
	ue := ClassifyError(wrapped)
	assert.Equal(t, KindRateLimit, ue.Kind)
	assert.Equal(t, http.StatusTooManyRequests, ue.StatusCode)
}

func TestClassifyErrorIgnoresRequestURL(t *testing.T) {
	// the port in the URL contains "429"
	assert.Equal(t, KindUpstream, ClassifyError(apiError(http.StatusInternalServerError)).Kind)
}

func TestClassifyErrorFallsBackToText(t *testing.T) {
	assert.True(t, IsRateLimited(errors.New("Error code: 429 - too many requests")))
	assert.True(t, IsRateLimited(errors.New("You exceeded your current QUOTA")))
	assert.False(t, IsRateLimited(errors.New("connection refused")))
	assert.Equal(t, KindTransport, ClassifyError(errors.New("connection refused")).Kind)
}

func TestClassifyErrorTransportAndMalformed(t *testing.T) {
	assert.Equal(t, KindTransport, ClassifyError(context.DeadlineExceeded).Kind)
	assert.Equal(t, KindTransport, ClassifyError(fmt.Errorf("send: %w", context.Canceled)).Kind)

	var target map[string]any
	syntaxErr := json.Unmarshal([]byte("{not json"), &target)
	assert.Equal(t, KindMalformedResponse, ClassifyError(syntaxErr).Kind)
}

func TestClassifyErrorKeepsUpstreamError(t *testing.T) {
	original := Malformed(errors.New("no choices"))
	assert.Same(t, original, ClassifyError(fmt.Errorf("outer: %w", original)))
	assert.Nil(t, ClassifyError(nil))
	assert.False(t, IsRateLimited(nil))
}

func TestUpstreamErrorText(t *testing.T) {
	err := &UpstreamError{Kind: KindTransport, Err: errors.New("dial tcp: connection refused")}
	assert.Equal(t, "dial tcp: connection refused", err.Error())
	assert.Equal(t, "auth", (&UpstreamError{Kind: KindAuth}).Error())
}
