package clients

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/openai/openai-go"
)

type ErrorKind string

const (
	KindTransport         ErrorKind = "transport"
	KindAuth              ErrorKind = "auth"
	KindRateLimit         ErrorKind = "rate_limit"
	KindMalformedResponse ErrorKind = "malformed_response"
	KindUpstream          ErrorKind = "upstream"
)

// UpstreamError is a failure talking to the model API, tagged with the
// category callers branch on. Error returns the underlying text unchanged.
type UpstreamError struct {
	Kind       ErrorKind
	StatusCode int
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.Err == nil {
		return string(e.Kind)
	}
	return e.Err.Error()
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// Malformed wraps err as a malformed-response failure.
func Malformed(err error) *UpstreamError {
	return &UpstreamError{Kind: KindMalformedResponse, Err: err}
}

// IsRateLimited reports whether err means the upstream quota or rate limit
// was hit.
func IsRateLimited(err error) bool {
	ue := ClassifyError(err)
	return ue != nil && ue.Kind == KindRateLimit
}

// ClassifyError maps any error returned while calling the model API to an
// UpstreamError. A 429 status or an upstream body mentioning "quota" (or
// "429") is a rate limit whatever the status code; the request URL is never
// part of the matched text.
func ClassifyError(err error) *UpstreamError {
	if err == nil {
		return nil
	}

	var ue *UpstreamError
	if errors.As(err, &ue) {
		return ue
	}

	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return &UpstreamError{
			Kind:       kindForStatus(apiErr.StatusCode, apiErrorText(apiErr)),
			StatusCode: apiErr.StatusCode,
			Err:        err,
		}
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
		return Malformed(err)
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return &UpstreamError{Kind: KindTransport, Err: err}
	}
	var netErr net.Error
	var urlErr *url.Error
	if errors.As(err, &netErr) || errors.As(err, &urlErr) {
		return &UpstreamError{Kind: KindTransport, Err: err}
	}

	if looksRateLimited(err.Error()) {
		return &UpstreamError{Kind: KindRateLimit, Err: err}
	}
	return &UpstreamError{Kind: KindTransport, Err: err}
}

func kindForStatus(status int, body string) ErrorKind {
	switch {
	case status == http.StatusTooManyRequests:
		return KindRateLimit
	case looksRateLimited(body):
		return KindRateLimit
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return KindAuth
	default:
		return KindUpstream
	}
}

// apiErrorText is what the upstream said: the decoded fields (empty when the
// SDK could not map them), the raw response body and the SDK's error text
// with the request URL cut out.
func apiErrorText(apiErr *openai.Error) string {
	parts := []string{apiErr.Code, apiErr.Type, apiErr.Message, apiErr.JSON.RawJSON()}
	if apiErr.Request != nil && apiErr.Response != nil {
		parts = append(parts, strings.ReplaceAll(apiErr.Error(), apiErr.Request.URL.String(), ""))
	}
	return strings.Join(parts, " ")
}

func mentionsQuota(s string) bool {
	return strings.Contains(strings.ToLower(s), "quota")
}

func looksRateLimited(msg string) bool {
	return strings.Contains(msg, strconv.Itoa(http.StatusTooManyRequests)) || mentionsQuota(msg)
}
