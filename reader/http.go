package reader

import (
	"fmt"
	"net/http"
	"strings"
	"time"
)

// DefaultTimeout bounds one request made with DefaultHTTPClient, including
// reading the body.
const DefaultTimeout = 30 * time.Second

// DefaultHTTPClient is used by providers that are not given a client.
var DefaultHTTPClient = &http.Client{Timeout: DefaultTimeout}

// HTTPClient returns c, or DefaultHTTPClient when c is nil.
func HTTPClient(c *http.Client) *http.Client {
	if c != nil {
		return c
	}
	return DefaultHTTPClient
}

// CheckStatus classifies a response status. 200 is nil, 429 is
// ErrRateLimited, and anything else is an *HTTPError carrying the start of
// the body.
func CheckStatus(code int, body []byte) error {
	switch code {
	case http.StatusOK:
		return nil
	case http.StatusTooManyRequests:
		return fmt.Errorf("%w: HTTP %d", ErrRateLimited, code)
	}
	return &HTTPError{StatusCode: code, Body: snippet(body)}
}

func snippet(b []byte) string {
	const n = 256
	if len(b) > n {
		b = b[:n]
	}
	return strings.TrimSpace(string(b))
}

// PlayabilityKind maps a player response playabilityStatus onto a sentinel.
// It returns nil for playable videos and for statuses it does not know.
func PlayabilityKind(status, reason string) error {
	lower := strings.ToLower(reason)
	switch status {
	case "LOGIN_REQUIRED":
		switch {
		case strings.Contains(lower, "private"):
			return ErrVideoUnavailable
		case strings.Contains(lower, "not a bot"):
			return ErrRateLimited
		}
		return ErrAgeRestricted
	case "AGE_CHECK_REQUIRED", "AGE_VERIFICATION_REQUIRED":
		return ErrAgeRestricted
	case "ERROR":
		if strings.Contains(lower, "rate") || strings.Contains(lower, "too many") {
			return ErrRateLimited
		}
		return ErrVideoUnavailable
	case "UNPLAYABLE", "LIVE_STREAM_OFFLINE":
		return ErrVideoUnavailable
	}
	return nil
}

// Playability turns a playabilityStatus into an error carrying the reason.
// An empty or OK status is playable.
func Playability(status, reason string) error {
	if status == "" || status == "OK" {
		return nil
	}
	if kind := PlayabilityKind(status, reason); kind != nil {
		return fmt.Errorf("%w: %s", kind, reason)
	}
	return fmt.Errorf("playability %s: %s", status, reason)
}
