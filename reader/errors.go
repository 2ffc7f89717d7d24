package reader

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	// ErrInvalidVideoID indicates the input is neither a video ID nor a video URL.
	ErrInvalidVideoID = errors.New("invalid video id")
	// ErrVideoUnavailable indicates the video does not exist, was removed, or is private.
	ErrVideoUnavailable = errors.New("video unavailable")
	// ErrAgeRestricted indicates the video requires a signed-in, age-verified session.
	ErrAgeRestricted = errors.New("age restricted")
	// ErrTranscriptsDisabled indicates the video has no caption tracks at all.
	ErrTranscriptsDisabled = errors.New("transcripts disabled")
	// ErrNoTranscript indicates none of the requested languages has a track.
	ErrNoTranscript = errors.New("no transcript found")
	// ErrRateLimited indicates throttling by YouTube. It is the only sentinel
	// that Retry treats as transient.
	ErrRateLimited = errors.New("rate limited")
	// ErrLoginRequired indicates YouTube asked for a signed-in session without
	// saying whether it is an age gate or a bot check. Retrying the same
	// provider does not help, but another provider may get through.
	ErrLoginRequired = errors.New("login required")
	// ErrPoToken indicates every usable caption track needs a proof-of-origin
	// token this provider cannot produce.
	ErrPoToken = errors.New("caption tracks require a po token")
)

// NoTranscriptError reports which languages were asked for and which exist.
type NoTranscriptError struct {
	VideoID   string
	Requested []string
	Available []string
}

func (e *NoTranscriptError) Error() string {
	msg := "no transcript"
	if e.VideoID != "" {
		msg += " for " + e.VideoID
	}
	msg += fmt.Sprintf(" in [%s]", strings.Join(e.Requested, ", "))
	if len(e.Available) > 0 {
		msg += "; available: " + strings.Join(e.Available, ", ")
	}
	return msg
}

// Is reports whether target is ErrNoTranscript.
func (e *NoTranscriptError) Is(target error) bool {
	return target == ErrNoTranscript
}

// WithVideoID attaches videoID to err. A NoTranscriptError gets the ID set in
// place; anything else is wrapped with the ID as prefix.
func WithVideoID(err error, videoID string) error {
	var nte *NoTranscriptError
	if errors.As(err, &nte) && nte.VideoID == "" {
		nte.VideoID = videoID
		return err
	}
	return fmt.Errorf("%s: %w", videoID, err)
}

// HTTPError is a non-OK response that has no more specific classification.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Body)
}

// IsDefinitive reports whether err describes the video itself rather than a
// transport problem, so asking another provider would give the same answer.
func IsDefinitive(err error) bool {
	return errors.Is(err, ErrInvalidVideoID) ||
		errors.Is(err, ErrVideoUnavailable) ||
		errors.Is(err, ErrAgeRestricted) ||
		errors.Is(err, ErrTranscriptsDisabled) ||
		errors.Is(err, ErrNoTranscript)
}

// IsPermanent reports whether repeating the same request against the same
// provider would fail the same way. Every definitive error is permanent; a
// permanent error is not necessarily definitive, so a fallback provider may
// still be worth asking.
func IsPermanent(err error) bool {
	if IsDefinitive(err) || errors.Is(err, ErrLoginRequired) || errors.Is(err, ErrPoToken) {
		return true
	}
	var he *HTTPError
	if !errors.As(err, &he) {
		return false
	}
	switch he.StatusCode {
	case http.StatusRequestTimeout, http.StatusTooManyRequests:
		return false
	}
	return he.StatusCode >= 400 && he.StatusCode < 500
}
