package reader

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/charmbracelet/log"

	"github.com/sonnes/ytscribe/core"
)

// RetryConfig controls the exponential backoff applied by Retry.
type RetryConfig struct {
	// MaxElapsedTime bounds the total time spent retrying. Zero disables retries.
	MaxElapsedTime time.Duration
	// InitialInterval is the first wait. Zero uses the backoff package default (500ms).
	InitialInterval time.Duration
	// MaxRetries caps the number of retries. Zero means no cap besides MaxElapsedTime.
	MaxRetries uint64
	// AttemptTimeout bounds each call to the wrapped Reader. Zero leaves an
	// attempt bounded only by the caller's context.
	AttemptTimeout time.Duration
}

// DefaultRetryConfig retries transient failures for up to 30 seconds and
// gives each attempt 20 seconds.
var DefaultRetryConfig = RetryConfig{
	MaxElapsedTime: 30 * time.Second,
	AttemptTimeout: 20 * time.Second,
}

type retrying struct {
	next Reader
	cfg  RetryConfig
}

// Retry wraps r so that transient failures (network errors, timeouts, HTTP
// 5xx, rate limiting) are retried with exponential backoff. Failures that
// would repeat on every attempt, see IsPermanent, are returned immediately.
//
// With MaxElapsedTime zero and AttemptTimeout set, r is called once under the
// attempt deadline. With both zero, r is returned unchanged.
func Retry(r Reader, cfg RetryConfig) Reader {
	if cfg.MaxElapsedTime <= 0 && cfg.AttemptTimeout <= 0 {
		return r
	}
	return &retrying{next: r, cfg: cfg}
}

func (r *retrying) Fetch(ctx context.Context, videoID string, langs []string) (*core.Transcript, error) {
	var t *core.Transcript
	err := r.do(ctx, "fetch", videoID, func(ctx context.Context) error {
		var err error
		t, err = r.next.Fetch(ctx, videoID, langs)
		return err
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (r *retrying) Tracks(ctx context.Context, videoID string) ([]core.Track, error) {
	var tracks []core.Track
	err := r.do(ctx, "tracks", videoID, func(ctx context.Context) error {
		var err error
		tracks, err = r.next.Tracks(ctx, videoID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return tracks, nil
}

func (r *retrying) do(ctx context.Context, op, videoID string, fn func(context.Context) error) error {
	var b backoff.BackOff = &backoff.StopBackOff{}
	if r.cfg.MaxElapsedTime > 0 {
		exp := backoff.NewExponentialBackOff()
		exp.MaxElapsedTime = r.cfg.MaxElapsedTime
		if r.cfg.InitialInterval > 0 {
			exp.InitialInterval = r.cfg.InitialInterval
		}
		b = exp
	}
	if r.cfg.MaxRetries > 0 {
		b = backoff.WithMaxRetries(b, r.cfg.MaxRetries)
	}

	operation := func() error {
		actx, cancel := r.attempt(ctx)
		defer cancel()

		err := fn(actx)
		if err != nil && IsPermanent(err) {
			return backoff.Permanent(err)
		}
		return err
	}

	notify := func(err error, wait time.Duration) {
		log.Debug("retrying", "op", op, "video", videoID, "wait", wait, "err", err)
	}

	return backoff.RetryNotify(operation, backoff.WithContext(b, ctx), notify)
}

func (r *retrying) attempt(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.cfg.AttemptTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, r.cfg.AttemptTimeout)
}
