package httputil

import (
	"context"
	stderrors "errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/matzehuels/qrdots/pkg/buildinfo"
	"github.com/matzehuels/qrdots/pkg/errors"
)

// Fetch defaults.
const (
	DefaultMaxBytes = 10 << 20
	DefaultAttempts = 3
	DefaultDelay    = 500 * time.Millisecond
	DefaultTimeout  = 30 * time.Second
)

// FetchOptions tunes [Fetch]. Zero values select the defaults.
type FetchOptions struct {
	Client   *http.Client
	MaxBytes int64
	Attempts int
	Delay    time.Duration
}

func (o FetchOptions) withDefaults() FetchOptions {
	if o.Client == nil {
		o.Client = &http.Client{Timeout: DefaultTimeout}
	}
	if o.MaxBytes <= 0 {
		o.MaxBytes = DefaultMaxBytes
	}
	if o.Attempts <= 0 {
		o.Attempts = DefaultAttempts
	}
	if o.Delay <= 0 {
		o.Delay = DefaultDelay
	}
	return o
}

// IsURL reports whether s names an http or https resource.
func IsURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// Fetch downloads url and returns the response body.
func Fetch(ctx context.Context, url string, opts FetchOptions) ([]byte, error) {
	if !IsURL(url) {
		return nil, errors.New(errors.ErrCodeInvalidPath, "not an http(s) URL: %q", url)
	}
	opts = opts.withDefaults()

	var body []byte
	err := Retry(ctx, opts.Attempts, opts.Delay, func() error {
		data, err := fetchOnce(ctx, opts, url)
		if err != nil {
			return err
		}
		body = data
		return nil
	})
	if err != nil {
		if ctx.Err() != nil {
			return nil, errors.Wrap(errors.ErrCodeTimeout, err, "fetch %s", url)
		}
		var re *RetryableError
		if stderrors.As(err, &re) {
			return nil, re.Err
		}
		return nil, err
	}
	return body, nil
}

func fetchOnce(ctx context.Context, opts FetchOptions, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "build request for %s", url)
	}
	req.Header.Set("User-Agent", buildinfo.UserAgent())

	resp, err := opts.Client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, err
		}
		return nil, &RetryableError{Err: errors.Wrap(errors.ErrCodeNetwork, err, "fetch %s", url)}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, errors.New(errors.ErrCodeFileNotFound, "%s: %s", url, resp.Status)
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return nil, &RetryableError{Err: errors.New(errors.ErrCodeNetwork, "%s: %s", url, resp.Status)}
	case resp.StatusCode != http.StatusOK:
		return nil, errors.New(errors.ErrCodeNetwork, "%s: %s", url, resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, opts.MaxBytes+1))
	if err != nil {
		return nil, &RetryableError{Err: errors.Wrap(errors.ErrCodeNetwork, err, "read %s", url)}
	}
	if int64(len(data)) > opts.MaxBytes {
		return nil, errors.New(errors.ErrCodeInvalidInput, "%s exceeds %d bytes", url, opts.MaxBytes)
	}
	return data, nil
}
