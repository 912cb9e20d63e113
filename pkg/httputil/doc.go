// Package httputil fetches remote resources for qrdots, currently overlay
// images given as http(s) URLs.
//
// # Fetching
//
// [Fetch] downloads a URL with a size limit and retries transient failures:
//
//   - network errors
//   - 5xx server errors
//   - 429 rate limit responses
//
// Other statuses fail immediately. A 404 maps to FILE_NOT_FOUND so a
// missing remote overlay reports the same way as a missing local one.
//
//	data, err := httputil.Fetch(ctx, "https://example.com/logo.png", httputil.FetchOptions{})
//
// # Retry
//
// [Retry] runs any operation with exponential backoff. Only errors wrapped
// in [RetryableError] are retried:
//
//	err := httputil.Retry(ctx, 3, time.Second, func() error {
//	    return &httputil.RetryableError{Err: doRequest()}
//	})
package httputil
