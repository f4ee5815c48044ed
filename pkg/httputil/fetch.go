package httputil

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	apperrors "github.com/cliquekit/cliquekit/pkg/errors"
	"github.com/cliquekit/cliquekit/pkg/observability"
)

// fetchTimeout bounds a single download attempt. Benchmark instances run
// to a few megabytes, so a minute is generous.
const fetchTimeout = time.Minute

// Fetch downloads url and returns the response body. Server errors (5xx)
// and transport failures are retried with exponential backoff; client
// errors (4xx) fail immediately.
func Fetch(ctx context.Context, url string) ([]byte, error) {
	client := &http.Client{Timeout: fetchTimeout}

	var body []byte
	err := RetryWithBackoff(ctx, func() error {
		start := time.Now()
		observability.HTTP().OnRequest(ctx, http.MethodGet, url)

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "build request for %s", url)
		}
		resp, err := client.Do(req)
		if err != nil {
			return Retryable(apperrors.Wrap(apperrors.ErrCodeNetwork, err, "fetch %s", url))
		}
		defer resp.Body.Close()
		observability.HTTP().OnResponse(ctx, http.MethodGet, url, resp.StatusCode, time.Since(start))

		switch {
		case resp.StatusCode >= 500:
			return Retryable(apperrors.New(apperrors.ErrCodeNetwork, "fetch %s: %s", url, resp.Status))
		case resp.StatusCode != http.StatusOK:
			return apperrors.New(apperrors.ErrCodeNetwork, "fetch %s: %s", url, resp.Status)
		}

		body, err = io.ReadAll(resp.Body)
		if err != nil {
			return Retryable(fmt.Errorf("read %s: %w", url, err))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return body, nil
}
