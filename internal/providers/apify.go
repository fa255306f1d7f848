package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// ErrNoToken means the client was built without an API token; callers wire
// mock sources instead of hitting this at request time.
var ErrNoToken = errors.New("no apify token configured")

// ApifyClient runs scraping actors synchronously and returns their dataset
// items. All calls share the one retry policy.
type ApifyClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
	retry      RetryPolicy
	logger     *slog.Logger
}

func NewApifyClient(token string, timeout time.Duration, retry RetryPolicy, logger *slog.Logger) *ApifyClient {
	return &ApifyClient{
		baseURL:    "https://api.apify.com/v2/acts",
		token:      token,
		httpClient: &http.Client{Timeout: timeout},
		retry:      retry,
		logger:     logger,
	}
}

// NewApifyClientWithBaseURL is used by tests to point at a stub server.
func NewApifyClientWithBaseURL(baseURL, token string, timeout time.Duration, retry RetryPolicy, logger *slog.Logger) *ApifyClient {
	c := NewApifyClient(token, timeout, retry, logger)
	c.baseURL = baseURL
	return c
}

// CallActor POSTs the input to the actor's run-sync endpoint and decodes
// the dataset items. Server errors and rate limiting are retried with
// backoff; client errors fail immediately.
func (c *ApifyClient) CallActor(ctx context.Context, actor string, input any) ([]json.RawMessage, error) {
	if c.token == "" {
		return nil, ErrNoToken
	}

	payload, err := json.Marshal(input)
	if err != nil {
		return nil, fmt.Errorf("marshal actor input: %w", err)
	}
	url := fmt.Sprintf("%s/%s/run-sync-get-dataset-items", c.baseURL, actor)

	var items []json.RawMessage
	attempt := 0
	err = c.retry.Do(ctx, func() error {
		attempt++
		if attempt > 1 {
			c.logger.Info("retrying actor call", "actor", actor, "attempt", attempt)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
		if err != nil {
			return Permanent(err)
		}
		req.Header.Set("Authorization", "Bearer "+c.token)
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		body, _ := io.ReadAll(resp.Body)
		if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
			err := fmt.Errorf("actor %s returned status %d: %s", actor, resp.StatusCode, truncate(string(body), 200))
			if !retryableStatus(resp.StatusCode) {
				return Permanent(err)
			}
			return err
		}

		if err := json.Unmarshal(body, &items); err != nil {
			return Permanent(fmt.Errorf("decode dataset items: %w", err))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.logger.Debug("actor call finished", "actor", actor, "items", len(items), "attempts", attempt)
	return items, nil
}

func retryableStatus(code int) bool {
	switch code {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
