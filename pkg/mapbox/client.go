// Package mapbox provides a client for the Mapbox Datasets API, used to
// publish cleaned feature collections as editable datasets.
package mapbox

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"
)

// Client defines the Mapbox Datasets operations the upload pipeline uses.
type Client interface {
	// GetDataset retrieves metadata for an existing dataset.
	GetDataset(ctx context.Context, datasetID string) (*Dataset, error)
	// CreateDataset creates a new empty dataset.
	CreateDataset(ctx context.Context, name, description string) (*Dataset, error)
	// PutFeature inserts or replaces a single feature in a dataset.
	PutFeature(ctx context.Context, datasetID, featureID string, feature json.RawMessage) error
	// DeleteFeature removes a feature from a dataset.
	DeleteFeature(ctx context.Context, datasetID, featureID string) error
}

// Dataset is the Mapbox dataset metadata object.
type Dataset struct {
	ID          string    `json:"id"`
	Owner       string    `json:"owner"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Features    int       `json:"features"`
	Size        int       `json:"size"`
	Created     time.Time `json:"created"`
	Modified    time.Time `json:"modified"`
}

// Option configures the Mapbox client.
type Option func(*httpClient)

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(u string) Option {
	return func(c *httpClient) {
		c.baseURL = u
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

// WithWriteRate overrides the write rate limit in requests per second.
func WithWriteRate(perSec float64) Option {
	return func(c *httpClient) {
		c.writes = rate.NewLimiter(rate.Limit(perSec), 1)
	}
}

type httpClient struct {
	username string
	token    string
	baseURL  string
	http     *http.Client
	writes   *rate.Limiter
}

// NewClient creates a Mapbox Datasets client for the given account. Writes
// are limited to 40 per minute, the documented dataset write quota.
func NewClient(username, accessToken string, opts ...Option) Client {
	c := &httpClient{
		username: username,
		token:    accessToken,
		baseURL:  "https://api.mapbox.com",
		http: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 20,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		writes: rate.NewLimiter(rate.Limit(40.0/60.0), 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// retryableStatusCode returns true if the HTTP status code should trigger a retry.
func retryableStatusCode(code int) bool {
	return code == http.StatusTooManyRequests ||
		code == http.StatusInternalServerError ||
		code == http.StatusBadGateway ||
		code == http.StatusServiceUnavailable
}

// do executes one request with exponential backoff retries on transient
// failures (429, 500, 502, 503). The request body, if any, is re-sent from
// the given bytes on each attempt.
func (c *httpClient) do(ctx context.Context, method, path string, payload []byte) ([]byte, int, error) {
	const maxAttempts = 3
	backoff := 1 * time.Second

	reqURL := c.baseURL + path
	if u, err := url.Parse(reqURL); err == nil {
		q := u.Query()
		q.Set("access_token", c.token)
		u.RawQuery = q.Encode()
		reqURL = u.String()
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		var body io.Reader
		if payload != nil {
			body = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, method, reqURL, body)
		if err != nil {
			return nil, 0, eris.Wrap(err, "mapbox: create request")
		}
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.http.Do(req)
		if err != nil {
			lastErr = err
			if attempt < maxAttempts {
				select {
				case <-ctx.Done():
					return nil, 0, ctx.Err()
				case <-time.After(backoff):
				}
				backoff *= 2
				continue
			}
			return nil, 0, lastErr
		}

		respBody, readErr := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if readErr != nil {
			return nil, resp.StatusCode, eris.Wrap(readErr, "mapbox: read response body")
		}

		if retryableStatusCode(resp.StatusCode) && attempt < maxAttempts {
			lastErr = eris.Errorf("mapbox: status %d: %s", resp.StatusCode, string(respBody))
			select {
			case <-ctx.Done():
				return nil, 0, ctx.Err()
			case <-time.After(backoff):
			}
			backoff *= 2
			continue
		}

		return respBody, resp.StatusCode, nil
	}

	return nil, 0, lastErr
}

func (c *httpClient) GetDataset(ctx context.Context, datasetID string) (*Dataset, error) {
	path := fmt.Sprintf("/datasets/v1/%s/%s", c.username, datasetID)

	body, statusCode, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, eris.Wrap(err, "mapbox: get dataset")
	}
	if statusCode != http.StatusOK {
		return nil, eris.Errorf("mapbox: get dataset status %d: %s", statusCode, string(body))
	}

	var ds Dataset
	if err := json.Unmarshal(body, &ds); err != nil {
		return nil, eris.Wrap(err, "mapbox: unmarshal dataset")
	}
	return &ds, nil
}

func (c *httpClient) CreateDataset(ctx context.Context, name, description string) (*Dataset, error) {
	if err := c.writes.Wait(ctx); err != nil {
		return nil, eris.Wrap(err, "mapbox: rate limiter")
	}

	payload, err := json.Marshal(map[string]string{"name": name, "description": description})
	if err != nil {
		return nil, eris.Wrap(err, "mapbox: marshal dataset request")
	}

	path := fmt.Sprintf("/datasets/v1/%s", c.username)
	body, statusCode, err := c.do(ctx, http.MethodPost, path, payload)
	if err != nil {
		return nil, eris.Wrap(err, "mapbox: create dataset")
	}
	if statusCode != http.StatusOK {
		return nil, eris.Errorf("mapbox: create dataset status %d: %s", statusCode, string(body))
	}

	var ds Dataset
	if err := json.Unmarshal(body, &ds); err != nil {
		return nil, eris.Wrap(err, "mapbox: unmarshal dataset")
	}
	return &ds, nil
}

func (c *httpClient) PutFeature(ctx context.Context, datasetID, featureID string, feature json.RawMessage) error {
	if err := c.writes.Wait(ctx); err != nil {
		return eris.Wrap(err, "mapbox: rate limiter")
	}

	path := fmt.Sprintf("/datasets/v1/%s/%s/features/%s", c.username, datasetID, url.PathEscape(featureID))
	body, statusCode, err := c.do(ctx, http.MethodPut, path, feature)
	if err != nil {
		return eris.Wrapf(err, "mapbox: put feature %s", featureID)
	}
	if statusCode != http.StatusOK {
		return eris.Errorf("mapbox: put feature %s status %d: %s", featureID, statusCode, string(body))
	}
	return nil
}

func (c *httpClient) DeleteFeature(ctx context.Context, datasetID, featureID string) error {
	if err := c.writes.Wait(ctx); err != nil {
		return eris.Wrap(err, "mapbox: rate limiter")
	}

	path := fmt.Sprintf("/datasets/v1/%s/%s/features/%s", c.username, datasetID, url.PathEscape(featureID))
	body, statusCode, err := c.do(ctx, http.MethodDelete, path, nil)
	if err != nil {
		return eris.Wrapf(err, "mapbox: delete feature %s", featureID)
	}
	if statusCode != http.StatusNoContent && statusCode != http.StatusOK {
		return eris.Errorf("mapbox: delete feature %s status %d: %s", featureID, statusCode, string(body))
	}
	return nil
}
