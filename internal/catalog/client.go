package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"portfolio/internal"
	"portfolio/internal/config"
)

var ErrEmptyID = errors.New("empty project id")

// StatusError is returned for a non-2xx answer from the projects API.
type StatusError struct {
	URL        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("projects api error: status=%d url=%s body=%s", e.StatusCode, e.URL, e.Body)
}

func IsNotFound(err error) bool {
	var statusErr *StatusError
	return errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound
}

type Client struct {
	cfg         config.Config
	baseURL     string
	httpClient  *http.Client
	limiter     *RateLimiter
	normalizer  *Normalizer
	logger      *slog.Logger
	backoffBase time.Duration
}

func NewClient(cfg config.Config) *Client {
	base := strings.TrimRight(strings.TrimSpace(cfg.APIBaseURL), "/")
	return &Client{
		cfg:         cfg,
		baseURL:     base,
		httpClient:  &http.Client{Timeout: cfg.APITimeout()},
		limiter:     NewRateLimiter(cfg.APIRateLimitRPS),
		normalizer:  NewNormalizer(base),
		logger:      slog.Default().With("component", "catalog"),
		backoffBase: 250 * time.Millisecond,
	}
}

func (c *Client) Normalizer() *Normalizer {
	return c.normalizer
}

// GetProjects lists projects. On any failure it still returns a usable
// fallback response alongside the error.
func (c *Client) GetProjects(ctx context.Context, params internal.ProjectsQueryParams) (internal.ProjectsResponse, error) {
	fallback := FallbackResponse(params)

	query := url.Values{}
	if params.Page > 0 {
		query.Set("page", strconv.Itoa(params.Page))
	}
	if params.Limit > 0 {
		query.Set("limit", strconv.Itoa(params.Limit))
	}
	if strings.TrimSpace(params.Technology) != "" {
		query.Set("technology", params.Technology)
	}
	if strings.TrimSpace(params.Search) != "" {
		query.Set("search", params.Search)
	}

	// The trailing slash avoids a redirect on the upstream server.
	withSlash := c.endpoint("projects/", query)
	body, err := c.fetchJSON(ctx, withSlash)
	if err != nil && isTransportError(ctx, err) {
		c.logger.Warn("projects fetch failed, retrying without trailing slash", "url", withSlash, "error", err)
		body, err = c.fetchJSON(ctx, c.endpoint("projects", query))
	}
	if err != nil {
		c.logger.Error("projects fetch failed", "url", withSlash, "error", err)
		return fallback, err
	}

	raw, err := DecodeJSON(body)
	if err != nil {
		return fallback, fmt.Errorf("decode projects: %w", err)
	}
	return c.normalizer.NormalizeProjectsResponse(raw, params), nil
}

// GetProject fetches one project. A 404 is reported as (nil, nil).
func (c *Client) GetProject(ctx context.Context, id string) (*internal.Project, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrEmptyID
	}

	escaped := url.PathEscape(id)
	withSlash := c.endpoint("projects/"+escaped+"/", nil)
	withoutSlash := c.endpoint("projects/"+escaped, nil)
	urls := []string{withSlash, withoutSlash}
	if c.cfg.Dev {
		urls = []string{withoutSlash, withSlash}
	}

	var lastErr error
	for _, u := range urls {
		body, err := c.fetchJSON(ctx, u)
		if err != nil {
			if IsNotFound(err) {
				return nil, nil
			}
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			lastErr = err
			continue
		}

		raw, err := DecodeJSON(body)
		if err != nil {
			lastErr = fmt.Errorf("decode project %s: %w", id, err)
			continue
		}
		project := c.normalizer.NormalizeProject(raw)
		return &project, nil
	}

	c.logger.Error("project fetch failed on all urls", "id", id, "error", lastErr)
	return nil, lastErr
}

func (c *Client) endpoint(path string, query url.Values) string {
	u := c.baseURL + "/" + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

func (c *Client) fetchJSON(ctx context.Context, rawURL string) ([]byte, error) {
	attempts := c.cfg.APIMaxAttempts
	if attempts <= 0 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, err
		}

		body, readErr := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if readErr != nil {
			lastErr = readErr
			continue
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			lastErr = &StatusError{URL: rawURL, StatusCode: resp.StatusCode, Body: truncate(string(body), 200)}
			if isRetryableStatus(resp.StatusCode) && attempt < attempts {
				if err := c.sleep(ctx, attempt); err != nil {
					return nil, err
				}
				continue
			}
			return nil, lastErr
		}
		return body, nil
	}

	if lastErr == nil {
		lastErr = errors.New("projects request failed")
	}
	return nil, lastErr
}

func (c *Client) sleep(ctx context.Context, attempt int) error {
	backoff := c.backoffBase*time.Duration(1<<(attempt-1)) + time.Duration(rand.Int63n(int64(c.backoffBase)/2+1))
	timer := time.NewTimer(backoff)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// isTransportError reports a network-level failure, as opposed to an HTTP
// status or a cancelled caller.
func isTransportError(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return false
	}
	var urlErr *url.Error
	return errors.As(err, &urlErr)
}

func isRetryableStatus(status int) bool {
	switch status {
	case 429, 500, 502, 503, 504:
		return true
	default:
		return false
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
