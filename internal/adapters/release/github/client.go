package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"minebench/internal/core/domain"
	coreerrors "minebench/internal/core/errors"
)

const DefaultBaseURL = "https://api.github.com"

// Client fetches latest-release metadata from the GitHub REST API.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
	limiter *rate.Limiter
}

type Option func(*Client)

// WithToken authenticates requests, raising the API rate limit.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithRateLimit paces outgoing requests with a token bucket.
func WithRateLimit(limit rate.Limit, burst int) Option {
	return func(c *Client) { c.limiter = rate.NewLimiter(limit, burst) }
}

func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
		limiter: rate.NewLimiter(rate.Limit(5), 5),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// LatestRelease returns the latest published release of repo ("owner/name").
// Any transport, status or decoding failure is reported as ErrSourceUnavailable.
func (c *Client) LatestRelease(ctx context.Context, repo string) (domain.ReleaseInfo, error) {
	var info domain.ReleaseInfo

	owner, name, ok := strings.Cut(repo, "/")
	if !ok || owner == "" || name == "" {
		return info, fmt.Errorf("invalid repository %q", repo)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return info, fmt.Errorf("rate limit: %w", err)
	}

	endpoint := fmt.Sprintf("%s/repos/%s/%s/releases/latest", c.baseURL, owner, name)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return info, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("X-GitHub-Api-Version", "2022-11-28")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return info, fmt.Errorf("%w: %s: %v", coreerrors.ErrSourceUnavailable, repo, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return info, fmt.Errorf("%w: %s: github returned %d: %s", coreerrors.ErrSourceUnavailable, repo, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return info, fmt.Errorf("%w: %s: decoding release: %v", coreerrors.ErrSourceUnavailable, repo, err)
	}
	return info, nil
}
