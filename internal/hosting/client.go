// Package hosting fetches code-hosting profiles and repository lists for a
// handle. It speaks a GitHub-compatible REST surface and reports failures
// through typed errors so callers can distinguish "not found" from "rate
// limited" from "network failure".
package hosting

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/talentforge/forge/internal/cache"
	"github.com/talentforge/forge/internal/model"
	"github.com/talentforge/forge/internal/worker"
)

// Client fetches profiles and repositories over HTTP.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	userAgent  string
	maxBytes   int64
	cache      cache.Cache // nil disables caching
	cacheTTL   time.Duration
	limiter    *worker.Limiter // nil disables throttling
}

// Options configures the client.
type Options struct {
	BaseURL   string
	Token     string
	UserAgent string
	Timeout   time.Duration
	MaxBytes  int64
	Cache     cache.Cache
	CacheTTL  time.Duration
	Limiter   *worker.Limiter
}

// NewClient creates a hosting client.
func NewClient(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = "https://api.github.com"
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 15 * time.Second
	}
	if opts.MaxBytes <= 0 {
		opts.MaxBytes = 2_000_000
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = 10 * time.Minute
	}
	return &Client{
		httpClient: &http.Client{Timeout: opts.Timeout},
		baseURL:    opts.BaseURL,
		token:      opts.Token,
		userAgent:  opts.UserAgent,
		maxBytes:   opts.MaxBytes,
		cache:      opts.Cache,
		cacheTTL:   opts.CacheTTL,
		limiter:    opts.Limiter,
	}
}

type userPayload struct {
	Login       string `json:"login"`
	Name        string `json:"name"`
	Followers   int    `json:"followers"`
	PublicRepos int    `json:"public_repos"`
}

type repoPayload struct {
	Name        string   `json:"name"`
	FullName    string   `json:"full_name"`
	Description string   `json:"description"`
	Language    string   `json:"language"`
	Topics      []string `json:"topics"`
	Stars       int      `json:"stargazers_count"`
	Forks       int      `json:"forks_count"`
	Fork        bool     `json:"fork"`
	CreatedAt   string   `json:"created_at"`
	PushedAt    string   `json:"pushed_at"`
	Owner       struct {
		Login string `json:"login"`
	} `json:"owner"`
}

type fetchPayload struct {
	User  userPayload   `json:"user"`
	Repos []repoPayload `json:"repos"`
}

// Fetch returns the profile and repository list for a handle. Results are
// cached per handle when a cache is configured.
func (c *Client) Fetch(ctx context.Context, handle string) (*model.HostingProfile, []model.Repository, error) {
	key := cache.Key("hosting", handle)
	if c.cache != nil {
		if raw, ok := c.cache.Get(key); ok {
			var payload fetchPayload
			if err := json.Unmarshal(raw, &payload); err == nil {
				profile, repos := mapPayload(handle, payload)
				return profile, repos, nil
			}
		}
	}

	var payload fetchPayload
	if err := c.getJSON(ctx, fmt.Sprintf("%s/users/%s", c.baseURL, url.PathEscape(handle)), &payload.User); err != nil {
		return nil, nil, err
	}
	if err := c.getJSON(ctx, fmt.Sprintf("%s/users/%s/repos?per_page=100&sort=pushed", c.baseURL, url.PathEscape(handle)), &payload.Repos); err != nil {
		return nil, nil, err
	}

	if c.cache != nil {
		if raw, err := json.Marshal(payload); err == nil {
			c.cache.Set(key, raw, c.cacheTTL)
		}
	}

	profile, repos := mapPayload(handle, payload)
	return profile, repos, nil
}

func (c *Client) getJSON(ctx context.Context, rawURL string, out interface{}) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx, rawURL); err != nil {
			return fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode == http.StatusTooManyRequests:
		return ErrRateLimited
	case resp.StatusCode == http.StatusForbidden && resp.Header.Get("X-RateLimit-Remaining") == "0":
		return ErrRateLimited
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return fmt.Errorf("%w: unexpected status %d", ErrUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBytes))
	if err != nil {
		return fmt.Errorf("%w: read body: %v", ErrUnavailable, err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: decode body: %v", ErrUnavailable, err)
	}
	return nil
}

func mapPayload(handle string, payload fetchPayload) (*model.HostingProfile, []model.Repository) {
	profile := &model.HostingProfile{
		Username:    payload.User.Login,
		Name:        payload.User.Name,
		Followers:   payload.User.Followers,
		PublicRepos: payload.User.PublicRepos,
	}
	if profile.Username == "" {
		profile.Username = handle
	}

	repos := make([]model.Repository, 0, len(payload.Repos))
	for _, r := range payload.Repos {
		repos = append(repos, model.Repository{
			Name:        r.Name,
			FullName:    r.FullName,
			Description: r.Description,
			Language:    r.Language,
			Topics:      r.Topics,
			Stars:       r.Stars,
			Forks:       r.Forks,
			IsOwner:     r.Owner.Login == "" || r.Owner.Login == handle,
			IsFork:      r.Fork,
			CreatedAt:   parseTime(r.CreatedAt),
			PushedAt:    parseTime(r.PushedAt),
		})
	}
	return profile, repos
}

func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
