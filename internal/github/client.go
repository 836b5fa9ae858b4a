// File: internal/github/client.go
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"devconnect_backend/internal/common"
	"devconnect_backend/internal/config"

	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

// Client fetches public repository listings for a GitHub username. Responses
// are cached per username so repeated lookups do not burn the upstream rate limit.
type Client struct {
	cfg        *config.Config
	httpClient *http.Client
	cache      *gocache.Cache
	logger     *zap.Logger
}

// NewClient creates a new GitHub lookup client with a bounded request timeout.
func NewClient(cfg *config.Config, logger *zap.Logger) *Client {
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: cfg.GithubTimeout,
		},
		cache:  gocache.New(cfg.GithubCacheTTL, 2*cfg.GithubCacheTTL),
		logger: logger,
	}
}

var errNoGithubProfile = common.NewAPIError(http.StatusNotFound, "NO_GITHUB_PROFILE", "No Github profile found!")

// ListRepos returns the five oldest public repos of the given username as
// parsed JSON, relayed as-is from the upstream API.
func (c *Client) ListRepos(ctx context.Context, username string) ([]json.RawMessage, error) {
	if cached, found := c.cache.Get(username); found {
		return cached.([]json.RawMessage), nil
	}

	reqURL := fmt.Sprintf("%s/users/%s/repos?per_page=5&sort=created&direction=asc",
		c.cfg.GithubAPIBaseURL, url.PathEscape(username))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build github request: %w", err)
	}
	req.Header.Set("User-Agent", "devconnect-backend")
	req.Header.Set("Accept", "application/vnd.github+json")
	if c.cfg.GithubToken != "" {
		req.Header.Set("Authorization", "token "+c.cfg.GithubToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("GitHub request failed", zap.Error(err), zap.String("username", username))
		return nil, common.ErrInternalServer.WithDetails("Could not reach GitHub.")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("GitHub returned non-200",
			zap.Int("status", resp.StatusCode),
			zap.String("username", username),
		)
		return nil, errNoGithubProfile
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Error("Failed to read GitHub response body", zap.Error(err), zap.String("username", username))
		return nil, common.ErrInternalServer.WithDetails("Could not read GitHub response.")
	}

	var repos []json.RawMessage
	if err := json.Unmarshal(body, &repos); err != nil {
		c.logger.Error("Failed to parse GitHub response body", zap.Error(err), zap.String("username", username))
		return nil, common.ErrInternalServer.WithDetails("Could not parse GitHub response.")
	}

	c.cache.Set(username, repos, gocache.DefaultExpiration)
	return repos, nil
}
