package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/relwatchhq/relwatch/pkg/domain/model"
)

const (
	defaultBaseURL = "https://api.github.com"
	apiVersion     = "2022-11-28"

	// maxErrorBodySize bounds how much of an error response body is kept
	// for diagnostics
	maxErrorBodySize = 1024
)

// legacyTokenPrefixes are the classic GitHub token markers that require the
// "token" authorization scheme instead of "Bearer"
var legacyTokenPrefixes = []string{"ghp_", "gho_", "ghu_", "ghs_", "ghr_"}

// Client fetches latest-release metadata from the GitHub REST API
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

// Option is a functional option for Client configuration
type Option func(*Client)

// WithToken sets the API credential. Both classic (token scheme) and
// fine-grained/JWT (bearer scheme) credentials are accepted.
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

// WithBaseURL overrides the API base URL (GitHub Enterprise, tests)
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

// WithHTTPClient overrides the underlying HTTP client
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// NewClient creates a new GitHub API client
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{},
		baseURL:    defaultBaseURL,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// releaseResponse is the subset of the GitHub release payload the watcher
// consumes
type releaseResponse struct {
	ID          int64     `json:"id"`
	TagName     string    `json:"tag_name"`
	Name        string    `json:"name"`
	HTMLURL     string    `json:"html_url"`
	PublishedAt time.Time `json:"published_at"`
	Body        string    `json:"body"`
	Author      struct {
		Login string `json:"login"`
	} `json:"author"`
}

// LatestRelease fetches the latest release of a repository. A stored cache
// validator in opts is sent as If-None-Match; a 304 answer yields a
// NotModified result and does not count against the API rate quota. A 404
// means the repository has never published a release.
func (c *Client) LatestRelease(ctx context.Context, repo model.RepoID, opts model.FetchOptions) (*model.FetchResult, error) {
	url := fmt.Sprintf("%s/repos/%s/%s/releases/latest", c.baseURL, repo.Owner, repo.Name)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create release request", goerr.V("url", url))
	}

	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("X-GitHub-Api-Version", apiVersion)
	if c.token != "" {
		req.Header.Set("Authorization", authorizationHeader(c.token))
	}
	if opts.ETag != "" {
		req.Header.Set("If-None-Match", opts.ETag)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to fetch latest release",
			goerr.V("repo", repo.String()),
		)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// decoded below
	case http.StatusNotModified:
		return &model.FetchResult{NotModified: true}, nil
	case http.StatusNotFound:
		return &model.FetchResult{NoReleases: true}, nil
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
		return nil, goerr.New("unexpected status from release API",
			goerr.V("repo", repo.String()),
			goerr.V("status", resp.StatusCode),
			goerr.V("body", string(body)),
		)
	}

	var raw releaseResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, goerr.Wrap(err, "failed to decode release response",
			goerr.V("repo", repo.String()),
		)
	}

	return &model.FetchResult{
		Release: &model.Release{
			ID:          raw.ID,
			TagName:     raw.TagName,
			Name:        raw.Name,
			HTMLURL:     raw.HTMLURL,
			PublishedAt: raw.PublishedAt,
			Body:        raw.Body,
			Author:      raw.Author.Login,
		},
		ETag: resp.Header.Get("ETag"),
	}, nil
}

// authorizationHeader formats the Authorization header value. Classic
// tokens (ghp_, gho_, ghu_, ghs_, ghr_) use the legacy "token" scheme; any
// other credential is sent as a bearer token.
func authorizationHeader(token string) string {
	for _, prefix := range legacyTokenPrefixes {
		if strings.HasPrefix(token, prefix) {
			return "token " + token
		}
	}
	return "Bearer " + token
}
