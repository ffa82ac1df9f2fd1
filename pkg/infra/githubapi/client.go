package githubapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-github/v53/github"
	"github.com/m-mizutani/deploydoctor/pkg/domain/interfaces"
	"github.com/m-mizutani/deploydoctor/pkg/domain/model"
	"github.com/m-mizutani/deploydoctor/pkg/domain/types"
	"github.com/m-mizutani/deploydoctor/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/oauth2"
)

const (
	DefaultTimeout   = 10 * time.Second
	defaultRetryWait = 500 * time.Millisecond
	maxRetry         = 1
)

// Client fetches repository trees from the GitHub REST API.
type Client struct {
	token     types.GitHubToken
	app       interfaces.GitHubApp
	baseURL   *url.URL
	timeout   time.Duration
	retryWait time.Duration

	tokenClient *github.Client
}

var _ interfaces.RepositorySource = (*Client)(nil)

type Option func(*Client)

func WithToken(token types.GitHubToken) Option {
	return func(x *Client) {
		x.token = token
	}
}

// WithApp authenticates requests as a GitHub App installation. It takes
// precedence over WithToken.
func WithApp(app interfaces.GitHubApp) Option {
	return func(x *Client) {
		x.app = app
	}
}

func WithTimeout(d time.Duration) Option {
	return func(x *Client) {
		x.timeout = d
	}
}

func WithRetryWait(d time.Duration) Option {
	return func(x *Client) {
		x.retryWait = d
	}
}

// New creates a GitHub tree fetcher. baseURL is empty for github.com or the
// REST endpoint of GitHub Enterprise Server.
func New(baseURL string, opts ...Option) (*Client, error) {
	client := &Client{
		timeout:   DefaultTimeout,
		retryWait: defaultRetryWait,
	}
	for _, opt := range opts {
		opt(client)
	}

	if baseURL != "" {
		if !strings.HasSuffix(baseURL, "/") {
			baseURL += "/"
		}
		u, err := url.Parse(baseURL)
		if err != nil {
			return nil, goerr.Wrap(types.ErrInvalidOption, "invalid GitHub base URL",
				goerr.V("baseURL", baseURL),
				goerr.V("cause", err.Error()),
			)
		}
		client.baseURL = u
	}
	if client.timeout <= 0 {
		return nil, goerr.Wrap(types.ErrInvalidOption, "timeout must be positive",
			goerr.V("timeout", client.timeout),
		)
	}

	var httpClient *http.Client
	if client.token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: string(client.token)})
		httpClient = oauth2.NewClient(context.Background(), ts)
	}
	client.tokenClient = client.newGitHubClient(httpClient)

	return client, nil
}

func (x *Client) newGitHubClient(httpClient *http.Client) *github.Client {
	client := github.NewClient(httpClient)
	if x.baseURL != nil {
		client.BaseURL = x.baseURL
	}
	return client
}

func (x *Client) clientFor(ctx context.Context, owner string) (*github.Client, error) {
	if x.app == nil {
		return x.tokenClient, nil
	}

	httpClient, err := x.app.HTTPClient(ctx, owner)
	if err != nil {
		return nil, goerr.Wrap(types.ErrRepositoryFetch, fmt.Sprintf("failed to authenticate as GitHub App: %v", err),
			goerr.V("owner", owner),
			goerr.V("cause", err.Error()),
		)
	}
	return x.newGitHubClient(httpClient), nil
}

// FetchTree returns all paths in the latest commit of the default branch.
func (x *Client) FetchTree(ctx context.Context, repo model.RepositoryIdentifier) ([]string, error) {
	client, err := x.clientFor(ctx, repo.Owner)
	if err != nil {
		return nil, err
	}

	var meta *github.Repository
	if err := x.call(ctx, "get repository", repo, func(ctx context.Context) (*github.Response, error) {
		r, resp, err := client.Repositories.Get(ctx, repo.Owner, repo.Name)
		meta = r
		return resp, err
	}); err != nil {
		return nil, err
	}

	branch := meta.GetDefaultBranch()
	if branch == "" {
		return nil, goerr.Wrap(types.ErrRepositoryFetch, "repository has no default branch",
			goerr.V("repo", repo.FullName()),
		)
	}

	var sha string
	if err := x.call(ctx, "get branch head", repo, func(ctx context.Context) (*github.Response, error) {
		s, resp, err := client.Repositories.GetCommitSHA1(ctx, repo.Owner, repo.Name, branch, "")
		sha = s
		return resp, err
	}); err != nil {
		return nil, err
	}

	var tree *github.Tree
	if err := x.call(ctx, "get tree", repo, func(ctx context.Context) (*github.Response, error) {
		t, resp, err := client.Git.GetTree(ctx, repo.Owner, repo.Name, sha, true)
		tree = t
		return resp, err
	}); err != nil {
		return nil, err
	}

	if tree.GetTruncated() {
		logging.From(ctx).Warn("tree is truncated",
			"repo", repo.FullName(),
			"sha", sha,
			"entries", len(tree.Entries),
		)
	}

	paths := make([]string, 0, len(tree.Entries))
	for _, entry := range tree.Entries {
		paths = append(paths, entry.GetPath())
	}

	logging.From(ctx).Debug("fetched tree from GitHub",
		"repo", repo.FullName(),
		"branch", branch,
		"sha", sha,
		"paths", len(paths),
	)

	return paths, nil
}

func (x *Client) call(ctx context.Context, op string, repo model.RepositoryIdentifier, fn func(ctx context.Context) (*github.Response, error)) error {
	for attempt := 0; ; attempt++ {
		callCtx, cancel := context.WithTimeout(ctx, x.timeout)
		resp, err := fn(callCtx)
		cancel()

		if err == nil {
			return nil
		}

		if attempt < maxRetry && isTransient(resp, err) && ctx.Err() == nil {
			logging.From(ctx).Warn("retrying GitHub API call",
				"op", op,
				"repo", repo.FullName(),
				"error", err,
			)

			select {
			case <-ctx.Done():
			case <-time.After(x.retryWait):
			}
			continue
		}

		values := []goerr.Option{
			goerr.V("op", op),
			goerr.V("repo", repo.FullName()),
			goerr.V("cause", err.Error()),
		}
		if resp != nil {
			values = append(values, goerr.V("status", resp.StatusCode))
		}
		return goerr.Wrap(types.ErrRepositoryFetch, fmt.Sprintf("failed to %s: %v", op, err), values...)
	}
}

func isTransient(resp *github.Response, err error) bool {
	var rateErr *github.RateLimitError
	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &rateErr) || errors.As(err, &abuseErr) {
		return false
	}

	if resp == nil {
		return true
	}
	return resp.StatusCode >= http.StatusInternalServerError
}
