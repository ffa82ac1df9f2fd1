package gitlabapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/m-mizutani/deploydoctor/pkg/domain/interfaces"
	"github.com/m-mizutani/deploydoctor/pkg/domain/model"
	"github.com/m-mizutani/deploydoctor/pkg/domain/types"
	"github.com/m-mizutani/deploydoctor/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"github.com/xanzy/go-gitlab"
)

const (
	DefaultBaseURL   = "https://gitlab.com"
	DefaultTimeout   = 10 * time.Second
	defaultRetryWait = 500 * time.Millisecond
	maxRetry         = 1
	treePageSize     = 100
)

// Client fetches repository trees from the GitLab REST API.
type Client struct {
	client    *gitlab.Client
	timeout   time.Duration
	retryWait time.Duration
}

var _ interfaces.RepositorySource = (*Client)(nil)

type Option func(*Client)

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

// New creates a GitLab tree fetcher. token may be empty for public projects.
func New(baseURL string, token types.GitLabToken, opts ...Option) (*Client, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	client := &Client{
		timeout:   DefaultTimeout,
		retryWait: defaultRetryWait,
	}
	for _, opt := range opts {
		opt(client)
	}
	if client.timeout <= 0 {
		return nil, goerr.Wrap(types.ErrInvalidOption, "timeout must be positive",
			goerr.V("timeout", client.timeout),
		)
	}

	// Retries are handled in call() so that GitHub and GitLab behave the same
	gl, err := gitlab.NewClient(string(token),
		gitlab.WithBaseURL(baseURL),
		gitlab.WithCustomRetryMax(0),
	)
	if err != nil {
		return nil, goerr.Wrap(types.ErrInvalidOption, "failed to create GitLab client",
			goerr.V("baseURL", baseURL),
			goerr.V("cause", err.Error()),
		)
	}
	client.client = gl

	return client, nil
}

// FetchTree returns all paths in the latest commit of the default branch.
func (x *Client) FetchTree(ctx context.Context, repo model.RepositoryIdentifier) ([]string, error) {
	pid := repo.FullName()

	var project *gitlab.Project
	if err := x.call(ctx, "get project", repo, func(ctx context.Context) (*gitlab.Response, error) {
		p, resp, err := x.client.Projects.GetProject(pid, nil, gitlab.WithContext(ctx))
		project = p
		return resp, err
	}); err != nil {
		return nil, err
	}

	branchName := project.DefaultBranch
	if branchName == "" {
		return nil, goerr.Wrap(types.ErrRepositoryFetch, "project has no default branch",
			goerr.V("repo", pid),
		)
	}

	var branch *gitlab.Branch
	if err := x.call(ctx, "get branch", repo, func(ctx context.Context) (*gitlab.Response, error) {
		b, resp, err := x.client.Branches.GetBranch(pid, branchName, gitlab.WithContext(ctx))
		branch = b
		return resp, err
	}); err != nil {
		return nil, err
	}
	if branch.Commit == nil || branch.Commit.ID == "" {
		return nil, goerr.Wrap(types.ErrRepositoryFetch, "branch has no commit",
			goerr.V("repo", pid),
			goerr.V("branch", branchName),
		)
	}
	sha := branch.Commit.ID

	paths := []string{}
	opt := &gitlab.ListTreeOptions{
		ListOptions: gitlab.ListOptions{PerPage: treePageSize, Page: 1},
		Ref:         gitlab.Ptr(sha),
		Recursive:   gitlab.Ptr(true),
	}
	for {
		var nodes []*gitlab.TreeNode
		var next int
		if err := x.call(ctx, "list tree", repo, func(ctx context.Context) (*gitlab.Response, error) {
			n, resp, err := x.client.Repositories.ListTree(pid, opt, gitlab.WithContext(ctx))
			nodes = n
			if resp != nil {
				next = resp.NextPage
			}
			return resp, err
		}); err != nil {
			return nil, err
		}

		for _, node := range nodes {
			paths = append(paths, node.Path)
		}

		if next == 0 {
			break
		}
		opt.Page = next
	}

	logging.From(ctx).Debug("fetched tree from GitLab",
		"repo", pid,
		"branch", branchName,
		"sha", sha,
		"paths", len(paths),
	)

	return paths, nil
}

func (x *Client) call(ctx context.Context, op string, repo model.RepositoryIdentifier, fn func(ctx context.Context) (*gitlab.Response, error)) error {
	for attempt := 0; ; attempt++ {
		callCtx, cancel := context.WithTimeout(ctx, x.timeout)
		resp, err := fn(callCtx)
		cancel()

		if err == nil {
			return nil
		}

		if attempt < maxRetry && isTransient(resp) && ctx.Err() == nil {
			logging.From(ctx).Warn("retrying GitLab API call",
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

// isTransient reports transport failures and server errors. Rate limits are not retried.
func isTransient(resp *gitlab.Response) bool {
	if resp == nil || resp.Response == nil {
		return true
	}
	return resp.StatusCode >= http.StatusInternalServerError
}
