package config

import (
	"log/slog"
	"strings"
	"time"

	"github.com/m-mizutani/deploydoctor/pkg/domain/types"
	"github.com/m-mizutani/deploydoctor/pkg/infra/gitlabapi"
	"github.com/urfave/cli/v3"
)

type GitLab struct {
	host    string
	baseURL string
	token   types.GitLabToken `masq:"secret"`
	timeout time.Duration
}

func (x *GitLab) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "gitlab-host",
			Usage:       "Repository host served by GitLab (empty to disable)",
			Category:    "GitLab",
			Destination: &x.host,
			Sources:     cli.EnvVars("DEPLOYDOCTOR_GITLAB_HOST"),
			Value:       "gitlab.com",
		},
		&cli.StringFlag{
			Name:        "gitlab-base-url",
			Usage:       "GitLab API base URL (default: https://<gitlab-host>)",
			Category:    "GitLab",
			Destination: &x.baseURL,
			Sources:     cli.EnvVars("DEPLOYDOCTOR_GITLAB_BASE_URL"),
		},
		&cli.StringFlag{
			Name:        "gitlab-token",
			Usage:       "GitLab personal access token (optional for public projects)",
			Category:    "GitLab",
			Destination: (*string)(&x.token),
			Sources:     cli.EnvVars("DEPLOYDOCTOR_GITLAB_TOKEN", "GITLAB_TOKEN"),
		},
		&cli.DurationFlag{
			Name:        "gitlab-timeout",
			Usage:       "Timeout of each GitLab API call",
			Category:    "GitLab",
			Destination: &x.timeout,
			Sources:     cli.EnvVars("DEPLOYDOCTOR_GITLAB_TIMEOUT"),
			Value:       gitlabapi.DefaultTimeout,
		},
	}
}

func (x GitLab) Enabled() bool {
	return x.host != ""
}

func (x GitLab) Host() string {
	return strings.ToLower(x.host)
}

// NewClient builds the GitLab tree fetcher. It returns nil if GitLab is disabled.
func (x GitLab) NewClient() (*gitlabapi.Client, error) {
	if !x.Enabled() {
		return nil, nil
	}

	baseURL := x.baseURL
	if baseURL == "" {
		baseURL = "https://" + x.host
	}

	return gitlabapi.New(baseURL, x.token, gitlabapi.WithTimeout(x.timeout))
}

func (x GitLab) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("host", x.host),
		slog.String("baseURL", x.baseURL),
		slog.Int("token.len", len(x.token)),
		slog.Duration("timeout", x.timeout),
	)
}
