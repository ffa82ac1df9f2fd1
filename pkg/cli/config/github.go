package config

import (
	"log/slog"
	"time"

	"github.com/m-mizutani/deploydoctor/pkg/domain/types"
	"github.com/m-mizutani/deploydoctor/pkg/infra/ghapp"
	"github.com/m-mizutani/deploydoctor/pkg/infra/githubapi"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

type GitHub struct {
	token      types.GitHubToken `masq:"secret"`
	baseURL    string
	timeout    time.Duration
	appID      types.GitHubAppID
	installID  types.GitHubAppInstallID
	privateKey types.GitHubAppPrivateKey `masq:"secret"`
}

func (x *GitHub) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "github-token",
			Usage:       "GitHub personal access token",
			Category:    "GitHub",
			Destination: (*string)(&x.token),
			Sources:     cli.EnvVars("DEPLOYDOCTOR_GITHUB_TOKEN", "GITHUB_TOKEN"),
		},
		&cli.StringFlag{
			Name:        "github-base-url",
			Usage:       "GitHub Enterprise REST API URL (e.g. https://github.example.com/api/v3/)",
			Category:    "GitHub",
			Destination: &x.baseURL,
			Sources:     cli.EnvVars("DEPLOYDOCTOR_GITHUB_BASE_URL"),
		},
		&cli.DurationFlag{
			Name:        "github-timeout",
			Usage:       "Timeout of each GitHub API call",
			Category:    "GitHub",
			Destination: &x.timeout,
			Sources:     cli.EnvVars("DEPLOYDOCTOR_GITHUB_TIMEOUT"),
			Value:       githubapi.DefaultTimeout,
		},
		&cli.Int64Flag{
			Name:        "github-app-id",
			Usage:       "GitHub App ID (use App installation credentials instead of token)",
			Category:    "GitHub App",
			Destination: (*int64)(&x.appID),
			Sources:     cli.EnvVars("DEPLOYDOCTOR_GITHUB_APP_ID"),
		},
		&cli.Int64Flag{
			Name:        "github-app-install-id",
			Usage:       "GitHub App installation ID (looked up by repository owner if omitted)",
			Category:    "GitHub App",
			Destination: (*int64)(&x.installID),
			Sources:     cli.EnvVars("DEPLOYDOCTOR_GITHUB_APP_INSTALL_ID"),
		},
		&cli.StringFlag{
			Name:        "github-app-private-key",
			Usage:       "GitHub App private key (PEM)",
			Category:    "GitHub App",
			Destination: (*string)(&x.privateKey),
			Sources:     cli.EnvVars("DEPLOYDOCTOR_GITHUB_APP_PRIVATE_KEY"),
		},
	}
}

// NewClient builds the GitHub tree fetcher. App credentials take precedence
// over a token; with neither, requests are unauthenticated.
func (x GitHub) NewClient() (*githubapi.Client, error) {
	options := []githubapi.Option{
		githubapi.WithTimeout(x.timeout),
	}

	switch {
	case x.appID != 0:
		if x.privateKey == "" {
			return nil, goerr.Wrap(types.ErrInvalidOption, "github-app-private-key is required with github-app-id")
		}

		appOptions := []ghapp.Option{
			ghapp.WithBaseURL(x.baseURL),
			ghapp.WithTimeout(x.timeout),
		}
		if x.installID != 0 {
			appOptions = append(appOptions, ghapp.WithInstallID(x.installID))
		}
		app, err := ghapp.New(x.appID, x.privateKey, appOptions...)
		if err != nil {
			return nil, err
		}
		options = append(options, githubapi.WithApp(app))

	case x.token != "":
		options = append(options, githubapi.WithToken(x.token))
	}

	return githubapi.New(x.baseURL, options...)
}

func (x GitHub) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("token.len", len(x.token)),
		slog.String("baseURL", x.baseURL),
		slog.Duration("timeout", x.timeout),
		slog.Int64("appID", int64(x.appID)),
		slog.Int64("installID", int64(x.installID)),
		slog.Int("privateKey.len", len(x.privateKey)),
	)
}
