package ghapp

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/bradleyfalzon/ghinstallation/v2"
	"github.com/google/go-github/v53/github"
	"github.com/m-mizutani/deploydoctor/pkg/domain/interfaces"
	"github.com/m-mizutani/deploydoctor/pkg/domain/types"
	"github.com/m-mizutani/deploydoctor/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

// DefaultTimeout bounds each installation lookup request.
const DefaultTimeout = 10 * time.Second

// Client issues installation-authenticated HTTP clients for a GitHub App.
type Client struct {
	appID     types.GitHubAppID
	pem       types.GitHubAppPrivateKey
	installID types.GitHubAppInstallID
	baseURL   string
	timeout   time.Duration

	mu      sync.Mutex
	owners  map[string]types.GitHubAppInstallID
	clients map[types.GitHubAppInstallID]*http.Client
}

var _ interfaces.GitHubApp = (*Client)(nil)

type Option func(*Client)

// WithInstallID pins the installation. Otherwise the installation is looked up
// for each repository owner.
func WithInstallID(id types.GitHubAppInstallID) Option {
	return func(x *Client) {
		x.installID = id
	}
}

// WithBaseURL sets the REST endpoint of GitHub Enterprise Server, e.g.
// https://github.example.com/api/v3
func WithBaseURL(baseURL string) Option {
	return func(x *Client) {
		x.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

func WithTimeout(d time.Duration) Option {
	return func(x *Client) {
		x.timeout = d
	}
}

func New(appID types.GitHubAppID, pem types.GitHubAppPrivateKey, opts ...Option) (*Client, error) {
	if appID == 0 {
		return nil, goerr.Wrap(types.ErrInvalidOption, "appID is empty")
	}
	if pem == "" {
		return nil, goerr.Wrap(types.ErrInvalidOption, "pem is empty")
	}

	client := &Client{
		appID:   appID,
		pem:     pem,
		timeout: DefaultTimeout,
		owners:  make(map[string]types.GitHubAppInstallID),
		clients: make(map[types.GitHubAppInstallID]*http.Client),
	}
	for _, opt := range opts {
		opt(client)
	}

	if client.timeout <= 0 {
		return nil, goerr.Wrap(types.ErrInvalidOption, "timeout must be positive",
			goerr.V("timeout", client.timeout),
		)
	}

	if client.baseURL != "" {
		if _, err := url.Parse(client.baseURL); err != nil {
			return nil, goerr.Wrap(types.ErrInvalidOption, "invalid GitHub base URL",
				goerr.V("baseURL", client.baseURL),
				goerr.V("cause", err.Error()),
			)
		}
	}

	return client, nil
}

// HTTPClient returns a client whose requests carry an installation token of owner.
func (x *Client) HTTPClient(ctx context.Context, owner string) (*http.Client, error) {
	installID, err := x.installationID(ctx, owner)
	if err != nil {
		return nil, err
	}

	x.mu.Lock()
	defer x.mu.Unlock()

	if client, ok := x.clients[installID]; ok {
		return client, nil
	}

	itr, err := ghinstallation.New(http.DefaultTransport, int64(x.appID), int64(installID), []byte(x.pem))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create installation transport",
			goerr.V("appID", x.appID),
			goerr.V("installID", installID),
		)
	}
	if x.baseURL != "" {
		itr.BaseURL = x.baseURL
	}

	client := &http.Client{Transport: itr}
	x.clients[installID] = client
	return client, nil
}

func (x *Client) installationID(ctx context.Context, owner string) (types.GitHubAppInstallID, error) {
	if x.installID != 0 {
		return x.installID, nil
	}

	x.mu.Lock()
	id, ok := x.owners[owner]
	x.mu.Unlock()
	if ok {
		return id, nil
	}

	id, err := x.lookupInstallation(ctx, owner)
	if err != nil {
		return 0, err
	}

	x.mu.Lock()
	x.owners[owner] = id
	x.mu.Unlock()

	return id, nil
}

func (x *Client) buildAppClient() (*github.Client, error) {
	itr, err := ghinstallation.NewAppsTransport(http.DefaultTransport, int64(x.appID), []byte(x.pem))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create app transport", goerr.V("appID", x.appID))
	}

	client := github.NewClient(&http.Client{Transport: itr})
	if x.baseURL != "" {
		itr.BaseURL = x.baseURL
		u, err := url.Parse(x.baseURL + "/")
		if err != nil {
			return nil, goerr.Wrap(err, "invalid GitHub base URL", goerr.V("baseURL", x.baseURL))
		}
		client.BaseURL = u
	}

	return client, nil
}

// lookupInstallation finds the installation of the app for an organization
// first and then for a user.
func (x *Client) lookupInstallation(ctx context.Context, owner string) (types.GitHubAppInstallID, error) {
	client, err := x.buildAppClient()
	if err != nil {
		return 0, err
	}

	orgCtx, cancel := context.WithTimeout(ctx, x.timeout)
	defer cancel()
	installation, resp, orgErr := client.Apps.FindOrganizationInstallation(orgCtx, owner)
	if orgErr == nil && installation != nil {
		logging.From(ctx).Info("Found organization installation",
			slog.String("owner", owner),
			slog.Int64("installID", installation.GetID()),
		)
		return types.GitHubAppInstallID(installation.GetID()), nil
	}

	if resp != nil && resp.StatusCode == http.StatusNotFound {
		userCtx, cancel := context.WithTimeout(ctx, x.timeout)
		defer cancel()
		installation, _, userErr := client.Apps.FindUserInstallation(userCtx, owner)
		if userErr != nil {
			return 0, goerr.Wrap(userErr, "failed to find user installation for owner",
				goerr.V("owner", owner),
			)
		}

		logging.From(ctx).Info("Found user installation",
			slog.String("owner", owner),
			slog.Int64("installID", installation.GetID()),
		)
		return types.GitHubAppInstallID(installation.GetID()), nil
	}

	if orgErr == nil {
		return 0, goerr.New("installation not found for owner", goerr.V("owner", owner))
	}
	return 0, goerr.Wrap(orgErr, "failed to find organization installation for owner",
		goerr.V("owner", owner),
	)
}
