package source

import (
	"context"
	"fmt"
	"strings"

	"github.com/m-mizutani/deploydoctor/pkg/domain/interfaces"
	"github.com/m-mizutani/deploydoctor/pkg/domain/model"
	"github.com/m-mizutani/deploydoctor/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// Router dispatches FetchTree to a provider by the repository host. Hosts
// that are not registered go to the fallback provider.
type Router struct {
	fallback  interfaces.RepositorySource
	providers map[string]interfaces.RepositorySource
}

var _ interfaces.RepositorySource = (*Router)(nil)

type Option func(*Router)

// WithProvider routes repositories on host to src.
func WithProvider(host string, src interfaces.RepositorySource) Option {
	return func(x *Router) {
		x.providers[strings.ToLower(host)] = src
	}
}

func New(fallback interfaces.RepositorySource, opts ...Option) *Router {
	router := &Router{
		fallback:  fallback,
		providers: make(map[string]interfaces.RepositorySource),
	}
	for _, opt := range opts {
		opt(router)
	}
	return router
}

func (x *Router) FetchTree(ctx context.Context, repo model.RepositoryIdentifier) ([]string, error) {
	if src, ok := x.providers[strings.ToLower(repo.Host)]; ok {
		return src.FetchTree(ctx, repo)
	}

	if x.fallback == nil {
		return nil, goerr.Wrap(types.ErrRepositoryFetch, fmt.Sprintf("no provider for host %q", repo.Host),
			goerr.V("host", repo.Host),
			goerr.V("repo", repo.FullName()),
		)
	}
	return x.fallback.FetchTree(ctx, repo)
}
