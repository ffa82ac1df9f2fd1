package cli

import (
	"context"
	"encoding/json"
	"io"

	"github.com/m-mizutani/deploydoctor/pkg/cli/config"
	"github.com/m-mizutani/deploydoctor/pkg/domain/interfaces"
	"github.com/m-mizutani/deploydoctor/pkg/infra"
	"github.com/m-mizutani/deploydoctor/pkg/infra/source"
	"github.com/m-mizutani/deploydoctor/pkg/utils/logging"
	"github.com/m-mizutani/deploydoctor/pkg/utils/safe"
	"github.com/m-mizutani/goerr/v2"
)

// newRepositorySource routes GitLab-hosted repositories to GitLab and all
// other hosts to GitHub.
func newRepositorySource(gh *config.GitHub, gl *config.GitLab) (interfaces.RepositorySource, error) {
	ghClient, err := gh.NewClient()
	if err != nil {
		return nil, err
	}

	var options []source.Option
	glClient, err := gl.NewClient()
	if err != nil {
		return nil, err
	}
	if glClient != nil {
		options = append(options, source.WithProvider(gl.Host(), glClient))
	}

	return source.New(ghClient, options...), nil
}

type analyzerConfig struct {
	github   config.GitHub
	gitlab   config.GitLab
	database config.Database
	bigQuery config.BigQuery
}

// buildClients creates all infrastructure needed by the analysis pipeline.
// The returned function releases them and is never nil.
func (x *analyzerConfig) buildClients(ctx context.Context) (*infra.Clients, func(), error) {
	src, err := newRepositorySource(&x.github, &x.gitlab)
	if err != nil {
		return nil, nil, err
	}

	repo, repoCloser, err := x.database.NewRepository(ctx)
	if err != nil {
		return nil, nil, err
	}

	options := []infra.Option{
		infra.WithRepositorySource(src),
		infra.WithAnalysisRepository(repo),
	}
	cleanup := func() { safe.Close(repoCloser) }

	bqClient, err := x.bigQuery.NewClient(ctx)
	if err != nil {
		safe.Close(repoCloser)
		return nil, nil, err
	}
	if bqClient != nil {
		options = append(options, infra.WithBigQuery(bqClient))
		cleanup = func() {
			safe.Close(bqClient)
			safe.Close(repoCloser)
		}
	}

	logging.From(ctx).Debug("clients are ready",
		"database", &x.database,
		"bigquery.enabled", bqClient != nil,
	)

	return infra.New(options...), cleanup, nil
}

func writeResult(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return goerr.Wrap(err, "failed to write result")
	}
	return nil
}
