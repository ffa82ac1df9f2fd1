package interfaces

//go:generate moq -out ../mock/infra.go -pkg mock . BigQuery RepositorySource GitHubApp

import (
	"context"
	"net/http"

	"cloud.google.com/go/bigquery"

	"github.com/m-mizutani/deploydoctor/pkg/domain/model"
)

type BigQuery interface {
	Insert(ctx context.Context, schema bigquery.Schema, data any) error

	GetMetadata(ctx context.Context) (*bigquery.TableMetadata, error)
	UpdateTable(ctx context.Context, md bigquery.TableMetadataToUpdate, eTag string) error
	CreateTable(ctx context.Context, md *bigquery.TableMetadata) error
}

// RepositorySource retrieves the file tree of a repository's default branch
// from a hosting provider.
type RepositorySource interface {
	// FetchTree returns paths of all files and directories. Any provider failure
	// is wrapped with types.ErrRepositoryFetch.
	FetchTree(ctx context.Context, repo model.RepositoryIdentifier) ([]string, error)
}

type GitHubApp interface {
	// HTTPClient returns a client authenticated as the app installation of owner.
	HTTPClient(ctx context.Context, owner string) (*http.Client, error)
}
