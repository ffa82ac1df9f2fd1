package infra

import (
	"github.com/m-mizutani/deploydoctor/pkg/domain/interfaces"
	"github.com/m-mizutani/deploydoctor/pkg/repository/memory"
)

type Clients struct {
	repositorySource   interfaces.RepositorySource
	analysisRepository interfaces.AnalysisRepository
	bqClient           interfaces.BigQuery
}

type Option func(*Clients)

func New(options ...Option) *Clients {
	client := &Clients{
		analysisRepository: memory.New(),
	}

	for _, opt := range options {
		opt(client)
	}

	return client
}

func (x *Clients) RepositorySource() interfaces.RepositorySource {
	return x.repositorySource
}
func (x *Clients) AnalysisRepository() interfaces.AnalysisRepository {
	return x.analysisRepository
}
func (x *Clients) BigQuery() interfaces.BigQuery {
	return x.bqClient
}

func WithRepositorySource(src interfaces.RepositorySource) Option {
	return func(x *Clients) {
		x.repositorySource = src
	}
}

func WithAnalysisRepository(repo interfaces.AnalysisRepository) Option {
	return func(x *Clients) {
		x.analysisRepository = repo
	}
}

func WithBigQuery(client interfaces.BigQuery) Option {
	return func(x *Clients) {
		x.bqClient = client
	}
}
