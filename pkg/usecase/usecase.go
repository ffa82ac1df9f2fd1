package usecase

import (
	"sync"

	"cloud.google.com/go/bigquery"

	"github.com/m-mizutani/deploydoctor/pkg/domain/interfaces"
	"github.com/m-mizutani/deploydoctor/pkg/infra"
)

type UseCase struct {
	clients *infra.Clients

	// BigQuery table schema is checked once per process
	exportMu     sync.Mutex
	exportSchema bigquery.Schema
}

var _ interfaces.UseCase = (*UseCase)(nil)

func New(clients *infra.Clients) *UseCase {
	return &UseCase{
		clients: clients,
	}
}
