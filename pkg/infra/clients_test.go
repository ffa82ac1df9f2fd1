package infra_test

import (
	"testing"

	"github.com/m-mizutani/deploydoctor/pkg/domain/mock"
	"github.com/m-mizutani/deploydoctor/pkg/infra"
	"github.com/m-mizutani/gt"
)

func TestNew(t *testing.T) {
	t.Run("create new clients without options", func(t *testing.T) {
		clients := infra.New()
		// In-memory store is used by default
		gt.V(t, clients.AnalysisRepository()).NotEqual(nil)
		// Source and BigQuery should be nil without configuration
		gt.V(t, clients.RepositorySource()).Equal(nil)
		gt.V(t, clients.BigQuery()).Equal(nil)
	})

	t.Run("WithRepositorySource option sets tree fetcher", func(t *testing.T) {
		mockSrc := &mock.RepositorySourceMock{}
		clients := infra.New(infra.WithRepositorySource(mockSrc))
		gt.V(t, clients.RepositorySource()).Equal(mockSrc)
	})

	t.Run("WithAnalysisRepository option sets store", func(t *testing.T) {
		mockRepo := &mock.AnalysisRepositoryMock{}
		clients := infra.New(infra.WithAnalysisRepository(mockRepo))
		gt.V(t, clients.AnalysisRepository()).Equal(mockRepo)
	})

	t.Run("multiple options can be combined", func(t *testing.T) {
		mockSrc := &mock.RepositorySourceMock{}
		mockRepo := &mock.AnalysisRepositoryMock{}
		mockBQ := &mock.BigQueryMock{}

		clients := infra.New(
			infra.WithRepositorySource(mockSrc),
			infra.WithAnalysisRepository(mockRepo),
			infra.WithBigQuery(mockBQ),
		)

		gt.V(t, clients.RepositorySource()).Equal(mockSrc)
		gt.V(t, clients.AnalysisRepository()).Equal(mockRepo)
		gt.V(t, clients.BigQuery()).Equal(mockBQ)
	})
}
