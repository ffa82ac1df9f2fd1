package usecase

import (
	"context"

	"cloud.google.com/go/bigquery"
	"github.com/m-mizutani/bqs"
	"github.com/m-mizutani/deploydoctor/pkg/domain/interfaces"
	"github.com/m-mizutani/deploydoctor/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
)

// exportAnalysis writes a fresh analysis to BigQuery if configured.
func (x *UseCase) exportAnalysis(ctx context.Context, repo model.RepositoryIdentifier, analysis *model.Analysis, pathCount int) error {
	bq := x.clients.BigQuery()
	if bq == nil {
		return nil
	}

	schema, err := x.prepareExportTable(ctx, bq)
	if err != nil {
		return err
	}

	record := &model.AnalysisRawRecord{
		AnalysisRecord: model.AnalysisRecord{
			ID:             int64(analysis.ID),
			Timestamp:      analysis.CreatedAt,
			RepoURL:        analysis.RepoURL,
			Host:           repo.Host,
			Owner:          repo.Owner,
			Name:           repo.Name,
			Features:       analysis.Features,
			Score:          int64(analysis.Score),
			Message:        analysis.Message,
			ScoringVersion: analysis.ScoringVersion,
			PathCount:      int64(pathCount),
		},
		Timestamp: analysis.CreatedAt.UnixMicro(),
	}

	if err := bq.Insert(ctx, schema, record); err != nil {
		return goerr.Wrap(err, "failed to insert analysis to BigQuery", goerr.V("analysis_id", analysis.ID))
	}
	return nil
}

func (x *UseCase) prepareExportTable(ctx context.Context, bq interfaces.BigQuery) (bigquery.Schema, error) {
	x.exportMu.Lock()
	defer x.exportMu.Unlock()

	if x.exportSchema != nil {
		return x.exportSchema, nil
	}

	schema, err := createOrUpdateBigQueryTable(ctx, bq)
	if err != nil {
		return nil, err
	}
	x.exportSchema = schema
	return schema, nil
}

func createOrUpdateBigQueryTable(ctx context.Context, bq interfaces.BigQuery) (bigquery.Schema, error) {
	schema, err := bqs.Infer(&model.AnalysisRecord{})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to infer analysis schema")
	}

	metaData, err := bq.GetMetadata(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get BigQuery table metadata")
	}
	if metaData == nil {
		if err := bq.CreateTable(ctx, &bigquery.TableMetadata{
			Schema: schema,
		}); err != nil {
			return nil, goerr.Wrap(err, "failed to create BigQuery table")
		}
		return schema, nil
	}

	if bqs.Equal(metaData.Schema, schema) {
		return schema, nil
	}

	mergedSchema, err := bqs.Merge(metaData.Schema, schema)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to merge BigQuery schema")
	}
	if err := bq.UpdateTable(ctx, bigquery.TableMetadataToUpdate{
		Schema: mergedSchema,
	}, metaData.ETag); err != nil {
		return nil, goerr.Wrap(err, "failed to update BigQuery table")
	}

	return mergedSchema, nil
}
