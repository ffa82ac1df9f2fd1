package usecase

import (
	"context"
	"math"

	"github.com/m-mizutani/deploydoctor/pkg/domain/model"
	"github.com/m-mizutani/deploydoctor/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

func (x *UseCase) GetStats(ctx context.Context) (*model.Stats, error) {
	repo := x.clients.AnalysisRepository()

	count, err := repo.Count(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to count analyses")
	}

	avg, err := repo.AverageScore(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get average score")
	}

	return &model.Stats{
		TotalAnalyses: count,
		AverageScore:  math.Round(avg*100) / 100,
	}, nil
}

// ListHistory returns recent analyses, newest first. limit larger than
// model.MaxHistoryLimit is capped.
func (x *UseCase) ListHistory(ctx context.Context, limit int) ([]*model.HistoryEntry, error) {
	if limit <= 0 {
		return nil, goerr.Wrap(types.ErrValidationFailed, "limit must be positive", goerr.V("limit", limit))
	}
	if limit > model.MaxHistoryLimit {
		limit = model.MaxHistoryLimit
	}

	analyses, err := x.clients.AnalysisRepository().Recent(ctx, limit)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list recent analyses", goerr.V("limit", limit))
	}

	entries := make([]*model.HistoryEntry, 0, len(analyses))
	for _, a := range analyses {
		entries = append(entries, &model.HistoryEntry{
			ID:        a.ID,
			RepoURL:   a.RepoURL,
			Score:     a.Score,
			Message:   a.Message,
			CreatedAt: a.CreatedAt,
		})
	}
	return entries, nil
}
