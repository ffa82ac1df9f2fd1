package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/m-mizutani/deploydoctor/pkg/domain/model"
	"github.com/m-mizutani/deploydoctor/pkg/domain/types"
	"github.com/m-mizutani/deploydoctor/pkg/repository"
	"github.com/m-mizutani/deploydoctor/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

type analysisRepository struct {
	mu     sync.RWMutex
	lastID types.AnalysisID
	rows   []*model.Analysis

	// first analysis for each URL
	byURL map[string]*model.Analysis
}

func (r *analysisRepository) FindByURL(ctx context.Context, url string) (*model.Analysis, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	analysis, exists := r.byURL[url]
	if !exists {
		return nil, goerr.Wrap(repository.ErrNotFound, "analysis not found",
			goerr.V("repo_url", url),
		)
	}

	return copyAnalysis(analysis), nil
}

func (r *analysisRepository) Create(ctx context.Context, input *model.NewAnalysis) (*model.Analysis, error) {
	if err := input.Validate(); err != nil {
		return nil, goerr.Wrap(repository.ErrInvalidInput, "invalid analysis",
			goerr.V("cause", err.Error()),
			goerr.V("repo_url", input.RepoURL),
		)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.lastID++
	analysis := input.Build(r.lastID, logging.CtxTime(ctx).UTC())
	r.rows = append(r.rows, analysis)

	if _, exists := r.byURL[analysis.RepoURL]; !exists {
		r.byURL[analysis.RepoURL] = analysis
	}

	return copyAnalysis(analysis), nil
}

func (r *analysisRepository) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return int64(len(r.rows)), nil
}

func (r *analysisRepository) AverageScore(ctx context.Context) (float64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.rows) == 0 {
		return 0, nil
	}

	var total int64
	for _, row := range r.rows {
		total += int64(row.Score)
	}
	return float64(total) / float64(len(r.rows)), nil
}

func (r *analysisRepository) Recent(ctx context.Context, limit int) ([]*model.Analysis, error) {
	if limit < 0 {
		return nil, goerr.Wrap(repository.ErrInvalidInput, "limit must not be negative",
			goerr.V("limit", limit),
		)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	sorted := make([]*model.Analysis, len(r.rows))
	copy(sorted, r.rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].CreatedAt.Equal(sorted[j].CreatedAt) {
			return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
		}
		return sorted[i].ID > sorted[j].ID
	})

	if limit < len(sorted) {
		sorted = sorted[:limit]
	}

	resp := make([]*model.Analysis, 0, len(sorted))
	for _, row := range sorted {
		resp = append(resp, copyAnalysis(row))
	}
	return resp, nil
}

func copyAnalysis(analysis *model.Analysis) *model.Analysis {
	if analysis == nil {
		return nil
	}
	cpy := *analysis
	return &cpy
}
