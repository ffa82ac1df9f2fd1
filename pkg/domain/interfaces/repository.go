package interfaces

import (
	"context"

	"github.com/m-mizutani/deploydoctor/pkg/domain/model"
)

//go:generate moq -out ../mock/analysis_repository_mock.go -pkg mock . AnalysisRepository

// AnalysisRepository persists analyses keyed by repository URL. URL uniqueness
// is not enforced here; callers check FindByURL before Create.
type AnalysisRepository interface {
	// FindByURL returns the earliest analysis of url, or repository.ErrNotFound.
	FindByURL(ctx context.Context, url string) (*model.Analysis, error)
	// Create assigns an ID and creation time and stores the analysis.
	Create(ctx context.Context, analysis *model.NewAnalysis) (*model.Analysis, error)

	Count(ctx context.Context) (int64, error)
	// AverageScore returns 0 when there is no analysis.
	AverageScore(ctx context.Context) (float64, error)
	// Recent returns up to limit analyses, newest first. Ties are broken by ID descending.
	Recent(ctx context.Context, limit int) ([]*model.Analysis, error)
}
