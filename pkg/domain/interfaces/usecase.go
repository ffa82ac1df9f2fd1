package interfaces

//go:generate moq -out ../mock/usecase.go -pkg mock . UseCase

import (
	"context"

	"github.com/m-mizutani/deploydoctor/pkg/domain/model"
)

type UseCase interface {
	Analyze(ctx context.Context, input *model.AnalyzeInput) (*model.AnalyzeResult, error)
	GetStats(ctx context.Context) (*model.Stats, error)
	ListHistory(ctx context.Context, limit int) ([]*model.HistoryEntry, error)
}
