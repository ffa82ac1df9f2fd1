package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/m-mizutani/deploydoctor/pkg/domain/mock"
	"github.com/m-mizutani/deploydoctor/pkg/domain/model"
	"github.com/m-mizutani/deploydoctor/pkg/domain/types"
	"github.com/m-mizutani/deploydoctor/pkg/infra"
	"github.com/m-mizutani/deploydoctor/pkg/repository/memory"
	"github.com/m-mizutani/deploydoctor/pkg/usecase"
	"github.com/m-mizutani/deploydoctor/pkg/utils/logging"
	"github.com/m-mizutani/gt"
)

func TestGetStats(t *testing.T) {
	ctx := context.Background()

	t.Run("empty store", func(t *testing.T) {
		uc := usecase.New(infra.New())

		stats := gt.R1(uc.GetStats(ctx)).NoError(t)
		gt.V(t, stats.TotalAnalyses).Equal(int64(0))
		gt.V(t, stats.AverageScore).Equal(0.0)
	})

	t.Run("average is rounded to two decimals", func(t *testing.T) {
		repo := memory.New()
		for i, score := range []int{40, 60, 100} {
			gt.R1(repo.Create(ctx, &model.NewAnalysis{
				RepoURL:        "https://github.com/octo/repo" + string(rune('a'+i)),
				Score:          score,
				Message:        model.InterpretScore(score),
				ScoringVersion: model.ScoringVersion,
			})).NoError(t)
		}
		uc := usecase.New(infra.New(infra.WithAnalysisRepository(repo)))

		stats := gt.R1(uc.GetStats(ctx)).NoError(t)
		gt.V(t, stats.TotalAnalyses).Equal(int64(3))
		gt.V(t, stats.AverageScore).Equal(66.67)
	})

	t.Run("store failure", func(t *testing.T) {
		repo := &mock.AnalysisRepositoryMock{
			CountFunc: func(ctx context.Context) (int64, error) {
				return 0, errors.New("db is down")
			},
		}
		uc := usecase.New(infra.New(infra.WithAnalysisRepository(repo)))

		_, err := uc.GetStats(ctx)
		gt.Error(t, err)
	})
}

func TestListHistory(t *testing.T) {
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	repo := memory.New()
	for i := 0; i < 3; i++ {
		ctx := logging.CtxWithTime(context.Background(), func() time.Time {
			return base.Add(time.Duration(i) * time.Hour)
		})
		gt.R1(repo.Create(ctx, &model.NewAnalysis{
			RepoURL:        "https://github.com/octo/repo" + string(rune('a'+i)),
			Score:          i * 25,
			Message:        model.InterpretScore(i * 25),
			ScoringVersion: model.ScoringVersion,
		})).NoError(t)
	}
	uc := usecase.New(infra.New(infra.WithAnalysisRepository(repo)))
	ctx := context.Background()

	t.Run("newest first", func(t *testing.T) {
		entries := gt.R1(uc.ListHistory(ctx, 10)).NoError(t)
		gt.A(t, entries).Length(3)
		gt.V(t, entries[0].RepoURL).Equal("https://github.com/octo/repoc")
		gt.V(t, entries[0].Score).Equal(50)
		gt.V(t, entries[0].Message).Equal(model.VerdictAlmostReady)
		gt.True(t, entries[0].CreatedAt.Equal(base.Add(2*time.Hour)))
		gt.V(t, entries[2].RepoURL).Equal("https://github.com/octo/repoa")
	})

	t.Run("limit", func(t *testing.T) {
		entries := gt.R1(uc.ListHistory(ctx, 1)).NoError(t)
		gt.A(t, entries).Length(1)
	})

	t.Run("non-positive limit is rejected", func(t *testing.T) {
		_, err := uc.ListHistory(ctx, 0)
		gt.True(t, errors.Is(err, types.ErrValidationFailed))
	})

	t.Run("limit is capped", func(t *testing.T) {
		mockRepo := &mock.AnalysisRepositoryMock{
			RecentFunc: func(ctx context.Context, limit int) ([]*model.Analysis, error) {
				return nil, nil
			},
		}
		uc := usecase.New(infra.New(infra.WithAnalysisRepository(mockRepo)))

		entries := gt.R1(uc.ListHistory(ctx, 1000)).NoError(t)
		gt.A(t, entries).Length(0)
		gt.V(t, mockRepo.RecentCalls()[0].Limit).Equal(model.MaxHistoryLimit)
	})
}
