package testhelper

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/deploydoctor/pkg/domain/interfaces"
	"github.com/m-mizutani/deploydoctor/pkg/domain/model"
	"github.com/m-mizutani/deploydoctor/pkg/repository"
	"github.com/m-mizutani/deploydoctor/pkg/utils/logging"
	"github.com/m-mizutani/gt"
)

// Factory returns an empty AnalysisRepository for each test case.
type Factory func(t *testing.T) interfaces.AnalysisRepository

// TestAll runs all test cases for AnalysisRepository
// This is the main entry point for testing any AnalysisRepository implementation
func TestAll(t *testing.T, newRepo Factory) {
	t.Run("CreateAndFind", func(t *testing.T) {
		TestCreateAndFind(t, newRepo(t))
	})
	t.Run("FindReturnsFirst", func(t *testing.T) {
		TestFindReturnsFirst(t, newRepo(t))
	})
	t.Run("NotFound", func(t *testing.T) {
		TestNotFound(t, newRepo(t))
	})
	t.Run("CountAndAverage", func(t *testing.T) {
		TestCountAndAverage(t, newRepo(t))
	})
	t.Run("EmptyStats", func(t *testing.T) {
		TestEmptyStats(t, newRepo(t))
	})
	t.Run("RecentOrder", func(t *testing.T) {
		TestRecentOrder(t, newRepo(t))
	})
	t.Run("RecentLimit", func(t *testing.T) {
		TestRecentLimit(t, newRepo(t))
	})
}

func randomURL() string {
	return fmt.Sprintf("https://github.com/owner-%s/repo-%s", uuid.New().String()[:8], uuid.New().String()[:8])
}

func fixedTime(ts time.Time) logging.TimeFunc {
	return func() time.Time { return ts }
}

func newAnalysis(url string, score int) *model.NewAnalysis {
	return &model.NewAnalysis{
		RepoURL: url,
		Features: model.FeatureSet{
			HasReadme:     true,
			HasDockerfile: score >= 50,
		},
		Score:          score,
		Message:        model.InterpretScore(score),
		ScoringVersion: model.ScoringVersion,
	}
}

// TestCreateAndFind tests that a created analysis can be looked up by URL
func TestCreateAndFind(t *testing.T, repo interfaces.AnalysisRepository) {
	now := time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC)
	ctx := logging.CtxWithTime(context.Background(), fixedTime(now))
	url := randomURL()

	created, err := repo.Create(ctx, newAnalysis(url, 55))
	gt.NoError(t, err)
	gt.V(t, created.RepoURL).Equal(url)
	gt.V(t, created.Score).Equal(55)
	gt.True(t, created.ID > 0)
	gt.True(t, created.CreatedAt.Equal(now))

	found, err := repo.FindByURL(ctx, url)
	gt.NoError(t, err)
	gt.V(t, found.ID).Equal(created.ID)
	gt.V(t, found.RepoURL).Equal(url)
	gt.V(t, found.Score).Equal(55)
	gt.V(t, found.Message).Equal(model.VerdictAlmostReady)
	gt.V(t, found.ScoringVersion).Equal(model.ScoringVersion)
	gt.V(t, found.Features).Equal(model.FeatureSet{HasReadme: true, HasDockerfile: true})
	gt.True(t, found.CreatedAt.Equal(now))
}

// TestFindReturnsFirst tests that FindByURL returns the earliest analysis when a URL is stored twice
func TestFindReturnsFirst(t *testing.T, repo interfaces.AnalysisRepository) {
	ctx := logging.CtxWithTime(context.Background(), fixedTime(time.Now()))
	url := randomURL()

	first, err := repo.Create(ctx, newAnalysis(url, 15))
	gt.NoError(t, err)
	second, err := repo.Create(ctx, newAnalysis(url, 90))
	gt.NoError(t, err)
	gt.True(t, second.ID > first.ID)

	found, err := repo.FindByURL(ctx, url)
	gt.NoError(t, err)
	gt.V(t, found.ID).Equal(first.ID)
	gt.V(t, found.Score).Equal(15)
}

// TestNotFound tests lookups of unknown URLs
func TestNotFound(t *testing.T, repo interfaces.AnalysisRepository) {
	ctx := context.Background()

	_, err := repo.FindByURL(ctx, randomURL())
	gt.Error(t, err)
	gt.True(t, errors.Is(err, repository.ErrNotFound))
}

// TestCountAndAverage tests aggregate statistics
func TestCountAndAverage(t *testing.T, repo interfaces.AnalysisRepository) {
	ctx := context.Background()

	for _, score := range []int{40, 60, 100} {
		_, err := repo.Create(ctx, newAnalysis(randomURL(), score))
		gt.NoError(t, err)
	}

	count, err := repo.Count(ctx)
	gt.NoError(t, err)
	gt.V(t, count).Equal(int64(3))

	avg, err := repo.AverageScore(ctx)
	gt.NoError(t, err)
	gt.True(t, math.Abs(avg-200.0/3.0) < 1e-9)
}

// TestEmptyStats tests aggregate statistics without any analysis
func TestEmptyStats(t *testing.T, repo interfaces.AnalysisRepository) {
	ctx := context.Background()

	count, err := repo.Count(ctx)
	gt.NoError(t, err)
	gt.V(t, count).Equal(int64(0))

	avg, err := repo.AverageScore(ctx)
	gt.NoError(t, err)
	gt.V(t, avg).Equal(0.0)

	recent, err := repo.Recent(ctx, 10)
	gt.NoError(t, err)
	gt.A(t, recent).Length(0)
}

// TestRecentOrder tests newest-first ordering and the ID tie-break
func TestRecentOrder(t *testing.T, repo interfaces.AnalysisRepository) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	t1 := logging.CtxWithTime(context.Background(), fixedTime(base))
	t2 := logging.CtxWithTime(context.Background(), fixedTime(base.Add(time.Hour)))

	oldest, err := repo.Create(t1, newAnalysis(randomURL(), 10))
	gt.NoError(t, err)
	tieA, err := repo.Create(t2, newAnalysis(randomURL(), 20))
	gt.NoError(t, err)
	tieB, err := repo.Create(t2, newAnalysis(randomURL(), 30))
	gt.NoError(t, err)

	recent, err := repo.Recent(context.Background(), 10)
	gt.NoError(t, err)
	gt.A(t, recent).Length(3)
	gt.V(t, recent[0].ID).Equal(tieB.ID)
	gt.V(t, recent[1].ID).Equal(tieA.ID)
	gt.V(t, recent[2].ID).Equal(oldest.ID)
}

// TestRecentLimit tests that Recent returns at most limit analyses
func TestRecentLimit(t *testing.T, repo interfaces.AnalysisRepository) {
	base := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	var urls []string
	for i := 0; i < 5; i++ {
		ctx := logging.CtxWithTime(context.Background(), fixedTime(base.Add(time.Duration(i)*time.Minute)))
		url := randomURL()
		urls = append(urls, url)
		_, err := repo.Create(ctx, newAnalysis(url, i*20))
		gt.NoError(t, err)
	}

	recent, err := repo.Recent(context.Background(), 2)
	gt.NoError(t, err)
	gt.A(t, recent).Length(2)
	gt.V(t, recent[0].RepoURL).Equal(urls[4])
	gt.V(t, recent[1].RepoURL).Equal(urls[3])

	none, err := repo.Recent(context.Background(), 0)
	gt.NoError(t, err)
	gt.A(t, none).Length(0)
}
