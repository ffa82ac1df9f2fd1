package usecase

import (
	"context"
	"errors"

	"github.com/m-mizutani/deploydoctor/pkg/domain/model"
	"github.com/m-mizutani/deploydoctor/pkg/repository"
	"github.com/m-mizutani/deploydoctor/pkg/utils/errutil"
	"github.com/m-mizutani/deploydoctor/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

// Analyze returns the stored analysis of input.RepoURL if exists. Otherwise it
// fetches the file tree, scores it and stores the result.
func (x *UseCase) Analyze(ctx context.Context, input *model.AnalyzeInput) (*model.AnalyzeResult, error) {
	repo, err := model.ParseRepositoryURL(input.RepoURL)
	if err != nil {
		return nil, err
	}
	logger := logging.From(ctx).With("repo_url", input.RepoURL)

	cached, err := x.clients.AnalysisRepository().FindByURL(ctx, input.RepoURL)
	switch {
	case err == nil:
		logger.Debug("analysis cache hit", "analysis_id", cached.ID)
		return model.NewAnalyzeResult(cached, true), nil
	case !errors.Is(err, repository.ErrNotFound):
		return nil, goerr.Wrap(err, "failed to look up analysis", goerr.V("repo_url", input.RepoURL))
	}

	src := x.clients.RepositorySource()
	if src == nil {
		return nil, goerr.New("repository source is not configured")
	}

	paths, err := src.FetchTree(ctx, *repo)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to fetch repository tree", goerr.V("repo", repo.FullName()))
	}

	features := model.ExtractFeatures(paths)
	score := model.CalculateScore(features)

	analysis, err := x.clients.AnalysisRepository().Create(ctx, &model.NewAnalysis{
		RepoURL:        input.RepoURL,
		Features:       features,
		Score:          score,
		Message:        model.InterpretScore(score),
		ScoringVersion: model.ScoringVersion,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to store analysis", goerr.V("repo_url", input.RepoURL))
	}

	logger.Info("analyzed repository",
		"analysis_id", analysis.ID,
		"score", analysis.Score,
		"paths", len(paths),
	)

	if err := x.exportAnalysis(ctx, *repo, analysis, len(paths)); err != nil {
		errutil.HandleError(ctx, "failed to export analysis", err)
	}

	return model.NewAnalyzeResult(analysis, false), nil
}
