package sqldb

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/m-mizutani/deploydoctor/pkg/domain/model"
	"github.com/m-mizutani/deploydoctor/pkg/domain/types"
	"github.com/m-mizutani/deploydoctor/pkg/repository"
	"github.com/m-mizutani/deploydoctor/pkg/utils/logging"
	"github.com/m-mizutani/deploydoctor/pkg/utils/safe"
	"github.com/m-mizutani/goerr/v2"
)

const analysisColumns = "id, repo_url, features, score, message, scoring_version, created_at"

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAnalysis(ctx context.Context, row rowScanner) (*model.Analysis, error) {
	var (
		id        int64
		repoURL   string
		features  string
		score     sql.NullInt64
		message   string
		version   string
		createdAt int64
	)

	if err := row.Scan(&id, &repoURL, &features, &score, &message, &version, &createdAt); err != nil {
		return nil, err
	}

	analysis := &model.Analysis{
		ID:             types.AnalysisID(id),
		RepoURL:        repoURL,
		Score:          int(score.Int64),
		Message:        message,
		ScoringVersion: version,
		CreatedAt:      time.UnixMicro(createdAt).UTC(),
	}

	if err := json.Unmarshal([]byte(features), &analysis.Features); err != nil {
		logging.From(ctx).Warn("broken features column, treated as empty",
			"id", id,
			"error", err,
		)
		analysis.Features = model.FeatureSet{}
	}

	return analysis, nil
}

func (x *Client) FindByURL(ctx context.Context, url string) (*model.Analysis, error) {
	query := x.rebind("SELECT " + analysisColumns + " FROM analyses WHERE repo_url = ? ORDER BY id ASC LIMIT 1")

	analysis, err := scanAnalysis(ctx, x.db.QueryRowContext(ctx, query, url))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, goerr.Wrap(repository.ErrNotFound, "analysis not found",
				goerr.V("repo_url", url),
			)
		}
		return nil, goerr.Wrap(err, "failed to find analysis", goerr.V("repo_url", url))
	}

	return analysis, nil
}

func (x *Client) Create(ctx context.Context, input *model.NewAnalysis) (*model.Analysis, error) {
	if err := input.Validate(); err != nil {
		return nil, goerr.Wrap(repository.ErrInvalidInput, "invalid analysis",
			goerr.V("cause", err.Error()),
			goerr.V("repo_url", input.RepoURL),
		)
	}

	features, err := json.Marshal(input.Features)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to marshal features")
	}

	createdAt := logging.CtxTime(ctx).UTC()
	query := x.rebind("INSERT INTO analyses (repo_url, features, score, message, scoring_version, created_at) VALUES (?, ?, ?, ?, ?, ?) RETURNING id")

	var id int64
	if err := x.db.QueryRowContext(ctx, query,
		input.RepoURL,
		string(features),
		input.Score,
		input.Message,
		input.ScoringVersion,
		createdAt.UnixMicro(),
	).Scan(&id); err != nil {
		return nil, goerr.Wrap(err, "failed to insert analysis", goerr.V("repo_url", input.RepoURL))
	}

	return input.Build(types.AnalysisID(id), time.UnixMicro(createdAt.UnixMicro()).UTC()), nil
}

func (x *Client) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := x.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM analyses").Scan(&count); err != nil {
		return 0, goerr.Wrap(err, "failed to count analyses")
	}
	return count, nil
}

func (x *Client) AverageScore(ctx context.Context) (float64, error) {
	var avg sql.NullFloat64
	if err := x.db.QueryRowContext(ctx, "SELECT AVG(score) FROM analyses").Scan(&avg); err != nil {
		return 0, goerr.Wrap(err, "failed to calculate average score")
	}
	return avg.Float64, nil
}

func (x *Client) Recent(ctx context.Context, limit int) ([]*model.Analysis, error) {
	if limit < 0 {
		return nil, goerr.Wrap(repository.ErrInvalidInput, "limit must not be negative",
			goerr.V("limit", limit),
		)
	}

	query := x.rebind("SELECT " + analysisColumns + " FROM analyses ORDER BY created_at DESC, id DESC LIMIT ?")
	rows, err := x.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query recent analyses", goerr.V("limit", limit))
	}
	defer safe.Close(rows)

	resp := []*model.Analysis{}
	for rows.Next() {
		analysis, err := scanAnalysis(ctx, rows)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to scan analysis")
		}
		resp = append(resp, analysis)
	}
	if err := rows.Err(); err != nil {
		return nil, goerr.Wrap(err, "failed to iterate analyses")
	}

	return resp, nil
}
