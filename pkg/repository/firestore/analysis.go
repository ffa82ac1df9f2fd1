package firestore

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"cloud.google.com/go/firestore/apiv1/firestorepb"
	"github.com/m-mizutani/deploydoctor/pkg/domain/model"
	"github.com/m-mizutani/deploydoctor/pkg/domain/types"
	"github.com/m-mizutani/deploydoctor/pkg/repository"
	"github.com/m-mizutani/deploydoctor/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const counterDocID = "counter"

type analysisDoc struct {
	ID             int64            `firestore:"id"`
	RepoURL        string           `firestore:"repo_url"`
	Features       model.FeatureSet `firestore:"features"`
	Score          int64            `firestore:"score"`
	Message        string           `firestore:"message"`
	ScoringVersion string           `firestore:"scoring_version"`
	CreatedAt      time.Time        `firestore:"created_at"`
}

type counterDoc struct {
	LastID int64 `firestore:"last_id"`
}

func (x *analysisDoc) toModel() *model.Analysis {
	return &model.Analysis{
		ID:             types.AnalysisID(x.ID),
		RepoURL:        x.RepoURL,
		Features:       x.Features,
		Score:          int(x.Score),
		Message:        x.Message,
		ScoringVersion: x.ScoringVersion,
		CreatedAt:      x.CreatedAt.UTC(),
	}
}

// toDocID keeps document IDs sortable by analysis ID.
func toDocID(id int64) string {
	return fmt.Sprintf("%019d", id)
}

func (x *Client) analyses() *firestore.CollectionRef {
	return x.client.Collection(x.collection)
}

func (x *Client) counter() *firestore.DocumentRef {
	return x.client.Collection(x.collection + "_meta").Doc(counterDocID)
}

func (x *Client) FindByURL(ctx context.Context, url string) (*model.Analysis, error) {
	iter := x.analyses().Where("repo_url", "==", url).Documents(ctx)
	defer iter.Stop()

	var first *analysisDoc
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate analyses", goerr.V("repo_url", url))
		}

		var doc analysisDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, goerr.Wrap(err, "failed to decode analysis", goerr.V("docID", snap.Ref.ID))
		}
		if first == nil || doc.ID < first.ID {
			first = &doc
		}
	}

	if first == nil {
		return nil, goerr.Wrap(repository.ErrNotFound, "analysis not found",
			goerr.V("repo_url", url),
		)
	}

	return first.toModel(), nil
}

func (x *Client) Create(ctx context.Context, input *model.NewAnalysis) (*model.Analysis, error) {
	if err := input.Validate(); err != nil {
		return nil, goerr.Wrap(repository.ErrInvalidInput, "invalid analysis",
			goerr.V("cause", err.Error()),
			goerr.V("repo_url", input.RepoURL),
		)
	}

	// Firestore keeps microsecond precision
	createdAt := logging.CtxTime(ctx).UTC().Truncate(time.Microsecond)

	var doc analysisDoc
	err := x.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		var counter counterDoc
		snap, err := tx.Get(x.counter())
		if err != nil && status.Code(err) != codes.NotFound {
			return goerr.Wrap(err, "failed to get counter")
		}
		if err == nil {
			if err := snap.DataTo(&counter); err != nil {
				return goerr.Wrap(err, "failed to decode counter")
			}
		}
		counter.LastID++

		doc = analysisDoc{
			ID:             counter.LastID,
			RepoURL:        input.RepoURL,
			Features:       input.Features,
			Score:          int64(input.Score),
			Message:        input.Message,
			ScoringVersion: input.ScoringVersion,
			CreatedAt:      createdAt,
		}

		if err := tx.Set(x.counter(), &counter); err != nil {
			return goerr.Wrap(err, "failed to update counter")
		}
		if err := tx.Create(x.analyses().Doc(toDocID(doc.ID)), &doc); err != nil {
			return goerr.Wrap(err, "failed to create analysis")
		}
		return nil
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to store analysis", goerr.V("repo_url", input.RepoURL))
	}

	return doc.toModel(), nil
}

func (x *Client) Count(ctx context.Context) (int64, error) {
	result, err := x.aggregate(ctx)
	if err != nil {
		return 0, err
	}
	return result.count, nil
}

// AverageScore skips documents whose score is missing or not numeric.
func (x *Client) AverageScore(ctx context.Context) (float64, error) {
	result, err := x.aggregate(ctx)
	if err != nil {
		return 0, err
	}
	return result.avgScore, nil
}

type aggregateResult struct {
	count    int64
	avgScore float64
}

const (
	aliasCount    = "count"
	aliasAvgScore = "avg_score"
)

func (x *Client) aggregate(ctx context.Context) (*aggregateResult, error) {
	result, err := x.analyses().NewAggregationQuery().
		WithCount(aliasCount).
		WithAvg("score", aliasAvgScore).
		Get(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to aggregate analyses", goerr.V("collection", x.collection))
	}

	var resp aggregateResult
	if v, ok := result[aliasCount].(*firestorepb.Value); ok {
		resp.count = v.GetIntegerValue()
	}
	// avg is a null value when no document has a numeric score
	if v, ok := result[aliasAvgScore].(*firestorepb.Value); ok {
		switch v.GetValueType().(type) {
		case *firestorepb.Value_DoubleValue:
			resp.avgScore = v.GetDoubleValue()
		case *firestorepb.Value_IntegerValue:
			resp.avgScore = float64(v.GetIntegerValue())
		}
	}

	return &resp, nil
}

// Recent requires a composite index on (created_at DESC, id DESC).
func (x *Client) Recent(ctx context.Context, limit int) ([]*model.Analysis, error) {
	if limit < 0 {
		return nil, goerr.Wrap(repository.ErrInvalidInput, "limit must not be negative",
			goerr.V("limit", limit),
		)
	}
	resp := []*model.Analysis{}
	if limit == 0 {
		return resp, nil
	}

	iter := x.analyses().
		OrderBy("created_at", firestore.Desc).
		OrderBy("id", firestore.Desc).
		Limit(limit).
		Documents(ctx)
	defer iter.Stop()

	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate recent analyses", goerr.V("limit", limit))
		}

		var doc analysisDoc
		if err := snap.DataTo(&doc); err != nil {
			logging.From(ctx).Warn("broken analysis document, skipped",
				"docID", snap.Ref.ID,
				"error", err,
			)
			continue
		}
		resp = append(resp, doc.toModel())
	}

	return resp, nil
}
