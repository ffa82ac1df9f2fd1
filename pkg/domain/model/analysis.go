package model

import (
	"time"

	"github.com/m-mizutani/deploydoctor/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// Analysis is a persisted result of the first analysis of a repository URL.
type Analysis struct {
	ID             types.AnalysisID `json:"id"`
	RepoURL        string           `json:"repo_url"`
	Features       FeatureSet       `json:"features"`
	Score          int              `json:"score"`
	Message        string           `json:"message"`
	ScoringVersion string           `json:"scoring_version"`
	CreatedAt      time.Time        `json:"created_at"`
}

// NewAnalysis is the input of AnalysisRepository.Create. ID and CreatedAt are
// assigned by the repository.
type NewAnalysis struct {
	RepoURL        string
	Features       FeatureSet
	Score          int
	Message        string
	ScoringVersion string
}

func (x *NewAnalysis) Validate() error {
	if x.RepoURL == "" {
		return goerr.Wrap(types.ErrValidationFailed, "repo URL is empty")
	}
	if x.Score < minScore || x.Score > maxScore {
		return goerr.Wrap(types.ErrValidationFailed, "score is out of range", goerr.V("score", x.Score))
	}
	return nil
}

// Build returns the Analysis that a repository stores for x.
func (x *NewAnalysis) Build(id types.AnalysisID, createdAt time.Time) *Analysis {
	return &Analysis{
		ID:             id,
		RepoURL:        x.RepoURL,
		Features:       x.Features,
		Score:          x.Score,
		Message:        x.Message,
		ScoringVersion: x.ScoringVersion,
		CreatedAt:      createdAt,
	}
}

// AnalysisRecord is a row of the analytics export table.
type AnalysisRecord struct {
	ID             int64      `bigquery:"id" json:"id"`
	Timestamp      time.Time  `bigquery:"timestamp" json:"timestamp"`
	RepoURL        string     `bigquery:"repo_url" json:"repo_url"`
	Host           string     `bigquery:"host" json:"host"`
	Owner          string     `bigquery:"owner" json:"owner"`
	Name           string     `bigquery:"name" json:"name"`
	Features       FeatureSet `bigquery:"features" json:"features"`
	Score          int64      `bigquery:"score" json:"score"`
	Message        string     `bigquery:"message" json:"message"`
	ScoringVersion string     `bigquery:"scoring_version" json:"scoring_version"`
	PathCount      int64      `bigquery:"path_count" json:"path_count"`
}

// AnalysisRawRecord overrides Timestamp with microseconds since epoch for the
// storage write API.
type AnalysisRawRecord struct {
	AnalysisRecord
	Timestamp int64 `bigquery:"timestamp" json:"timestamp"`
}
