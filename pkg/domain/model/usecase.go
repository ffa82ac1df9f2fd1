package model

import (
	"time"

	"github.com/m-mizutani/deploydoctor/pkg/domain/types"
)

type AnalyzeInput struct {
	RepoURL string `json:"repo_url"`
}

type AnalyzeResult struct {
	AnalysisID     types.AnalysisID `json:"analysis_id"`
	RepoURL        string           `json:"repo_url"`
	ScoringVersion string           `json:"scoring_version"`
	Features       FeatureSet       `json:"features"`
	Score          int              `json:"score"`
	Message        string           `json:"message"`
	Suggestions    []string         `json:"suggestions"`
	Cached         bool             `json:"cached"`
}

// NewAnalyzeResult builds a response from a stored analysis. Suggestions are
// always derived from the stored features.
func NewAnalyzeResult(analysis *Analysis, cached bool) *AnalyzeResult {
	return &AnalyzeResult{
		AnalysisID:     analysis.ID,
		RepoURL:        analysis.RepoURL,
		ScoringVersion: ScoringVersion,
		Features:       analysis.Features,
		Score:          analysis.Score,
		Message:        analysis.Message,
		Suggestions:    GenerateSuggestions(analysis.Features),
		Cached:         cached,
	}
}

type Stats struct {
	TotalAnalyses int64   `json:"total_analyses"`
	AverageScore  float64 `json:"average_score"`
}

type HistoryEntry struct {
	ID        types.AnalysisID `json:"id"`
	RepoURL   string           `json:"repo_url"`
	Score     int              `json:"score"`
	Message   string           `json:"message"`
	CreatedAt time.Time        `json:"created_at"`
}

const (
	DefaultHistoryLimit = 10
	MaxHistoryLimit     = 100
)
