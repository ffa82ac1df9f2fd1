package model

// ScoringVersion identifies the weight table and verdict thresholds below.
// Bump it whenever either changes.
const ScoringVersion = "v1.1"

const (
	weightReadme       = 15
	weightRequirements = 20
	weightDockerfile   = 25
	weightCICD         = 25
	bonusContainerCI   = 15

	maxScore = 100
	minScore = 0
)

const (
	VerdictProductionReady    = "Production Ready"
	VerdictAlmostReady        = "Almost Ready"
	VerdictNeedsImprovement   = "Needs Improvement"
	VerdictNotDeploymentReady = "Not Deployment Ready"
)

// CalculateScore returns the weighted sum of present indicators, clamped to [0, 100].
func CalculateScore(fs FeatureSet) int {
	score := 0
	if fs.HasReadme {
		score += weightReadme
	}
	if fs.HasRequirements {
		score += weightRequirements
	}
	if fs.HasDockerfile {
		score += weightDockerfile
	}
	if fs.HasCICD {
		score += weightCICD
	}
	if fs.HasDockerfile && fs.HasCICD {
		score += bonusContainerCI
	}

	return min(max(score, minScore), maxScore)
}

// InterpretScore converts a score into a verdict. Lower bounds are inclusive.
func InterpretScore(score int) string {
	switch {
	case score >= 75:
		return VerdictProductionReady
	case score >= 50:
		return VerdictAlmostReady
	case score >= 25:
		return VerdictNeedsImprovement
	default:
		return VerdictNotDeploymentReady
	}
}
