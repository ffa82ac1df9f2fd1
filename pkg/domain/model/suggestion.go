package model

const (
	SuggestReadme       = "Add a README.md explaining setup, usage, and purpose."
	SuggestRequirements = "Add a requirements.txt file for dependency management."
	SuggestDockerfile   = "Create a Dockerfile to make deployment portable."
	SuggestCICD         = "Add CI/CD using GitHub Actions for automated testing and deployment."
	SuggestBuildBadge   = "Consider adding a build badge in your README."
	SuggestNothing      = "Your repository follows strong deployment practices."
)

// GenerateSuggestions returns improvement suggestions in a fixed order. The
// result always has at least one element.
func GenerateSuggestions(fs FeatureSet) []string {
	var suggestions []string

	if !fs.HasReadme {
		suggestions = append(suggestions, SuggestReadme)
	}
	if !fs.HasRequirements {
		suggestions = append(suggestions, SuggestRequirements)
	}
	if !fs.HasDockerfile {
		suggestions = append(suggestions, SuggestDockerfile)
	}
	if !fs.HasCICD {
		suggestions = append(suggestions, SuggestCICD)
	}
	if fs.HasReadme && !fs.HasCICD {
		suggestions = append(suggestions, SuggestBuildBadge)
	}

	if len(suggestions) == 0 {
		return []string{SuggestNothing}
	}
	return suggestions
}
