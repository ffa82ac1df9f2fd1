package model

import "strings"

// FeatureSet is a set of boolean indicators derived from file paths of a repository.
type FeatureSet struct {
	HasReadme       bool `json:"has_readme" bigquery:"has_readme" firestore:"has_readme"`
	HasRequirements bool `json:"has_requirements" bigquery:"has_requirements" firestore:"has_requirements"`
	HasDockerfile   bool `json:"has_dockerfile" bigquery:"has_dockerfile" firestore:"has_dockerfile"`
	HasCICD         bool `json:"has_ci_cd" bigquery:"has_ci_cd" firestore:"has_ci_cd"`
}

// ExtractFeatures scans paths with case-insensitive substring matching. A nil
// or empty path list yields all indicators false.
func ExtractFeatures(paths []string) FeatureSet {
	var fs FeatureSet

	for _, p := range paths {
		p = strings.ToLower(p)

		if strings.Contains(p, "readme") {
			fs.HasReadme = true
		}
		if strings.Contains(p, "requirements.txt") {
			fs.HasRequirements = true
		}
		if strings.Contains(p, "dockerfile") {
			fs.HasDockerfile = true
		}
		if strings.Contains(p, ".github/workflows") {
			fs.HasCICD = true
		}
	}

	return fs
}
