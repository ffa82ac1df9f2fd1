package memory

import (
	"github.com/m-mizutani/deploydoctor/pkg/domain/interfaces"
	"github.com/m-mizutani/deploydoctor/pkg/domain/model"
)

// New creates a new in-memory repository
func New() interfaces.AnalysisRepository {
	return &analysisRepository{
		byURL: make(map[string]*model.Analysis),
	}
}
