package usecase_test

import (
	"testing"

	"github.com/m-mizutani/deploydoctor/pkg/infra"
	"github.com/m-mizutani/deploydoctor/pkg/usecase"
)

func TestNew(t *testing.T) {
	t.Run("create new usecase with default clients", func(t *testing.T) {
		clients := infra.New()
		uc := usecase.New(clients)

		_ = uc.Analyze
		_ = uc.GetStats
		_ = uc.ListHistory
	})
}
