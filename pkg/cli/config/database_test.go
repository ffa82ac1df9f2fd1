package config_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/deploydoctor/pkg/cli/config"
	"github.com/m-mizutani/deploydoctor/pkg/domain/model"
	"github.com/m-mizutani/deploydoctor/pkg/domain/types"
	"github.com/m-mizutani/deploydoctor/pkg/utils/safe"
	"github.com/m-mizutani/gt"
)

func TestDatabase(t *testing.T) {
	ctx := context.Background()

	t.Run("memory", func(t *testing.T) {
		var db config.Database
		parseFlags(t, db.Flags(), "--database-driver", config.DatabaseMemory)

		repo, closer, err := db.NewRepository(ctx)
		gt.NoError(t, err)
		defer safe.Close(closer)

		gt.V(t, gt.R1(repo.Count(ctx)).NoError(t)).Equal(int64(0))
	})

	t.Run("sqlite file is created and migrated", func(t *testing.T) {
		dsn := filepath.Join(t.TempDir(), "test.db")

		var db config.Database
		parseFlags(t, db.Flags(), "--database-driver", config.DatabaseSQLite, "--database-url", dsn)

		repo, closer, err := db.NewRepository(ctx)
		gt.NoError(t, err)
		defer safe.Close(closer)

		created := gt.R1(repo.Create(ctx, &model.NewAnalysis{
			RepoURL:        "https://github.com/octo/app",
			Score:          40,
			Message:        model.VerdictNeedsImprovement,
			ScoringVersion: model.ScoringVersion,
		})).NoError(t)
		gt.V(t, created.ID).NotEqual(types.AnalysisID(0))
	})

	t.Run("unsupported driver", func(t *testing.T) {
		var db config.Database
		parseFlags(t, db.Flags(), "--database-driver", "mysql")

		_, _, err := db.NewRepository(ctx)
		gt.Error(t, err)
		gt.True(t, errors.Is(err, types.ErrInvalidOption))
	})

	t.Run("empty DSN", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "")
		t.Setenv("DEPLOYDOCTOR_DATABASE_URL", "")

		var db config.Database
		parseFlags(t, db.Flags(), "--database-driver", config.DatabasePostgres, "--database-url", "")

		_, _, err := db.NewRepository(ctx)
		gt.True(t, errors.Is(err, types.ErrInvalidOption))
	})

	t.Run("firestore requires project", func(t *testing.T) {
		t.Setenv("DEPLOYDOCTOR_FIRESTORE_PROJECT_ID", "")

		var db config.Database
		parseFlags(t, db.Flags(), "--database-driver", config.DatabaseFirestore)

		_, _, err := db.NewRepository(ctx)
		gt.True(t, errors.Is(err, types.ErrInvalidOption))
	})
}
