package sqldb_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/m-mizutani/deploydoctor/pkg/domain/interfaces"
	"github.com/m-mizutani/deploydoctor/pkg/domain/model"
	"github.com/m-mizutani/deploydoctor/pkg/repository/sqldb"
	"github.com/m-mizutani/deploydoctor/pkg/repository/testhelper"
	"github.com/m-mizutani/deploydoctor/pkg/utils/safe"
	"github.com/m-mizutani/deploydoctor/pkg/utils/testutil"
	"github.com/m-mizutani/gt"
)

func newSQLite(t *testing.T) interfaces.AnalysisRepository {
	dsn := filepath.Join(t.TempDir(), "deploydoctor.db")
	client := gt.R1(sqldb.New(context.Background(), sqldb.DriverSQLite, dsn)).NoError(t)
	t.Cleanup(func() { safe.Close(client) })
	return client
}

func TestSQLiteAnalysisRepository(t *testing.T) {
	testhelper.TestAll(t, newSQLite)
}

func TestPostgresAnalysisRepository(t *testing.T) {
	dsn := testutil.GetEnvOrSkip(t, "TEST_POSTGRES_DSN")

	testhelper.TestAll(t, func(t *testing.T) interfaces.AnalysisRepository {
		ctx := context.Background()
		client := gt.R1(sqldb.New(ctx, sqldb.DriverPostgres, dsn)).NoError(t)
		t.Cleanup(func() { safe.Close(client) })

		db := gt.R1(sql.Open("postgres", dsn)).NoError(t)
		defer safe.Close(db)
		gt.R1(db.ExecContext(ctx, "TRUNCATE analyses RESTART IDENTITY")).NoError(t)

		return client
	})
}

func TestMigrationIsIdempotent(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "deploydoctor.db")

	first := gt.R1(sqldb.New(ctx, sqldb.DriverSQLite, dsn)).NoError(t)
	created := gt.R1(first.Create(ctx, &model.NewAnalysis{
		RepoURL:        "https://github.com/owner/repo",
		Score:          25,
		Message:        model.InterpretScore(25),
		ScoringVersion: model.ScoringVersion,
	})).NoError(t)
	gt.NoError(t, first.Close())

	second := gt.R1(sqldb.New(ctx, sqldb.DriverSQLite, dsn)).NoError(t)
	defer safe.Close(second)

	found := gt.R1(second.FindByURL(ctx, "https://github.com/owner/repo")).NoError(t)
	gt.V(t, found.ID).Equal(created.ID)
	gt.V(t, found.Message).Equal(model.VerdictNeedsImprovement)
}

func TestBrokenFeaturesColumn(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "deploydoctor.db")

	client := gt.R1(sqldb.New(ctx, sqldb.DriverSQLite, dsn)).NoError(t)
	defer safe.Close(client)

	db := gt.R1(sql.Open("sqlite", dsn)).NoError(t)
	defer safe.Close(db)
	gt.R1(db.ExecContext(ctx,
		"INSERT INTO analyses (repo_url, features, score, message, scoring_version, created_at) VALUES (?, ?, NULL, '', '', 0)",
		"https://github.com/owner/broken", "{not json",
	)).NoError(t)

	found := gt.R1(client.FindByURL(ctx, "https://github.com/owner/broken")).NoError(t)
	gt.V(t, found.Features).Equal(model.FeatureSet{})
	gt.V(t, found.Score).Equal(0)
}

func TestNullScoreIsExcludedFromAverage(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "deploydoctor.db")

	client := gt.R1(sqldb.New(ctx, sqldb.DriverSQLite, dsn)).NoError(t)
	defer safe.Close(client)

	db := gt.R1(sql.Open("sqlite", dsn)).NoError(t)
	defer safe.Close(db)

	insert := "INSERT INTO analyses (repo_url, features, score, message, scoring_version, created_at) VALUES (?, '{}', ?, '', '', ?)"
	gt.R1(db.ExecContext(ctx, insert, "https://github.com/owner/a", 40, 1)).NoError(t)
	gt.R1(db.ExecContext(ctx, insert, "https://github.com/owner/b", nil, 2)).NoError(t)
	gt.R1(db.ExecContext(ctx, insert, "https://github.com/owner/c", 60, 3)).NoError(t)

	gt.V(t, gt.R1(client.Count(ctx)).NoError(t)).Equal(int64(3))
	gt.V(t, gt.R1(client.AverageScore(ctx)).NoError(t)).Equal(float64(50))
}

func TestRecentWithBrokenFeaturesColumn(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "deploydoctor.db")

	client := gt.R1(sqldb.New(ctx, sqldb.DriverSQLite, dsn)).NoError(t)
	defer safe.Close(client)

	gt.R1(client.Create(ctx, &model.NewAnalysis{
		RepoURL:        "https://github.com/owner/good",
		Features:       model.FeatureSet{HasReadme: true},
		Score:          25,
		Message:        model.InterpretScore(25),
		ScoringVersion: model.ScoringVersion,
	})).NoError(t)

	db := gt.R1(sql.Open("sqlite", dsn)).NoError(t)
	defer safe.Close(db)
	gt.R1(db.ExecContext(ctx,
		"INSERT INTO analyses (repo_url, features, score, message, scoring_version, created_at) VALUES (?, ?, 10, '', '', ?)",
		"https://github.com/owner/broken", "{not json", time.Now().Add(time.Hour).UnixMicro(),
	)).NoError(t)

	recent := gt.R1(client.Recent(ctx, 10)).NoError(t)
	gt.A(t, recent).Length(2)
	gt.V(t, recent[0].RepoURL).Equal("https://github.com/owner/broken")
	gt.V(t, recent[0].Features).Equal(model.FeatureSet{})
	gt.V(t, recent[0].Score).Equal(10)
	gt.V(t, recent[1].RepoURL).Equal("https://github.com/owner/good")
	gt.True(t, recent[1].Features.HasReadme)
}

func TestUnsupportedDriver(t *testing.T) {
	_, err := sqldb.New(context.Background(), sqldb.Driver("mysql"), "dsn")
	gt.Error(t, err)
}
