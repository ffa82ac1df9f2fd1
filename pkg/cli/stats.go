package cli

import (
	"context"
	"io"

	"github.com/m-mizutani/deploydoctor/pkg/cli/config"
	"github.com/m-mizutani/deploydoctor/pkg/infra"
	"github.com/m-mizutani/deploydoctor/pkg/usecase"
	"github.com/m-mizutani/deploydoctor/pkg/utils/safe"
	"github.com/urfave/cli/v3"
)

func newStoreUseCase(ctx context.Context, db *config.Database) (*usecase.UseCase, io.Closer, error) {
	repo, closer, err := db.NewRepository(ctx)
	if err != nil {
		return nil, nil, err
	}
	return usecase.New(infra.New(infra.WithAnalysisRepository(repo))), closer, nil
}

func statsCommand(w io.Writer) *cli.Command {
	var db config.Database

	return &cli.Command{
		Name:  "stats",
		Usage: "Show the number of analyses and the average score",
		Flags: db.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			uc, closer, err := newStoreUseCase(ctx, &db)
			if err != nil {
				return err
			}
			defer safe.Close(closer)

			stats, err := uc.GetStats(ctx)
			if err != nil {
				return err
			}
			return writeResult(w, stats)
		},
	}
}

func historyCommand(w io.Writer) *cli.Command {
	var (
		db    config.Database
		limit int64
	)

	return &cli.Command{
		Name:  "history",
		Usage: "Show recent analyses, newest first",
		Flags: append([]cli.Flag{
			&cli.Int64Flag{
				Name:        "limit",
				Aliases:     []string{"n"},
				Usage:       "Number of entries (max 100)",
				Value:       10,
				Destination: &limit,
			},
		}, db.Flags()...),
		Action: func(ctx context.Context, c *cli.Command) error {
			uc, closer, err := newStoreUseCase(ctx, &db)
			if err != nil {
				return err
			}
			defer safe.Close(closer)

			entries, err := uc.ListHistory(ctx, int(limit))
			if err != nil {
				return err
			}
			return writeResult(w, entries)
		},
	}
}
