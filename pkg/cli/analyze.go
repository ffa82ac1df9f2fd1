package cli

import (
	"context"
	"io"

	"github.com/m-mizutani/deploydoctor/pkg/domain/model"
	"github.com/m-mizutani/deploydoctor/pkg/usecase"
	"github.com/m-mizutani/deploydoctor/pkg/utils/logging"
	"github.com/m-mizutani/gots/slice"
	"github.com/urfave/cli/v3"
)

func analyzeCommand(w io.Writer) *cli.Command {
	var cfg analyzerConfig

	return &cli.Command{
		Name:      "analyze",
		Aliases:   []string{"a"},
		Usage:     "Analyze deployment readiness of a repository (default: origin of current git repository)",
		ArgsUsage: "[repository URL]",
		Flags: slice.Flatten(
			cfg.github.Flags(),
			cfg.gitlab.Flags(),
			cfg.database.Flags(),
			cfg.bigQuery.Flags(),
		),
		Action: func(ctx context.Context, c *cli.Command) error {
			repoURL := c.Args().First()
			if repoURL == "" {
				detected, err := DetectOriginURL(".")
				if err != nil {
					return err
				}
				logging.From(ctx).Info("use origin of current repository", "url", detected)
				repoURL = detected
			}

			clients, cleanup, err := cfg.buildClients(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			result, err := usecase.New(clients).Analyze(ctx, &model.AnalyzeInput{RepoURL: repoURL})
			if err != nil {
				return err
			}

			return writeResult(w, result)
		},
	}
}
