package cli

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/deploydoctor/pkg/cli/config"
	"github.com/m-mizutani/deploydoctor/pkg/controller/server"
	"github.com/m-mizutani/deploydoctor/pkg/usecase"
	"github.com/m-mizutani/deploydoctor/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gots/slice"

	"github.com/urfave/cli/v3"
)

func serveCommand() *cli.Command {
	var (
		addr           string
		allowedOrigins []string

		cfg    analyzerConfig
		sentry config.Sentry
	)
	serveFlags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "Binding address",
			Value:       "127.0.0.1:8000",
			Sources:     cli.EnvVars("DEPLOYDOCTOR_ADDR"),
			Destination: &addr,
		},
		&cli.StringSliceFlag{
			Name:        "allowed-origin",
			Usage:       "Origin allowed by CORS (can be repeated)",
			Value:       []string{"*"},
			Sources:     cli.EnvVars("DEPLOYDOCTOR_ALLOWED_ORIGINS"),
			Destination: &allowedOrigins,
		},
	}

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Server mode",
		Flags: slice.Flatten(
			serveFlags,
			cfg.github.Flags(),
			cfg.gitlab.Flags(),
			cfg.database.Flags(),
			cfg.bigQuery.Flags(),
			sentry.Flags(),
		),
		Action: func(ctx context.Context, c *cli.Command) error {
			logging.Default().Info("starting serve",
				slog.Any("Addr", addr),
				slog.Any("AllowedOrigins", allowedOrigins),
				slog.Any("GitHub", cfg.github),
				slog.Any("GitLab", cfg.gitlab),
				slog.Any("Database", &cfg.database),
				slog.Any("BigQuery", &cfg.bigQuery),
				slog.Any("Sentry", &sentry),
			)

			if err := sentry.Configure(ctx); err != nil {
				return err
			}

			clients, cleanup, err := cfg.buildClients(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			uc := usecase.New(clients)
			s := server.New(uc, server.WithAllowedOrigins(allowedOrigins...))

			return runHTTPServer(ctx, addr, s.Mux())
		},
	}
}

// runHTTPServer serves handler until the server fails or SIGINT/SIGTERM is
// received, then shuts down gracefully.
func runHTTPServer(ctx context.Context, addr string, handler http.Handler) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	httpServer := &http.Server{
		Addr:    addr,
		Handler: handler,

		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logging.Default().Info("starting http server", "addr", addr)
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			serverErr <- goerr.Wrap(err, "failed to listen and serve", goerr.V("addr", addr))
		}
	}()

	select {
	case err := <-serverErr:
		return err

	case <-ctx.Done():
		logging.Default().Info("shutting down server", "cause", context.Cause(ctx))

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 30*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return goerr.Wrap(err, "failed to shutdown server")
		}
	}

	return nil
}
