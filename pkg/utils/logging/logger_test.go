package logging_test

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/m-mizutani/deploydoctor/pkg/domain/types"
	"github.com/m-mizutani/deploydoctor/pkg/utils/logging"
	"github.com/m-mizutani/gt"
)

func TestParseLevel(t *testing.T) {
	testCases := map[string]struct {
		input string
		want  slog.Level
		isErr bool
	}{
		"trace":      {input: "trace", want: logging.LevelTrace},
		"debug":      {input: "debug", want: slog.LevelDebug},
		"upper case": {input: "INFO", want: slog.LevelInfo},
		"warn":       {input: "warn", want: slog.LevelWarn},
		"error":      {input: "error", want: slog.LevelError},
		"unknown":    {input: "verbose", isErr: true},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			level, err := logging.ParseLevel(tc.input)
			if tc.isErr {
				gt.True(t, errors.Is(err, types.ErrInvalidOption))
				return
			}
			gt.NoError(t, err)
			gt.V(t, level).Equal(tc.want)
		})
	}
}

func TestSecretsAreMasked(t *testing.T) {
	var buf bytes.Buffer
	logger := gt.R1(logging.NewLogger("json", slog.LevelInfo, &buf)).NoError(t)

	cfg := struct {
		DSN  string `masq:"secret"`
		Host string
	}{
		DSN:  "postgres://user:hunter2@db/app",
		Host: "gitlab.example.com",
	}
	logger.Info("configured",
		"github_token", types.GitHubToken("ghp_abcdef"),
		"gitlab_token", types.GitLabToken("glpat-abcdef"),
		"config", cfg,
	)

	out := buf.String()
	gt.False(t, strings.Contains(out, "ghp_abcdef"))
	gt.False(t, strings.Contains(out, "glpat-abcdef"))
	gt.False(t, strings.Contains(out, "hunter2"))
	gt.True(t, strings.Contains(out, "gitlab.example.com"))
}

func TestLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	logger := gt.R1(logging.NewLogger("text", slog.LevelWarn, &buf)).NoError(t)

	logger.Info("hidden message")
	logger.Warn("shown message")

	gt.False(t, strings.Contains(buf.String(), "hidden message"))
	gt.True(t, strings.Contains(buf.String(), "shown message"))
}

func TestConfigure(t *testing.T) {
	t.Run("log file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "app.log")
		gt.NoError(t, logging.Configure("json", "info", path))
		t.Cleanup(func() { _ = logging.Configure("text", "info", "stderr") })

		logging.Default().Info("written to file")

		data := gt.R1(os.ReadFile(path)).NoError(t)
		gt.True(t, strings.Contains(string(data), "written to file"))
	})

	t.Run("invalid format", func(t *testing.T) {
		err := logging.Configure("xml", "info", "stderr")
		gt.True(t, errors.Is(err, types.ErrInvalidOption))
	})

	t.Run("invalid level keeps current logger", func(t *testing.T) {
		before := logging.Default()
		gt.Error(t, logging.Configure("json", "loud", "stderr"))
		gt.True(t, logging.Default() == before)
	})
}
