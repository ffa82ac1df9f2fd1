package cli_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/m-mizutani/deploydoctor/pkg/cli"
	"github.com/m-mizutani/deploydoctor/pkg/domain/model"
	"github.com/m-mizutani/gt"
)

func TestDetectOriginURL(t *testing.T) {
	t.Run("origin of repository", func(t *testing.T) {
		dir := t.TempDir()
		repo := gt.R1(git.PlainInit(dir, false)).NoError(t)
		gt.R1(repo.CreateRemote(&gitconfig.RemoteConfig{
			Name: "origin",
			URLs: []string{"git@github.com:octo/app.git"},
		})).NoError(t)

		url := gt.R1(cli.DetectOriginURL(dir)).NoError(t)
		gt.V(t, url).Equal("git@github.com:octo/app.git")

		// The detected remote is accepted by the locator
		id := gt.R1(model.ParseRepositoryURL(url)).NoError(t)
		gt.V(t, id.FullName()).Equal("octo/app")
	})

	t.Run("subdirectory of repository", func(t *testing.T) {
		dir := t.TempDir()
		repo := gt.R1(git.PlainInit(dir, false)).NoError(t)
		gt.R1(repo.CreateRemote(&gitconfig.RemoteConfig{
			Name: "origin",
			URLs: []string{"https://gitlab.com/group/proj.git"},
		})).NoError(t)

		sub := filepath.Join(dir, "src", "pkg")
		gt.NoError(t, os.MkdirAll(sub, 0o755))

		gt.V(t, gt.R1(cli.DetectOriginURL(sub)).NoError(t)).Equal("https://gitlab.com/group/proj.git")
	})

	t.Run("no origin", func(t *testing.T) {
		dir := t.TempDir()
		gt.R1(git.PlainInit(dir, false)).NoError(t)

		_, err := cli.DetectOriginURL(dir)
		gt.Error(t, err)
	})

	t.Run("not a repository", func(t *testing.T) {
		_, err := cli.DetectOriginURL(t.TempDir())
		gt.Error(t, err)
	})
}
