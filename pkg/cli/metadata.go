package cli

import (
	"github.com/go-git/go-git/v5"
	"github.com/m-mizutani/goerr/v2"
)

// DetectOriginURL returns the URL of the "origin" remote of the git
// repository containing dir.
func DetectOriginURL(dir string) (string, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", goerr.Wrap(err, "failed to open git repository", goerr.V("dir", dir))
	}

	remote, err := repo.Remote("origin")
	if err != nil {
		return "", goerr.Wrap(err, "failed to get remote origin", goerr.V("dir", dir))
	}

	urls := remote.Config().URLs
	if len(urls) == 0 {
		return "", goerr.New("no remote URL found", goerr.V("dir", dir))
	}

	return urls[0], nil
}
