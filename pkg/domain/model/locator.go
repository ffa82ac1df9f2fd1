package model

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/m-mizutani/deploydoctor/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// RepositoryIdentifier points to a repository on a hosting provider. Host is
// empty when the URL has no authority part.
type RepositoryIdentifier struct {
	Host  string `json:"host,omitempty"`
	Owner string `json:"owner"`
	Name  string `json:"name"`
}

func (x RepositoryIdentifier) FullName() string {
	return x.Owner + "/" + x.Name
}

// git@github.com:owner/repo.git
var ptnSCPLikeRemote = regexp.MustCompile(`^[A-Za-z0-9._-]+@([A-Za-z0-9.-]+):(.+)$`)

// ParseRepositoryURL extracts owner and repository name from a repository URL.
// The first two non-empty path segments are used and the rest is ignored.
func ParseRepositoryURL(raw string) (*RepositoryIdentifier, error) {
	raw = strings.TrimSpace(raw)

	var host, path string
	if m := ptnSCPLikeRemote.FindStringSubmatch(raw); m != nil && !strings.Contains(raw, "://") {
		host, path = m[1], m[2]
	} else {
		u, err := url.Parse(raw)
		if err != nil {
			return nil, goerr.Wrap(types.ErrInvalidRepositoryURL, "failed to parse URL",
				goerr.V("url", raw),
				goerr.V("cause", err.Error()),
			)
		}
		host, path = u.Hostname(), u.Path
	}

	path = strings.Trim(path, "/")
	path = strings.TrimSuffix(path, ".git")
	path = strings.Trim(path, "/")

	var segments []string
	for _, s := range strings.Split(path, "/") {
		if s != "" {
			segments = append(segments, s)
		}
	}

	if len(segments) < 2 {
		return nil, goerr.Wrap(types.ErrInvalidRepositoryURL, "URL must contain owner and repository name",
			goerr.V("url", raw),
		)
	}

	return &RepositoryIdentifier{
		Host:  strings.ToLower(host),
		Owner: segments[0],
		Name:  segments[1],
	}, nil
}
