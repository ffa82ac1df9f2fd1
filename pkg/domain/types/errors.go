package types

import "github.com/m-mizutani/goerr/v2"

var (
	// ErrInvalidRepositoryURL is returned when owner and repository name can not be extracted from a URL.
	ErrInvalidRepositoryURL = goerr.New("invalid repository URL")

	// ErrRepositoryFetch is returned when the hosting provider can not be reached or its response can not be used.
	ErrRepositoryFetch = goerr.New("failed to fetch repository")

	ErrInvalidOption    = goerr.New("invalid option")
	ErrValidationFailed = goerr.New("validation failed")
)
