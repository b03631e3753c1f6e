// Package api is the console's single boundary to the mirroring backend.
// A Source is chosen once at process start; pages never know which one they
// talk to.
package api

import (
	"context"
	"errors"

	"tasnim.dev/ecr-mirror/internal/model"
)

// Source serves the five backend operations the console needs.
type Source interface {
	ListConfigs(ctx context.Context) ([]model.RegistryConfig, error)
	SubmitConfig(ctx context.Context, cfg model.RegistryConfig) (model.PullRequestResult, error)
	RequestMirror(ctx context.Context, req model.MirrorRequest) (model.MirrorResult, error)
	ListRepositories(ctx context.Context) ([]model.ECRRepository, error)
	// ListImages returns an empty list for an unknown repository.
	ListImages(ctx context.Context, repoName string) ([]model.ECRImageDetails, error)

	// Describe is a short label for the console footer.
	Describe() string
}

// One error per operation. Transport failures and non-success statuses are
// both reported as the operation's error, wrapping the cause.
var (
	ErrFetchConfigs  = errors.New("failed to fetch configs")
	ErrSubmitConfig  = errors.New("failed to submit config")
	ErrMirrorRequest = errors.New("mirror request failed")
	ErrFetchRepos    = errors.New("failed to fetch ECR repos")
	ErrFetchImages   = errors.New("failed to fetch images")
)
