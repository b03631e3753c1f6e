package api

import (
	"context"
	"fmt"

	"tasnim.dev/ecr-mirror/internal/model"
)

// RepositoryReader lists repositories and images straight from a registry.
type RepositoryReader interface {
	ListRepositories(ctx context.Context) ([]model.ECRRepository, error)
	ListImages(ctx context.Context, repoName string) ([]model.ECRImageDetails, error)
}

// ECRSource serves the explorer from ECR and forwards configuration and
// mirror calls to the backend.
type ECRSource struct {
	Source
	reader RepositoryReader
	label  string
}

func NewECRSource(backend Source, reader RepositoryReader, label string) *ECRSource {
	return &ECRSource{Source: backend, reader: reader, label: label}
}

func (s *ECRSource) Describe() string {
	return s.label + " + " + s.Source.Describe()
}

func (s *ECRSource) ListRepositories(ctx context.Context) ([]model.ECRRepository, error) {
	repos, err := s.reader.ListRepositories(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetchRepos, err)
	}
	return repos, nil
}

func (s *ECRSource) ListImages(ctx context.Context, repoName string) ([]model.ECRImageDetails, error) {
	images, err := s.reader.ListImages(ctx, repoName)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetchImages, err)
	}
	return images, nil
}
