package api

import (
	"context"
	_ "embed"
	"fmt"
	"slices"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"tasnim.dev/ecr-mirror/internal/logging"
	"tasnim.dev/ecr-mirror/internal/model"
)

//go:embed mockdata.yaml
var mockData []byte

type fixtures struct {
	Configs      []model.RegistryConfig             `yaml:"configs"`
	Repositories []model.ECRRepository              `yaml:"repositories"`
	Images       map[string][]model.ECRImageDetails `yaml:"images"`
	PullRequest  model.PullRequestResult            `yaml:"pullRequest"`
}

// MockDelays is the artificial latency of each mock operation.
type MockDelays struct {
	ListConfigs      time.Duration
	SubmitConfig     time.Duration
	RequestMirror    time.Duration
	ListRepositories time.Duration
	ListImages       time.Duration
}

// DefaultMockDelays mimics a slow backend; mirroring waits for the copy.
var DefaultMockDelays = MockDelays{
	ListConfigs:      800 * time.Millisecond,
	SubmitConfig:     1500 * time.Millisecond,
	RequestMirror:    3000 * time.Millisecond,
	ListRepositories: 1000 * time.Millisecond,
	ListImages:       800 * time.Millisecond,
}

// MockSource serves static fixtures after a fixed delay. It never fails
// unless the context is cancelled while waiting.
type MockSource struct {
	data   fixtures
	delays MockDelays
	log    logrus.FieldLogger
}

type MockOption func(*MockSource)

func WithDelays(d MockDelays) MockOption {
	return func(s *MockSource) { s.delays = d }
}

// WithoutLatency makes every mock operation resolve immediately.
func WithoutLatency() MockOption {
	return WithDelays(MockDelays{})
}

func WithMockLogger(l logrus.FieldLogger) MockOption {
	return func(s *MockSource) { s.log = l }
}

func NewMockSource(opts ...MockOption) (*MockSource, error) {
	s := &MockSource{
		delays: DefaultMockDelays,
		log:    logging.Discard(),
	}
	if err := yaml.Unmarshal(mockData, &s.data); err != nil {
		return nil, fmt.Errorf("parsing mock fixtures: %w", err)
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *MockSource) Describe() string { return "mock data" }

func (s *MockSource) ListConfigs(ctx context.Context) ([]model.RegistryConfig, error) {
	if err := s.wait(ctx, "list configs", s.delays.ListConfigs); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetchConfigs, err)
	}
	return slices.Clone(s.data.Configs), nil
}

func (s *MockSource) SubmitConfig(ctx context.Context, cfg model.RegistryConfig) (model.PullRequestResult, error) {
	if err := s.wait(ctx, "submit config", s.delays.SubmitConfig); err != nil {
		return model.PullRequestResult{}, fmt.Errorf("%w: %w", ErrSubmitConfig, err)
	}
	s.log.WithField("registry", cfg.RegistryURL).WithField("repo", cfg.ECRRepoName).Debug("mock config change accepted")
	return s.data.PullRequest, nil
}

func (s *MockSource) RequestMirror(ctx context.Context, req model.MirrorRequest) (model.MirrorResult, error) {
	if err := s.wait(ctx, "mirror", s.delays.RequestMirror); err != nil {
		return model.MirrorResult{}, fmt.Errorf("%w: %w", ErrMirrorRequest, err)
	}
	return model.MirrorResult{
		Success: true,
		Message: "Successfully mirrored " + req.SourceURL,
	}, nil
}

func (s *MockSource) ListRepositories(ctx context.Context) ([]model.ECRRepository, error) {
	if err := s.wait(ctx, "list repos", s.delays.ListRepositories); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetchRepos, err)
	}
	return slices.Clone(s.data.Repositories), nil
}

func (s *MockSource) ListImages(ctx context.Context, repoName string) ([]model.ECRImageDetails, error) {
	if err := s.wait(ctx, "list images", s.delays.ListImages); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetchImages, err)
	}
	src := s.data.Images[repoName]
	images := make([]model.ECRImageDetails, len(src))
	for i, img := range src {
		img.ImageTags = slices.Clone(img.ImageTags)
		images[i] = img
	}
	return images, nil
}

// wait sleeps for d or until ctx is done.
func (s *MockSource) wait(ctx context.Context, op string, d time.Duration) error {
	s.log.WithField("op", op).WithField("delay", d).Debug("mock request")
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
