package api

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	awsclient "tasnim.dev/ecr-mirror/internal/aws"
	"tasnim.dev/ecr-mirror/internal/config"
)

// New builds the Source selected by cfg.Source. profile and region only
// matter for the aws source.
func New(ctx context.Context, cfg *config.Config, profile, region string, log logrus.FieldLogger) (Source, error) {
	switch cfg.Source {
	case config.SourceMock:
		opts := []MockOption{WithMockLogger(log)}
		if !cfg.MockLatency {
			opts = append(opts, WithoutLatency())
		}
		return NewMockSource(opts...)

	case config.SourceHTTP:
		return newHTTPFromConfig(cfg, log)

	case config.SourceAWS:
		backend, err := newHTTPFromConfig(cfg, log)
		if err != nil {
			return nil, err
		}
		client, err := awsclient.NewExplorerClient(ctx, profile, region)
		if err != nil {
			return nil, fmt.Errorf("initializing AWS client: %w", err)
		}
		return NewECRSource(backend, client.ECR, client.Label()), nil
	}
	return nil, fmt.Errorf("unknown source %q", cfg.Source)
}

func newHTTPFromConfig(cfg *config.Config, log logrus.FieldLogger) (*HTTPSource, error) {
	timeout, err := cfg.Timeout()
	if err != nil {
		return nil, err
	}
	return NewHTTPSource(cfg.APIBaseURL, cfg.APIHost, WithTimeout(timeout), WithHTTPLogger(log))
}
