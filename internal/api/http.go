package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"tasnim.dev/ecr-mirror/internal/logging"
	"tasnim.dev/ecr-mirror/internal/model"
)

// HTTPSource talks JSON to the mirroring backend. A failed attempt is
// returned immediately; there are no retries.
type HTTPSource struct {
	base   string
	client *http.Client
	log    logrus.FieldLogger
}

type HTTPOption func(*HTTPSource)

func WithHTTPClient(c *http.Client) HTTPOption {
	return func(s *HTTPSource) { s.client = c }
}

// WithTimeout bounds every request. Zero disables the bound.
func WithTimeout(d time.Duration) HTTPOption {
	return func(s *HTTPSource) {
		if d > 0 {
			s.client = &http.Client{Timeout: d, Transport: s.client.Transport}
		}
	}
}

func WithHTTPLogger(l logrus.FieldLogger) HTTPOption {
	return func(s *HTTPSource) { s.log = l }
}

// NewHTTPSource resolves baseURL against host when baseURL is a bare path
// such as "/api".
func NewHTTPSource(baseURL, host string, opts ...HTTPOption) (*HTTPSource, error) {
	base, err := ResolveBaseURL(baseURL, host)
	if err != nil {
		return nil, err
	}
	s := &HTTPSource{
		base:   base,
		client: &http.Client{},
		log:    logging.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// ResolveBaseURL returns an absolute base URL without a trailing slash.
func ResolveBaseURL(baseURL, host string) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("parsing api base url %q: %w", baseURL, err)
	}
	if !u.IsAbs() {
		h, err := url.Parse(host)
		if err != nil || !h.IsAbs() {
			return "", fmt.Errorf("api base url %q is relative and api host %q is not absolute", baseURL, host)
		}
		u = h.ResolveReference(&url.URL{Path: "/" + strings.TrimPrefix(u.Path, "/")})
	}
	return strings.TrimSuffix(u.String(), "/"), nil
}

func (s *HTTPSource) Describe() string { return s.base }

func (s *HTTPSource) ListConfigs(ctx context.Context) ([]model.RegistryConfig, error) {
	var out []model.RegistryConfig
	if err := s.do(ctx, http.MethodGet, "/configs", nil, &out); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetchConfigs, err)
	}
	return out, nil
}

func (s *HTTPSource) SubmitConfig(ctx context.Context, cfg model.RegistryConfig) (model.PullRequestResult, error) {
	var out model.PullRequestResult
	if err := s.do(ctx, http.MethodPost, "/configs", cfg, &out); err != nil {
		return model.PullRequestResult{}, fmt.Errorf("%w: %w", ErrSubmitConfig, err)
	}
	return out, nil
}

func (s *HTTPSource) RequestMirror(ctx context.Context, req model.MirrorRequest) (model.MirrorResult, error) {
	var out model.MirrorResult
	if err := s.do(ctx, http.MethodPost, "/mirror", req, &out); err != nil {
		return model.MirrorResult{}, fmt.Errorf("%w: %w", ErrMirrorRequest, err)
	}
	return out, nil
}

func (s *HTTPSource) ListRepositories(ctx context.Context) ([]model.ECRRepository, error) {
	var out []model.ECRRepository
	if err := s.do(ctx, http.MethodGet, "/ecr/repos", nil, &out); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetchRepos, err)
	}
	return out, nil
}

// ListImages escapes repoName as one path segment: mirror/alpine -> mirror%2Falpine.
func (s *HTTPSource) ListImages(ctx context.Context, repoName string) ([]model.ECRImageDetails, error) {
	var out []model.ECRImageDetails
	path := "/ecr/repos/" + url.PathEscape(repoName) + "/images"
	if err := s.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetchImages, err)
	}
	if out == nil {
		out = []model.ECRImageDetails{}
	}
	return out, nil
}

func (s *HTTPSource) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.base+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	s.log.WithFields(logrus.Fields{
		"method":   method,
		"path":     path,
		"status":   resp.StatusCode,
		"duration": time.Since(start),
	}).Debug("api request")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
