package console

import (
	"context"
	"sync"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"tasnim.dev/ecr-mirror/internal/logging"
	"tasnim.dev/ecr-mirror/internal/model"
)

type fakeSource struct {
	mu sync.Mutex

	configs    []model.RegistryConfig
	configsErr error

	submitted    []model.RegistryConfig
	submitResult model.PullRequestResult
	submitErr    error

	mirrored     []model.MirrorRequest
	mirrorResult model.MirrorResult
	mirrorErr    error

	repos    []model.ECRRepository
	reposErr error

	images    map[string][]model.ECRImageDetails
	imageCtxs []context.Context
}

func (f *fakeSource) ListConfigs(context.Context) ([]model.RegistryConfig, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.configs, f.configsErr
}

func (f *fakeSource) SubmitConfig(_ context.Context, cfg model.RegistryConfig) (model.PullRequestResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.submitted = append(f.submitted, cfg)
	return f.submitResult, f.submitErr
}

func (f *fakeSource) RequestMirror(_ context.Context, req model.MirrorRequest) (model.MirrorResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.mirrored = append(f.mirrored, req)
	return f.mirrorResult, f.mirrorErr
}

func (f *fakeSource) ListRepositories(context.Context) ([]model.ECRRepository, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.repos, f.reposErr
}

func (f *fakeSource) ListImages(ctx context.Context, repo string) ([]model.ECRImageDetails, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.imageCtxs = append(f.imageCtxs, ctx)
	return f.images[repo], nil
}

func (f *fakeSource) Describe() string { return "fake backend" }

func testScope(src *fakeSource) scope {
	return scope{id: 1, ctx: context.Background(), source: src, log: logging.Discard()}
}

func sampleRepos() []model.ECRRepository {
	created := time.Date(2023, 1, 15, 10, 0, 0, 0, time.UTC)
	return []model.ECRRepository{
		{RepositoryName: "mirror/alpine", RepositoryURI: "123456789012.dkr.ecr.us-east-1.amazonaws.com/mirror/alpine", CreatedAt: created},
		{RepositoryName: "mirror/etcd", RepositoryURI: "123456789012.dkr.ecr.us-east-1.amazonaws.com/mirror/etcd", CreatedAt: created},
		{RepositoryName: "mirror/busybox", RepositoryURI: "123456789012.dkr.ecr.us-east-1.amazonaws.com/mirror/busybox", CreatedAt: created},
	}
}

func sampleImages() map[string][]model.ECRImageDetails {
	pushed := time.Date(2023, 10, 1, 12, 0, 0, 0, time.UTC)
	return map[string][]model.ECRImageDetails{
		"mirror/alpine": {
			{ImageDigest: "sha256:1111111111111111111111111111111111111111111111111111111111111111", ImageTags: []string{"latest", "3.18"}, ImageSizeInBytes: 5000000, ImagePushedAt: pushed},
			{ImageDigest: "sha256:2222222222222222222222222222222222222222222222222222222222222222", ImageSizeInBytes: 1024, ImagePushedAt: pushed.AddDate(0, -1, 0)},
		},
		"mirror/etcd": {
			{ImageDigest: "sha256:3333333333333333333333333333333333333333333333333333333333333333", ImageTags: []string{"v3.5.9"}, ImageSizeInBytes: 20000000, ImagePushedAt: pushed},
		},
	}
}

// key builds a key press the way the terminal reports it.
func key(s string) tea.KeyPressMsg {
	switch s {
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case "esc":
		return tea.KeyPressMsg{Code: tea.KeyEscape}
	case "tab":
		return tea.KeyPressMsg{Code: tea.KeyTab}
	case "up":
		return tea.KeyPressMsg{Code: tea.KeyUp}
	case "down":
		return tea.KeyPressMsg{Code: tea.KeyDown}
	case "ctrl+c":
		return tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl}
	case "ctrl+t":
		return tea.KeyPressMsg{Code: 't', Mod: tea.ModCtrl}
	}
	r := []rune(s)[0]
	return tea.KeyPressMsg{Code: r, Text: s}
}

func typeText(p Page, text string) Page {
	for _, r := range text {
		p, _ = p.Update(key(string(r)))
	}
	return p
}

// runCmd executes cmd and flattens batches. Commands that block, such as
// cursor blinks and ticks, are abandoned after a short wait.
func runCmd(t *testing.T, cmd tea.Cmd) []tea.Msg {
	t.Helper()
	if cmd == nil {
		return nil
	}
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()

	var msg tea.Msg
	select {
	case msg = <-ch:
	case <-time.After(100 * time.Millisecond):
		return nil
	}

	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, runCmd(t, c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

func findMsg[T tea.Msg](msgs []tea.Msg) (T, bool) {
	for _, m := range msgs {
		if v, ok := m.(T); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

func mustFind[T tea.Msg](t *testing.T, msgs []tea.Msg) T {
	t.Helper()
	v, ok := findMsg[T](msgs)
	if !ok {
		var zero T
		t.Fatalf("no %T among %d messages", zero, len(msgs))
	}
	return v
}
