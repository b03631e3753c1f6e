package console

import (
	"context"
	"errors"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestModel(t *testing.T, src *fakeSource, route string) (Model, *[]string) {
	t.Helper()
	var copied []string
	m := NewModel(context.Background(), Options{
		Source:  src,
		Route:   route,
		Version: "v0.0.0-test",
		Clipboard: func(s string) error {
			copied = append(copied, s)
			return nil
		},
	})
	t.Cleanup(m.Close)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 160, Height: 48})
	return next.(Model), &copied
}

func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok)
	return model, cmd
}

func TestNewModel_RouteResolution(t *testing.T) {
	tests := []struct {
		route string
		want  Route
	}{
		{"", RouteMirror},
		{"/config/", RouteConfig},
		{"ecr", RouteExplorer},
		{"/nowhere", RouteMirror},
	}
	for _, tt := range tests {
		t.Run(tt.route, func(t *testing.T) {
			m, _ := newTestModel(t, &fakeSource{}, tt.route)
			assert.Equal(t, tt.want, m.Route())
			assert.Equal(t, tt.want, m.Page().Route())
		})
	}
}

func TestModel_CapturingPageKeepsKeys(t *testing.T) {
	m, _ := newTestModel(t, &fakeSource{}, "/")
	require.True(t, m.Page().Capturing())

	m, _ = send(t, m, key("2"))
	m, _ = send(t, m, key("q"))
	assert.Equal(t, RouteMirror, m.Route())
	assert.Equal(t, "2q", m.Page().(*MirrorPage).input.Value())

	_, cmd := send(t, m, key("ctrl+c"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestModel_NavigationCancelsPreviousPage(t *testing.T) {
	m, _ := newTestModel(t, &fakeSource{}, "/config")
	old := m.Page().(*ConfigPage)
	require.NoError(t, old.sc.ctx.Err())

	m, _ = send(t, m, key("3"))
	assert.Equal(t, RouteExplorer, m.Route())
	assert.ErrorIs(t, old.sc.ctx.Err(), context.Canceled)
	assert.NoError(t, m.Page().(*ExplorerPage).sc.ctx.Err())

	m.Close()
	assert.ErrorIs(t, m.Page().(*ExplorerPage).sc.ctx.Err(), context.Canceled)
}

func TestModel_DropsMessagesFromUnmountedPages(t *testing.T) {
	src := &fakeSource{}
	m, _ := newTestModel(t, src, "/config")
	staleLoad := mustFind[configsLoadedMsg](t, runCmd(t, m.Init()))

	m, _ = send(t, m, key("3"))
	m, _ = send(t, m, key("2"))
	fresh := m.Page().(*ConfigPage)
	require.True(t, fresh.loading)

	m, cmd := send(t, m, staleLoad)
	assert.Nil(t, cmd)
	assert.True(t, fresh.loading)
	assert.Same(t, fresh, m.Page())
}

func TestModel_QuitAndHelp(t *testing.T) {
	m, _ := newTestModel(t, &fakeSource{}, "/config")

	m, _ = send(t, m, key("?"))
	assert.Contains(t, m.View().Content, "Keybindings: Configuration")
	m, _ = send(t, m, key("esc"))
	assert.NotContains(t, m.View().Content, "Keybindings")

	_, cmd := send(t, m, key("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestModel_Copy(t *testing.T) {
	src := &fakeSource{repos: sampleRepos()}
	m, copied := newTestModel(t, src, "/ecr")
	m, _ = send(t, m, mustFind[reposLoadedMsg](t, runCmd(t, m.Init())))

	m, cmd := send(t, m, key("c"))
	require.NotNil(t, cmd)
	require.Equal(t, []string{sampleRepos()[0].RepositoryURI}, *copied)
	assert.Contains(t, m.View().Content, "Copied: "+sampleRepos()[0].RepositoryURI)

	m, _ = send(t, m, clearCopiedMsg{})
	assert.NotContains(t, m.View().Content, "Copied:")
}

func TestModel_CopyFailure(t *testing.T) {
	src := &fakeSource{repos: sampleRepos()}
	m := NewModel(context.Background(), Options{
		Source:    src,
		Route:     "/ecr",
		Clipboard: func(string) error { return errors.New("no clipboard utility") },
	})
	t.Cleanup(m.Close)
	m, _ = send(t, m, mustFind[reposLoadedMsg](t, runCmd(t, m.Init())))

	m, _ = send(t, m, key("c"))
	assert.Contains(t, m.View().Content, "Copy failed: no clipboard utility")
}

func TestModel_ViewShowsSidebar(t *testing.T) {
	m, _ := newTestModel(t, &fakeSource{}, "/")
	v := m.View()
	assert.True(t, v.AltScreen)
	assert.Contains(t, v.Content, "ECR Mirror")
	assert.Contains(t, v.Content, "Request Mirror")
	assert.Contains(t, v.Content, "Configuration")
	assert.Contains(t, v.Content, "ECR Explorer")
	assert.Contains(t, v.Content, "v0.0.0-test")
	assert.Contains(t, v.Content, "fake backend")
}
