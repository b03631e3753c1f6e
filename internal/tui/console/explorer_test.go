package console

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tasnim.dev/ecr-mirror/internal/model"
)

func loadedExplorer(t *testing.T, src *fakeSource) *ExplorerPage {
	t.Helper()
	p := NewExplorerPage(testScope(src))
	p.Update(mustFind[reposLoadedMsg](t, runCmd(t, p.Init())))
	return p
}

func repoNames(repos []model.ECRRepository) []string {
	names := make([]string, len(repos))
	for i, r := range repos {
		names[i] = r.RepositoryName
	}
	return names
}

func TestFilterRepositories(t *testing.T) {
	repos := sampleRepos()
	tests := []struct {
		name string
		term string
		want []string
	}{
		{"empty term", "", []string{"mirror/alpine", "mirror/etcd", "mirror/busybox"}},
		{"substring", "etc", []string{"mirror/etcd"}},
		{"shared prefix", "mirror/", []string{"mirror/alpine", "mirror/etcd", "mirror/busybox"}},
		{"case sensitive", "Alpine", []string{}},
		{"no match", "zzz", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, repoNames(FilterRepositories(repos, tt.term)))
		})
	}
}

func TestExplorerPage_SearchFiltersOnEveryKeystroke(t *testing.T) {
	p := loadedExplorer(t, &fakeSource{repos: sampleRepos()})
	assert.Len(t, p.Filtered(), 3)

	p.Update(key("/"))
	require.True(t, p.Capturing())

	p.Update(key("b"))
	assert.Equal(t, []string{"mirror/busybox"}, repoNames(p.Filtered()))

	typeText(p, "zz")
	assert.Empty(t, p.Filtered())
	assert.Contains(t, p.View(), noReposText)

	p.Update(key("esc"))
	assert.False(t, p.Capturing())
	assert.Len(t, p.Filtered(), 3)
}

func TestExplorerPage_EmptyStates(t *testing.T) {
	src := &fakeSource{repos: sampleRepos(), images: sampleImages()}
	p := loadedExplorer(t, src)
	assert.Contains(t, p.View(), selectRepoText)

	// mirror/busybox has no images.
	p.Update(key("down"))
	p.Update(key("down"))
	_, cmd := p.Update(key("enter"))
	require.Equal(t, "mirror/busybox", p.Selected().RepositoryName)
	assert.Contains(t, p.View(), loadingImgText)

	p.Update(mustFind[imagesLoadedMsg](t, runCmd(t, cmd)))
	assert.Contains(t, p.View(), noImagesText)
}

func TestExplorerPage_ImageTable(t *testing.T) {
	src := &fakeSource{repos: sampleRepos(), images: sampleImages()}
	p := loadedExplorer(t, src)
	p.SetSize(140, 40)

	_, cmd := p.Update(key("enter"))
	p.Update(mustFind[imagesLoadedMsg](t, runCmd(t, cmd)))

	require.Len(t, p.Images(), 2)
	view := p.View()
	assert.Contains(t, view, "mirror/alpine")
	assert.Contains(t, view, "123456789012.dkr.ecr.us-east-1.amazonaws.com/mirror/alpine")
	assert.Contains(t, view, "latest, 3.18")
	assert.Contains(t, view, "4.77 MB")
	assert.Contains(t, view, "1 KB")
	assert.Contains(t, view, untaggedText)

	row := imageRow(p.Images()[1])
	assert.Equal(t, untaggedText, row[0])
	assert.Equal(t, "sha256:222222222222...", row[3])
}

func TestExplorerPage_StaleImageResponsesAreDiscarded(t *testing.T) {
	tests := []struct {
		name     string
		newFirst bool
	}{
		{"stale resolves after current", true},
		{"stale resolves before current", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := &fakeSource{repos: sampleRepos(), images: sampleImages()}
			p := loadedExplorer(t, src)

			_, cmdAlpine := p.Update(key("enter"))
			p.Update(key("down"))
			_, cmdEtcd := p.Update(key("enter"))
			require.Equal(t, "mirror/etcd", p.Selected().RepositoryName)

			var alpine, etcd imagesLoadedMsg
			if tt.newFirst {
				etcd = mustFind[imagesLoadedMsg](t, runCmd(t, cmdEtcd))
				p.Update(etcd)
				alpine = mustFind[imagesLoadedMsg](t, runCmd(t, cmdAlpine))
				p.Update(alpine)
			} else {
				alpine = mustFind[imagesLoadedMsg](t, runCmd(t, cmdAlpine))
				p.Update(alpine)
				assert.Contains(t, p.View(), loadingImgText)
				etcd = mustFind[imagesLoadedMsg](t, runCmd(t, cmdEtcd))
				p.Update(etcd)
			}

			require.Len(t, p.Images(), 1)
			assert.Equal(t, []string{"v3.5.9"}, p.Images()[0].ImageTags)
			assert.Equal(t, "mirror/etcd", p.Selected().RepositoryName)
		})
	}
}

func TestExplorerPage_ReselectCancelsPreviousFetch(t *testing.T) {
	src := &fakeSource{repos: sampleRepos(), images: sampleImages()}
	p := loadedExplorer(t, src)

	_, first := p.Update(key("enter"))
	p.Update(key("down"))
	_, second := p.Update(key("enter"))
	runCmd(t, first)
	runCmd(t, second)

	require.Len(t, src.imageCtxs, 2)
	assert.ErrorIs(t, src.imageCtxs[0].Err(), context.Canceled)
	assert.NoError(t, src.imageCtxs[1].Err())
}

func TestExplorerPage_FocusAndCopy(t *testing.T) {
	src := &fakeSource{repos: sampleRepos(), images: sampleImages()}
	p := loadedExplorer(t, src)

	assert.Equal(t, sampleRepos()[0].RepositoryURI, p.CopyText())

	// Tab does nothing until a repository is selected.
	p.Update(key("tab"))
	assert.Equal(t, focusRepos, p.focus)

	_, cmd := p.Update(key("enter"))
	p.Update(mustFind[imagesLoadedMsg](t, runCmd(t, cmd)))

	p.Update(key("tab"))
	assert.Equal(t, focusImages, p.focus)
	assert.Equal(t, sampleImages()["mirror/alpine"][0].ImageDigest, p.CopyText())

	p.Update(key("down"))
	assert.Equal(t, sampleImages()["mirror/alpine"][1].ImageDigest, p.CopyText())

	p.Update(key("tab"))
	assert.Equal(t, focusRepos, p.focus)
}

func TestExplorerPage_Chart(t *testing.T) {
	src := &fakeSource{repos: sampleRepos(), images: sampleImages()}
	p := loadedExplorer(t, src)
	p.SetSize(140, 40)

	_, cmd := p.Update(key("enter"))
	p.Update(mustFind[imagesLoadedMsg](t, runCmd(t, cmd)))
	assert.NotContains(t, p.View(), "Image size (MB)")

	p.Update(key("g"))
	assert.Contains(t, p.View(), "Image size (MB)")

	p.Update(key("g"))
	assert.NotContains(t, p.View(), "Image size (MB)")
}

func TestExplorerPage_ChartNeedsTwoImages(t *testing.T) {
	src := &fakeSource{repos: sampleRepos(), images: sampleImages()}
	p := loadedExplorer(t, src)

	p.Update(key("down"))
	_, cmd := p.Update(key("enter"))
	p.Update(mustFind[imagesLoadedMsg](t, runCmd(t, cmd)))
	p.Update(key("g"))
	assert.Contains(t, p.View(), "Not enough images to chart")
}
