package console

import (
	"context"
	"strings"

	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/table"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/guptarohit/asciigraph"

	"tasnim.dev/ecr-mirror/internal/model"
	"tasnim.dev/ecr-mirror/internal/tui/theme"
	"tasnim.dev/ecr-mirror/internal/utils"
)

const (
	noReposText      = "No repositories found."
	loadingImgText   = "Loading images..."
	noImagesText     = "No images found in this repository."
	selectRepoText   = "Select a repository to view images"
	untaggedText     = "untagged"
	minChartedImages = 2
)

type reposLoadedMsg struct {
	scoped
	repos []model.ECRRepository
	err   error
}

type imagesLoadedMsg struct {
	scoped
	gen    uint64
	repo   string
	images []model.ECRImageDetails
	err    error
}

type explorerFocus int

const (
	focusRepos explorerFocus = iota
	focusImages
)

// ExplorerPage browses ECR repositories and their images.
type ExplorerPage struct {
	sc           scope
	repos        []model.ECRRepository
	filtered     []model.ECRRepository
	loadingRepos bool
	search       textinput.Model
	cursor       int

	selected      *model.ECRRepository
	images        []model.ECRImageDetails
	loadingImages bool
	imagesGen     uint64
	cancelImages  context.CancelFunc

	table     table.Model
	focus     explorerFocus
	showChart bool
	spinner   spinner.Model

	width  int
	height int
}

func NewExplorerPage(sc scope) *ExplorerPage {
	ti := textinput.New()
	ti.Placeholder = "Search repositories..."
	ti.CharLimit = 128
	ti.SetWidth(24)

	t := table.New(
		table.WithColumns(imageColumns(70)),
		table.WithRows([]table.Row{}),
		table.WithHeight(10),
		table.WithWidth(70),
	)
	t.SetStyles(theme.BlurredTableStyles())

	return &ExplorerPage{
		sc:           sc,
		loadingRepos: true,
		search:       ti,
		table:        t,
		spinner:      theme.NewSpinner(),
	}
}

// FilterRepositories returns the repositories whose name contains term.
// Matching is case-sensitive; an empty term matches everything.
func FilterRepositories(repos []model.ECRRepository, term string) []model.ECRRepository {
	out := make([]model.ECRRepository, 0, len(repos))
	for _, r := range repos {
		if strings.Contains(r.RepositoryName, term) {
			out = append(out, r)
		}
	}
	return out
}

func imageColumns(width int) []table.Column {
	digest := 22
	size := 10
	pushed := 12
	// Each cell carries one column of padding on either side.
	tags := width - digest - size - pushed - 8
	if tags < 12 {
		tags = 12
	}
	return []table.Column{
		{Title: "Tags", Width: tags},
		{Title: "Size", Width: size},
		{Title: "Pushed At", Width: pushed},
		{Title: "Digest", Width: digest},
	}
}

func imageRow(img model.ECRImageDetails) table.Row {
	tags := untaggedText
	if !img.Untagged() {
		tags = strings.Join(img.ImageTags, ", ")
	}
	return table.Row{
		tags,
		utils.FormatBytes(img.ImageSizeInBytes),
		utils.LocalDate(img.ImagePushedAt),
		utils.ShortDigest(img.ImageDigest),
	}
}

func (p *ExplorerPage) Route() Route  { return RouteExplorer }
func (p *ExplorerPage) Title() string { return "ECR Explorer" }

func (p *ExplorerPage) Init() tea.Cmd {
	return tea.Batch(p.spinner.Tick, p.loadRepos())
}

func (p *ExplorerPage) Capturing() bool { return p.search.Focused() }

func (p *ExplorerPage) SetSize(width, height int) {
	p.width = width
	p.height = height
	lw, rw := p.paneWidths()
	p.search.SetWidth(max(lw-8, 8))
	p.table.SetColumns(imageColumns(rw - 8))
	p.table.SetWidth(rw - 8)
	p.resizeTable()
}

func (p *ExplorerPage) paneWidths() (int, int) {
	if p.width == 0 {
		return 32, 80
	}
	left := max(p.width/3, 24)
	return left, max(p.width-left-1, 40)
}

func (p *ExplorerPage) resizeTable() {
	h := p.height - 12
	if p.showChart {
		h -= 8
	}
	p.table.SetHeight(max(h, 3))
}

// Selected returns the selected repository, if any.
func (p *ExplorerPage) Selected() *model.ECRRepository { return p.selected }

// Images returns the images of the selected repository.
func (p *ExplorerPage) Images() []model.ECRImageDetails { return p.images }

// Filtered returns the repositories matching the current search.
func (p *ExplorerPage) Filtered() []model.ECRRepository { return p.filtered }

// CopyText returns the selected image digest when the image table has focus,
// otherwise the URI of the repository under the cursor.
func (p *ExplorerPage) CopyText() string {
	if p.focus == focusImages {
		if i := p.table.Cursor(); i >= 0 && i < len(p.images) {
			return p.images[i].ImageDigest
		}
		return ""
	}
	if p.cursor < len(p.filtered) {
		return p.filtered[p.cursor].RepositoryURI
	}
	return ""
}

func (p *ExplorerPage) loadRepos() tea.Cmd {
	sc := p.sc
	return func() tea.Msg {
		repos, err := sc.source.ListRepositories(sc.ctx)
		return reposLoadedMsg{scoped: scoped{sc.id}, repos: repos, err: err}
	}
}

func (p *ExplorerPage) applyFilter() {
	p.filtered = FilterRepositories(p.repos, p.search.Value())
	if p.cursor >= len(p.filtered) {
		p.cursor = max(len(p.filtered)-1, 0)
	}
}

// selectRepo starts an image fetch for repo, superseding any fetch in flight.
func (p *ExplorerPage) selectRepo(repo model.ECRRepository) tea.Cmd {
	if p.cancelImages != nil {
		p.cancelImages()
	}
	ctx, cancel := context.WithCancel(p.sc.ctx)
	p.cancelImages = cancel
	p.imagesGen++
	p.selected = &repo
	p.images = nil
	p.loadingImages = true
	p.table.SetRows([]table.Row{})
	p.table.SetCursor(0)

	gen, name, sc := p.imagesGen, repo.RepositoryName, p.sc
	sc.log.WithField("repository", name).Debug("loading images")
	return tea.Batch(p.spinner.Tick, func() tea.Msg {
		images, err := sc.source.ListImages(ctx, name)
		return imagesLoadedMsg{scoped: scoped{sc.id}, gen: gen, repo: name, images: images, err: err}
	})
}

func (p *ExplorerPage) Update(msg tea.Msg) (Page, tea.Cmd) {
	switch msg := msg.(type) {
	case reposLoadedMsg:
		if msg.id != p.sc.id {
			return p, nil
		}
		p.loadingRepos = false
		if msg.err != nil {
			p.sc.log.WithError(msg.err).Error("loading repositories failed")
		} else {
			p.repos = msg.repos
		}
		p.applyFilter()
		return p, nil

	case imagesLoadedMsg:
		if msg.id != p.sc.id || msg.gen != p.imagesGen || p.selected == nil || msg.repo != p.selected.RepositoryName {
			p.sc.log.WithField("repository", msg.repo).Debug("discarding stale image listing")
			return p, nil
		}
		p.loadingImages = false
		p.cancelImages = nil
		if msg.err != nil {
			p.sc.log.WithError(msg.err).WithField("repository", msg.repo).Error("loading images failed")
			p.images = nil
		} else {
			p.images = msg.images
		}
		rows := make([]table.Row, 0, len(p.images))
		for _, img := range p.images {
			rows = append(rows, imageRow(img))
		}
		p.table.SetRows(rows)
		return p, nil

	case spinner.TickMsg:
		if !p.loadingRepos && !p.loadingImages {
			return p, nil
		}
		var cmd tea.Cmd
		p.spinner, cmd = p.spinner.Update(msg)
		return p, cmd

	case tea.KeyPressMsg:
		if p.search.Focused() {
			return p.updateSearch(msg)
		}
		switch msg.String() {
		case "/":
			p.setFocus(focusRepos)
			return p, p.search.Focus()
		case "tab", "shift+tab":
			if p.focus == focusRepos && p.selected != nil {
				p.setFocus(focusImages)
			} else {
				p.setFocus(focusRepos)
			}
			return p, nil
		case "g":
			p.showChart = !p.showChart
			p.resizeTable()
			return p, nil
		case "r":
			if p.loadingRepos {
				return p, nil
			}
			p.loadingRepos = true
			return p, tea.Batch(p.spinner.Tick, p.loadRepos())
		}
		if p.focus == focusImages {
			if msg.String() == "esc" {
				p.setFocus(focusRepos)
				return p, nil
			}
			var cmd tea.Cmd
			p.table, cmd = p.table.Update(msg)
			return p, cmd
		}
		switch msg.String() {
		case "up", "k":
			if p.cursor > 0 {
				p.cursor--
			}
		case "down", "j":
			if p.cursor < len(p.filtered)-1 {
				p.cursor++
			}
		case "home":
			p.cursor = 0
		case "end", "G":
			p.cursor = max(len(p.filtered)-1, 0)
		case "enter":
			if p.cursor < len(p.filtered) {
				return p, p.selectRepo(p.filtered[p.cursor])
			}
		}
	}
	return p, nil
}

func (p *ExplorerPage) updateSearch(msg tea.KeyPressMsg) (Page, tea.Cmd) {
	switch msg.String() {
	case "esc":
		p.search.SetValue("")
		p.search.Blur()
		p.applyFilter()
		return p, nil
	case "enter":
		p.search.Blur()
		return p, nil
	}
	var cmd tea.Cmd
	p.search, cmd = p.search.Update(msg)
	p.applyFilter()
	return p, cmd
}

func (p *ExplorerPage) setFocus(f explorerFocus) {
	p.focus = f
	if f == focusImages {
		p.table.Focus()
		p.table.SetStyles(theme.DefaultTableStyles())
		return
	}
	p.table.Blur()
	p.table.SetStyles(theme.BlurredTableStyles())
}

func (p *ExplorerPage) View() string {
	header := theme.TitleStyle.Render(p.Title()) + "\n" +
		theme.MutedStyle.Render("Browse repositories and inspect images.") + "\n"

	lw, rw := p.paneWidths()
	left := p.panelStyle(focusRepos).Width(lw).Render(p.renderRepoPane(lw - 4))
	right := p.panelStyle(focusImages).Width(rw).Render(p.renderImagePane(rw - 4))
	return header + "\n" + lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right)
}

func (p *ExplorerPage) panelStyle(f explorerFocus) lipgloss.Style {
	if p.focus == f {
		return theme.FocusedPanelStyle
	}
	return theme.PanelStyle
}

func (p *ExplorerPage) renderRepoPane(width int) string {
	var b strings.Builder
	b.WriteString(theme.FilterStyle.Render("/ ") + p.search.View() + "\n\n")

	if p.loadingRepos {
		b.WriteString(p.spinner.View() + " Loading...")
		return b.String()
	}
	if len(p.filtered) == 0 {
		b.WriteString(theme.MutedStyle.Render(noReposText))
		return b.String()
	}

	visible := max(p.height-8, 3)
	start := 0
	if p.cursor >= visible {
		start = p.cursor - visible + 1
	}
	end := min(start+visible, len(p.filtered))
	for i := start; i < end; i++ {
		r := p.filtered[i]
		name := truncate(r.RepositoryName, width-2)
		selected := p.selected != nil && p.selected.RepositoryName == r.RepositoryName
		switch {
		case i == p.cursor && p.focus == focusRepos:
			b.WriteString(theme.NavActiveStyle.Render("› " + name))
		case selected:
			b.WriteString(theme.LabelStyle.Render("  " + name))
		default:
			b.WriteString(theme.NavInactiveStyle.Render("  " + name))
		}
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (p *ExplorerPage) renderImagePane(width int) string {
	if p.selected == nil {
		return lipgloss.Place(width, max(p.height-6, 3), lipgloss.Center, lipgloss.Center,
			theme.MutedStyle.Render(selectRepoText))
	}

	d := utils.NewDetailBuilder(10, theme.LabelStyle)
	d.SetRuleWidth(width)
	d.WriteString(theme.MutedStyle.Render("Repository") + "\n")
	d.WriteString(theme.TitleStyle.Render(p.selected.RepositoryName) + "\n")
	d.Row("URI", p.selected.RepositoryURI)
	d.Row("Created", utils.TimeOrDash(p.selected.CreatedAt.Local(), utils.DateTime))
	d.Blank()
	d.Section("Images")

	switch {
	case p.loadingImages:
		d.WriteString(p.spinner.View() + " " + loadingImgText)
	case len(p.images) == 0:
		d.WriteString(theme.MutedStyle.Render(noImagesText))
	default:
		if p.showChart {
			d.WriteString(p.renderChart(width) + "\n\n")
		}
		d.WriteString(p.table.View())
	}
	return d.String()
}

// renderChart plots image sizes in MB, oldest push first.
func (p *ExplorerPage) renderChart(width int) string {
	if len(p.images) < minChartedImages {
		return theme.MutedStyle.Render("Not enough images to chart")
	}
	values := make([]float64, len(p.images))
	for i, img := range p.images {
		// Images are listed newest first.
		values[len(p.images)-1-i] = float64(img.ImageSizeInBytes) / (1024 * 1024)
	}
	return asciigraph.Plot(values,
		asciigraph.Height(5),
		asciigraph.Width(max(width-16, 10)),
		asciigraph.Caption("Image size (MB) by push order"),
		asciigraph.Precision(2),
	)
}

func truncate(s string, n int) string {
	if n <= 1 || lipgloss.Width(s) <= n {
		return s
	}
	r := []rune(s)
	if len(r) > n-1 {
		r = r[:n-1]
	}
	return string(r) + "…"
}
