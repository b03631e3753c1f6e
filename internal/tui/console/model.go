package console

import (
	"context"
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/atotto/clipboard"
	"github.com/sirupsen/logrus"

	"tasnim.dev/ecr-mirror/internal/api"
	"tasnim.dev/ecr-mirror/internal/constants"
	"tasnim.dev/ecr-mirror/internal/logging"
	"tasnim.dev/ecr-mirror/internal/tui/theme"
)

type clearCopiedMsg struct{}

// Options configures the console shell.
type Options struct {
	Source    api.Source
	Logger    logrus.FieldLogger
	Route     string
	Version   string
	Clipboard func(string) error
}

// Model is the root Bubble Tea model: a sidebar plus the mounted page.
type Model struct {
	ctx    context.Context
	opts   Options
	log    logrus.FieldLogger
	route  Route
	page   Page
	seq    uint64
	cancel context.CancelFunc

	width  int
	height int

	copiedText string
	copyErr    error
	showHelp   bool
}

// NewModel creates the console shell with the page for opts.Route mounted.
// Pages are unmounted when ctx is cancelled or the user navigates away.
func NewModel(ctx context.Context, opts Options) Model {
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	if opts.Clipboard == nil {
		opts.Clipboard = clipboard.WriteAll
	}
	if opts.Version == "" {
		opts.Version = constants.Version
	}
	m := Model{ctx: ctx, opts: opts, log: opts.Logger}
	m, _ = m.mount(ResolveRoute(opts.Route))
	return m
}

// Route returns the mounted route.
func (m Model) Route() Route { return m.route }

// Page returns the mounted page.
func (m Model) Page() Page { return m.page }

// Close cancels the mounted page's scope.
func (m Model) Close() {
	if m.cancel != nil {
		m.cancel()
	}
}

func (m Model) Init() tea.Cmd {
	return m.page.Init()
}

func (m Model) mount(r Route) (Model, tea.Cmd) {
	if m.cancel != nil {
		m.cancel()
	}
	ctx, cancel := context.WithCancel(m.ctx)
	m.seq++
	m.cancel = cancel
	m.route = r
	m.page = newPage(r, scope{
		id:     m.seq,
		ctx:    ctx,
		source: m.opts.Source,
		log:    m.log.WithField("page", r.Name()),
	})
	m.resizePage()
	m.log.WithField("route", string(r)).Debug("page mounted")
	return m, m.page.Init()
}

func (m Model) contentSize() (int, int) {
	// Dashboard padding (4 columns, 2 rows) plus the footer line.
	w := m.width - sidebarWidth - 4
	h := m.height - 4
	if w < 20 {
		w = 20
	}
	if h < 5 {
		h = 5
	}
	return w, h
}

func (m Model) resizePage() {
	if m.width == 0 || m.height == 0 {
		return
	}
	if rp, ok := m.page.(ResizablePage); ok {
		rp.SetSize(m.contentSize())
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case clearCopiedMsg:
		m.copiedText = ""
		m.copyErr = nil
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizePage()
		return m, nil

	case tea.KeyPressMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.showHelp {
			switch msg.String() {
			case "?", "esc", "q":
				m.showHelp = false
			}
			return m, nil
		}
		if !m.page.Capturing() {
			if model, cmd, ok := m.updateShellKey(msg); ok {
				return model, cmd
			}
		}

	case pageMsg:
		if msg.scopeID() != m.seq {
			m.log.WithField("route", string(m.route)).Debugf("dropping %T from unmounted page", msg)
			return m, nil
		}
	}

	updated, cmd := m.page.Update(msg)
	m.page = updated
	return m, cmd
}

func (m Model) updateShellKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd, bool) {
	key := msg.String()
	if r, ok := routeForKey(key); ok {
		if r == m.route {
			return m, nil, true
		}
		model, cmd := m.mount(r)
		return model, cmd, true
	}
	switch key {
	case "q":
		return m, tea.Quit, true
	case "?":
		m.showHelp = true
		return m, nil, true
	case "c":
		cp, ok := m.page.(CopyablePage)
		if !ok {
			return m, nil, false
		}
		text := cp.CopyText()
		if text == "" {
			return m, nil, true
		}
		m.copiedText = text
		m.copyErr = m.opts.Clipboard(text)
		if m.copyErr != nil {
			m.log.WithError(m.copyErr).Warn("clipboard write failed")
		}
		return m, m.clearCopiedAfter(), true
	}
	return m, nil, false
}

func (m Model) clearCopiedAfter() tea.Cmd {
	return tea.Tick(2*time.Second, func(time.Time) tea.Msg {
		return clearCopiedMsg{}
	})
}

func (m Model) View() tea.View {
	var content string
	if m.showHelp {
		content = renderHelp(detectHelpContext(m.page), m.width, m.height)
	} else {
		content = m.render()
	}
	v := tea.NewView(content)
	v.AltScreen = true
	return v
}

func (m Model) render() string {
	w, _ := m.contentSize()

	var footer string
	switch {
	case m.copyErr != nil:
		footer = theme.ErrorStyle.Render(fmt.Sprintf("Copy failed: %v", m.copyErr))
	case m.copiedText != "":
		footer = theme.CopiedStyle.Render(fmt.Sprintf("Copied: %s", m.copiedText))
	default:
		footer = RenderKeyHints(detectHelpContext(m.page), w)
	}

	main := theme.DashboardStyle.Render(m.page.View() + "\n\n" + footer)
	sidebar := renderSidebar(m.route, m.height, m.opts.Version, m.sourceLabel())
	return lipgloss.JoinHorizontal(lipgloss.Top, sidebar, main)
}

func (m Model) sourceLabel() string {
	if m.opts.Source == nil {
		return "no data source"
	}
	return m.opts.Source.Describe()
}
