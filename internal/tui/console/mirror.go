package console

import (
	"strings"

	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/distribution/reference"

	"tasnim.dev/ecr-mirror/internal/model"
	"tasnim.dev/ecr-mirror/internal/tui/theme"
)

const mirrorFailedText = "Failed to submit mirror request. Please try again."

type mirrorDoneMsg struct {
	scoped
	result model.MirrorResult
	err    error
}

// MirrorPage submits a single image or chart mirror request.
type MirrorPage struct {
	sc      scope
	kind    model.MirrorType
	input   textinput.Model
	spinner spinner.Model
	pending bool
	status  *notice
	width   int
}

func NewMirrorPage(sc scope) *MirrorPage {
	ti := textinput.New()
	ti.CharLimit = 512
	ti.SetWidth(60)
	p := &MirrorPage{
		sc:      sc,
		kind:    model.MirrorTypeImage,
		input:   ti,
		spinner: theme.NewSpinner(),
	}
	p.setPlaceholder()
	p.input.Focus()
	return p
}

func (p *MirrorPage) Route() Route  { return RouteMirror }
func (p *MirrorPage) Title() string { return "Request Mirror" }

func (p *MirrorPage) Init() tea.Cmd { return textinput.Blink }

func (p *MirrorPage) Capturing() bool { return p.input.Focused() }

func (p *MirrorPage) SetSize(width, height int) {
	p.width = width
	w := width - 4
	if w > 80 {
		w = 80
	}
	if w < 10 {
		w = 10
	}
	p.input.SetWidth(w)
}

// Pending reports whether a request is in flight.
func (p *MirrorPage) Pending() bool { return p.pending }

func (p *MirrorPage) setPlaceholder() {
	if p.kind == model.MirrorTypeChart {
		p.input.Placeholder = "e.g. https://charts.bitnami.com/bitnami/nginx-1.0.0.tgz"
		return
	}
	p.input.Placeholder = "e.g. docker.io/library/nginx:latest"
}

func (p *MirrorPage) toggleType() {
	p.kind = p.kind.Toggle()
	p.setPlaceholder()
}

func (p *MirrorPage) Update(msg tea.Msg) (Page, tea.Cmd) {
	switch msg := msg.(type) {
	case mirrorDoneMsg:
		if msg.id != p.sc.id || !p.pending {
			return p, nil
		}
		p.pending = false
		if msg.err != nil {
			p.sc.log.WithError(msg.err).Error("mirror request failed")
			p.status = errorNotice("Error", mirrorFailedText)
		} else {
			p.sc.log.WithField("message", msg.result.Message).Info("mirror request accepted")
			p.status = successNotice("Success", msg.result.Message)
			p.input.SetValue("")
		}
		return p, p.input.Focus()

	case spinner.TickMsg:
		if !p.pending {
			return p, nil
		}
		var cmd tea.Cmd
		p.spinner, cmd = p.spinner.Update(msg)
		return p, cmd

	case tea.KeyPressMsg:
		if p.pending {
			return p, nil
		}
		if p.input.Focused() {
			switch msg.String() {
			case "enter":
				return p, p.submit()
			case "esc":
				p.input.Blur()
				return p, nil
			case "ctrl+t":
				p.toggleType()
				return p, nil
			}
			var cmd tea.Cmd
			p.input, cmd = p.input.Update(msg)
			return p, cmd
		}
		switch msg.String() {
		case "i", "e", "/":
			return p, p.input.Focus()
		case "t", "left", "right", "h", "l":
			p.toggleType()
		case "enter":
			return p, p.submit()
		}
	}
	return p, nil
}

func (p *MirrorPage) submit() tea.Cmd {
	source := strings.TrimSpace(p.input.Value())
	if source == "" || p.pending {
		return nil
	}
	p.pending = true
	p.status = nil
	p.input.Blur()

	req := model.MirrorRequest{SourceURL: source, Type: p.kind}
	sc := p.sc
	p.sc.log.WithField("source", source).WithField("type", string(p.kind)).Debug("submitting mirror request")
	return tea.Batch(p.spinner.Tick, func() tea.Msg {
		res, err := sc.source.RequestMirror(sc.ctx, req)
		return mirrorDoneMsg{scoped: scoped{sc.id}, result: res, err: err}
	})
}

// referencePreview resolves an image reference to its fully qualified form.
func referencePreview(kind model.MirrorType, text string) (string, bool) {
	text = strings.TrimSpace(text)
	if kind != model.MirrorTypeImage || text == "" {
		return "", false
	}
	named, err := reference.ParseNormalizedNamed(text)
	if err != nil {
		return "", false
	}
	return reference.TagNameOnly(named).String(), true
}

func (p *MirrorPage) View() string {
	var b strings.Builder
	b.WriteString(theme.TitleStyle.Render(p.Title()) + "\n")
	b.WriteString(theme.MutedStyle.Render("Enter the source URL of the image or Helm chart you wish to mirror to the private ECR registry.") + "\n\n")

	b.WriteString(theme.LabelStyle.Render("Artifact Type") + "\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		p.renderChoice(model.MirrorTypeImage, "Container Image", "Docker/OCI Image"),
		" ",
		p.renderChoice(model.MirrorTypeChart, "Helm Chart", "Kubernetes Package"),
	) + "\n\n")

	b.WriteString(theme.LabelStyle.Render("Source URL") + "\n")
	b.WriteString(p.input.View() + "\n")
	if p.kind == model.MirrorTypeImage && strings.TrimSpace(p.input.Value()) != "" {
		if ref, ok := referencePreview(p.kind, p.input.Value()); ok {
			b.WriteString(theme.MutedStyle.Render("→ "+ref) + "\n")
		} else {
			b.WriteString(theme.MutedStyle.Render("not a valid image reference") + "\n")
		}
	}
	b.WriteString("\n")

	if p.pending {
		b.WriteString(p.spinner.View() + " Processing Request...")
	} else {
		b.WriteString(theme.FilterStyle.Render("enter") + " " + theme.MutedStyle.Render("Start Mirroring"))
	}

	if p.status != nil {
		b.WriteString("\n\n" + p.status.render(min(p.width, 80)))
	}
	return b.String()
}

func (p *MirrorPage) renderChoice(kind model.MirrorType, title, sub string) string {
	body := lipgloss.NewStyle().Bold(true).Render(title) + "\n" + theme.MutedStyle.Render(sub)
	if p.kind == kind {
		return theme.ChoiceActiveStyle.Render(body)
	}
	return theme.ChoiceInactiveStyle.Render(body)
}
