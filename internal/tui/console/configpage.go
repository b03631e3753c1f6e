package console

import (
	"strings"

	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/table"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"tasnim.dev/ecr-mirror/internal/model"
	"tasnim.dev/ecr-mirror/internal/tui/theme"
)

const (
	configSubmitFailedText = "Failed to submit configuration change. Please try again."
	noMappingsText         = "No mappings found."
	requiredFieldsText     = "Both fields are required."
)

type configsLoadedMsg struct {
	scoped
	configs []model.RegistryConfig
	err     error
}

type configSubmittedMsg struct {
	scoped
	result model.PullRequestResult
	err    error
}

// ConfigPage lists registry mappings and submits new ones as pull requests.
type ConfigPage struct {
	sc      scope
	configs []model.RegistryConfig
	loading bool
	table   table.Model
	spinner spinner.Model

	showForm   bool
	inputs     []textinput.Model
	focus      int
	submitting bool
	formErr    string
	status     *notice
	prResult   *model.PullRequestResult

	width int
}

func NewConfigPage(sc scope) *ConfigPage {
	t := table.New(
		table.WithColumns(configColumns(80)),
		table.WithRows(configRows(nil)),
		table.WithFocused(true),
		table.WithHeight(10),
		table.WithWidth(80),
	)
	t.SetStyles(theme.DefaultTableStyles())

	registry := textinput.New()
	registry.Placeholder = "e.g. gcr.io/google-containers/busybox"
	registry.CharLimit = 256
	repo := textinput.New()
	repo.Placeholder = "e.g. mirror/busybox"
	repo.CharLimit = 256

	return &ConfigPage{
		sc:      sc,
		loading: true,
		table:   t,
		spinner: theme.NewSpinner(),
		inputs:  []textinput.Model{registry, repo},
	}
}

func configColumns(width int) []table.Column {
	action := 8
	rest := width - action - 6
	if rest < 20 {
		rest = 20
	}
	return []table.Column{
		{Title: "External Registry", Width: rest / 2},
		{Title: "Target ECR Repository", Width: rest - rest/2},
		{Title: "Actions", Width: action},
	}
}

// configRows maps configs to table rows. An empty list yields a single
// placeholder row.
func configRows(configs []model.RegistryConfig) []table.Row {
	if len(configs) == 0 {
		return []table.Row{{noMappingsText, "", ""}}
	}
	rows := make([]table.Row, 0, len(configs))
	for _, c := range configs {
		rows = append(rows, table.Row{c.RegistryURL, c.ECRRepoName, "Edit"})
	}
	return rows
}

func (p *ConfigPage) Route() Route  { return RouteConfig }
func (p *ConfigPage) Title() string { return "Registry Configuration" }

func (p *ConfigPage) Init() tea.Cmd {
	return tea.Batch(p.spinner.Tick, p.loadConfigs())
}

func (p *ConfigPage) Capturing() bool { return p.showForm && !p.submitting }

func (p *ConfigPage) SetSize(width, height int) {
	p.width = width
	p.table.SetColumns(configColumns(width))
	p.table.SetWidth(width)
	h := height - 8
	if p.showForm {
		h -= 8
	}
	if p.prResult != nil {
		h -= 5
	}
	if h < 3 {
		h = 3
	}
	p.table.SetHeight(h)
	for i := range p.inputs {
		p.inputs[i].SetWidth(min(max(width/2-4, 10), 50))
	}
}

// Configs returns the loaded mappings.
func (p *ConfigPage) Configs() []model.RegistryConfig { return p.configs }

// CopyText returns the pull request URL while its panel is shown.
func (p *ConfigPage) CopyText() string {
	if p.prResult != nil {
		return p.prResult.PRURL
	}
	return ""
}

func (p *ConfigPage) loadConfigs() tea.Cmd {
	sc := p.sc
	return func() tea.Msg {
		configs, err := sc.source.ListConfigs(sc.ctx)
		return configsLoadedMsg{scoped: scoped{sc.id}, configs: configs, err: err}
	}
}

func (p *ConfigPage) Update(msg tea.Msg) (Page, tea.Cmd) {
	switch msg := msg.(type) {
	case configsLoadedMsg:
		if msg.id != p.sc.id {
			return p, nil
		}
		p.loading = false
		if msg.err != nil {
			p.sc.log.WithError(msg.err).Error("loading registry mappings failed")
		} else {
			p.configs = msg.configs
		}
		p.table.SetRows(configRows(p.configs))
		return p, nil

	case configSubmittedMsg:
		if msg.id != p.sc.id || !p.submitting {
			return p, nil
		}
		p.submitting = false
		if msg.err != nil {
			p.sc.log.WithError(msg.err).Error("configuration change failed")
			p.status = errorNotice("Error", configSubmitFailedText)
			return p, p.inputs[p.focus].Focus()
		}
		p.sc.log.WithField("pr", msg.result.PRURL).WithField("status", string(msg.result.Status)).Info("configuration change submitted")
		res := msg.result
		p.prResult = &res
		p.status = nil
		p.closeForm(true)
		return p, nil

	case spinner.TickMsg:
		if !p.loading && !p.submitting {
			return p, nil
		}
		var cmd tea.Cmd
		p.spinner, cmd = p.spinner.Update(msg)
		return p, cmd

	case tea.KeyPressMsg:
		if p.submitting {
			return p, nil
		}
		if p.showForm {
			return p.updateForm(msg)
		}
		switch msg.String() {
		case "n":
			if p.prResult == nil {
				return p, p.openForm()
			}
			return p, nil
		case "d":
			p.prResult = nil
			return p, nil
		case "r":
			if p.loading {
				return p, nil
			}
			p.loading = true
			return p, tea.Batch(p.spinner.Tick, p.loadConfigs())
		}
		var cmd tea.Cmd
		p.table, cmd = p.table.Update(msg)
		return p, cmd
	}
	return p, nil
}

func (p *ConfigPage) openForm() tea.Cmd {
	p.showForm = true
	p.formErr = ""
	p.status = nil
	p.focus = 0
	p.table.Blur()
	return p.inputs[0].Focus()
}

func (p *ConfigPage) closeForm(clear bool) {
	p.showForm = false
	p.formErr = ""
	for i := range p.inputs {
		if clear {
			p.inputs[i].SetValue("")
		}
		p.inputs[i].Blur()
	}
	p.focus = 0
	p.table.Focus()
}

func (p *ConfigPage) updateForm(msg tea.KeyPressMsg) (Page, tea.Cmd) {
	switch msg.String() {
	case "esc":
		p.closeForm(false)
		p.status = nil
		return p, nil
	case "tab", "down":
		return p, p.focusInput((p.focus + 1) % len(p.inputs))
	case "shift+tab", "up":
		return p, p.focusInput((p.focus + len(p.inputs) - 1) % len(p.inputs))
	case "enter":
		return p, p.submit()
	}
	var cmd tea.Cmd
	p.inputs[p.focus], cmd = p.inputs[p.focus].Update(msg)
	return p, cmd
}

func (p *ConfigPage) focusInput(i int) tea.Cmd {
	p.inputs[p.focus].Blur()
	p.focus = i
	return p.inputs[i].Focus()
}

func (p *ConfigPage) submit() tea.Cmd {
	cfg := model.RegistryConfig{
		RegistryURL: strings.TrimSpace(p.inputs[0].Value()),
		ECRRepoName: strings.TrimSpace(p.inputs[1].Value()),
	}
	if cfg.RegistryURL == "" || cfg.ECRRepoName == "" {
		p.formErr = requiredFieldsText
		return nil
	}
	p.formErr = ""
	p.status = nil
	p.submitting = true
	p.inputs[p.focus].Blur()

	sc := p.sc
	return tea.Batch(p.spinner.Tick, func() tea.Msg {
		res, err := sc.source.SubmitConfig(sc.ctx, cfg)
		return configSubmittedMsg{scoped: scoped{sc.id}, result: res, err: err}
	})
}

func (p *ConfigPage) View() string {
	var b strings.Builder
	b.WriteString(theme.TitleStyle.Render(p.Title()) + "\n")
	b.WriteString(theme.MutedStyle.Render("Map external registries to local ECR repositories.") + "\n\n")

	if p.prResult != nil {
		b.WriteString(p.renderPullRequest() + "\n\n")
	}
	if p.showForm {
		b.WriteString(p.renderForm() + "\n\n")
	}

	if p.loading {
		b.WriteString(theme.LoadingStyle.Render(p.spinner.View() + " Loading configurations..."))
	} else {
		b.WriteString(p.table.View())
	}

	if !p.showForm && p.prResult == nil {
		b.WriteString("\n" + theme.MutedStyle.Render("n  New Mapping"))
	}
	return b.String()
}

func (p *ConfigPage) renderPullRequest() string {
	status := string(p.prResult.Status)
	title := "Pull Request Created!"
	if p.prResult.Status == model.PullRequestFailed {
		title = "Pull Request Failed"
	}
	body := lipgloss.NewStyle().Bold(true).Render(title) + "\n" +
		theme.HelpDescStyle.Render("Your configuration change has been submitted.") + "\n" +
		theme.FilterStyle.Render(p.prResult.PRURL) + "  " + theme.RenderStatus(status) + "\n" +
		theme.MutedStyle.Render("d dismiss · c copy URL")
	style := theme.NoticeStyle(status)
	if p.width > 0 {
		style = style.Width(min(p.width, 100))
	}
	return style.Render(body)
}

func (p *ConfigPage) renderForm() string {
	labels := []string{"External Registry URL", "Target ECR Repo Name"}
	fields := make([]string, len(p.inputs))
	for i := range p.inputs {
		fields[i] = theme.LabelStyle.Render(labels[i]) + "\n" + p.inputs[i].View()
	}

	var b strings.Builder
	b.WriteString(theme.LabelStyle.Render("Add New Registry Mapping") + "\n\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, fields[0], "    ", fields[1]) + "\n\n")
	switch {
	case p.submitting:
		b.WriteString(p.spinner.View() + " Submitting...")
	case p.formErr != "":
		b.WriteString(theme.ErrorStyle.Render(p.formErr))
	default:
		b.WriteString(theme.MutedStyle.Render("enter Submit Request · esc Cancel"))
	}
	if p.status != nil {
		b.WriteString("\n\n" + p.status.render(min(p.width, 80)))
	}
	return theme.FocusedPanelStyle.Render(b.String())
}
