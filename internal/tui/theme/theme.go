package theme

import (
	"image/color"
	"strings"

	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/table"
	"charm.land/lipgloss/v2"
)

// Colors
var (
	Primary = lipgloss.Color("#33A8FF")
	Muted   = lipgloss.Color("#6B7280")
	Subtle  = lipgloss.Color("#374151")
	Text    = lipgloss.Color("#D1D5DB")
	Success = lipgloss.Color("#10B981")
	Warning = lipgloss.Color("#F59E0B")
	Error   = lipgloss.Color("#EF4444")
)

// Shared styles
var (
	DashboardStyle = lipgloss.NewStyle().
			Padding(1, 2)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	MutedStyle = lipgloss.NewStyle().
			Foreground(Muted)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(Success).
			Bold(true)

	FilterStyle = lipgloss.NewStyle().
			Foreground(Primary)

	CopiedStyle = lipgloss.NewStyle().
			Foreground(Success).
			Bold(true)

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary)

	LabelStyle = lipgloss.NewStyle().
			Foreground(Text).
			Bold(true)

	HelpBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(1, 3)

	HelpTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary).
			MarginBottom(1)

	HelpKeyStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary).
			Width(12)

	HelpDescStyle = lipgloss.NewStyle().
			Foreground(Text)

	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Subtle).
			Padding(0, 1)

	FocusedPanelStyle = PanelStyle.
				BorderForeground(Primary)

	LoadingStyle = lipgloss.NewStyle().
			Foreground(Muted).
			PaddingLeft(2)
)

// Sidebar styles
var (
	SidebarStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderRight(true).
			BorderForeground(Subtle).
			Padding(1, 2, 1, 1)

	LogoStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary).
			MarginBottom(1)

	NavActiveStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary)

	NavInactiveStyle = lipgloss.NewStyle().
				Foreground(Muted)

	SidebarFooterStyle = lipgloss.NewStyle().
				Foreground(Muted).
				MarginTop(1)
)

// Choice styles render a two-way selector such as image/chart.
var (
	ChoiceActiveStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(Primary).
				Foreground(Primary).
				Padding(0, 2)

	ChoiceInactiveStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(Subtle).
				Foreground(Muted).
				Padding(0, 2)
)

// StatusColor maps submission and pull request outcomes to theme colors.
func StatusColor(status string) color.Color {
	switch strings.ToLower(status) {
	case "created", "success", "succeeded", "mirrored":
		return Success
	case "failed", "error":
		return Error
	case "pending", "submitting", "processing":
		return Warning
	default:
		return Muted
	}
}

// RenderStatus renders a status string with a colored bullet.
func RenderStatus(status string) string {
	c := StatusColor(status)
	bullet := lipgloss.NewStyle().Foreground(c).Render("●")
	return bullet + " " + status
}

// NoticeStyle is a left-bordered callout tinted by status.
func NoticeStyle(status string) lipgloss.Style {
	c := StatusColor(status)
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.ThickBorder()).
		BorderLeft(true).
		BorderForeground(c).
		Foreground(c).
		Padding(0, 1)
}

// DefaultTableStyles returns styled table styles using theme colors.
func DefaultTableStyles() table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(Muted).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	return s
}

// BlurredTableStyles dims the selection of a table that does not have focus.
func BlurredTableStyles() table.Styles {
	s := DefaultTableStyles()
	s.Selected = s.Selected.
		Foreground(Text).
		Background(Subtle)
	return s
}

// SpinnerStyle returns a spinner configured with the primary color.
func SpinnerStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(Primary)
}

// NewSpinner returns a new spinner with the theme style.
func NewSpinner() spinner.Model {
	return spinner.New(
		spinner.WithSpinner(spinner.MiniDot),
		spinner.WithStyle(SpinnerStyle()),
	)
}
