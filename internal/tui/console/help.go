package console

import (
	"strings"

	"charm.land/lipgloss/v2"

	"tasnim.dev/ecr-mirror/internal/tui/theme"
)

// HelpContext determines which keybinding set to show.
type HelpContext int

const (
	HelpContextMirror HelpContext = iota
	HelpContextMirrorInput
	HelpContextConfig
	HelpContextConfigForm
	HelpContextExplorer
	HelpContextExplorerSearch
)

type helpBinding struct {
	key  string
	desc string
}

func helpBindings(ctx HelpContext) (string, []helpBinding) {
	switch ctx {
	case HelpContextMirror, HelpContextMirrorInput:
		return "Keybindings: Request Mirror", []helpBinding{
			{"i", "Edit source URL"},
			{"t", "Toggle image / chart"},
			{"Ctrl+T", "Toggle type while editing"},
			{"Enter", "Start mirroring"},
			{"Esc", "Leave the input"},
			{"1/2/3", "Switch page"},
			{"?", "Toggle this help"},
			{"q", "Quit"},
		}
	case HelpContextConfig, HelpContextConfigForm:
		return "Keybindings: Configuration", []helpBinding{
			{"n", "New mapping"},
			{"Tab", "Next form field"},
			{"Enter", "Create pull request"},
			{"Esc", "Cancel the form"},
			{"d", "Dismiss pull request"},
			{"c", "Copy pull request URL"},
			{"r", "Reload mappings"},
			{"j/k", "Navigate up/down"},
			{"1/2/3", "Switch page"},
			{"?", "Toggle this help"},
			{"q", "Quit"},
		}
	default:
		return "Keybindings: ECR Explorer", []helpBinding{
			{"/", "Search repositories"},
			{"Enter", "Show images"},
			{"Tab", "Switch pane"},
			{"g", "Toggle size chart"},
			{"c", "Copy URI / digest"},
			{"r", "Reload repositories"},
			{"j/k", "Navigate up/down"},
			{"1/2/3", "Switch page"},
			{"?", "Toggle this help"},
			{"q", "Quit"},
		}
	}
}

func renderHelp(ctx HelpContext, width, height int) string {
	title, bindings := helpBindings(ctx)

	var b strings.Builder
	b.WriteString(theme.HelpTitleStyle.Render(title) + "\n")
	for _, binding := range bindings {
		b.WriteString(theme.HelpKeyStyle.Render(binding.key) + theme.HelpDescStyle.Render(binding.desc) + "\n")
	}

	box := theme.HelpBoxStyle.Render(b.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}

// detectHelpContext determines the help context from the mounted page.
func detectHelpContext(p Page) HelpContext {
	switch p.(type) {
	case *ConfigPage:
		if p.Capturing() {
			return HelpContextConfigForm
		}
		return HelpContextConfig
	case *ExplorerPage:
		if p.Capturing() {
			return HelpContextExplorerSearch
		}
		return HelpContextExplorer
	}
	if p.Capturing() {
		return HelpContextMirrorInput
	}
	return HelpContextMirror
}
