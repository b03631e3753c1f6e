package console

import (
	"charm.land/lipgloss/v2"

	"tasnim.dev/ecr-mirror/internal/tui/theme"
)

type keyHint struct {
	key  string
	desc string
}

// RenderKeyHints renders a compact one-line footer with key hints appropriate
// for the given help context. Hints are truncated to fit the given width.
func RenderKeyHints(ctx HelpContext, width int) string {
	keyStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.Primary)
	descStyle := lipgloss.NewStyle().Foreground(theme.Muted)
	sep := descStyle.Render(" · ")

	var result string
	for i, h := range hintsForContext(ctx) {
		part := keyStyle.Render(h.key) + " " + descStyle.Render(h.desc)
		if i > 0 {
			part = sep + part
		}
		if i > 0 && lipgloss.Width(result+part) > width {
			break
		}
		result += part
	}
	return result
}

func hintsForContext(ctx HelpContext) []keyHint {
	switch ctx {
	case HelpContextMirror:
		return []keyHint{
			{"i", "edit"},
			{"t", "type"},
			{"Enter", "mirror"},
			{"1-3", "pages"},
			{"?", "help"},
			{"q", "quit"},
		}
	case HelpContextMirrorInput:
		return []keyHint{
			{"Enter", "mirror"},
			{"Ctrl+T", "type"},
			{"Esc", "done"},
			{"Ctrl+C", "quit"},
		}
	case HelpContextConfig:
		return []keyHint{
			{"n", "new"},
			{"r", "reload"},
			{"d", "dismiss"},
			{"c", "copy"},
			{"1-3", "pages"},
			{"?", "help"},
		}
	case HelpContextConfigForm:
		return []keyHint{
			{"Tab", "next field"},
			{"Enter", "create PR"},
			{"Esc", "cancel"},
			{"Ctrl+C", "quit"},
		}
	case HelpContextExplorerSearch:
		return []keyHint{
			{"Enter", "done"},
			{"Esc", "clear"},
			{"Ctrl+C", "quit"},
		}
	default:
		return []keyHint{
			{"/", "search"},
			{"Enter", "images"},
			{"Tab", "pane"},
			{"g", "chart"},
			{"c", "copy"},
			{"r", "reload"},
			{"?", "help"},
		}
	}
}
