package console

import (
	"strings"

	"charm.land/lipgloss/v2"

	"tasnim.dev/ecr-mirror/internal/tui/theme"
)

const sidebarWidth = 26

func renderSidebar(active Route, height int, version, source string) string {
	var b strings.Builder
	b.WriteString(theme.LogoStyle.Render("ECR Mirror") + "\n")
	for _, e := range navEntries {
		label := e.key + "  " + e.label
		if e.route == active {
			b.WriteString(theme.NavActiveStyle.Render("▌ "+label) + "\n")
		} else {
			b.WriteString(theme.NavInactiveStyle.Render("  "+label) + "\n")
		}
	}

	footer := theme.SidebarFooterStyle.Render(version + "\n" + source)

	style := theme.SidebarStyle.Width(sidebarWidth)
	if height > 0 {
		// Padding and the footer sit inside the border box.
		style = style.Height(height)
		nav := b.String()
		gap := height - 2 - lipgloss.Height(nav) - lipgloss.Height(footer)
		if gap > 0 {
			nav += strings.Repeat("\n", gap)
		}
		return style.Render(nav + footer)
	}
	return style.Render(b.String() + footer)
}
