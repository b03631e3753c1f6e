package console

import (
	"charm.land/lipgloss/v2"

	"tasnim.dev/ecr-mirror/internal/tui/theme"
)

// notice is the outcome callout every page uses after a submission.
type notice struct {
	failed  bool
	title   string
	message string
}

func successNotice(title, message string) *notice {
	return &notice{title: title, message: message}
}

func errorNotice(title, message string) *notice {
	return &notice{failed: true, title: title, message: message}
}

func (n *notice) render(width int) string {
	if n == nil {
		return ""
	}
	status := "success"
	if n.failed {
		status = "error"
	}
	style := theme.NoticeStyle(status)
	if width > 4 {
		style = style.Width(width)
	}
	body := lipgloss.NewStyle().Bold(true).Render(n.title)
	if n.message != "" {
		body += "\n" + n.message
	}
	return style.Render(body)
}
