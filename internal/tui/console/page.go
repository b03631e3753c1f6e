package console

import (
	"context"

	tea "charm.land/bubbletea/v2"
	"github.com/sirupsen/logrus"

	"tasnim.dev/ecr-mirror/internal/api"
)

// Page is one routed screen of the console.
type Page interface {
	Route() Route
	Title() string
	View() string
	Update(msg tea.Msg) (Page, tea.Cmd)
	Init() tea.Cmd
	// Capturing reports whether a text field owns the keyboard, in which
	// case the shell leaves printable keys to the page.
	Capturing() bool
}

// ResizablePage is implemented by pages that adapt to window size.
type ResizablePage interface {
	Page
	SetSize(width, height int)
}

// CopyablePage is implemented by pages with something worth copying.
type CopyablePage interface {
	Page
	CopyText() string
}

// scope is the lifetime of one mounted page. ctx is cancelled when the user
// navigates away.
type scope struct {
	id     uint64
	ctx    context.Context
	source api.Source
	log    logrus.FieldLogger
}

// pageMsg is implemented by results of a page's asynchronous commands. The
// shell drops them once the issuing page is no longer mounted.
type pageMsg interface {
	scopeID() uint64
}

type scoped struct{ id uint64 }

func (s scoped) scopeID() uint64 { return s.id }
