package action

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/NielsdaWheelz/ytgit/internal/errors"
	"github.com/NielsdaWheelz/ytgit/internal/markdown"
)

// StyledNotifier writes notifications to a terminal stream.
type StyledNotifier struct {
	mu      sync.Mutex
	w       io.Writer
	verbose bool
	info    lipgloss.Style
	fail    lipgloss.Style
}

// NewStyledNotifier returns a Notifier writing to w. Errors are printed in
// the standard error format; verbose adds extra details and causes.
func NewStyledNotifier(w io.Writer, color, verbose bool, theme markdown.Theme) *StyledNotifier {
	r := markdown.NewStyleRenderer(w, color)
	return &StyledNotifier{
		w:       w,
		verbose: verbose,
		info:    r.NewStyle().Foreground(theme.Success),
		fail:    r.NewStyle().Bold(true).Foreground(theme.Error),
	}
}

// Info prints msg.
func (n *StyledNotifier) Info(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	fmt.Fprintln(n.w, n.info.Render(msg))
}

// Error prints err with its first line highlighted.
func (n *StyledNotifier) Error(err error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := errors.Format(err, errors.PrintOptions{Verbose: n.verbose})
	first, rest, _ := strings.Cut(out, "\n")
	fmt.Fprint(n.w, n.fail.Render(first)+"\n"+rest)
}
