// Package render formats the ticket detail view for terminal, JSON and HTML
// output.
package render

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/dustin/go-humanize"

	"github.com/NielsdaWheelz/ytgit/internal/markdown"
	"github.com/NielsdaWheelz/ytgit/internal/ticket"
	"github.com/NielsdaWheelz/ytgit/internal/tracker"
)

// Placeholders for missing content.
const (
	NoDescription = "No description."
	NoComments    = "No comments."
	UnknownTime   = "at an unknown time"
)

// ViewOpts configures the detail view.
type ViewOpts struct {
	// Host is the tracker base URL. Attachment filenames in markdown are
	// rewritten to Host+attachment.URL. May be empty.
	Host string

	// Width is the terminal width used for wrapping. Zero means 80.
	Width int

	// Color enables ANSI styling.
	Color bool

	Theme markdown.Theme

	// Now anchors relative timestamps. Nil means time.Now.
	Now func() time.Time
}

func (o ViewOpts) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}

func (o ViewOpts) width() int {
	if o.Width <= 0 {
		return 80
	}
	return o.Width
}

func (o ViewOpts) theme() markdown.Theme {
	if o.Theme.CodeStyle == "" {
		return markdown.DefaultTheme
	}
	return o.Theme
}

// RelativeTime formats t relative to now, e.g. "3 days ago".
func RelativeTime(t, now time.Time) string {
	if t.IsZero() {
		return UnknownTime
	}
	return humanize.RelTime(t, now, "ago", "from now")
}

// SortedComments returns the comments newest first. Comments with equal
// timestamps keep their original order.
func SortedComments(comments []ticket.Comment) []ticket.Comment {
	sorted := make([]ticket.Comment, len(comments))
	copy(sorted, comments)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Created.After(sorted[j].Created)
	})
	return sorted
}

// Description returns the ticket description with attachment links rewritten.
func Description(t ticket.Ticket, host string) string {
	return markdown.RewriteAttachmentLinks(t.Description, host, t.Attachments)
}

// CommentText returns a comment's text with attachment links rewritten.
func CommentText(t ticket.Ticket, c ticket.Comment, host string) string {
	return markdown.RewriteAttachmentLinks(c.Text, host, t.Attachments)
}

// WriteTicket writes the terminal detail view of t:
// title block, custom fields, description, comments (newest first) and the
// available actions.
func WriteTicket(w io.Writer, t ticket.Ticket, opts ViewOpts) error {
	theme := opts.theme()
	styles := markdown.NewStyleRenderer(w, opts.Color)
	now := opts.now()
	mdOpts := markdown.Options{Width: opts.width(), Color: opts.Color, Theme: theme}

	bold := styles.NewStyle().Bold(true)
	faint := styles.NewStyle().Foreground(theme.Faint)
	heading := styles.NewStyle().Bold(true).Foreground(theme.Heading)
	rule := styles.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", opts.width()))

	var b strings.Builder

	// Title block
	b.WriteString(bold.Render(t.ID) + " " + t.Summary + "\n")
	b.WriteString(faint.Render(byline("Created by", t.Reporter, t.Created, now, opts.Host)) + "\n")
	b.WriteString(faint.Render(byline("Updated by", t.Updater, t.Updated, now, opts.Host)) + "\n")
	b.WriteString(rule + "\n\n")

	// Fields
	b.WriteString(heading.Render("Fields") + "\n")
	b.WriteString(fieldsBlock(t.Fields, bold))
	b.WriteString("\n")

	// Description
	b.WriteString(heading.Render("Description") + "\n")
	if desc := Description(t, opts.Host); strings.TrimSpace(desc) != "" {
		b.WriteString(markdown.RenderTerminal(desc, mdOpts) + "\n")
	} else {
		b.WriteString(faint.Render(NoDescription) + "\n")
	}
	b.WriteString("\n")

	// Comments
	b.WriteString(heading.Render("Comments") + "\n")
	comments := SortedComments(t.Comments)
	if len(comments) == 0 {
		b.WriteString(faint.Render(NoComments) + "\n")
	}
	for i, c := range comments {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(bold.Render(c.Author.DisplayName()+" • Commented "+RelativeTime(c.Created, now)) + "\n")
		if text := CommentText(t, c, opts.Host); text != "" {
			b.WriteString(markdown.RenderTerminal(text, mdOpts) + "\n")
		}
	}

	// Actions
	b.WriteString("\n" + rule + "\n")
	b.WriteString(faint.Render(actionsLine(t.ID)) + "\n")

	out := b.String()
	if !opts.Color {
		out = ansi.Strip(out)
	}
	_, err := io.WriteString(w, out)
	return err
}

func byline(verb string, u ticket.User, at, now time.Time, host string) string {
	line := verb + " " + u.DisplayName()
	if host != "" && u.Login != "" {
		line += " <" + tracker.UserURL(host, u.Login) + ">"
	}
	return line + " " + RelativeTime(at, now)
}

func fieldsBlock(fields []ticket.CustomField, bold lipgloss.Style) string {
	if len(fields) == 0 {
		return "  -\n"
	}
	nameWidth := 0
	for _, f := range fields {
		if w := ansi.StringWidth(f.Name); w > nameWidth {
			nameWidth = w
		}
	}
	var b strings.Builder
	for _, f := range fields {
		label := f.Name + ":" + strings.Repeat(" ", nameWidth-ansi.StringWidth(f.Name))
		fmt.Fprintf(&b, "  %s %s\n", bold.Render(label), f.Value.Display())
	}
	return b.String()
}

func actionsLine(id string) string {
	return fmt.Sprintf("ytgit edit %[1]s · ytgit state %[1]s · ytgit comment %[1]s · ytgit branch <ticket-file>", id)
}
