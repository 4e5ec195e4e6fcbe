package markdown

import (
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"github.com/yuin/goldmark/ast"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// wrapBreakpoints are the characters ansi.Wrap may break a long word at.
const wrapBreakpoints = " ,.;-+|"

// minContentWidth keeps deeply nested content from wrapping one word per line.
const minContentWidth = 10

// Options controls terminal rendering.
type Options struct {
	// Width is the wrap width in cells. Zero means 80.
	Width int

	// Color enables ANSI styling and code highlighting. When false the
	// output is plain text.
	Color bool

	Theme Theme
}

// RenderTerminal renders GitHub-flavored markdown as terminal text.
// Soft line breaks reflow into spaces; paragraphs wrap at opts.Width.
func RenderTerminal(md string, opts Options) string {
	if md == "" {
		return ""
	}
	if opts.Width <= 0 {
		opts.Width = 80
	}
	if opts.Theme.CodeStyle == "" {
		opts.Theme = DefaultTheme
	}

	source := []byte(md)
	doc := parser().Parser().Parse(text.NewReader(source))

	r := &termRenderer{
		source: source,
		opts:   opts,
		styles: NewStyleRenderer(io.Discard, opts.Color),
	}
	_ = ast.Walk(doc, r.walk)

	out := strings.TrimRight(r.out.String(), "\n")
	if !opts.Color {
		out = ansi.Strip(out)
	}
	return out
}

// NewStyleRenderer returns a lipgloss renderer with a fixed color profile:
// ANSI256 when color is on, plain ASCII otherwise. Fixing the profile keeps
// output independent of the environment lipgloss would otherwise probe.
func NewStyleRenderer(w io.Writer, color bool) *lipgloss.Renderer {
	profile := termenv.Ascii
	if color {
		profile = termenv.ANSI256
	}
	r := lipgloss.NewRenderer(w, termenv.WithProfile(profile))
	r.SetColorProfile(profile)
	return r
}

type listFrame struct {
	ordered bool
	next    int
	tight   bool
}

// termRenderer walks the goldmark AST. Inline content of a block collects
// in inline and is wrapped as a unit when the block closes.
type termRenderer struct {
	source []byte
	opts   Options
	styles *lipgloss.Renderer

	out      strings.Builder
	newlines int // trailing newlines currently at the end of out

	inline strings.Builder

	prefixes    []string
	prefix      string
	prefixWidth int
	bullet      string // replaces prefix on the next emitted line

	bold, italic, strike int

	lists []listFrame
}

func (r *termRenderer) style() lipgloss.Style {
	return r.styles.NewStyle()
}

func (r *termRenderer) faint(s string) string {
	return r.style().Foreground(r.opts.Theme.Faint).Render(s)
}

func (r *termRenderer) width() int {
	w := r.opts.Width - r.prefixWidth
	if w < minContentWidth {
		w = minContentWidth
	}
	return w
}

func (r *termRenderer) push(prefix string, width int) {
	r.prefixes = append(r.prefixes, prefix)
	r.prefix += prefix
	r.prefixWidth += width
}

func (r *termRenderer) pop(width int) {
	if len(r.prefixes) == 0 {
		return
	}
	last := r.prefixes[len(r.prefixes)-1]
	r.prefixes = r.prefixes[:len(r.prefixes)-1]
	r.prefix = r.prefix[:len(r.prefix)-len(last)]
	r.prefixWidth -= width
}

func (r *termRenderer) tight() bool {
	return len(r.lists) > 0 && r.lists[len(r.lists)-1].tight
}

func (r *termRenderer) write(s string) {
	if s == "" {
		return
	}
	r.out.WriteString(s)
	trimmed := strings.TrimRight(s, "\n")
	if trimmed == "" {
		r.newlines += len(s)
		return
	}
	r.newlines = len(s) - len(trimmed)
}

func (r *termRenderer) newline() {
	if r.newlines < 1 {
		r.write("\n")
	}
}

func (r *termRenderer) blankLine() {
	if r.out.Len() == 0 {
		return
	}
	for r.newlines < 2 {
		r.write("\n")
	}
}

func (r *termRenderer) linePrefix() string {
	if r.bullet != "" {
		b := r.bullet
		r.bullet = ""
		return b
	}
	return r.prefix
}

func (r *termRenderer) prefixLines(content string) string {
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		if i == 0 {
			lines[i] = r.linePrefix() + line
		} else {
			lines[i] = r.prefix + line
		}
	}
	return strings.Join(lines, "\n")
}

func (r *termRenderer) flush() string {
	content := r.inline.String()
	r.inline.Reset()
	if content == "" {
		return ""
	}
	return r.prefixLines(ansi.Wrap(content, r.width(), wrapBreakpoints))
}

func (r *termRenderer) styled(s string) string {
	st := r.style().Foreground(r.opts.Theme.Text)
	if r.bold > 0 {
		st = st.Bold(true)
	}
	if r.italic > 0 {
		st = st.Italic(true)
	}
	if r.strike > 0 {
		st = st.Strikethrough(true)
	}
	return st.Render(s)
}

// inlineOf renders the children of n into a string without disturbing the
// block currently being accumulated.
func (r *termRenderer) inlineOf(n ast.Node) string {
	saved := r.inline.String()
	bold, italic, strike := r.bold, r.italic, r.strike

	r.inline.Reset()
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		_ = ast.Walk(c, r.walk)
	}
	result := r.inline.String()

	r.inline.Reset()
	r.inline.WriteString(saved)
	r.bold, r.italic, r.strike = bold, italic, strike
	return result
}

func (r *termRenderer) linesOf(n ast.Node) string {
	var b strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		b.Write(seg.Value(r.source))
	}
	return b.String()
}

func (r *termRenderer) highlight(code, language string) string {
	if language == "" || !r.opts.Color {
		return r.faint(code)
	}
	var b strings.Builder
	if err := quick.Highlight(&b, code, language, "terminal256", r.opts.Theme.CodeStyle); err != nil {
		return r.faint(code)
	}
	return b.String()
}

func (r *termRenderer) walk(n ast.Node, entering bool) (ast.WalkStatus, error) {
	switch n.Kind() {
	case ast.KindParagraph, ast.KindTextBlock:
		if entering {
			r.inline.Reset()
			break
		}
		if s := r.flush(); s != "" {
			r.write(s)
			r.newline()
			if !r.tight() {
				r.blankLine()
			}
		}

	case ast.KindHeading:
		if entering {
			r.inline.Reset()
			break
		}
		r.heading(n.(*ast.Heading))

	case ast.KindFencedCodeBlock:
		if entering {
			block := n.(*ast.FencedCodeBlock)
			r.code(r.highlight(r.linesOf(block), string(block.Language(r.source))))
		}
		return ast.WalkSkipChildren, nil

	case ast.KindCodeBlock:
		if entering {
			r.code(r.faint(r.linesOf(n)))
		}
		return ast.WalkSkipChildren, nil

	case ast.KindBlockquote:
		if entering {
			r.push("│ ", 2)
		} else {
			r.pop(2)
			r.blankLine()
		}

	case ast.KindList:
		if entering {
			list := n.(*ast.List)
			frame := listFrame{ordered: list.IsOrdered(), tight: list.IsTight}
			if frame.ordered {
				frame.next = list.Start
			}
			r.lists = append(r.lists, frame)
		} else {
			r.lists = r.lists[:len(r.lists)-1]
			if !r.tight() {
				r.blankLine()
			}
		}

	case ast.KindListItem:
		r.listItem(entering)

	case ast.KindThematicBreak:
		if entering {
			r.blankLine()
			rule := r.style().Foreground(r.opts.Theme.Border).Render(strings.Repeat("─", r.width()))
			r.write(r.prefixLines(rule))
			r.newline()
			r.blankLine()
		}

	case ast.KindHTMLBlock:
		if entering {
			if stripped := strings.TrimSpace(stripTags(r.linesOf(n))); stripped != "" {
				r.write(r.prefixLines(r.faint(stripped)))
				r.newline()
				r.blankLine()
			}
		}
		return ast.WalkSkipChildren, nil

	case ast.KindText:
		if entering {
			t := n.(*ast.Text)
			r.inline.WriteString(r.styled(string(t.Segment.Value(r.source))))
			if t.SoftLineBreak() {
				r.inline.WriteString(" ")
			}
			if t.HardLineBreak() {
				r.inline.WriteString("\n")
			}
		}

	case ast.KindString:
		if entering {
			r.inline.WriteString(r.styled(string(n.(*ast.String).Value)))
		}

	case ast.KindEmphasis:
		counter := &r.italic
		if n.(*ast.Emphasis).Level >= 2 {
			counter = &r.bold
		}
		if entering {
			*counter++
		} else {
			*counter--
		}

	case ast.KindCodeSpan:
		if entering {
			var b strings.Builder
			for c := n.FirstChild(); c != nil; c = c.NextSibling() {
				switch v := c.(type) {
				case *ast.Text:
					b.Write(v.Segment.Value(r.source))
				case *ast.String:
					b.Write(v.Value)
				}
			}
			r.inline.WriteString(r.style().Foreground(r.opts.Theme.Accent).Render(b.String()))
		}
		return ast.WalkSkipChildren, nil

	case ast.KindLink:
		if entering {
			link := n.(*ast.Link)
			r.inline.WriteString(r.inlineOf(link))
			if dest := string(link.Destination); dest != "" {
				r.inline.WriteString(" " + r.style().Foreground(r.opts.Theme.Link).Render("("+dest+")"))
			}
		}
		return ast.WalkSkipChildren, nil

	case ast.KindAutoLink:
		if entering {
			url := string(n.(*ast.AutoLink).URL(r.source))
			r.inline.WriteString(r.style().Foreground(r.opts.Theme.Link).Render(url))
		}
		return ast.WalkSkipChildren, nil

	case ast.KindImage:
		if entering {
			img := n.(*ast.Image)
			r.inline.WriteString(r.faint("[" + ansi.Strip(r.inlineOf(img)) + "]"))
			if dest := string(img.Destination); dest != "" {
				r.inline.WriteString(" " + r.style().Foreground(r.opts.Theme.Link).Render("("+dest+")"))
			}
		}
		return ast.WalkSkipChildren, nil

	case ast.KindRawHTML:
		if entering {
			raw := n.(*ast.RawHTML)
			var b strings.Builder
			for i := 0; i < raw.Segments.Len(); i++ {
				seg := raw.Segments.At(i)
				b.Write(seg.Value(r.source))
			}
			if stripped := stripTags(b.String()); stripped != "" {
				r.inline.WriteString(r.faint(stripped))
			}
		}

	case extast.KindStrikethrough:
		if entering {
			r.strike++
		} else {
			r.strike--
		}

	case extast.KindTaskCheckBox:
		if entering {
			if n.(*extast.TaskCheckBox).IsChecked {
				r.inline.WriteString(r.style().Foreground(r.opts.Theme.Success).Render("[x]") + " ")
			} else {
				r.inline.WriteString(r.styled("[ ] "))
			}
		}

	case extast.KindTable:
		if entering {
			r.table(n.(*extast.Table))
		}
		return ast.WalkSkipChildren, nil
	}

	return ast.WalkContinue, nil
}

func (r *termRenderer) heading(h *ast.Heading) {
	content := ansi.Strip(r.inline.String())
	r.inline.Reset()
	if content == "" {
		return
	}
	st := r.style().Bold(true).Foreground(r.opts.Theme.Text)
	if h.Level <= 2 {
		st = st.Foreground(r.opts.Theme.Heading).Underline(h.Level == 1)
	}
	r.blankLine()
	r.write(r.prefixLines(ansi.Wrap(st.Render(content), r.width(), wrapBreakpoints)))
	r.newline()
	r.blankLine()
}

func (r *termRenderer) code(rendered string) {
	r.blankLine()
	for _, line := range strings.Split(strings.TrimRight(rendered, "\n"), "\n") {
		r.write(r.linePrefix() + "    " + line)
		r.newline()
	}
	r.blankLine()
}

func (r *termRenderer) listItem(entering bool) {
	if len(r.lists) == 0 {
		return
	}
	if !entering {
		r.pop(len(r.prefixes[len(r.prefixes)-1]))
		if r.tight() {
			r.newline()
		} else {
			r.blankLine()
		}
		return
	}

	frame := &r.lists[len(r.lists)-1]
	marker := "• "
	if frame.ordered {
		marker = fmt.Sprintf("%d. ", frame.next)
		frame.next++
	}
	width := lipgloss.Width(marker)
	r.bullet = r.prefix + marker
	r.push(strings.Repeat(" ", width), width)
}

func (r *termRenderer) table(t *extast.Table) {
	var rows [][]string
	header := -1
	for row := t.FirstChild(); row != nil; row = row.NextSibling() {
		if row.Kind() == extast.KindTableHeader {
			header = len(rows)
		}
		var cells []string
		for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
			cells = append(cells, r.inlineOf(cell))
		}
		rows = append(rows, cells)
	}
	if len(rows) == 0 {
		return
	}

	widths := make([]int, len(t.Alignments))
	for _, row := range rows {
		for i, cell := range row {
			if i >= len(widths) {
				widths = append(widths, 0)
			}
			if w := lipgloss.Width(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	r.blankLine()
	for i, row := range rows {
		var parts []string
		for col, w := range widths {
			cell := ""
			if col < len(row) {
				cell = row[col]
			}
			align := extast.AlignNone
			if col < len(t.Alignments) {
				align = t.Alignments[col]
			}
			parts = append(parts, pad(cell, w, align))
		}
		line := strings.Join(parts, "  ")
		if i == header {
			line = r.style().Bold(true).Render(ansi.Strip(line))
		}
		r.write(r.linePrefix() + line)
		r.newline()
		if i == header {
			var rules []string
			for _, w := range widths {
				rules = append(rules, strings.Repeat("─", w))
			}
			r.write(r.prefix + r.style().Foreground(r.opts.Theme.Border).Render(strings.Join(rules, "  ")))
			r.newline()
		}
	}
	r.blankLine()
}

func pad(cell string, width int, align extast.Alignment) string {
	gap := width - lipgloss.Width(cell)
	if gap <= 0 {
		return cell
	}
	switch align {
	case extast.AlignRight:
		return strings.Repeat(" ", gap) + cell
	case extast.AlignCenter:
		left := gap / 2
		return strings.Repeat(" ", left) + cell + strings.Repeat(" ", gap-left)
	default:
		return cell + strings.Repeat(" ", gap)
	}
}

func stripTags(s string) string {
	var b strings.Builder
	inTag := false
	for _, c := range s {
		switch {
		case c == '<':
			inTag = true
		case c == '>':
			inTag = false
		case !inTag:
			b.WriteRune(c)
		}
	}
	return b.String()
}
