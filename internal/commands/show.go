package commands

import (
	"context"
	"io"

	"github.com/NielsdaWheelz/ytgit/internal/errors"
	"github.com/NielsdaWheelz/ytgit/internal/fs"
	"github.com/NielsdaWheelz/ytgit/internal/render"
	"github.com/NielsdaWheelz/ytgit/internal/ticket"
)

// ShowOpts holds options for the show command.
type ShowOpts struct {
	CommonOpts

	// TicketPath is a JSON or YAML ticket file, or "-" for stdin.
	TicketPath string

	JSON bool
	HTML bool

	// Width overrides the wrap width. Zero means $COLUMNS, the terminal
	// width, or 80.
	Width int
}

// Show implements the `ytgit show` command.
func Show(ctx context.Context, fsys fs.FS, stdin io.Reader, opts ShowOpts, stdout, stderr io.Writer) error {
	if opts.JSON && opts.HTML {
		return errors.New(errors.EUsage, "--json and --html are mutually exclusive")
	}

	s, err := loadSettings(fsys, opts.CommonOpts)
	if err != nil {
		return err
	}
	logger := NewLogger(stderr, opts.Verbose)

	t, err := ticket.Load(fsys, opts.TicketPath, stdin)
	if err != nil {
		return err
	}
	logger.Debug("ticket loaded", "issue", t.ID, "fields", len(t.Fields), "comments", len(t.Comments))

	switch {
	case opts.JSON:
		return render.WriteTicketJSON(stdout, t, s.cfg.Host)
	case opts.HTML:
		return render.WriteTicketHTML(stdout, t, render.ViewOpts{Host: s.cfg.Host})
	}

	width := opts.Width
	if width <= 0 {
		width = terminalWidth(stdout)
	}
	return render.WriteTicket(stdout, t, render.ViewOpts{
		Host:  s.cfg.Host,
		Width: width,
		Color: s.color(stdout),
	})
}
