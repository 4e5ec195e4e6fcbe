package ticket

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/NielsdaWheelz/ytgit/internal/errors"
	"github.com/NielsdaWheelz/ytgit/internal/fs"
)

// StdinPath is the path argument that selects standard input.
const StdinPath = "-"

// FormatForPath picks the document format from a file extension.
// Standard input and unknown extensions are treated as JSON.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Load reads and decodes a ticket document. A path of "-" reads stdin.
func Load(fsys fs.FS, path string, stdin io.Reader) (Ticket, error) {
	if path == "" {
		return Ticket{}, errors.New(errors.EUsage, "ticket file is required (use - for stdin)")
	}

	var data []byte
	var err error
	if path == StdinPath {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = fsys.ReadFile(path)
	}
	if err != nil {
		msg := "failed to read ticket file"
		if os.IsNotExist(err) {
			msg = "ticket file not found"
		}
		return Ticket{}, errors.WrapWithDetails(errors.ETicketReadFailed, msg, err, map[string]string{"path": path})
	}

	t, err := Decode(data, FormatForPath(path))
	if err != nil {
		if e, ok := errors.AsError(err); ok {
			details := map[string]string{"path": path}
			for k, v := range e.Details {
				details[k] = v
			}
			return Ticket{}, errors.WrapWithDetails(e.Code, e.Msg, e.Cause, details)
		}
		return Ticket{}, err
	}
	return t, nil
}
