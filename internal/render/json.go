package render

import (
	"encoding/json"
	"io"
	"time"

	"github.com/NielsdaWheelz/ytgit/internal/core"
	"github.com/NielsdaWheelz/ytgit/internal/errors"
	"github.com/NielsdaWheelz/ytgit/internal/ticket"
	"github.com/NielsdaWheelz/ytgit/internal/tracker"
)

// TicketJSONSchemaVersion is the schema version of the show --json output.
const TicketJSONSchemaVersion = "1.0"

// TicketJSON is the stable machine-readable detail view.
type TicketJSON struct {
	SchemaVersion string         `json:"schema_version"`
	ID            string         `json:"id"`
	Summary       string         `json:"summary"`
	URL           string         `json:"url,omitempty"`
	Created       string         `json:"created,omitempty"` // RFC3339
	Updated       string         `json:"updated,omitempty"` // RFC3339
	Reporter      ticket.User    `json:"reporter"`
	Updater       ticket.User    `json:"updater"`
	Fields        []FieldJSON    `json:"fields"`
	Description   string         `json:"description"` // attachment links rewritten
	Comments      []CommentJSON  `json:"comments"`    // newest first
	Branch        string         `json:"branch,omitempty"`
	BranchError   *BranchErrJSON `json:"branch_error,omitempty"`
}

// FieldJSON is a custom field with its display value.
type FieldJSON struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// CommentJSON is a comment in the JSON view.
type CommentJSON struct {
	ID      string `json:"id"`
	Author  string `json:"author"`
	Created string `json:"created,omitempty"`
	Text    string `json:"text"`
}

// BranchErrJSON explains why no branch name could be derived.
type BranchErrJSON struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// BuildTicketJSON assembles the JSON view of t. A branch name that cannot be
// derived is reported in BranchError rather than failing the whole view.
func BuildTicketJSON(t ticket.Ticket, host string) TicketJSON {
	out := TicketJSON{
		SchemaVersion: TicketJSONSchemaVersion,
		ID:            t.ID,
		Summary:       t.Summary,
		Created:       formatTime(t.Created),
		Updated:       formatTime(t.Updated),
		Reporter:      t.Reporter,
		Updater:       t.Updater,
		Fields:        []FieldJSON{},
		Description:   Description(t, host),
		Comments:      []CommentJSON{},
	}
	if host != "" {
		out.URL = tracker.IssueURL(host, t.ID)
	}
	for _, f := range t.Fields {
		out.Fields = append(out.Fields, FieldJSON{Name: f.Name, Value: f.Value.Display()})
	}
	for _, c := range SortedComments(t.Comments) {
		out.Comments = append(out.Comments, CommentJSON{
			ID:      c.ID,
			Author:  c.Author.DisplayName(),
			Created: formatTime(c.Created),
			Text:    CommentText(t, c, host),
		})
	}

	branch, err := core.DeriveBranchName(t)
	if err != nil {
		out.BranchError = &BranchErrJSON{Code: string(errors.GetCode(err)), Message: err.Error()}
		if e, ok := errors.AsError(err); ok {
			out.BranchError.Message = e.Msg
		}
	} else {
		out.Branch = branch
	}
	return out
}

// WriteTicketJSON writes the JSON view of t, indented.
func WriteTicketJSON(w io.Writer, t ticket.Ticket, host string) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(BuildTicketJSON(t, host))
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
