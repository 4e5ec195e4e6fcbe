// Package events records dispatched actions in an append-only JSONL log.
package events

import (
	"encoding/json"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/NielsdaWheelz/ytgit/internal/fs"
)

// SchemaVersion is the version of the Event record.
const SchemaVersion = "1.0"

// Event is a single line in events.jsonl.
// This is the public contract for the events file format.
type Event struct {
	SchemaVersion string `json:"schema_version"`
	ID            string `json:"event_id"` // random UUID
	Timestamp     string `json:"timestamp"` // RFC3339
	Action        string `json:"action"`
	IssueID       string `json:"issue_id,omitempty"`
	OK            bool   `json:"ok"`
	ErrorCode     string `json:"error_code,omitempty"`
}

// NewEvent builds an event stamped with at and a fresh id. errorCode is
// empty on success.
func NewEvent(at time.Time, action, issueID, errorCode string) Event {
	return Event{
		SchemaVersion: SchemaVersion,
		ID:            uuid.NewString(),
		Timestamp:     at.UTC().Format(time.RFC3339),
		Action:        action,
		IssueID:       issueID,
		OK:            errorCode == "",
		ErrorCode:     errorCode,
	}
}

// AppendEvent appends a single event to the events.jsonl file at path.
// The file and its parent directory are created lazily.
//
// Best-effort: errors are returned but callers should typically log them
// and continue with the main operation.
func AppendEvent(fsys fs.FS, path string, e Event) (err error) {
	if err := fsys.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := fsys.OpenAppend(path, 0o644)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	data, err := json.Marshal(e)
	if err != nil {
		return err
	}
	_, err = f.Write(append(data, '\n'))
	return err
}

// Log appends events to a fixed path.
type Log struct {
	FS   fs.FS
	Path string
}

// Append appends e to the log.
func (l Log) Append(e Event) error {
	return AppendEvent(l.FS, l.Path, e)
}
