package action

import (
	"bytes"
	"encoding/json"

	"github.com/NielsdaWheelz/ytgit/internal/errors"
	"github.com/NielsdaWheelz/ytgit/internal/ticket"
)

// Message is the wire form exchanged with a host.
type Message struct {
	Command string          `json:"command"`
	Text    json.RawMessage `json:"text"`
}

// DecodeMessage parses a wire message into a validated Request.
// On failure the returned Request still carries the raw command as its Kind
// when one could be read, so the failure can be attributed.
func DecodeMessage(data []byte) (Request, error) {
	var m Message
	if err := json.Unmarshal(data, &m); err != nil {
		return Request{}, errors.Wrap(errors.EInvalidMessage, "invalid message: "+err.Error(), err)
	}

	kind, err := ParseKind(m.Command)
	if err != nil {
		return Request{Kind: kind}, err
	}

	text := bytes.TrimSpace(m.Text)
	if len(text) == 0 || bytes.Equal(text, []byte("null")) {
		return Request{Kind: kind}, errors.New(errors.EInvalidMessage, string(kind)+" message has no text")
	}

	var req Request
	if kind == KindCreateBranch {
		if text[0] != '{' {
			return Request{Kind: kind}, errors.New(errors.EInvalidMessage, "createBranch text must be a ticket object")
		}
		t, err := ticket.DecodeJSON(json.RawMessage(text))
		if err != nil {
			return Request{Kind: kind}, err
		}
		req = NewBranchRequest(t)
	} else {
		var id string
		if err := json.Unmarshal(text, &id); err != nil {
			return Request{Kind: kind}, errors.Wrap(errors.EInvalidMessage, string(kind)+" text must be an issue id string", err)
		}
		req = NewIssueRequest(kind, id)
	}

	if err := req.Validate(); err != nil {
		return Request{Kind: kind}, err
	}
	return req, nil
}

// EncodeMessage converts a Request to its wire form.
func EncodeMessage(req Request) ([]byte, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var text []byte
	var err error
	if req.Kind == KindCreateBranch {
		text, err = ticket.Encode(*req.Ticket)
	} else {
		text, err = json.Marshal(req.IssueID)
	}
	if err != nil {
		return nil, errors.Wrap(errors.EInternal, "failed to encode message", err)
	}
	return json.Marshal(Message{Command: string(req.Kind), Text: text})
}
