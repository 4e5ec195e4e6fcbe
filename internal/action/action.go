// Package action defines the typed commands a ticket view can issue and
// dispatches them to handlers.
//
// Hosts send commands as {"command": "<kind>", "text": <payload>} messages.
// DecodeMessage turns that loosely-typed form into a Request whose payload
// matches its kind, so handlers never inspect raw JSON.
package action

import (
	"fmt"
	"strings"

	"github.com/NielsdaWheelz/ytgit/internal/errors"
	"github.com/NielsdaWheelz/ytgit/internal/ticket"
)

// Kind is the type of an action.
type Kind string

const (
	KindEdit         Kind = "edit"
	KindUpdateState  Kind = "updateState"
	KindCreateBranch Kind = "createBranch"
	KindAddComment   Kind = "addComment"
	KindOpen         Kind = "open"
)

// Kinds lists every action kind in display order.
var Kinds = []Kind{KindEdit, KindUpdateState, KindCreateBranch, KindAddComment, KindOpen}

// ParseKind returns the Kind named s, or E_UNKNOWN_ACTION.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if string(k) == s {
			return k, nil
		}
	}
	return Kind(s), errors.NewWithDetails(
		errors.EUnknownAction,
		fmt.Sprintf("unknown action %q", s),
		map[string]string{"hint": "known actions: " + kindList()},
	)
}

func kindList() string {
	names := make([]string, len(Kinds))
	for i, k := range Kinds {
		names[i] = string(k)
	}
	return strings.Join(names, ", ")
}

// Request is a single action. createBranch carries the full ticket; every
// other kind carries only the issue id.
type Request struct {
	Kind    Kind
	IssueID string
	Ticket  *ticket.Ticket
}

// Validate checks that the payload matches the kind.
func (r Request) Validate() error {
	if _, err := ParseKind(string(r.Kind)); err != nil {
		return err
	}
	if r.Kind == KindCreateBranch {
		if r.Ticket == nil {
			return errors.New(errors.EInvalidMessage, "createBranch requires a ticket")
		}
		if strings.TrimSpace(r.Ticket.ID) == "" {
			return errors.New(errors.EInvalidMessage, "createBranch ticket has no id")
		}
		return nil
	}
	if r.Ticket != nil {
		return errors.New(errors.EInvalidMessage, string(r.Kind)+" takes an issue id, not a ticket")
	}
	if strings.TrimSpace(r.IssueID) == "" {
		return errors.New(errors.EInvalidMessage, string(r.Kind)+" requires an issue id")
	}
	return nil
}

// Subject returns the issue id the request is about.
func (r Request) Subject() string {
	if r.Ticket != nil {
		return r.Ticket.ID
	}
	return r.IssueID
}

// NewIssueRequest builds a request for one of the id-carrying kinds.
func NewIssueRequest(kind Kind, issueID string) Request {
	return Request{Kind: kind, IssueID: issueID}
}

// NewBranchRequest builds a createBranch request.
func NewBranchRequest(t ticket.Ticket) Request {
	return Request{Kind: KindCreateBranch, Ticket: &t}
}
