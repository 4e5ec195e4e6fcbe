// Package core derives git branch names from tickets.
package core

import (
	"strings"

	"github.com/NielsdaWheelz/ytgit/internal/errors"
	"github.com/NielsdaWheelz/ytgit/internal/ticket"
)

// Branch name separators.
const (
	segmentSep = "/"
	idSep      = "_"
)

// DeriveBranchName returns "<app>/<type>/<id>_<summary>" for t.
//
// App and Type are lower-cased; the id is copied verbatim; the summary goes
// through SanitizeSummary. The result is not validated against git's ref
// rules: callers must check it before creating the branch.
//
// Fails with E_MISSING_FIELD when the App or Type custom field is absent or
// null, and with E_INVALID_TICKET when the id is empty. No partial name is
// returned on failure.
func DeriveBranchName(t ticket.Ticket) (string, error) {
	if t.ID == "" {
		return "", errors.New(errors.EInvalidTicket, "ticket has no id")
	}
	app, err := requiredField(t, ticket.FieldApp, t.App)
	if err != nil {
		return "", err
	}
	typ, err := requiredField(t, ticket.FieldType, t.Type)
	if err != nil {
		return "", err
	}

	return strings.ToLower(app) + segmentSep +
		strings.ToLower(typ) + segmentSep +
		t.ID + idSep + SanitizeSummary(t.Summary), nil
}

func requiredField(t ticket.Ticket, name string, v *ticket.FieldValue) (string, error) {
	if v == nil || v.Name == "" {
		return "", errors.NewWithDetails(
			errors.EMissingField,
			"issue "+t.ID+" has no value for custom field "+name,
			map[string]string{
				"issue": t.ID,
				"field": name,
				"hint":  "branch names are built as <app>/<type>/<id>_<summary>",
			},
		)
	}
	return v.Name, nil
}
