// Package ticket models issue-tracker tickets as ytgit consumes them.
//
// Tickets arrive in the tracker's REST shape, where custom fields are a
// dynamically-typed list searched by name. Decode normalizes that shape once:
// the fields ytgit depends on (App, Type) are lifted into typed struct fields
// so no use site repeats the lookup.
package ticket

import "time"

// Well-known custom field names.
const (
	FieldApp  = "App"
	FieldType = "Type"
)

// Ticket is a single issue record.
type Ticket struct {
	ID          string        `json:"id"`
	Summary     string        `json:"summary"`
	Description string        `json:"description,omitempty"`
	Created     time.Time     `json:"created,omitempty"`
	Updated     time.Time     `json:"updated,omitempty"`
	Reporter    User          `json:"reporter"`
	Updater     User          `json:"updater"`
	Fields      []CustomField `json:"custom_fields"`
	Comments    []Comment     `json:"comments,omitempty"`
	Attachments []Attachment  `json:"attachments,omitempty"`

	// App and Type are resolved from Fields at ingestion. Nil when the field
	// is absent or its value is null.
	App  *FieldValue `json:"-"`
	Type *FieldValue `json:"-"`
}

// User is a tracker account.
type User struct {
	Login    string `json:"login,omitempty"`
	FullName string `json:"full_name,omitempty"`
}

// DisplayName returns the full name, falling back to the login.
func (u User) DisplayName() string {
	if u.FullName != "" {
		return u.FullName
	}
	if u.Login != "" {
		return u.Login
	}
	return "unknown"
}

// CustomField is a named metadata slot on a ticket.
type CustomField struct {
	Name  string      `json:"name"`
	Value *FieldValue `json:"value"`
}

// FieldValue is the value of a custom field. Enum-like fields carry Name;
// period fields carry Minutes and a human Presentation such as "1h 30m".
type FieldValue struct {
	Name         string `json:"name,omitempty"`
	Minutes      int    `json:"minutes,omitempty"`
	Presentation string `json:"presentation,omitempty"`
}

// Display returns the user-facing value of a field: the period presentation
// for period fields, the name otherwise, "-" when neither is available.
func (v *FieldValue) Display() string {
	if v == nil {
		return "-"
	}
	if v.Minutes > 0 {
		if v.Presentation != "" {
			return v.Presentation
		}
		return "-"
	}
	if v.Name != "" {
		return v.Name
	}
	return "-"
}

// Comment is a ticket comment.
type Comment struct {
	ID      string    `json:"id"`
	Text    string    `json:"text"`
	Created time.Time `json:"created,omitempty"`
	Author  User      `json:"author"`
}

// Attachment is a file attached to a ticket. Name is the stored filename as
// it appears in markdown; URL is relative to the tracker host.
type Attachment struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Field returns the first custom field with the given name.
func (t *Ticket) Field(name string) (CustomField, bool) {
	for _, f := range t.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return CustomField{}, false
}

// resolveTypedFields populates App and Type from Fields.
// The first field with a given name wins.
func (t *Ticket) resolveTypedFields() {
	t.App = nil
	t.Type = nil
	if f, ok := t.Field(FieldApp); ok {
		t.App = f.Value
	}
	if f, ok := t.Field(FieldType); ok {
		t.Type = f.Value
	}
}
