package ticket

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/NielsdaWheelz/ytgit/internal/errors"
)

// Format is a ticket document encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// wireTicket is the tracker's REST representation of an issue.
type wireTicket struct {
	IDReadable  string            `json:"idReadable"`
	Summary     string            `json:"summary"`
	Description *string           `json:"description"`
	Created     int64             `json:"created,omitempty"`
	Updated     int64             `json:"updated,omitempty"`
	Reporter    *wireUser         `json:"reporter,omitempty"`
	Updater     *wireUser         `json:"updater,omitempty"`
	Fields      []wireCustomField `json:"customFields"`
	Comments    []wireComment     `json:"comments,omitempty"`
	Attachments []wireAttachment  `json:"attachments,omitempty"`
}

type wireUser struct {
	Login    string `json:"login,omitempty"`
	FullName string `json:"fullName,omitempty"`
}

type wireCustomField struct {
	Name  string          `json:"name"`
	Value json.RawMessage `json:"value"`
}

type wireFieldValue struct {
	Name         string `json:"name,omitempty"`
	Minutes      int    `json:"minutes,omitempty"`
	Presentation string `json:"presentation,omitempty"`
}

type wireComment struct {
	ID      string    `json:"id"`
	Text    *string   `json:"text"`
	Created int64     `json:"created,omitempty"`
	Author  *wireUser `json:"author,omitempty"`
}

type wireAttachment struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Decode parses a ticket document in the tracker's REST shape.
// YAML documents use the same keys as JSON.
func Decode(data []byte, format Format) (Ticket, error) {
	if format == FormatYAML {
		converted, err := yamlToJSON(data)
		if err != nil {
			return Ticket{}, errors.Wrap(errors.EInvalidTicket, "invalid yaml: "+err.Error(), err)
		}
		data = converted
	}

	var w wireTicket
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&w); err != nil {
		return Ticket{}, errors.Wrap(errors.EInvalidTicket, "invalid json: "+err.Error(), err)
	}
	return fromWire(w)
}

// DecodeJSON parses a ticket from an already-extracted JSON value, as found
// inside host messages.
func DecodeJSON(raw json.RawMessage) (Ticket, error) {
	return Decode(raw, FormatJSON)
}

func fromWire(w wireTicket) (Ticket, error) {
	id := strings.TrimSpace(w.IDReadable)
	if id == "" {
		return Ticket{}, errors.New(errors.EInvalidTicket, "ticket is missing idReadable")
	}

	t := Ticket{
		ID:       w.IDReadable,
		Summary:  w.Summary,
		Created:  fromMillis(w.Created),
		Updated:  fromMillis(w.Updated),
		Reporter: fromWireUser(w.Reporter),
		Updater:  fromWireUser(w.Updater),
	}
	if w.Description != nil {
		t.Description = *w.Description
	}

	for i, f := range w.Fields {
		value, err := decodeFieldValue(f.Value)
		if err != nil {
			return Ticket{}, errors.WrapWithDetails(
				errors.EInvalidTicket,
				fmt.Sprintf("custom field %q has an unsupported value", f.Name),
				err,
				map[string]string{"ticket": id, "field": f.Name, "index": fmt.Sprintf("%d", i)},
			)
		}
		t.Fields = append(t.Fields, CustomField{Name: f.Name, Value: value})
	}

	for _, c := range w.Comments {
		comment := Comment{
			ID:      c.ID,
			Created: fromMillis(c.Created),
			Author:  fromWireUser(c.Author),
		}
		if c.Text != nil {
			comment.Text = *c.Text
		}
		t.Comments = append(t.Comments, comment)
	}

	for _, a := range w.Attachments {
		t.Attachments = append(t.Attachments, Attachment{Name: a.Name, URL: a.URL})
	}

	t.resolveTypedFields()
	return t, nil
}

// decodeFieldValue accepts the value shapes the tracker emits: null, an
// object with a name, a period object, an array of named objects (multi-value
// fields, joined with ", "), or a bare scalar.
func decodeFieldValue(raw json.RawMessage) (*FieldValue, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}

	switch trimmed[0] {
	case '{':
		var v wireFieldValue
		if err := json.Unmarshal(trimmed, &v); err != nil {
			return nil, err
		}
		return &FieldValue{Name: v.Name, Minutes: v.Minutes, Presentation: v.Presentation}, nil

	case '[':
		var values []wireFieldValue
		if err := json.Unmarshal(trimmed, &values); err != nil {
			return nil, err
		}
		if len(values) == 0 {
			return nil, nil
		}
		names := make([]string, 0, len(values))
		for _, v := range values {
			if v.Name != "" {
				names = append(names, v.Name)
			}
		}
		return &FieldValue{Name: strings.Join(names, ", ")}, nil

	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return nil, err
		}
		return &FieldValue{Name: s}, nil

	default:
		// numbers and booleans keep their literal text
		var scalar any
		if err := json.Unmarshal(trimmed, &scalar); err != nil {
			return nil, err
		}
		return &FieldValue{Name: string(trimmed)}, nil
	}
}

func fromWireUser(u *wireUser) User {
	if u == nil {
		return User{}
	}
	return User{Login: u.Login, FullName: u.FullName}
}

func fromMillis(ms int64) time.Time {
	if ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms).UTC()
}

func toMillis(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}

// yamlToJSON converts a YAML document into equivalent JSON so both formats
// share one decoding path.
func yamlToJSON(data []byte) ([]byte, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	normalized, err := normalizeYAML(doc)
	if err != nil {
		return nil, err
	}
	return json.Marshal(normalized)
}

// normalizeYAML rewrites map[any]any nodes (non-string keys) into
// map[string]any so encoding/json accepts them.
func normalizeYAML(v any) (any, error) {
	switch node := v.(type) {
	case map[string]any:
		for k, child := range node {
			n, err := normalizeYAML(child)
			if err != nil {
				return nil, err
			}
			node[k] = n
		}
		return node, nil
	case map[any]any:
		out := make(map[string]any, len(node))
		for k, child := range node {
			n, err := normalizeYAML(child)
			if err != nil {
				return nil, err
			}
			out[fmt.Sprint(k)] = n
		}
		return out, nil
	case []any:
		for i, child := range node {
			n, err := normalizeYAML(child)
			if err != nil {
				return nil, err
			}
			node[i] = n
		}
		return node, nil
	default:
		return node, nil
	}
}

// Encode writes a ticket back in the tracker's REST shape.
func Encode(t Ticket) ([]byte, error) {
	w := wireTicket{
		IDReadable: t.ID,
		Summary:    t.Summary,
		Created:    toMillis(t.Created),
		Updated:    toMillis(t.Updated),
		Reporter:   toWireUser(t.Reporter),
		Updater:    toWireUser(t.Updater),
		Fields:     []wireCustomField{},
	}
	if t.Description != "" {
		desc := t.Description
		w.Description = &desc
	}
	for _, f := range t.Fields {
		raw := json.RawMessage("null")
		if f.Value != nil {
			data, err := json.Marshal(wireFieldValue{Name: f.Value.Name, Minutes: f.Value.Minutes, Presentation: f.Value.Presentation})
			if err != nil {
				return nil, err
			}
			raw = data
		}
		w.Fields = append(w.Fields, wireCustomField{Name: f.Name, Value: raw})
	}
	for _, c := range t.Comments {
		text := c.Text
		w.Comments = append(w.Comments, wireComment{ID: c.ID, Text: &text, Created: toMillis(c.Created), Author: toWireUser(c.Author)})
	}
	for _, a := range t.Attachments {
		w.Attachments = append(w.Attachments, wireAttachment{Name: a.Name, URL: a.URL})
	}
	return json.Marshal(w)
}

func toWireUser(u User) *wireUser {
	if u == (User{}) {
		return nil
	}
	return &wireUser{Login: u.Login, FullName: u.FullName}
}
