package render

import (
	"html/template"
	"io"

	"github.com/NielsdaWheelz/ytgit/internal/errors"
	"github.com/NielsdaWheelz/ytgit/internal/markdown"
	"github.com/NielsdaWheelz/ytgit/internal/ticket"
	"github.com/NielsdaWheelz/ytgit/internal/tracker"
)

var pageTemplate = template.Must(template.New("ticket").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.ID}} {{.Summary}}</title>
</head>
<body>
<nav>
{{- range .Actions}}
<a class="action" data-command="{{.Command}}" href="{{.Href}}">{{.Label}}</a>
{{- end}}
</nav>
<h1><b>{{.ID}}</b> {{.Summary}}</h1>
<p>Created by {{if .ReporterURL}}<a href="{{.ReporterURL}}">{{.Reporter}}</a>{{else}}{{.Reporter}}{{end}} {{.Created}}</p>
<p>Updated by {{if .UpdaterURL}}<a href="{{.UpdaterURL}}">{{.Updater}}</a>{{else}}{{.Updater}}{{end}} {{.Updated}}</p>
<hr>
<main>
<article>
{{.Description}}
<section class="comments">
<h3>Comments</h3>
{{- range .Comments}}
<div class="comment">
<div><b>{{.Author}} • Commented {{.When}}</b></div>
{{.Body}}
</div>
{{- else}}
<p>No comments.</p>
{{- end}}
</section>
</article>
<aside class="fields">
<h3>Fields</h3>
{{- range .Fields}}
<div><b>{{.Name}}</b></div>
<div>{{.Value}}</div>
{{- end}}
</aside>
</main>
</body>
</html>
`))

type htmlAction struct {
	Command string
	Label   string
	Href    string
}

type htmlComment struct {
	Author string
	When   string
	Body   template.HTML
}

type htmlPage struct {
	ID, Summary           string
	Reporter, ReporterURL string
	Updater, UpdaterURL   string
	Created, Updated      string
	Description           template.HTML
	Comments              []htmlComment
	Fields                []FieldJSON
	Actions               []htmlAction
}

// WriteTicketHTML writes a standalone HTML page for t. Markdown is rendered
// with GitHub-flavored extensions after attachment rewriting. Action links
// carry their command name in data-command for a host page to intercept.
func WriteTicketHTML(w io.Writer, t ticket.Ticket, opts ViewOpts) error {
	now := opts.now()

	desc := Description(t, opts.Host)
	if desc == "" {
		desc = NoDescription
	}
	descHTML, err := markdown.RenderHTML(desc)
	if err != nil {
		return err
	}

	page := htmlPage{
		ID:          t.ID,
		Summary:     t.Summary,
		Reporter:    t.Reporter.DisplayName(),
		Updater:     t.Updater.DisplayName(),
		Created:     RelativeTime(t.Created, now),
		Updated:     RelativeTime(t.Updated, now),
		Description: template.HTML(descHTML),
	}
	if opts.Host != "" {
		if t.Reporter.Login != "" {
			page.ReporterURL = tracker.UserURL(opts.Host, t.Reporter.Login)
		}
		if t.Updater.Login != "" {
			page.UpdaterURL = tracker.UserURL(opts.Host, t.Updater.Login)
		}
	}

	for _, f := range t.Fields {
		page.Fields = append(page.Fields, FieldJSON{Name: f.Name, Value: f.Value.Display()})
	}
	for _, c := range SortedComments(t.Comments) {
		body, err := markdown.RenderHTML(CommentText(t, c, opts.Host))
		if err != nil {
			return err
		}
		page.Comments = append(page.Comments, htmlComment{
			Author: c.Author.DisplayName(),
			When:   RelativeTime(c.Created, now),
			Body:   template.HTML(body),
		})
	}

	href := "#"
	if opts.Host != "" {
		href = tracker.IssueURL(opts.Host, t.ID)
	}
	page.Actions = []htmlAction{
		{Command: "edit", Label: "Edit Issue", Href: href},
		{Command: "updateState", Label: "Update State", Href: href},
		{Command: "createBranch", Label: "Create Branch", Href: "#"},
		{Command: "addComment", Label: "Add Comment", Href: href},
	}

	if err := pageTemplate.Execute(w, page); err != nil {
		return errors.Wrap(errors.ERender, "failed to render ticket page", err)
	}
	return nil
}
