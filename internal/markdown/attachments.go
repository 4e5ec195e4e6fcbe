// Package markdown prepares ticket markdown for display: attachment link
// rewriting, terminal rendering and HTML rendering.
package markdown

import (
	"strings"

	"github.com/NielsdaWheelz/ytgit/internal/ticket"
)

// RewriteAttachmentLinks replaces every occurrence of each attachment's
// stored filename in md with host+attachment.URL, in attachment order.
//
// This is plain substring replacement, not a markdown-aware link rewrite: a
// filename that appears inside a longer word is rewritten too, and a later
// attachment sees the text produced by earlier ones. Attachments without a
// name are skipped.
func RewriteAttachmentLinks(md, host string, attachments []ticket.Attachment) string {
	for _, a := range attachments {
		if a.Name == "" {
			continue
		}
		md = strings.ReplaceAll(md, a.Name, host+a.URL)
	}
	return md
}
