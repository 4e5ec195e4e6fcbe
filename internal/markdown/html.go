package markdown

import (
	"bytes"

	"github.com/NielsdaWheelz/ytgit/internal/errors"
)

// RenderHTML converts GitHub-flavored markdown to an HTML fragment.
// Raw HTML in the source is omitted.
func RenderHTML(md string) (string, error) {
	var buf bytes.Buffer
	if err := parser().Convert([]byte(md), &buf); err != nil {
		return "", errors.Wrap(errors.ERender, "failed to render markdown", err)
	}
	return buf.String(), nil
}
