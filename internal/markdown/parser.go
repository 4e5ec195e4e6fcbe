package markdown

import (
	"sync"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// The goldmark instance is configured once; Parse and Convert keep their
// state per call, so it is safe to share.
var (
	gfm     goldmark.Markdown
	gfmOnce sync.Once
)

func parser() goldmark.Markdown {
	gfmOnce.Do(func() {
		gfm = goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(html.WithXHTML()),
		)
	})
	return gfm
}
