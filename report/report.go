// Package report renders the agent's Markdown report into sanitized HTML
// for saving or serving.
package report

import (
	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/microcosm-cc/bluemonday"
)

// RenderHTML converts Markdown to HTML and sanitizes the output with a
// user-generated-content policy. The result is safe to embed in a page.
func RenderHTML(md string) string {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	doc := p.Parse([]byte(md))

	renderer := html.NewRenderer(html.RendererOptions{
		Flags: html.CommonFlags | html.HrefTargetBlank,
	})
	raw := markdown.Render(doc, renderer)

	return string(bluemonday.UGCPolicy().SanitizeBytes(raw))
}
