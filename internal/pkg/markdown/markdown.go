// Package markdown renders GitHub flavoured Markdown for the content pages.
package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

type Renderer struct {
	md goldmark.Markdown
}

// NewRenderer builds a GFM renderer. Raw HTML in the source is dropped.
func NewRenderer() *Renderer {
	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		),
	}
}

// Render converts source to HTML. Links open in a new tab and mermaid code
// blocks are tagged so the client script can draw them.
func (r *Renderer) Render(source string) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(source), &buf); err != nil {
		return "", fmt.Errorf("failed to convert markdown: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(&buf)
	if err != nil {
		return "", fmt.Errorf("failed to parse rendered markdown: %w", err)
	}

	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		s.SetAttr("target", "_blank")
		s.SetAttr("rel", "noopener noreferrer")
	})
	doc.Find("pre code.language-mermaid").Each(func(_ int, s *goquery.Selection) {
		s.AddClass("mermaid")
	})

	html, err := doc.Find("body").Html()
	if err != nil {
		return "", fmt.Errorf("failed to serialize markdown: %w", err)
	}
	return strings.TrimSpace(html), nil
}
