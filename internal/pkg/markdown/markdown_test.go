package markdown

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestRender(t *testing.T) {
	r := NewRenderer()

	t.Run("links open in a new tab", func(t *testing.T) {
		html, err := r.Render("Read [my notes](https://example.com/notes).")
		require.NoError(t, err)

		a := parse(t, html).Find("a")
		require.Equal(t, 1, a.Length())
		target, _ := a.Attr("target")
		rel, _ := a.Attr("rel")
		href, _ := a.Attr("href")
		assert.Equal(t, "_blank", target)
		assert.Equal(t, "noopener noreferrer", rel)
		assert.Equal(t, "https://example.com/notes", href)
	})

	t.Run("mermaid blocks are tagged", func(t *testing.T) {
		html, err := r.Render("```mermaid\ngraph TD; A-->B;\n```\n\n```go\nfmt.Println()\n```")
		require.NoError(t, err)

		doc := parse(t, html)
		assert.Equal(t, 1, doc.Find("code.mermaid").Length())
		assert.Equal(t, 1, doc.Find("code.language-go").Length())
		assert.Equal(t, 0, doc.Find("code.language-go.mermaid").Length())
	})

	t.Run("gfm tables and heading ids", func(t *testing.T) {
		html, err := r.Render("# Working hours\n\n| day | hours |\n|---|---|\n| mon | 9-5 |\n")
		require.NoError(t, err)

		doc := parse(t, html)
		id, _ := doc.Find("h1").Attr("id")
		assert.Equal(t, "working-hours", id)
		assert.Equal(t, 1, doc.Find("table").Length())
	})

	t.Run("raw html is not passed through", func(t *testing.T) {
		html, err := r.Render("hello <script>alert(1)</script>")
		require.NoError(t, err)
		assert.Equal(t, 0, parse(t, html).Find("script").Length())
	})

	t.Run("output is a fragment", func(t *testing.T) {
		html, err := r.Render("plain")
		require.NoError(t, err)
		assert.Equal(t, "<p>plain</p>", html)
	})
}
