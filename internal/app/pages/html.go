package pages

import (
	"context"
	"io"

	twmerge "github.com/Oudwins/tailwind-merge-go"
	"github.com/a-h/templ"
)

// htmlWriter stops writing after the first error so components can emit
// markup without checking every call.
type htmlWriter struct {
	ctx context.Context
	w   io.Writer
	err error
}

func newHTMLWriter(ctx context.Context, w io.Writer) *htmlWriter {
	return &htmlWriter{ctx: ctx, w: w}
}

func (h *htmlWriter) raw(s string) {
	if h.err != nil {
		return
	}
	_, h.err = io.WriteString(h.w, s)
}

func (h *htmlWriter) text(s string) {
	h.raw(templ.EscapeString(s))
}

func (h *htmlWriter) attr(name, value string) {
	h.raw(" " + name + `="` + templ.EscapeString(value) + `"`)
}

func (h *htmlWriter) href(url string) {
	h.attr("href", string(templ.URL(url)))
}

func (h *htmlWriter) class(classes ...string) {
	h.attr("class", twmerge.Merge(classes...))
}

func (h *htmlWriter) open(tag string, classes ...string) {
	h.raw("<" + tag)
	if len(classes) > 0 {
		h.class(classes...)
	}
	h.raw(">")
}

func (h *htmlWriter) close(tag string) {
	h.raw("</" + tag + ">")
}

func (h *htmlWriter) component(c templ.Component) {
	if h.err != nil || c == nil {
		return
	}
	h.err = c.Render(h.ctx, h.w)
}

func component(fn func(h *htmlWriter)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(ctx, w)
		fn(h)
		return h.err
	})
}
