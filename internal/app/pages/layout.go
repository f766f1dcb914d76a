package pages

import (
	"strings"

	"github.com/a-h/templ"

	"github.com/jorgechato/website/internal/app/models"
)

const (
	navLinkClass   = "px-3 py-2 text-sm text-zinc-600 hover:text-zinc-900 dark:text-zinc-400 dark:hover:text-zinc-100"
	navActiveClass = "text-zinc-900 dark:text-zinc-100 font-semibold"
)

// LayoutPage wraps page content with the document shell, header and footer.
func LayoutPage(data models.LayoutTempl) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw("<!DOCTYPE html>")
		h.raw(`<html lang="en">`)
		h.raw("<head>")
		h.raw(`<meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1">`)
		h.raw("<title>")
		h.text(data.Title)
		h.raw("</title>")
		if data.BaseURL != "" {
			h.raw(`<link rel="canonical"`)
			h.href(strings.TrimSuffix(data.BaseURL, "/") + "/")
			h.raw(">")
		}
		h.raw(`<link rel="stylesheet" href="/assets/css/main.css">`)
		h.raw(`<script src="/assets/js/theme.js"></script>`)
		h.raw(`<script src="https://unpkg.com/htmx.org@2.0.4" defer></script>`)
		h.raw(`<script src="https://cdn.jsdelivr.net/npm/mermaid@11/dist/mermaid.min.js" defer></script>`)
		h.raw("</head>")
		h.raw(`<body hx-boost="true" class="min-h-screen bg-white text-zinc-800 dark:bg-zinc-950 dark:text-zinc-200">`)

		h.raw(`<header class="mx-auto flex max-w-3xl items-center justify-between p-4">`)
		h.raw(`<a href="/" class="font-bold">jorgechato</a>`)
		h.raw(`<nav id="main-nav">`)
		for _, item := range data.Nav.Header() {
			navLink(h, item, item.Name == data.ActiveNav)
		}
		h.raw("</nav>")
		h.raw("</header>")

		h.raw(`<main id="content" class="mx-auto max-w-3xl p-4">`)
		h.component(data.Content)
		h.raw("</main>")

		h.raw(`<footer class="mx-auto flex max-w-3xl flex-wrap gap-2 p-4 text-sm">`)
		for _, item := range data.Social.Items {
			externalLink(h, item)
		}
		for _, item := range data.Nav.Items {
			if !item.InHeader && item.URL != "/" {
				externalLink(h, item)
			}
		}
		h.raw("</footer>")
		h.raw("</body></html>")
	})
}

func navLink(h *htmlWriter, item models.NavItem, active bool) {
	h.raw("<a")
	h.href(item.URL)
	if active {
		h.class(navLinkClass, navActiveClass)
		h.attr("aria-current", "page")
	} else {
		h.class(navLinkClass)
	}
	h.raw(">")
	h.text(item.Name)
	h.raw("</a>")
}

func externalLink(h *htmlWriter, item models.NavItem) {
	h.raw("<a")
	h.href(item.URL)
	h.attr("target", "_blank")
	h.attr("rel", "noopener noreferrer")
	if item.Icon != "" {
		h.attr("data-icon", item.Icon)
	}
	h.class("text-zinc-500 hover:text-zinc-900 dark:hover:text-zinc-100")
	h.raw(">")
	h.text(item.Name)
	h.raw("</a>")
}
