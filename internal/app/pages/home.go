package pages

import (
	"github.com/a-h/templ"

	"github.com/jorgechato/website/internal/app/models"
)

func HomePage(now *models.Location, social models.Navigation) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw(`<section id="home" class="space-y-6">`)
		h.open("h1", "text-4xl font-bold")
		h.text("Hi, I'm Jorge")
		h.close("h1")
		h.open("p", "text-lg")
		h.text("Software engineer building infrastructure and developer tooling, working remotely from wherever the next trip takes me.")
		h.close("p")

		if now != nil {
			h.raw(`<p id="home-location" class="text-sm text-zinc-500">`)
			h.text("Currently in ")
			h.raw(`<a href="/where-i-am-today" class="underline">`)
			h.text(now.City)
			if country := countryName(*now); country != "" {
				h.text(", " + country)
			}
			h.raw("</a>")
			h.raw("</p>")
		}

		h.raw(`<ul id="social" class="flex gap-4">`)
		for _, item := range social.Items {
			h.raw("<li>")
			externalLink(h, item)
			h.raw("</li>")
		}
		h.raw("</ul>")
		h.raw("</section>")
	})
}

// HowPage renders the already sanitized Markdown HTML of the working guide.
func HowPage(body string) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw(`<article id="how" class="custom-md text-left">`)
		if body == "" {
			h.raw(`<p id="content-unavailable" class="text-zinc-500">`)
			h.text("This page is not available right now. Please come back later.")
			h.raw("</p>")
		} else {
			h.raw(body)
		}
		h.raw("</article>")
	})
}

func NotFoundPage() templ.Component {
	return component(func(h *htmlWriter) {
		h.raw(`<section id="not-found" class="space-y-4 text-center">`)
		h.open("h1", "text-4xl font-bold")
		h.text("404")
		h.close("h1")
		h.open("p")
		h.text("Nothing to see here. ")
		h.raw(`<a href="/" class="underline">`)
		h.text("Go home")
		h.raw("</a>")
		h.close("p")
		h.raw("</section>")
	})
}
