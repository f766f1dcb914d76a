package pages

import (
	"fmt"
	"strings"

	"github.com/a-h/templ"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jorgechato/website/internal/app/models"
)

var titleCase = cases.Title(language.English)

// countryName prefers the API's country name and falls back to a readable
// form of the slug ("united-kingdom" -> "United Kingdom").
func countryName(loc models.Location) string {
	if loc.Country != "" {
		return loc.Country
	}
	return titleCase.String(strings.ReplaceAll(loc.CountrySlug, "-", " "))
}

// flagEmoji converts an ISO 3166 alpha-2 code into its regional indicator pair.
func flagEmoji(code string) string {
	if len(code) != 2 {
		return ""
	}
	var b strings.Builder
	for _, r := range strings.ToUpper(code) {
		if r < 'A' || r > 'Z' {
			return ""
		}
		b.WriteRune(0x1F1E6 + (r - 'A'))
	}
	return b.String()
}

func dateRange(loc models.Location) string {
	switch {
	case loc.DateStart != "" && loc.DateEnd != "":
		return loc.DateStart + " → " + loc.DateEnd
	case loc.DateStart != "":
		return "from " + loc.DateStart
	default:
		return ""
	}
}

// LocationCard renders one destination with its thumbnail.
func LocationCard(label string, loc models.Location) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw("<article")
		h.attr("data-city", loc.CitySlug)
		h.class("location-card overflow-hidden rounded-lg border border-zinc-200 dark:border-zinc-800")
		h.raw(">")
		if loc.Thumbnail != "" {
			h.raw("<img")
			h.attr("src", string(templ.URL(loc.Thumbnail)))
			h.attr("alt", loc.City)
			h.attr("width", "250")
			h.attr("height", "320")
			h.attr("loading", "lazy")
			h.class("h-80 w-full object-cover")
			h.raw(">")
		}
		h.open("div", "p-3")
		if label != "" {
			h.open("p", "text-xs uppercase tracking-wide text-zinc-500")
			h.text(label)
			h.close("p")
		}
		h.open("h3", "text-lg font-semibold")
		h.text(loc.City)
		h.close("h3")
		h.open("p", "text-sm")
		if flag := flagEmoji(loc.CountryCode); flag != "" {
			h.text(flag + " ")
		}
		h.text(countryName(loc))
		h.close("p")
		if dates := dateRange(loc); dates != "" {
			h.raw("<p")
			h.class("text-xs text-zinc-500")
			h.attr("data-date-start", loc.DateStart)
			h.raw(">")
			h.text(dates)
			if loc.Length != "" {
				h.text(" (" + loc.Length + ")")
			}
			h.close("p")
		}
		h.close("div")
		h.close("article")
	})
}

func statsBlock(stats *models.TravelStats) templ.Component {
	return component(func(h *htmlWriter) {
		if stats == nil {
			return
		}
		h.raw(`<dl id="travel-stats" class="grid grid-cols-3 gap-4 text-center">`)
		statItem(h, "Cities", fmt.Sprintf("%d", stats.Cities))
		statItem(h, "Countries", fmt.Sprintf("%d", stats.Countries))
		statItem(h, "Kilometers", fmt.Sprintf("%.0f", stats.DistanceTraveledKm))
		h.raw("</dl>")
	})
}

func statItem(h *htmlWriter, name, value string) {
	h.raw("<div>")
	h.open("dt", "text-xs text-zinc-500")
	h.text(name)
	h.close("dt")
	h.open("dd", "text-xl font-bold")
	h.text(value)
	h.close("dd")
	h.raw("</div>")
}

// WherePage shows the current and next location followed by upcoming trips.
func WherePage(snapshot models.TravelSnapshot) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw(`<section id="where" class="space-y-8">`)
		h.open("h1", "text-3xl font-bold")
		h.text("Where I am today")
		h.close("h1")

		if snapshot.IsEmpty() {
			h.raw(`<p id="travel-unavailable" class="text-zinc-500">`)
			h.text("Travel plans are not available right now.")
			h.raw("</p>")
			h.raw("</section>")
			return
		}

		h.raw(`<div id="current-location" class="grid gap-4 sm:grid-cols-2">`)
		if snapshot.Location.Now != nil {
			h.component(LocationCard("Now", *snapshot.Location.Now))
		}
		if snapshot.Location.Next != nil {
			h.component(LocationCard("Next", *snapshot.Location.Next))
		}
		h.raw("</div>")

		h.component(statsBlock(snapshot.Stats))

		h.open("h2", "text-2xl font-semibold")
		h.text("Upcoming trips")
		h.close("h2")
		if len(snapshot.Trips) == 0 {
			h.raw(`<p id="no-trips" class="text-zinc-500">`)
			h.text("No trips planned yet.")
			h.raw("</p>")
		} else {
			h.raw(`<div id="trips" class="grid gap-4 sm:grid-cols-3">`)
			for _, trip := range snapshot.Trips {
				h.component(LocationCard("", trip))
			}
			h.raw("</div>")
		}
		h.raw("</section>")
	})
}
