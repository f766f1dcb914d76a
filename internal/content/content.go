// Package content holds the static site data: navigation, social links and
// the curated thumbnail table used by the travel widget.
package content

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"maps"
	"os"

	"github.com/jorgechato/website/internal/app/models"
)

//go:embed locations.json
var locationsJSON []byte

var SiteMap = models.Navigation{
	Items: []models.NavItem{
		{Name: "Home", URL: "/"},
		{Name: "How", URL: "/how-to-work-with-me", InHeader: true},
		{Name: "Where", URL: "/where-i-am-today", InHeader: true},
		{Name: "Status Page", URL: "https://status.jrg.tools/"},
	},
}

var SocialLinks = models.Navigation{
	Items: []models.NavItem{
		{Name: "Newsletter", URL: "https://elmailde.jrg.tools", Icon: "newsletter", InHeader: true},
		{Name: "GitHub", URL: "https://github.com/jorgechato", Icon: "github", InHeader: true},
		{Name: "LinkedIn", URL: "https://www.linkedin.com/in/jorgechato/", Icon: "linkedin"},
		{Name: "X", URL: "https://x.com/jorgechato", Icon: "x"},
	},
}

// ThumbnailLocations decodes the override table at path, or the embedded
// (empty) table when path is empty. Callers get their own copy.
func ThumbnailLocations(path string) (models.ThumbnailOverrides, error) {
	if path == "" {
		return parseThumbnails(locationsJSON)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read thumbnail locations: %w", err)
	}
	return parseThumbnails(data)
}

func parseThumbnails(data []byte) (models.ThumbnailOverrides, error) {
	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode thumbnail locations: %w", err)
	}
	overrides := make(models.ThumbnailOverrides, len(raw))
	maps.Copy(overrides, raw)
	return overrides, nil
}
