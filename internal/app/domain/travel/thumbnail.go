package travel

import (
	"regexp"
	"strings"
)

const (
	nomadsHost     = "https://nomads.com"
	thumbnailCDN   = nomadsHost + "/cdn-cgi/image/format=auto,fit=cover,width=250,height=320"
	smallThumbSize = "width=100,height=100"
	largeThumbSize = "width=250,height=320"
)

var placeImagePath = regexp.MustCompile(`/assets/img/places/.*\.(jpg|png|webp|jpeg)(\?.*)?$`)

// ResolveThumbnail turns a Nomads photo reference into a URL sized for the
// trip cards. Absolute URLs that do not point at a place image are returned
// untouched; relative paths are anchored on the Nomads host.
func ResolveThumbnail(raw string) string {
	if raw == "" {
		return ""
	}

	if strings.Contains(raw, "https://") {
		imagePath := placeImagePath.FindString(raw)
		if imagePath == "" {
			return raw
		}
		return thumbnailCDN + imagePath
	}

	return nomadsHost + strings.Replace(raw, smallThumbSize, largeThumbSize, 1)
}
