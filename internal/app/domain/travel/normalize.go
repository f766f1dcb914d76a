package travel

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/jorgechato/website/internal/app/models"
)

// rawLocation is a location or trip record as the Nomads API sends it.
// Trips name the destination place/place_slug while the current and next
// locations use city/city_slug; both map onto the same fields.
type rawLocation struct {
	Place       *string    `json:"place"`
	PlaceSlug   *string    `json:"place_slug"`
	City        *string    `json:"city"`
	CitySlug    *string    `json:"city_slug"`
	PlacePhoto  string     `json:"place_photo"`
	Country     string     `json:"country"`
	CountrySlug string     `json:"country_slug"`
	CountryCode string     `json:"country_code"`
	Latitude    flexFloat  `json:"latitude"`
	Longitude   flexFloat  `json:"longitude"`
	DateStart   string     `json:"date_start"`
	DateEnd     string     `json:"date_end"`
	Length      flexString `json:"length"`
}

// flexFloat accepts a JSON number or a numeric string.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if isNullJSON(data) {
		return nil
	}
	if data[0] != '"' {
		var v float64
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*f = flexFloat(v)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("coordinate %q is not a number", s)
	}
	*f = flexFloat(v)
	return nil
}

// flexString accepts a JSON string or number; numbers keep their literal text.
type flexString string

func (s *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if isNullJSON(data) {
		return nil
	}
	if data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = flexString(v)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*s = flexString(n.String())
	return nil
}

func isNullJSON(data []byte) bool {
	data = bytes.TrimSpace(data)
	return len(data) == 0 || bytes.Equal(data, []byte("null"))
}

// NormalizeLocation maps a raw record onto models.Location. A curated
// thumbnail for the city always wins over the photo sent by the API.
func NormalizeLocation(raw rawLocation, overrides models.ThumbnailOverrides) models.Location {
	city := firstSet(raw.Place, raw.City)
	citySlug := firstSet(raw.PlaceSlug, raw.CitySlug)

	thumbnail, ok := overrides[city]
	if !ok {
		thumbnail = ResolveThumbnail(raw.PlacePhoto)
	}

	return models.Location{
		City:        city,
		CitySlug:    citySlug,
		Country:     raw.Country,
		CountrySlug: raw.CountrySlug,
		CountryCode: raw.CountryCode,
		Thumbnail:   thumbnail,
		Latitude:    float64(raw.Latitude),
		Longitude:   float64(raw.Longitude),
		DateStart:   raw.DateStart,
		DateEnd:     raw.DateEnd,
		Length:      string(raw.Length),
	}
}

func firstSet(values ...*string) string {
	for _, v := range values {
		if v != nil {
			return *v
		}
	}
	return ""
}
