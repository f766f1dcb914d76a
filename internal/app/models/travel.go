package models

// Location is a travel destination in the shape the pages and the JSON API
// consume, independent of how the Nomads API named the fields.
type Location struct {
	City        string  `json:"city"`
	CitySlug    string  `json:"citySlug"`
	Country     string  `json:"country"`
	CountrySlug string  `json:"countrySlug"`
	CountryCode string  `json:"countryCode"`
	Thumbnail   string  `json:"thumbnail"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	DateStart   string  `json:"dateStart"`
	DateEnd     string  `json:"dateEnd"`
	Length      string  `json:"length"`
}

// ThumbnailOverrides maps a city name to a curated thumbnail URL.
type ThumbnailOverrides map[string]string

type CurrentLocation struct {
	Now  *Location `json:"now"`
	Next *Location `json:"next"`
}

type TravelStats struct {
	Cities                     int     `json:"cities"`
	Countries                  int     `json:"countries"`
	Followers                  int     `json:"followers"`
	Following                  int     `json:"following"`
	DistanceTraveledKm         float64 `json:"distanceTraveledKm"`
	DistanceTraveledMiles      float64 `json:"distanceTraveledMiles"`
	CountriesVisitedPercentage float64 `json:"countriesVisitedPercentage"`
	CitiesVisitedPercentage    float64 `json:"citiesVisitedPercentage"`
}

type TravelSnapshot struct {
	Location CurrentLocation `json:"location"`
	Trips    []Location      `json:"trips"`
	Stats    *TravelStats    `json:"stats,omitempty"`
}

// EmptyTravelSnapshot is served whenever the travel profile cannot be loaded.
func EmptyTravelSnapshot() TravelSnapshot {
	return TravelSnapshot{Trips: []Location{}}
}

// IsEmpty reports whether there is nothing to show.
func (s TravelSnapshot) IsEmpty() bool {
	return s.Location.Now == nil && s.Location.Next == nil && len(s.Trips) == 0
}
