package models

import "fmt"

// Location is a geocoded place: the first match returned for a search query.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Name      string  `json:"name"`
	Country   string  `json:"country"`
	Region    string  `json:"region,omitempty"` // admin1 subdivision, may be empty
}

// DisplayName formats the location as "Name, Region, Country", omitting the
// region when the geocoder did not return one.
func (l *Location) DisplayName() string {
	if l.Region != "" {
		return fmt.Sprintf("%s, %s, %s", l.Name, l.Region, l.Country)
	}
	return fmt.Sprintf("%s, %s", l.Name, l.Country)
}

// Coordinates returns latitude/longitude formatted the way upstream requests log them.
func (l *Location) Coordinates() string {
	return fmt.Sprintf("lat: %.4f lon: %.4f", l.Latitude, l.Longitude)
}
