package domain

import "github.com/sadaksathi/backend/pkg/geo"

// MyLocationName is the synthetic place representing the device position. Its
// coordinate is upserted on every geolocation update and it is the only place
// whose coordinate changes during a session.
const MyLocationName = "My Location"

// NamedPlace is a fixed point of interest from the seed catalog. Names are
// unique and looked up case-insensitively.
type NamedPlace struct {
	ID         int            `json:"id"`
	Name       string         `json:"name"`
	Coordinate geo.Coordinate `json:"coordinate"`
	Type       string         `json:"type"`
	Status     string         `json:"status"`
	Category   string         `json:"category"`
}
