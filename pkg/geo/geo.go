package geo

import (
	"errors"
	"math"
)

// Coordinate is a WGS84 point. Ranges are trusted input and not validated here.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// BoundingBox is the smallest axis-aligned rectangle containing a set of points.
// It is the only "nearness" primitive used for route analysis: coarse on
// purpose, since tightening it to polyline distance would change which
// incidents count as on-route.
type BoundingBox struct {
	MinLat float64 `json:"min_lat"`
	MinLng float64 `json:"min_lng"`
	MaxLat float64 `json:"max_lat"`
	MaxLng float64 `json:"max_lng"`
}

// ErrNoPoints is returned by BoundsOf for an empty point sequence.
var ErrNoPoints = errors.New("geo: cannot compute bounds of zero points")

// BoundsOf returns the bounding box of the given points.
func BoundsOf(points []Coordinate) (BoundingBox, error) {
	if len(points) == 0 {
		return BoundingBox{}, ErrNoPoints
	}

	box := BoundingBox{
		MinLat: points[0].Lat,
		MaxLat: points[0].Lat,
		MinLng: points[0].Lng,
		MaxLng: points[0].Lng,
	}
	for _, p := range points[1:] {
		box.MinLat = math.Min(box.MinLat, p.Lat)
		box.MaxLat = math.Max(box.MaxLat, p.Lat)
		box.MinLng = math.Min(box.MinLng, p.Lng)
		box.MaxLng = math.Max(box.MaxLng, p.Lng)
	}
	return box, nil
}

// Contains reports whether the point lies inside the box, edges inclusive.
func (b BoundingBox) Contains(p Coordinate) bool {
	return p.Lat >= b.MinLat && p.Lat <= b.MaxLat &&
		p.Lng >= b.MinLng && p.Lng <= b.MaxLng
}

// Intersects reports whether two boxes overlap on both axes. Touching edges
// count as overlap.
func (b BoundingBox) Intersects(o BoundingBox) bool {
	return b.MinLat <= o.MaxLat && b.MaxLat >= o.MinLat &&
		b.MinLng <= o.MaxLng && b.MaxLng >= o.MinLng
}

// Midpoint returns the arithmetic midpoint of two coordinates.
func Midpoint(a, b Coordinate) Coordinate {
	return Coordinate{
		Lat: (a.Lat + b.Lat) / 2,
		Lng: (a.Lng + b.Lng) / 2,
	}
}

// Haversine calculates the distance between two points in kilometers.
func Haversine(a, b Coordinate) float64 {
	const R = 6371 // Earth radius in km

	lat1Rad := a.Lat * math.Pi / 180
	lat2Rad := b.Lat * math.Pi / 180
	deltaLat := (b.Lat - a.Lat) * math.Pi / 180
	deltaLng := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(deltaLng/2)*math.Sin(deltaLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return R * c
}

// RoundTo rounds a float to the specified decimal places.
func RoundTo(value float64, places int) float64 {
	factor := math.Pow(10, float64(places))
	return math.Round(value*factor) / factor
}

// Clamp limits a value between min and max.
func Clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
