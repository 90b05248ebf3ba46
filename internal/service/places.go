package service

import (
	"sort"
	"strings"
	"sync"

	"github.com/sadaksathi/backend/internal/domain"
	"github.com/sadaksathi/backend/pkg/geo"
)

// nearbyRadiusKm bounds FindNearby results, matching the 2 km cutoff the
// assistant suggestions use.
const nearbyRadiusKm = 2.0

// PlaceStore holds the named-place catalog plus the synthetic "My Location"
// entry, which is upserted on every geolocation update and is the only
// mutable place.
type PlaceStore struct {
	mu         sync.RWMutex
	places     []domain.NamedPlace
	byName     map[string]domain.NamedPlace
	myLocation *geo.Coordinate
	heading    *float64
}

// NewPlaceStore creates a place store from the catalog places.
func NewPlaceStore(places []domain.NamedPlace) *PlaceStore {
	byName := make(map[string]domain.NamedPlace, len(places))
	for _, p := range places {
		byName[strings.ToLower(p.Name)] = p
	}
	return &PlaceStore{
		places: append([]domain.NamedPlace(nil), places...),
		byName: byName,
	}
}

// UpsertMyLocation records a new device position.
func (s *PlaceStore) UpsertMyLocation(coord geo.Coordinate, heading *float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.myLocation = &coord
	s.heading = heading
}

// MyLocation returns the current device position, if any fix has arrived.
func (s *PlaceStore) MyLocation() (geo.Coordinate, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.myLocation == nil {
		return geo.Coordinate{}, false
	}
	return *s.myLocation, true
}

// Resolve maps a place name to a coordinate. "My Location" resolves to the
// device position and returns ErrCurrentLocationUnavailable before the first
// fix; other names are matched case-insensitively against the catalog.
// Callers attach the origin/destination role to the not-found error.
func (s *PlaceStore) Resolve(name string) (geo.Coordinate, error) {
	if name == domain.MyLocationName {
		coord, ok := s.MyLocation()
		if !ok {
			return geo.Coordinate{}, domain.ErrCurrentLocationUnavailable
		}
		return coord, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	place, ok := s.byName[strings.ToLower(name)]
	if !ok {
		return geo.Coordinate{}, &domain.LocationNotFoundError{Name: name}
	}
	return place.Coordinate, nil
}

// Snapshot returns a copy of the catalog places.
func (s *PlaceStore) Snapshot() []domain.NamedPlace {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.NamedPlace(nil), s.places...)
}

// NearbyPlace is a catalog place with its distance from the device position.
type NearbyPlace struct {
	domain.NamedPlace
	DistanceKm float64 `json:"distance_km"`
}

// FindNearby returns up to limit places of the given category within 2 km of
// the device position, closest first. Requires a geolocation fix.
func (s *PlaceStore) FindNearby(category string, limit int) ([]NearbyPlace, error) {
	origin, ok := s.MyLocation()
	if !ok {
		return nil, domain.ErrCurrentLocationUnavailable
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var nearby []NearbyPlace
	for _, p := range s.places {
		if !strings.EqualFold(p.Category, category) {
			continue
		}
		d := geo.Haversine(origin, p.Coordinate)
		if d > nearbyRadiusKm {
			continue
		}
		nearby = append(nearby, NearbyPlace{
			NamedPlace: p,
			DistanceKm: geo.RoundTo(d, 2),
		})
	}

	sort.Slice(nearby, func(i, j int) bool {
		return nearby[i].DistanceKm < nearby[j].DistanceKm
	})
	if limit > 0 && len(nearby) > limit {
		nearby = nearby[:limit]
	}
	return nearby, nil
}
