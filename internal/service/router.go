package service

import (
	"errors"
	"math/rand"
	"sync"

	"github.com/sadaksathi/backend/internal/domain"
	"github.com/sadaksathi/backend/pkg/geo"
)

// Mock-router tuning. The jitter only makes the fastest route visually
// distinct from a straight line; the detour offset stands in for a toll
// bypass. Neither affects strategy selection.
const (
	fastestJitterSpan = 0.01
	tollDetourOffset  = 0.005
)

// RouteService builds routes and owns the current route session. It is a
// heuristic router by design: it snaps through the middle of a designated
// road rather than computing shortest paths.
type RouteService struct {
	places    *PlaceStore
	incidents *IncidentStore
	traffic   *TrafficState
	roads     []domain.RoadSegment

	highwayRoad string
	scenicRoad  string

	mu        sync.Mutex
	rng       *rand.Rand
	current   *domain.RouteResult
	lastPrefs domain.RoutePreferences
}

// NewRouteService creates a route service. highwayRoad and scenicRoad name
// the catalog roads the highway and scenic strategies snap through.
func NewRouteService(
	places *PlaceStore,
	incidents *IncidentStore,
	traffic *TrafficState,
	roads []domain.RoadSegment,
	highwayRoad, scenicRoad string,
	rng *rand.Rand,
) *RouteService {
	return &RouteService{
		places:      places,
		incidents:   incidents,
		traffic:     traffic,
		roads:       roads,
		highwayRoad: highwayRoad,
		scenicRoad:  scenicRoad,
		rng:         rng,
	}
}

// FindRoute resolves the request's place names, builds a waypoint path for
// the effective strategy and annotates it against live data. The built route
// replaces the current session route. Nothing is stored if resolution fails.
func (s *RouteService) FindRoute(req domain.RouteRequest) (domain.RouteResult, error) {
	prefs := NormalizePreferences(req.Prefs)
	resolved := Resolve(prefs)

	origin, err := s.places.Resolve(req.OriginName)
	if err != nil {
		return domain.RouteResult{}, withRole(err, domain.RoleOrigin)
	}
	destination, err := s.places.Resolve(req.DestinationName)
	if err != nil {
		return domain.RouteResult{}, withRole(err, domain.RoleDestination)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	route := domain.Route{
		Waypoints:       s.buildWaypoints(origin, destination, resolved),
		OriginName:      req.OriginName,
		DestinationName: req.DestinationName,
	}

	annotation, err := Annotate(route, s.incidents.Snapshot(), s.traffic, s.roads)
	if err != nil {
		return domain.RouteResult{}, err
	}

	result := domain.RouteResult{
		Route:       route,
		Annotation:  annotation,
		MessageKeys: MessageKeys(resolved),
		DistanceKm:  geo.RoundTo(s.rng.Float64()*5+2, 1),
		DurationMin: int(s.rng.Float64()*15) + 5,
	}

	s.current = &result
	s.lastPrefs = prefs
	return result, nil
}

// buildWaypoints produces the mock path: origin, one strategy waypoint, and
// destination, plus an optional toll-detour waypoint right after the origin.
// Caller holds s.mu for the jitter source.
func (s *RouteService) buildWaypoints(origin, destination geo.Coordinate, resolved domain.ResolvedPreference) []geo.Coordinate {
	waypoints := []geo.Coordinate{origin, destination}

	var mid geo.Coordinate
	switch resolved.Strategy {
	case domain.StrategyHighways:
		mid = s.roadMiddleOr(s.highwayRoad, origin, destination)
	case domain.StrategyScenic:
		mid = s.roadMiddleOr(s.scenicRoad, origin, destination)
	default:
		mid = s.jitteredMidpoint(origin, destination)
	}
	waypoints = insertAt(waypoints, 1, mid)

	if resolved.TollNote {
		detour := geo.Coordinate{
			Lat: waypoints[1].Lat + tollDetourOffset,
			Lng: waypoints[1].Lng + tollDetourOffset,
		}
		waypoints = insertAt(waypoints, 1, detour)
	}
	return waypoints
}

// roadMiddleOr returns the middle geometry coordinate of the named road, or
// the fastest-style midpoint when the road is missing from the catalog.
func (s *RouteService) roadMiddleOr(roadName string, origin, destination geo.Coordinate) geo.Coordinate {
	for _, road := range s.roads {
		if road.Name == roadName {
			return road.Geometry[len(road.Geometry)/2]
		}
	}
	return s.jitteredMidpoint(origin, destination)
}

func (s *RouteService) jitteredMidpoint(origin, destination geo.Coordinate) geo.Coordinate {
	mid := geo.Midpoint(origin, destination)
	mid.Lat += (s.rng.Float64() - 0.5) * fastestJitterSpan
	mid.Lng += (s.rng.Float64() - 0.5) * fastestJitterSpan
	return mid
}

func insertAt(points []geo.Coordinate, i int, p geo.Coordinate) []geo.Coordinate {
	points = append(points, geo.Coordinate{})
	copy(points[i+1:], points[i:])
	points[i] = p
	return points
}

func withRole(err error, role domain.PlaceRole) error {
	var notFound *domain.LocationNotFoundError
	if errors.As(err, &notFound) {
		notFound.Role = role
		return notFound
	}
	return err
}

// Current returns the active route, if one is set.
func (s *RouteService) Current() (domain.RouteResult, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return domain.RouteResult{}, false
	}
	return *s.current, true
}

// Clear drops the active route. Clearing with no route set is a no-op.
func (s *RouteService) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = nil
}

// LastPreferences returns the flags from the most recent route request, used
// when the assistant starts navigation without explicit preferences.
func (s *RouteService) LastPreferences() domain.RoutePreferences {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastPrefs
}

// Reannotate recomputes the current route's annotation against the live
// incident and traffic data without touching the stored session. Share links
// are built from this so they reflect conditions at share time.
func (s *RouteService) Reannotate() (domain.RouteResult, error) {
	s.mu.Lock()
	current := s.current
	s.mu.Unlock()

	if current == nil {
		return domain.RouteResult{}, domain.ErrNoActiveRoute
	}

	result := *current
	annotation, err := Annotate(result.Route, s.incidents.Snapshot(), s.traffic, s.roads)
	if err != nil {
		return domain.RouteResult{}, err
	}
	result.Annotation = annotation
	return result, nil
}
