package service

import (
	"fmt"
	"sort"

	"github.com/sadaksathi/backend/internal/domain"
	"github.com/sadaksathi/backend/pkg/geo"
)

// Annotate cross-references a built route against the live incident set and
// traffic state. Incidents count as on-route when they fall inside the
// route's bounding box, and a road contributes its traffic level when its own
// bounding box overlaps the route's. Both tests are deliberately coarse; see
// pkg/geo. Recomputed fresh on every call, no caching.
func Annotate(route domain.Route, incidents []domain.Incident, traffic *TrafficState, roads []domain.RoadSegment) (domain.RouteAnnotation, error) {
	routeBox, err := geo.BoundsOf(route.Waypoints)
	if err != nil {
		return domain.RouteAnnotation{}, fmt.Errorf("service: cannot annotate route: %w", err)
	}

	var ids []int
	for _, incident := range incidents {
		if routeBox.Contains(incident.Coordinate) {
			ids = append(ids, incident.ID)
		}
	}
	sort.Ints(ids)

	var intersected []string
	for _, road := range roads {
		roadBox, err := geo.BoundsOf(road.Geometry)
		if err != nil {
			continue
		}
		if routeBox.Intersects(roadBox) {
			intersected = append(intersected, road.Name)
		}
	}

	return domain.RouteAnnotation{
		IncidentIDs:    ids,
		OverallTraffic: traffic.AggregateSeverity(intersected),
	}, nil
}
