package domain

import "github.com/sadaksathi/backend/pkg/geo"

// RoutePreferences are the user-chosen routing flags. PreferHighways and
// PreferScenic are mutually exclusive; the service.SetPrefer* transitions
// enforce that at mutation time. AvoidTolls combines with either.
type RoutePreferences struct {
	PreferHighways bool `json:"prefer_highways"`
	AvoidTolls     bool `json:"avoid_tolls"`
	PreferScenic   bool `json:"prefer_scenic"`
}

// RouteStrategy is the single effective strategy resolved from preferences.
type RouteStrategy string

const (
	StrategyFastest  RouteStrategy = "fastest"
	StrategyHighways RouteStrategy = "highways"
	StrategyScenic   RouteStrategy = "scenic"
)

// ResolvedPreference is the normalized form of RoutePreferences: exactly one
// strategy, plus the independent toll modifier.
type ResolvedPreference struct {
	Strategy RouteStrategy `json:"strategy"`
	TollNote bool          `json:"toll_note"`
}

// RouteRequest is a "find route" request from the UI collaborator.
type RouteRequest struct {
	OriginName      string           `json:"from"`
	DestinationName string           `json:"to"`
	Prefs           RoutePreferences `json:"prefs"`
}

// Route is a freshly built waypoint path. It is replaced on every request and
// cleared explicitly, never incrementally updated.
type Route struct {
	Waypoints       []geo.Coordinate `json:"waypoints"`
	OriginName      string           `json:"from"`
	DestinationName string           `json:"to"`
}

// RouteAnnotation cross-references a route against live incidents and
// traffic. Derived data, recomputed on demand, never stored on its own.
type RouteAnnotation struct {
	IncidentIDs    []int        `json:"incident_ids"`
	OverallTraffic TrafficLevel `json:"overall_traffic"`
}

// RouteResult is what flows back to the rendering collaborator: the geometry,
// the annotation, and the preference message keys for translation.
type RouteResult struct {
	Route       Route           `json:"route"`
	Annotation  RouteAnnotation `json:"annotation"`
	MessageKeys []string        `json:"message_keys"`
	DistanceKm  float64         `json:"distance_km"`
	DurationMin int             `json:"duration_min"`
}
