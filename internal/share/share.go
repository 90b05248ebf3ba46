// Package share implements the shareable-link wire format, the only
// persisted state in the system. A link must round-trip: decoding an encoded
// route yields an equivalent route request.
package share

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/sadaksathi/backend/internal/domain"
)

// SharedRoute is the decoded payload of a share link.
type SharedRoute struct {
	OriginName      string              `json:"from"`
	DestinationName string              `json:"to"`
	IncidentIDs     []int               `json:"incident_ids,omitempty"`
	Traffic         domain.TrafficLevel `json:"traffic"`
}

// HasRoute reports whether the link carries enough to rebuild a route.
func (s SharedRoute) HasRoute() bool {
	return s.OriginName != "" && s.DestinationName != ""
}

// Encode builds the query string for a route and its annotation. By
// convention the incidents parameter is omitted when empty and the traffic
// parameter is omitted when clear, so absence always means "nothing to warn
// about". Parameter order is fixed for link stability.
func Encode(route domain.Route, annotation domain.RouteAnnotation) string {
	var b strings.Builder
	b.WriteString("from=")
	b.WriteString(url.QueryEscape(route.OriginName))
	b.WriteString("&to=")
	b.WriteString(url.QueryEscape(route.DestinationName))

	if len(annotation.IncidentIDs) > 0 {
		ids := make([]string, len(annotation.IncidentIDs))
		for i, id := range annotation.IncidentIDs {
			ids[i] = strconv.Itoa(id)
		}
		b.WriteString("&incidents=")
		b.WriteString(strings.Join(ids, ","))
	}

	if annotation.OverallTraffic != domain.TrafficClear && annotation.OverallTraffic.IsValid() {
		b.WriteString("&traffic=")
		b.WriteString(string(annotation.OverallTraffic))
	}

	return b.String()
}

// Decode parses a share-link query string. Unparseable fragments are dropped
// silently rather than failing the load: a garbage incidents list must not
// prevent the from/to pair from rebuilding the route. Absent or invalid
// traffic reads as clear.
func Decode(rawQuery string) SharedRoute {
	// ParseQuery keeps whatever it managed to parse even on error, which is
	// exactly the partial recovery we want.
	values, _ := url.ParseQuery(rawQuery)

	shared := SharedRoute{
		OriginName:      values.Get("from"),
		DestinationName: values.Get("to"),
		Traffic:         domain.TrafficClear,
	}

	if level := domain.TrafficLevel(values.Get("traffic")); level.IsValid() {
		shared.Traffic = level
	}

	if raw := values.Get("incidents"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			id, err := strconv.Atoi(strings.TrimSpace(part))
			if err != nil {
				continue
			}
			shared.IncidentIDs = append(shared.IncidentIDs, id)
		}
	}

	return shared
}

// Text renders the human share message that accompanies the link.
func Text(route domain.Route, annotation domain.RouteAnnotation) string {
	text := fmt.Sprintf("Check out my route from %s to %s on Sadak Sathi!",
		route.OriginName, route.DestinationName)
	if annotation.OverallTraffic != domain.TrafficClear {
		text += fmt.Sprintf(" Traffic is currently %s.", annotation.OverallTraffic)
	}
	if n := len(annotation.IncidentIDs); n > 0 {
		text += fmt.Sprintf(" Heads up, there is %d incident(s) reported along the way.", n)
	}
	return text
}
