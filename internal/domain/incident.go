package domain

import "github.com/sadaksathi/backend/pkg/geo"

// IncidentKind classifies a reportable road event.
type IncidentKind string

const (
	IncidentTraffic IncidentKind = "traffic"
	IncidentClosure IncidentKind = "closure"
	IncidentOther   IncidentKind = "other"
)

// NormalizeIncidentKind maps free-form kinds from reports onto the known set.
func NormalizeIncidentKind(s string) IncidentKind {
	switch IncidentKind(s) {
	case IncidentTraffic, IncidentClosure:
		return IncidentKind(s)
	default:
		return IncidentOther
	}
}

// Incident is a transient road event. Incidents are replaced wholesale on
// refresh, never partially mutated.
type Incident struct {
	ID         int            `json:"id"`
	Name       string         `json:"name"`
	Coordinate geo.Coordinate `json:"coordinate"`
	Kind       IncidentKind   `json:"kind"`
	Status     string         `json:"status"`
}
