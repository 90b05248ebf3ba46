package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// IncidentReport records a user-reported incident for history queries.
type IncidentReport struct {
	Incident   Incident  `json:"incident"`
	ReportedBy uuid.UUID `json:"reported_by"`
	ReportedAt time.Time `json:"reported_at"`
}

// RouteLog records a served route request.
type RouteLog struct {
	OriginName      string        `json:"from"`
	DestinationName string        `json:"to"`
	Strategy        RouteStrategy `json:"strategy"`
	OverallTraffic  TrafficLevel  `json:"overall_traffic"`
	IncidentCount   int           `json:"incident_count"`
	RequestedAt     time.Time     `json:"requested_at"`
}

// HistoryRepository persists reports and route requests. The domain defines
// the interface; postgres, sqlite and mock implementations live under
// internal/repository.
type HistoryRepository interface {
	// SaveIncidentReport persists a user-reported incident.
	SaveIncidentReport(ctx context.Context, report IncidentReport) error

	// SaveRouteLog persists a served route request.
	SaveRouteLog(ctx context.Context, entry RouteLog) error

	// RecentIncidentReports retrieves the latest reports, newest first.
	RecentIncidentReports(ctx context.Context, limit int) ([]IncidentReport, error)

	// Health checks storage connectivity.
	Health(ctx context.Context) error
}
