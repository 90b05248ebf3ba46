package assistant

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/sadaksathi/backend/internal/domain"
	"github.com/sadaksathi/backend/internal/service"
	"github.com/sadaksathi/backend/pkg/geo"
)

// recordingHistory captures saves so tests can assert on background writes.
type recordingHistory struct {
	mu      sync.Mutex
	reports []domain.IncidentReport
	logs    []domain.RouteLog
}

func (r *recordingHistory) SaveIncidentReport(_ context.Context, report domain.IncidentReport) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reports = append(r.reports, report)
	return nil
}

func (r *recordingHistory) SaveRouteLog(_ context.Context, entry domain.RouteLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logs = append(r.logs, entry)
	return nil
}

func (r *recordingHistory) RecentIncidentReports(context.Context, int) ([]domain.IncidentReport, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.IncidentReport(nil), r.reports...), nil
}

func (r *recordingHistory) Health(context.Context) error { return nil }

func newTestDispatcher() (*Dispatcher, *service.PlaceStore, *recordingHistory) {
	places := service.NewPlaceStore([]domain.NamedPlace{
		{ID: 5, Name: "Patan Hospital", Coordinate: geo.Coordinate{Lat: 27.671, Lng: 85.318}, Category: "hospital"},
		{ID: 7, Name: "Nabil Bank ATM", Coordinate: geo.Coordinate{Lat: 27.690, Lng: 85.318}, Category: "atm"},
	})
	incidents := service.NewIncidentStore([]domain.Incident{
		{ID: 3, Name: "Heavy Traffic", Coordinate: geo.Coordinate{Lat: 27.717, Lng: 85.323}, Kind: domain.IncidentTraffic, Status: "Active"},
	})
	traffic := service.NewTrafficState(nil)
	routes := service.NewRouteService(
		places, incidents, traffic, nil,
		"Prithvi Highway", "Local Road",
		rand.New(rand.NewSource(1)),
	)
	history := &recordingHistory{}
	return NewDispatcher(incidents, places, routes, history), places, history
}

func TestDispatchAddIncident(t *testing.T) {
	dispatcher, places, history := newTestDispatcher()
	places.UpsertMyLocation(geo.Coordinate{Lat: 27.69, Lng: 85.32}, nil)

	sessionID := uuid.New()
	result, err := dispatcher.Dispatch(context.Background(), Action{
		Kind:         ActionAddIncident,
		IncidentName: "Accident near Thapathali",
		IncidentType: "other",
	}, sessionID)
	if err != nil {
		t.Fatalf("Dispatch returned error: %v", err)
	}

	if result.Incident == nil {
		t.Fatal("result carries no incident")
	}
	if result.Incident.ID != 101 {
		t.Errorf("incident id = %d, want 101", result.Incident.ID)
	}
	if result.Incident.Coordinate != (geo.Coordinate{Lat: 27.69, Lng: 85.32}) {
		t.Errorf("incident pinned at %+v, want the device position", result.Incident.Coordinate)
	}

	dispatcher.WaitBackground()
	history.mu.Lock()
	defer history.mu.Unlock()
	if len(history.reports) != 1 {
		t.Fatalf("history has %d reports, want 1", len(history.reports))
	}
	if history.reports[0].ReportedBy != sessionID {
		t.Errorf("report attributed to %s, want %s", history.reports[0].ReportedBy, sessionID)
	}
}

func TestDispatchAddIncidentWithoutFix(t *testing.T) {
	dispatcher, _, history := newTestDispatcher()

	_, err := dispatcher.Dispatch(context.Background(), Action{
		Kind:         ActionAddIncident,
		IncidentName: "Accident",
	}, uuid.New())
	if !errors.Is(err, domain.ErrCurrentLocationUnavailable) {
		t.Fatalf("error = %v, want ErrCurrentLocationUnavailable", err)
	}

	dispatcher.WaitBackground()
	history.mu.Lock()
	defer history.mu.Unlock()
	if len(history.reports) != 0 {
		t.Errorf("history has %d reports, want none on failure", len(history.reports))
	}
}

func TestDispatchStartNavigation(t *testing.T) {
	dispatcher, places, _ := newTestDispatcher()
	places.UpsertMyLocation(geo.Coordinate{Lat: 27.70, Lng: 85.31}, nil)

	result, err := dispatcher.Dispatch(context.Background(), Action{
		Kind:            ActionStartNavigation,
		DestinationName: "Patan Hospital",
	}, uuid.New())
	if err != nil {
		t.Fatalf("Dispatch returned error: %v", err)
	}

	if result.Route == nil {
		t.Fatal("result carries no route")
	}
	route := result.Route.Route
	if route.OriginName != domain.MyLocationName || route.DestinationName != "Patan Hospital" {
		t.Errorf("route names = %q -> %q", route.OriginName, route.DestinationName)
	}
	if len(route.Waypoints) != 3 {
		t.Errorf("waypoints = %d, want 3 for the default strategy", len(route.Waypoints))
	}
}

func TestDispatchStartNavigationWithoutFix(t *testing.T) {
	dispatcher, _, _ := newTestDispatcher()

	_, err := dispatcher.Dispatch(context.Background(), Action{
		Kind:            ActionStartNavigation,
		DestinationName: "Patan Hospital",
	}, uuid.New())
	if !errors.Is(err, domain.ErrCurrentLocationUnavailable) {
		t.Errorf("error = %v, want ErrCurrentLocationUnavailable", err)
	}
}

func TestDispatchFindNearby(t *testing.T) {
	dispatcher, places, _ := newTestDispatcher()
	places.UpsertMyLocation(geo.Coordinate{Lat: 27.691, Lng: 85.316}, nil)

	result, err := dispatcher.Dispatch(context.Background(), Action{
		Kind:     ActionFindNearbyPOIs,
		Category: "atm",
	}, uuid.New())
	if err != nil {
		t.Fatalf("Dispatch returned error: %v", err)
	}
	if len(result.Nearby) != 1 || result.Nearby[0].ID != 7 {
		t.Errorf("nearby = %+v, want the one ATM", result.Nearby)
	}

	empty, err := dispatcher.Dispatch(context.Background(), Action{
		Kind:     ActionFindNearbyPOIs,
		Category: "coffee shop",
	}, uuid.New())
	if err != nil {
		t.Fatalf("Dispatch returned error: %v", err)
	}
	if len(empty.Nearby) != 0 {
		t.Errorf("nearby = %+v, want none", empty.Nearby)
	}
	if empty.Message == "" {
		t.Error("empty result should still carry a message")
	}
}

func TestDispatchInvalidAction(t *testing.T) {
	dispatcher, _, _ := newTestDispatcher()

	if _, err := dispatcher.Dispatch(context.Background(), Action{Kind: "teleport"}, uuid.New()); err == nil {
		t.Error("Dispatch accepted an unknown action kind")
	}
	if _, err := dispatcher.Dispatch(context.Background(), Action{Kind: ActionAddIncident}, uuid.New()); err == nil {
		t.Error("Dispatch accepted add_incident without a name")
	}
}
