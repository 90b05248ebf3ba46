package assistant

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sadaksathi/backend/internal/domain"
	"github.com/sadaksathi/backend/internal/service"
)

// Result is what a dispatched action hands back to the caller.
type Result struct {
	Message  string                `json:"message"`
	Incident *domain.Incident      `json:"incident,omitempty"`
	Route    *domain.RouteResult   `json:"route,omitempty"`
	Nearby   []service.NearbyPlace `json:"nearby,omitempty"`
}

// Dispatcher executes typed assistant actions against the route core.
type Dispatcher struct {
	incidents *service.IncidentStore
	places    *service.PlaceStore
	routes    *service.RouteService
	history   domain.HistoryRepository

	wgBg sync.WaitGroup // tracks background history writes for shutdown
}

// NewDispatcher creates a dispatcher.
func NewDispatcher(
	incidents *service.IncidentStore,
	places *service.PlaceStore,
	routes *service.RouteService,
	history domain.HistoryRepository,
) *Dispatcher {
	return &Dispatcher{
		incidents: incidents,
		places:    places,
		routes:    routes,
		history:   history,
	}
}

// WaitBackground blocks until pending history writes complete. Call during
// graceful shutdown to avoid dropped writes.
func (d *Dispatcher) WaitBackground() {
	d.wgBg.Wait()
}

// Dispatch executes one action on behalf of a session.
func (d *Dispatcher) Dispatch(ctx context.Context, action Action, sessionID uuid.UUID) (Result, error) {
	if err := action.Validate(); err != nil {
		return Result{}, err
	}

	switch action.Kind {
	case ActionAddIncident:
		return d.addIncident(action, sessionID)
	case ActionStartNavigation:
		return d.startNavigation(action)
	case ActionFindNearbyPOIs:
		return d.findNearby(action)
	default:
		return Result{}, fmt.Errorf("assistant: unknown action kind %q", action.Kind)
	}
}

func (d *Dispatcher) addIncident(action Action, sessionID uuid.UUID) (Result, error) {
	coord, ok := d.places.MyLocation()
	if !ok {
		return Result{}, domain.ErrCurrentLocationUnavailable
	}

	incident := d.incidents.Report(
		action.IncidentName,
		coord,
		domain.NormalizeIncidentKind(action.IncidentType),
	)

	d.wgBg.Add(1)
	go func() {
		defer d.wgBg.Done()
		bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		report := domain.IncidentReport{
			Incident:   incident,
			ReportedBy: sessionID,
			ReportedAt: time.Now(),
		}
		if err := d.history.SaveIncidentReport(bgCtx, report); err != nil {
			log.Printf("Failed to save incident report: %v", err)
		}
	}()

	return Result{
		Message:  fmt.Sprintf("OK, I've reported %q at your current location.", incident.Name),
		Incident: &incident,
	}, nil
}

func (d *Dispatcher) startNavigation(action Action) (Result, error) {
	result, err := d.routes.FindRoute(domain.RouteRequest{
		OriginName:      domain.MyLocationName,
		DestinationName: action.DestinationName,
		Prefs:           d.routes.LastPreferences(),
	})
	if err != nil {
		return Result{}, err
	}

	return Result{
		Message: fmt.Sprintf("Starting navigation to %s.", action.DestinationName),
		Route:   &result,
	}, nil
}

func (d *Dispatcher) findNearby(action Action) (Result, error) {
	nearby, err := d.places.FindNearby(action.Category, 3)
	if err != nil {
		return Result{}, err
	}

	if len(nearby) == 0 {
		return Result{
			Message: fmt.Sprintf("Sorry, I couldn't find any %ss nearby.", action.Category),
		}, nil
	}

	return Result{
		Message: fmt.Sprintf("Here are some nearby %ss. You can tap to navigate.", action.Category),
		Nearby:  nearby,
	}, nil
}
