package http

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/sadaksathi/backend/internal/assistant"
	"github.com/sadaksathi/backend/internal/domain"
	"github.com/sadaksathi/backend/internal/service"
	"github.com/sadaksathi/backend/internal/share"
	"github.com/sadaksathi/backend/pkg/geo"
)

// Handler contains all HTTP handlers
type Handler struct {
	routes     *service.RouteService
	traffic    *service.TrafficState
	incidents  *service.IncidentStore
	places     *service.PlaceStore
	roads      []domain.RoadSegment
	bridge     *assistant.Bridge
	dispatcher *assistant.Dispatcher
	history    domain.HistoryRepository
}

// NewHandler creates a new handler
func NewHandler(
	routes *service.RouteService,
	traffic *service.TrafficState,
	incidents *service.IncidentStore,
	places *service.PlaceStore,
	roads []domain.RoadSegment,
	bridge *assistant.Bridge,
	dispatcher *assistant.Dispatcher,
	history domain.HistoryRepository,
) *Handler {
	return &Handler{
		routes:     routes,
		traffic:    traffic,
		incidents:  incidents,
		places:     places,
		roads:      roads,
		bridge:     bridge,
		dispatcher: dispatcher,
		history:    history,
	}
}

// mapDomainError translates core errors into HTTP errors carrying the
// message key the UI translates.
func mapDomainError(err error) error {
	var notFound *domain.LocationNotFoundError
	switch {
	case errors.As(err, &notFound):
		return fiber.NewError(fiber.StatusNotFound, "route_finder_error")
	case errors.Is(err, domain.ErrCurrentLocationUnavailable):
		return fiber.NewError(fiber.StatusConflict, "route_finder_error_no_start")
	case errors.Is(err, domain.ErrNoActiveRoute):
		return fiber.NewError(fiber.StatusNotFound, "no_active_route")
	default:
		return err
	}
}

// HealthCheck returns service health status
func (h *Handler) HealthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"service": "sadaksathi-backend",
		"version": "1.0.0",
	})
}

// GetRoads returns the road catalog joined with current traffic levels
func (h *Handler) GetRoads(c *fiber.Ctx) error {
	type roadView struct {
		domain.RoadSegment
		Traffic domain.TrafficLevel `json:"traffic"`
	}

	views := make([]roadView, len(h.roads))
	for i, road := range h.roads {
		views[i] = roadView{
			RoadSegment: road,
			Traffic:     h.traffic.LevelOf(road.Name),
		}
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    views,
	})
}

// GetPOIs returns the named-place catalog
func (h *Handler) GetPOIs(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success": true,
		"data":    h.places.Snapshot(),
	})
}

// GetNearbyPOIs returns catalog places near the device position
func (h *Handler) GetNearbyPOIs(c *fiber.Ctx) error {
	category := c.Query("category")
	if category == "" {
		return fiber.NewError(fiber.StatusBadRequest, "category is required")
	}

	limit := c.QueryInt("limit", 3)
	nearby, err := h.places.FindNearby(category, limit)
	if err != nil {
		return mapDomainError(err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    nearby,
		"count":   len(nearby),
	})
}

// GetIncidents returns the live incident collection
func (h *Handler) GetIncidents(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success": true,
		"data":    h.incidents.Snapshot(),
	})
}

// ReportIncident appends a user-reported incident. Without an explicit
// coordinate the report lands at the device position.
func (h *Handler) ReportIncident(c *fiber.Ctx) error {
	var req struct {
		Name       string   `json:"name"`
		Kind       string   `json:"kind"`
		Lat        *float64 `json:"lat"`
		Lng        *float64 `json:"lng"`
		ReportedBy string   `json:"reported_by"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if req.Name == "" {
		return fiber.NewError(fiber.StatusBadRequest, "name is required")
	}

	var coord geo.Coordinate
	if req.Lat != nil && req.Lng != nil {
		coord = geo.Coordinate{Lat: *req.Lat, Lng: *req.Lng}
	} else {
		pos, ok := h.places.MyLocation()
		if !ok {
			return mapDomainError(domain.ErrCurrentLocationUnavailable)
		}
		coord = pos
	}

	incident := h.incidents.Report(req.Name, coord, domain.NormalizeIncidentKind(req.Kind))

	reportedBy, err := uuid.Parse(req.ReportedBy)
	if err != nil {
		reportedBy = uuid.New()
	}

	// Log report to storage asynchronously
	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		report := domain.IncidentReport{
			Incident:   incident,
			ReportedBy: reportedBy,
			ReportedAt: time.Now(),
		}
		if saveErr := h.history.SaveIncidentReport(bgCtx, report); saveErr != nil {
			log.Printf("Failed to save incident report: %v", saveErr)
		}
	}()

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    incident,
	})
}

// GetTraffic returns the current per-road levels plus the overall severity
func (h *Handler) GetTraffic(c *fiber.Ctx) error {
	roadNames := make([]string, len(h.roads))
	for i, road := range h.roads {
		roadNames[i] = road.Name
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"levels":  h.traffic.Snapshot(),
			"overall": h.traffic.AggregateSeverity(roadNames),
			"alert":   h.traffic.HasHeavy(),
		},
	})
}

// FindRoute builds a route from a find-route request
func (h *Handler) FindRoute(c *fiber.Ctx) error {
	var req domain.RouteRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if req.OriginName == "" || req.DestinationName == "" {
		return fiber.NewError(fiber.StatusBadRequest, "from and to are required")
	}

	result, err := h.routes.FindRoute(req)
	if err != nil {
		return mapDomainError(err)
	}

	// Log the served route asynchronously
	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		entry := domain.RouteLog{
			OriginName:      result.Route.OriginName,
			DestinationName: result.Route.DestinationName,
			Strategy:        service.Resolve(service.NormalizePreferences(req.Prefs)).Strategy,
			OverallTraffic:  result.Annotation.OverallTraffic,
			IncidentCount:   len(result.Annotation.IncidentIDs),
			RequestedAt:     time.Now(),
		}
		if saveErr := h.history.SaveRouteLog(bgCtx, entry); saveErr != nil {
			log.Printf("Failed to save route log: %v", saveErr)
		}
	}()

	return c.JSON(fiber.Map{
		"success": true,
		"data":    result,
	})
}

// GetCurrentRoute returns the active route session
func (h *Handler) GetCurrentRoute(c *fiber.Ctx) error {
	result, ok := h.routes.Current()
	if !ok {
		return mapDomainError(domain.ErrNoActiveRoute)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    result,
	})
}

// ClearRoute drops the active route session
func (h *Handler) ClearRoute(c *fiber.Ctx) error {
	h.routes.Clear()
	return c.JSON(fiber.Map{
		"success": true,
	})
}

// ShareRoute encodes the current route and live annotation as a share link
func (h *Handler) ShareRoute(c *fiber.Ctx) error {
	result, err := h.routes.Reannotate()
	if err != nil {
		return mapDomainError(err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"query":      share.Encode(result.Route, result.Annotation),
			"text":       share.Text(result.Route, result.Annotation),
			"annotation": result.Annotation,
		},
	})
}

// OpenSharedRoute decodes a share link, rebuilds the route when from/to are
// present and returns the informational banner payload. Malformed fragments
// are dropped, never fatal.
func (h *Handler) OpenSharedRoute(c *fiber.Ctx) error {
	shared := share.Decode(string(c.Request().URI().QueryString()))

	response := fiber.Map{
		"shared": shared,
	}

	if shared.HasRoute() {
		result, err := h.routes.FindRoute(domain.RouteRequest{
			OriginName:      shared.OriginName,
			DestinationName: shared.DestinationName,
		})
		if err != nil {
			return mapDomainError(err)
		}
		response["route"] = result
	}

	if len(shared.IncidentIDs) > 0 || shared.Traffic != domain.TrafficClear {
		response["banner"] = fiber.Map{
			"traffic":   shared.Traffic,
			"incidents": h.incidents.ByIDs(shared.IncidentIDs),
		}
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    response,
	})
}

// UpdateLocation upserts the device position ("My Location")
func (h *Handler) UpdateLocation(c *fiber.Ctx) error {
	var req struct {
		Lat     *float64 `json:"lat"`
		Lng     *float64 `json:"lng"`
		Heading *float64 `json:"heading"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if req.Lat == nil || req.Lng == nil {
		return fiber.NewError(fiber.StatusBadRequest, "lat and lng are required")
	}

	h.places.UpsertMyLocation(geo.Coordinate{Lat: *req.Lat, Lng: *req.Lng}, req.Heading)

	return c.JSON(fiber.Map{
		"success": true,
	})
}

// AssistantMessage forwards free text to the assistant service and executes
// the returned tool call, if any
func (h *Handler) AssistantMessage(c *fiber.Ctx) error {
	var req struct {
		Message   string `json:"message"`
		SessionID string `json:"session_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if req.Message == "" {
		return fiber.NewError(fiber.StatusBadRequest, "message is required")
	}

	sessionID, err := uuid.Parse(req.SessionID)
	if err != nil {
		sessionID = uuid.New()
	}

	sctx := assistant.Context{
		Preferences: h.routes.LastPreferences(),
		Traffic:     h.traffic.Snapshot(),
	}
	if current, ok := h.routes.Current(); ok {
		sctx.ActiveRoute = &current.Route
	}

	interp, err := h.bridge.Interpret(c.Context(), req.Message, sctx)
	if err != nil {
		return fiber.NewError(fiber.StatusBadGateway, "Failed to interpret message")
	}

	response := fiber.Map{
		"reply":      interp.Reply,
		"session_id": sessionID,
	}

	if interp.Action != nil {
		result, err := h.dispatcher.Dispatch(c.Context(), *interp.Action, sessionID)
		if err != nil {
			return mapDomainError(err)
		}
		response["action"] = interp.Action.Kind
		response["result"] = result
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    response,
	})
}

// GetIncidentHistory returns recently reported incidents from storage
func (h *Handler) GetIncidentHistory(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)
	if limit < 1 || limit > 100 {
		limit = 20
	}

	reports, err := h.history.RecentIncidentReports(c.Context(), limit)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch incident history")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    reports,
		"count":   len(reports),
	})
}
