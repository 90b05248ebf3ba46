package http

import (
	"github.com/gofiber/fiber/v2"
)

// ErrorHandler renders every handler error as the standard JSON envelope
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}

// SetupRoutes configures all HTTP routes
func SetupRoutes(app *fiber.App, handler *Handler) {
	// Health check
	app.Get("/health", handler.HealthCheck)

	// API v1 routes
	api := app.Group("/api/v1")
	{
		// Catalog and live data
		api.Get("/roads", handler.GetRoads)
		api.Get("/pois", handler.GetPOIs)
		api.Get("/pois/nearby", handler.GetNearbyPOIs)
		api.Get("/incidents", handler.GetIncidents)
		api.Post("/incidents", handler.ReportIncident)
		api.Get("/traffic", handler.GetTraffic)

		// Route session
		api.Post("/route", handler.FindRoute)
		api.Get("/route", handler.GetCurrentRoute)
		api.Delete("/route", handler.ClearRoute)
		api.Get("/route/share", handler.ShareRoute)
		api.Get("/route/shared", handler.OpenSharedRoute)

		// Collaborator inputs
		api.Post("/location", handler.UpdateLocation)
		api.Post("/assistant", handler.AssistantMessage)

		// History
		api.Get("/history/incidents", handler.GetIncidentHistory)
	}
}
