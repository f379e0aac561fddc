package handler

import (
	"database/sql"
	"time"

	"github.com/gofiber/fiber/v2"

	"netlister/internal/http/middleware"
	"netlister/internal/service"
)

// DownloadURLExpiry is how long pre-signed download links stay valid.
const DownloadURLExpiry = 15 * time.Minute

// RegisterRoutes attaches the health probes and the netlist API to app.
func RegisterRoutes(app *fiber.App, db *sql.DB, svc service.NetlistService) {
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	api := app.Group("/api")
	api.Get("/netlists", ListNetlists(svc))
	api.Post("/netlists", middleware.RequireJSON(), CreateNetlist(svc))
	api.Get("/netlists/:id", GetNetlist(svc))
	api.Get("/netlists/:id/raw", GetNetlistRaw(svc))
	api.Get("/netlists/:id/download", GetNetlistDownloadURL(svc, DownloadURLExpiry))
	api.Delete("/netlists/:id", DeleteNetlist(svc))
}
