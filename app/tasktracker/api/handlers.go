// Package api wires the task tracker HTTP surface.
package api

import (
	"github.com/jrazmi/tasktracker/app/tasktracker/config"
	"github.com/jrazmi/tasktracker/bridge/repositories/tasksrepobridge"
	"github.com/jrazmi/tasktracker/bridge/scaffolding/mid"
	"github.com/jrazmi/tasktracker/infrastructure/web"
)

// NewHandler builds the web handler with global middleware and every route
// under /api.
func NewHandler(cfg config.TaskTracker) *web.WebHandler {
	wh := web.NewWebHandler(cfg.Handler,
		web.WithLogging(cfg.Logger),
		web.WithTelemetry(cfg.Telemetry),
		web.WithGlobalMiddleware(
			mid.Logger(cfg.Logger),
			mid.Errors(cfg.Logger),
			mid.Metrics(),
			mid.Panics(),
		),
	)

	AddHandlers(wh, cfg)

	return wh
}

// AddHandlers registers the API routes.
func AddHandlers(wh *web.WebHandler, cfg config.TaskTracker) *web.WebHandler {
	api := wh.Group(config.ApiRoute)

	tasksrepobridge.AddHttpRoutes(api, tasksrepobridge.Config{
		Log:        cfg.Logger,
		Repository: cfg.Repositories.Tasks,
	})

	return wh
}
