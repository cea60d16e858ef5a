package config

import (
	"github.com/jrazmi/tasktracker/core/repositories/tasksrepo"
	"github.com/jrazmi/tasktracker/infrastructure/web"
	"github.com/jrazmi/tasktracker/sdk/logger"
	"github.com/jrazmi/tasktracker/sdk/telemetry"
)

// site wide globals.
const (
	ApiRoute = "/api"
)

// Storage backends selectable with STORE_BACKEND.
const (
	BackendMongo    = "mongo"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

// Storage is the exportable storage selection.
type Storage struct {
	Backend        string `env:"STORE_BACKEND" default:"mongo"`
	MigrateOnStart bool   `env:"PG_MIGRATE_ON_START" default:"true"`
}

// Repositories represents the specific repositories this instance needs.
type Repositories struct {
	Tasks *tasksrepo.Repository
}

// TaskTracker is the overall configuration for the task tracker API.
type TaskTracker struct {
	Build   string
	Logger  *logger.Logger
	Handler web.HandlerOptions

	Repositories Repositories
	Telemetry    telemetry.Telemetry
}
