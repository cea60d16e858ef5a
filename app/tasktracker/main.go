package main

import (
	"context"
	"errors"
	"expvar"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/jrazmi/tasktracker/app/tasktracker/api"
	"github.com/jrazmi/tasktracker/app/tasktracker/config"
	"github.com/jrazmi/tasktracker/core/repositories/tasksrepo"
	"github.com/jrazmi/tasktracker/core/repositories/tasksrepo/stores/tasksmemstore"
	"github.com/jrazmi/tasktracker/core/repositories/tasksrepo/stores/tasksmongostore"
	"github.com/jrazmi/tasktracker/core/repositories/tasksrepo/stores/taskspgxstore"
	"github.com/jrazmi/tasktracker/infrastructure/mongodb"
	"github.com/jrazmi/tasktracker/infrastructure/postgresdb"
	"github.com/jrazmi/tasktracker/infrastructure/web"
	"github.com/jrazmi/tasktracker/schema"
	"github.com/jrazmi/tasktracker/sdk/environment"
	"github.com/jrazmi/tasktracker/sdk/logger"
	"github.com/jrazmi/tasktracker/sdk/telemetry"
)

var build = "develop"
var appName = "TASKTRACKER"

func main() {
	envErr := environment.LoadEnv()
	ctx := context.Background()

	log, err := logger.NewFromEnv(appName)
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		os.Exit(1)
	}
	if envErr != nil {
		log.WarnContext(ctx, "startup", "status", "reading .env", "err", envErr)
	}

	if err := run(ctx, log); err != nil {
		log.ErrorContext(ctx, "startup", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, log *logger.Logger) error {
	log.InfoContext(ctx, "startup", "GOMAXPROCS", runtime.GOMAXPROCS(0), "build", build)

	// :*: START DATABASES :*:
	storer, closeStore, err := openStore(ctx, log)
	if err != nil {
		return err
	}
	defer closeStore()
	// END DATABASES //

	// REPOSITORIES //
	log.InfoContext(ctx, "startup", "status", "initializing repository support")
	tasks := tasksrepo.NewRepository(log, storer)
	// END REPOSITORIES //

	var handlerCfg web.HandlerOptions
	if err := environment.ParseEnvTags(appName, &handlerCfg); err != nil {
		return fmt.Errorf("parsing webhandler config: %w", err)
	}

	webCfg, err := web.LoadServerConfig(appName)
	if err != nil {
		return fmt.Errorf("webserver: %w", err)
	}

	appCfg := config.TaskTracker{
		Build:   build,
		Logger:  log,
		Handler: handlerCfg,
		Repositories: config.Repositories{
			Tasks: tasks,
		},
		Telemetry: telemetry.NewTelemetry(),
	}

	handler := api.NewHandler(appCfg)
	if webCfg.EnableDebug {
		handler.HandleRaw("GET /debug/vars", expvar.Handler())
	}

	server := web.NewServer(webCfg,
		web.WithHandler(handler),
		web.WithDefaultPort(":5000"),
		web.WithErrorLog(logger.NewStdLogger(log, logger.LevelError)),
	)

	serverErrors := make(chan error, 1)
	go func() {
		log.InfoContext(ctx, "startup", "status", "api router started", "host", server.Addr)
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		log.InfoContext(ctx, "shutdown", "status", "shutdown started", "signal", sig)
		defer log.InfoContext(ctx, "shutdown", "status", "shutdown complete", "signal", sig)

		ctx, cancel := context.WithTimeout(ctx, server.Config.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			server.Close()
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
	}

	return nil
}

// openStore connects the backend named by STORE_BACKEND. The returned func
// releases it.
func openStore(ctx context.Context, log *logger.Logger) (tasksrepo.Storer, func(), error) {
	var storage config.Storage
	if err := environment.ParseEnvTags(appName, &storage); err != nil {
		return nil, nil, fmt.Errorf("parsing storage config: %w", err)
	}

	log.InfoContext(ctx, "startup", "status", "opening store", "backend", storage.Backend)

	switch storage.Backend {
	case config.BackendMongo:
		db, err := mongodb.NewFromEnv(ctx, appName, mongodb.WithLogger(log.Logger))
		if err != nil {
			return nil, nil, fmt.Errorf("configuring mongo support: %w", err)
		}
		closeFn := func() {
			log.InfoContext(ctx, "shutdown", "status", "closing mongo connection")
			db.Close(context.Background())
		}
		return tasksmongostore.NewStore(log, db), closeFn, nil

	case config.BackendPostgres:
		pool, err := postgresdb.NewFromEnv(appName, postgresdb.WithLogger(log.Logger))
		if err != nil {
			return nil, nil, fmt.Errorf("configuring postgres support: %w", err)
		}
		if storage.MigrateOnStart {
			if err := postgresdb.Migrate(ctx, log.Logger, pool, schema.MigrationsFS, schema.MigrationsDir); err != nil {
				pool.Close()
				return nil, nil, fmt.Errorf("migrating postgres: %w", err)
			}
		}
		closeFn := func() {
			log.InfoContext(ctx, "shutdown", "status", "closing database connection")
			pool.Close()
		}
		return taskspgxstore.NewStore(log, pool), closeFn, nil

	case config.BackendMemory:
		return tasksmemstore.NewStore(log), func() {}, nil
	}

	return nil, nil, fmt.Errorf("unknown store backend %q", storage.Backend)
}
