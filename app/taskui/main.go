package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/jrazmi/tasktracker/app/taskui/ui"
	"github.com/jrazmi/tasktracker/bridge/scaffolding/mid"
	"github.com/jrazmi/tasktracker/core/taskform"
	"github.com/jrazmi/tasktracker/infrastructure/web"
	"github.com/jrazmi/tasktracker/sdk/environment"
	"github.com/jrazmi/tasktracker/sdk/logger"
	"github.com/jrazmi/tasktracker/sdk/taskapi"
	"github.com/jrazmi/tasktracker/sdk/telemetry"
)

var build = "develop"
var appName = "TASKUI"

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

	client, err := taskapi.NewFromEnv(appName)
	if err != nil {
		return fmt.Errorf("api client: %w", err)
	}

	form := taskform.New(log, client)

	handler := web.NewWebHandler(web.HandlerOptions{},
		web.WithLogging(log),
		web.WithTelemetry(telemetry.NewTelemetry()),
		web.WithDefaultHeaders(map[string]string{"Cache-Control": "no-store"}),
		web.WithGlobalMiddleware(
			mid.Logger(log),
			mid.Errors(log),
			mid.Panics(),
		),
	)
	if err := ui.AddHandlers(handler, ui.Config{Log: log, Form: form}); err != nil {
		return fmt.Errorf("ui: %w", err)
	}

	webCfg, err := web.LoadServerConfig(appName)
	if err != nil {
		return fmt.Errorf("webserver: %w", err)
	}

	server := web.NewServer(webCfg,
		web.WithHandler(handler),
		web.WithDefaultPort(":3000"),
		web.WithErrorLog(logger.NewStdLogger(log, logger.LevelError)),
	)

	serverErrors := make(chan error, 1)
	go func() {
		log.InfoContext(ctx, "startup", "status", "ui started", "host", server.Addr)
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
