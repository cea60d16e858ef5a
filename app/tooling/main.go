package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jrazmi/tasktracker/app/tooling/commands"
	"github.com/jrazmi/tasktracker/infrastructure/postgresdb"
	"github.com/jrazmi/tasktracker/sdk/environment"
	"github.com/jrazmi/tasktracker/sdk/logger"
)

var build = "develop"
var appName = "TOOLING"

func processCommands(ctx context.Context, log *logger.Logger, command string, args []string, pg *pgxpool.Pool) error {
	switch command {
	case "migrate":
		log.InfoContext(ctx, "running migration")
		if err := commands.Migrate(ctx, log.Logger, pg); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		return nil

	case "migrate-status":
		if err := commands.MigrateStatus(ctx, log, pg); err != nil {
			return fmt.Errorf("migrate status failed: %w", err)
		}
		return nil

	case "seed":
		log.InfoContext(ctx, "running seed")
		if err := commands.Seed(ctx, log, args, pg); err != nil {
			if errors.Is(err, commands.ErrHelp) {
				return nil
			}
			return fmt.Errorf("seed failed: %w", err)
		}
		return nil

	default:
		printHelp()
		return nil
	}
}

func printHelp() {
	fmt.Println("Available commands:")
	fmt.Println("  migrate        - create the tasks schema in the database")
	fmt.Println("  migrate-status - list embedded migrations and whether each is applied")
	fmt.Println("  seed           - insert sample tasks (-n repeats the set)")
	fmt.Println()
	fmt.Println("Use 'go run ./app/tooling <command> --help' for command-specific help.")
}

func run(ctx context.Context, log *logger.Logger) error {
	log.InfoContext(ctx, "startup", "GOMAXPROCS", runtime.GOMAXPROCS(0), "build", build)

	var command string
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	if command == "" || command == "help" || command == "--help" || command == "-h" {
		printHelp()
		return nil
	}

	pg, err := postgresdb.NewFromEnv(appName, postgresdb.WithLogger(log.Logger), postgresdb.WithTracer(postgresdb.NewQueryLogger(log.Logger)))
	if err != nil {
		return fmt.Errorf("configuring postgres support: %w", err)
	}
	defer func() {
		log.InfoContext(ctx, "shutdown", "status", "closing database connection")
		pg.Close()
	}()
	log.InfoContext(ctx, "init", "service", "postgres")

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		args := []string{}
		if len(os.Args) > 2 {
			args = os.Args[2:]
		}
		done <- processCommands(ctx, log, command, args, pg)
	}()

	select {
	case err := <-done:
		return err

	case sig := <-shutdown:
		log.InfoContext(ctx, "shutdown", "status", "shutdown started", "signal", sig)
		cancel()

		// Give the command a short time to notice the cancellation.
		select {
		case err := <-done:
			return err
		case <-time.After(5 * time.Second):
			return errors.New("shutdown timeout")
		}
	}
}

func main() {
	envErr := environment.LoadEnv()

	log, err := logger.NewFromEnv(appName)
	if err != nil {
		fmt.Println("oh no we couldn't even get logging going.")
		os.Exit(1)
	}
	ctx := context.Background()

	if envErr != nil {
		log.WarnContext(ctx, "startup", "status", "reading .env", "err", envErr)
	}

	if err = run(ctx, log); err != nil {
		log.ErrorContext(ctx, "startup", "err", err)
		os.Exit(1)
	}
}
