package commands

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jrazmi/tasktracker/core/repositories/tasksrepo"
	"github.com/jrazmi/tasktracker/core/repositories/tasksrepo/stores/taskspgxstore"
	"github.com/jrazmi/tasktracker/sdk/logger"
)

var seedTasks = []tasksrepo.CreateTask{
	{Title: "Buy milk", Desc: "2%", Status: "Pending"},
	{Title: "Water the plants", Desc: "Balcony and kitchen", Status: "In Progress"},
	{Title: "File taxes", Desc: "Before the deadline", Status: "Completed"},
}

// Seed inserts -n sample tasks, cycling through the sample set.
func Seed(ctx context.Context, log *logger.Logger, args []string, pool *pgxpool.Pool) error {
	fs := flag.NewFlagSet("seed", flag.ContinueOnError)
	n := fs.Int("n", len(seedTasks), "number of tasks to insert")
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return ErrHelp
		}
		return fmt.Errorf("parse flags: %w", err)
	}
	if *n < 0 {
		return fmt.Errorf("-n must not be negative, got %d", *n)
	}

	ctx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()

	repo := tasksrepo.NewRepository(log, taskspgxstore.NewStore(log, pool))
	return seed(ctx, log, repo, *n)
}

type taskCreator interface {
	Create(ctx context.Context, input tasksrepo.CreateTask) (tasksrepo.Task, error)
}

func seed(ctx context.Context, log *logger.Logger, repo taskCreator, n int) error {
	for i := range n {
		input := seedTasks[i%len(seedTasks)]
		task, err := repo.Create(ctx, input)
		if err != nil {
			return fmt.Errorf("seed task %q: %w", input.Title, err)
		}
		log.InfoContext(ctx, "seeded task", "task_id", task.TaskID, "title", task.Title)
	}

	log.InfoContext(ctx, "seeding completed successfully", "count", n)
	return nil
}
