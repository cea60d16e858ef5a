// Package taskspgxstore stores tasks in PostgreSQL through pgx.
package taskspgxstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jrazmi/tasktracker/core/repositories"
	"github.com/jrazmi/tasktracker/core/repositories/tasksrepo"
	"github.com/jrazmi/tasktracker/infrastructure/postgresdb"
	"github.com/jrazmi/tasktracker/sdk/logger"
)

const taskColumns = `task_id::text AS task_id, title, description, status`

type Store struct {
	log  *logger.Logger
	pool *postgresdb.Pool
}

func NewStore(log *logger.Logger, pool *postgresdb.Pool) *Store {
	return &Store{
		log:  log,
		pool: pool,
	}
}

func (s *Store) List(ctx context.Context) ([]tasksrepo.Task, error) {
	query := `SELECT ` + taskColumns + `
		FROM tasks
		ORDER BY created_at, task_id`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, postgresdb.HandlePgError(err)
	}
	defer rows.Close()

	tasks, err := pgx.CollectRows(rows, pgx.RowToStructByName[tasksrepo.Task])
	if err != nil {
		return nil, postgresdb.HandlePgError(err)
	}
	return tasks, nil
}

func (s *Store) Create(ctx context.Context, input tasksrepo.CreateTask) (tasksrepo.Task, error) {
	query := `INSERT INTO tasks (task_id, title, description, status)
		VALUES (@task_id, @title, @description, @status)
		RETURNING ` + taskColumns

	args := pgx.NamedArgs{
		"task_id":     uuid.NewString(),
		"title":       input.Title,
		"description": input.Desc,
		"status":      input.Status,
	}

	rows, err := s.pool.Query(ctx, query, args)
	if err != nil {
		return tasksrepo.Task{}, postgresdb.HandlePgError(err)
	}
	defer rows.Close()

	task, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[tasksrepo.Task])
	if err != nil {
		return tasksrepo.Task{}, fmt.Errorf("insert task: %w", postgresdb.HandlePgError(err))
	}
	return task, nil
}

func (s *Store) Update(ctx context.Context, taskID string, input tasksrepo.UpdateTask) (tasksrepo.Task, error) {
	if _, err := uuid.Parse(taskID); err != nil {
		return tasksrepo.Task{}, repositories.ErrNotFound
	}

	query := `UPDATE tasks
		SET title = @title,
			description = @description,
			status = COALESCE(@status, status)
		WHERE task_id = @task_id
		RETURNING ` + taskColumns

	args := pgx.NamedArgs{
		"task_id":     taskID,
		"title":       input.Title,
		"description": input.Desc,
		"status":      input.Status,
	}

	rows, err := s.pool.Query(ctx, query, args)
	if err != nil {
		return tasksrepo.Task{}, postgresdb.HandlePgError(err)
	}
	defer rows.Close()

	// CollectOneRow returns pgx.ErrNoRows when the id matched nothing
	task, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[tasksrepo.Task])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return tasksrepo.Task{}, repositories.ErrNotFound
		}
		return tasksrepo.Task{}, postgresdb.HandlePgError(err)
	}
	return task, nil
}

func (s *Store) Delete(ctx context.Context, taskID string) error {
	if _, err := uuid.Parse(taskID); err != nil {
		return repositories.ErrNotFound
	}

	query := `DELETE FROM tasks WHERE task_id = @task_id`

	tag, err := s.pool.Exec(ctx, query, pgx.NamedArgs{"task_id": taskID})
	if err != nil {
		return postgresdb.HandlePgError(err)
	}
	if tag.RowsAffected() == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

func (s *Store) Check(ctx context.Context) error {
	if err := postgresdb.StatusCheck(ctx, s.pool); err != nil {
		return fmt.Errorf("%w: %w", repositories.ErrUnavailable, err)
	}
	return nil
}
