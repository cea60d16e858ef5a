package tasksrepo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jrazmi/tasktracker/core/repositories"
	"github.com/jrazmi/tasktracker/sdk/logger"
)

// Storer defines the data storage interface for Task. Implementations
// return repositories.ErrNotFound for absent or malformed ids.
type Storer interface {
	List(ctx context.Context) ([]Task, error)
	Create(ctx context.Context, input CreateTask) (Task, error)
	Update(ctx context.Context, taskID string, input UpdateTask) (Task, error)
	Delete(ctx context.Context, taskID string) error
	Check(ctx context.Context) error
}

// Repository provides access to task storage.
type Repository struct {
	log    *logger.Logger
	storer Storer
}

// NewRepository creates a new Task repository
func NewRepository(log *logger.Logger, storer Storer) *Repository {
	return &Repository{
		log:    log,
		storer: storer,
	}
}

// List returns every task in store-native order.
func (r *Repository) List(ctx context.Context) ([]Task, error) {
	records, err := r.storer.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("task repository list: %w", err)
	}
	if records == nil {
		records = []Task{}
	}
	return records, nil
}

// Create stores a new task and returns it with its assigned id.
func (r *Repository) Create(ctx context.Context, input CreateTask) (Task, error) {
	if input.Status == "" {
		input.Status = DefaultStatus
	}

	record, err := r.storer.Create(ctx, input)
	if err != nil {
		return Task{}, fmt.Errorf("task repository create: %w", err)
	}

	r.log.DebugContext(ctx, "created task", "task_id", record.TaskID)
	return record, nil
}

// Update replaces title and desc of taskID, and its status when given.
func (r *Repository) Update(ctx context.Context, taskID string, input UpdateTask) (Task, error) {
	if input.Status != nil && *input.Status == "" {
		input.Status = nil
	}

	record, err := r.storer.Update(ctx, taskID, input)
	if err != nil {
		return Task{}, fmt.Errorf("task repository update %s: %w", taskID, err)
	}

	r.log.DebugContext(ctx, "updated task", "task_id", record.TaskID)
	return record, nil
}

// Delete removes taskID. It returns repositories.ErrNotFound when nothing
// was removed.
func (r *Repository) Delete(ctx context.Context, taskID string) error {
	if err := r.storer.Delete(ctx, taskID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			r.log.InfoContext(ctx, "delete of absent task", "task_id", taskID)
		}
		return fmt.Errorf("task repository delete %s: %w", taskID, err)
	}

	r.log.DebugContext(ctx, "deleted task", "task_id", taskID)
	return nil
}

// Check reports whether the storage backend is reachable.
func (r *Repository) Check(ctx context.Context) error {
	if err := r.storer.Check(ctx); err != nil {
		return fmt.Errorf("task repository check: %w", err)
	}
	return nil
}
