// Package tasksmemstore keeps tasks in process memory. Data is lost on
// restart; it backs tests and the dependency-free run mode.
package tasksmemstore

import (
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/jrazmi/tasktracker/core/repositories"
	"github.com/jrazmi/tasktracker/core/repositories/tasksrepo"
	"github.com/jrazmi/tasktracker/sdk/logger"
)

// Store holds tasks in a map for lookup and a slice for insertion order.
type Store struct {
	log   *logger.Logger
	mu    sync.RWMutex
	tasks map[string]tasksrepo.Task
	order []string
}

// NewStore creates an empty Store.
func NewStore(log *logger.Logger) *Store {
	return &Store{
		log:   log,
		tasks: make(map[string]tasksrepo.Task),
	}
}

func (s *Store) List(ctx context.Context) ([]tasksrepo.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]tasksrepo.Task, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.tasks[id])
	}
	return out, nil
}

func (s *Store) Create(ctx context.Context, input tasksrepo.CreateTask) (tasksrepo.Task, error) {
	task := tasksrepo.Task{
		TaskID: uuid.NewString(),
		Title:  input.Title,
		Desc:   input.Desc,
		Status: input.Status,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.tasks[task.TaskID] = task
	s.order = append(s.order, task.TaskID)
	return task, nil
}

func (s *Store) Update(ctx context.Context, taskID string, input tasksrepo.UpdateTask) (tasksrepo.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasks[taskID]
	if !ok {
		return tasksrepo.Task{}, repositories.ErrNotFound
	}

	task.Title = input.Title
	task.Desc = input.Desc
	if input.Status != nil {
		task.Status = *input.Status
	}
	s.tasks[taskID] = task
	return task, nil
}

func (s *Store) Delete(ctx context.Context, taskID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[taskID]; !ok {
		return repositories.ErrNotFound
	}

	delete(s.tasks, taskID)
	s.order = slices.DeleteFunc(s.order, func(id string) bool { return id == taskID })
	return nil
}

// Check always succeeds; memory is always reachable.
func (s *Store) Check(ctx context.Context) error {
	return nil
}
