// Package storetest holds the behavior every tasksrepo.Storer must share.
// Store packages call Run from their tests against an empty store.
package storetest

import (
	"context"
	"errors"
	"testing"

	"github.com/jrazmi/tasktracker/core/repositories"
	"github.com/jrazmi/tasktracker/core/repositories/tasksrepo"
)

// Run exercises s. missingID must be well formed for the backend but not
// name any stored task.
func Run(t *testing.T, s tasksrepo.Storer, missingID string) {
	t.Helper()
	ctx := context.Background()

	tasks, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if tasks == nil || len(tasks) != 0 {
		t.Fatalf("Expected an empty non-nil list, got %#v", tasks)
	}

	a, err := s.Create(ctx, tasksrepo.CreateTask{Title: "A", Desc: "first", Status: "Pending"})
	if err != nil {
		t.Fatalf("Create A failed: %v", err)
	}
	b, err := s.Create(ctx, tasksrepo.CreateTask{Title: "B", Desc: "second", Status: "In Progress"})
	if err != nil {
		t.Fatalf("Create B failed: %v", err)
	}
	if a.TaskID == "" || a.TaskID == b.TaskID {
		t.Fatalf("Expected distinct ids, got %q and %q", a.TaskID, b.TaskID)
	}
	if a.Title != "A" || a.Desc != "first" || a.Status != "Pending" {
		t.Errorf("Expected A to echo its input, got %+v", a)
	}

	tasks, err = s.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if got := ids(tasks); len(got) != 2 || !got[a.TaskID] || !got[b.TaskID] {
		t.Fatalf("Expected A and B listed, got %+v", tasks)
	}

	updated, err := s.Update(ctx, a.TaskID, tasksrepo.UpdateTask{Title: "A2", Desc: "changed"})
	if err != nil {
		t.Fatalf("Update without status failed: %v", err)
	}
	if updated.TaskID != a.TaskID || updated.Title != "A2" || updated.Desc != "changed" || updated.Status != "Pending" {
		t.Errorf("Expected title and desc replaced with status kept, got %+v", updated)
	}

	completed := "Completed"
	updated, err = s.Update(ctx, a.TaskID, tasksrepo.UpdateTask{Title: "A3", Desc: "done", Status: &completed})
	if err != nil {
		t.Fatalf("Update with status failed: %v", err)
	}
	if updated.Status != "Completed" || updated.Title != "A3" {
		t.Errorf("Expected A3/Completed, got %+v", updated)
	}

	if _, err := s.Update(ctx, missingID, tasksrepo.UpdateTask{Title: "x"}); !errors.Is(err, repositories.ErrNotFound) {
		t.Errorf("Expected ErrNotFound updating a missing task, got %v", err)
	}

	if err := s.Delete(ctx, a.TaskID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := s.Delete(ctx, a.TaskID); !errors.Is(err, repositories.ErrNotFound) {
		t.Errorf("Expected ErrNotFound deleting twice, got %v", err)
	}

	tasks, err = s.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(tasks) != 1 || tasks[0].TaskID != b.TaskID || tasks[0].Status != "In Progress" {
		t.Errorf("Expected only B left, got %+v", tasks)
	}

	if err := s.Check(ctx); err != nil {
		t.Errorf("Expected Check to pass, got %v", err)
	}
}

func ids(tasks []tasksrepo.Task) map[string]bool {
	out := make(map[string]bool, len(tasks))
	for _, task := range tasks {
		out[task.TaskID] = true
	}
	return out
}
