package taskapi_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jrazmi/tasktracker/app/tasktracker/api"
	"github.com/jrazmi/tasktracker/app/tasktracker/config"
	"github.com/jrazmi/tasktracker/core/repositories/tasksrepo"
	"github.com/jrazmi/tasktracker/core/repositories/tasksrepo/stores/tasksmemstore"
	"github.com/jrazmi/tasktracker/infrastructure/web"
	"github.com/jrazmi/tasktracker/sdk/logger"
	"github.com/jrazmi/tasktracker/sdk/taskapi"
	"github.com/jrazmi/tasktracker/sdk/telemetry"
)

func newServer(t *testing.T) *taskapi.Client {
	t.Helper()
	log := logger.NewDiscard()

	handler := api.NewHandler(config.TaskTracker{
		Logger:  log,
		Handler: web.HandlerOptions{CORSOrigins: []string{"*"}},
		Repositories: config.Repositories{
			Tasks: tasksrepo.NewRepository(log, tasksmemstore.NewStore(log)),
		},
		Telemetry: telemetry.NewTelemetry(),
	})

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return taskapi.New(srv.URL + "/api/")
}

func TestClient_Scenario(t *testing.T) {
	ctx := context.Background()
	client := newServer(t)

	tasks, err := client.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if tasks == nil || len(tasks) != 0 {
		t.Fatalf("Expected empty non-nil list, got %v", tasks)
	}

	a, err := client.Create(ctx, taskapi.TaskInput{Title: "A", Desc: "first"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if a.Status != taskapi.StatusPending {
		t.Errorf("Expected default status Pending, got %s", a.Status)
	}

	b, err := client.Create(ctx, taskapi.TaskInput{Title: "B", Desc: "second", Status: taskapi.StatusCompleted})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := client.Delete(ctx, a.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	tasks, err = client.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(tasks) != 1 || tasks[0] != b {
		t.Errorf("Expected [%+v], got %+v", b, tasks)
	}

	updated, err := client.Update(ctx, b.ID, taskapi.TaskInput{Title: "B2", Desc: "second", Status: taskapi.StatusInProgress})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.ID != b.ID || updated.Title != "B2" || updated.Status != taskapi.StatusInProgress {
		t.Errorf("Expected updated record, got %+v", updated)
	}
}

func TestClient_NotFound(t *testing.T) {
	ctx := context.Background()
	client := newServer(t)

	_, err := client.Update(ctx, "missing", taskapi.TaskInput{Title: "x", Desc: "y"})
	if !errors.Is(err, taskapi.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}

	var apiErr *taskapi.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("Expected an APIError, got %T", err)
	}
	if apiErr.StatusCode != http.StatusNotFound || apiErr.Code != "not_found" {
		t.Errorf("Expected 404 not_found, got %d %s", apiErr.StatusCode, apiErr.Code)
	}

	if err := client.Delete(ctx, "missing"); err != nil {
		t.Errorf("Expected delete of absent task to succeed, got %v", err)
	}
}

func TestClient_Health(t *testing.T) {
	if err := newServer(t).Health(context.Background()); err != nil {
		t.Errorf("Expected healthy API, got %v", err)
	}
}

func TestClient_NullUpdateBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte("null"))
	}))
	defer srv.Close()

	_, err := taskapi.New(srv.URL).Update(context.Background(), "abc", taskapi.TaskInput{Title: "x", Desc: "y"})
	if !errors.Is(err, taskapi.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for a null body, got %v", err)
	}
}

func TestClient_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	client := taskapi.New(srv.URL, taskapi.WithTimeout(50*time.Millisecond))
	if _, err := client.List(context.Background()); err == nil {
		t.Error("Expected a timeout error, got nil")
	}
}

func TestTaskInput_CheckRequired(t *testing.T) {
	tests := []struct {
		name  string
		input taskapi.TaskInput
		ok    bool
	}{
		{name: "complete", input: taskapi.TaskInput{Title: "a", Desc: "b"}, ok: true},
		{name: "empty title", input: taskapi.TaskInput{Desc: "b"}},
		{name: "empty desc", input: taskapi.TaskInput{Title: "a"}},
		{name: "both empty", input: taskapi.TaskInput{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.input.CheckRequired()
			if tt.ok && err != nil {
				t.Errorf("Expected no error, got %v", err)
			}
			if !tt.ok && err == nil {
				t.Error("Expected an error, got nil")
			}
		})
	}
}
