package ui_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/jrazmi/tasktracker/app/taskui/ui"
	"github.com/jrazmi/tasktracker/app/tasktracker/api"
	"github.com/jrazmi/tasktracker/app/tasktracker/config"
	"github.com/jrazmi/tasktracker/core/repositories/tasksrepo"
	"github.com/jrazmi/tasktracker/core/repositories/tasksrepo/stores/tasksmemstore"
	"github.com/jrazmi/tasktracker/core/taskform"
	"github.com/jrazmi/tasktracker/infrastructure/web"
	"github.com/jrazmi/tasktracker/sdk/logger"
	"github.com/jrazmi/tasktracker/sdk/taskapi"
	"github.com/jrazmi/tasktracker/sdk/telemetry"
)

type harness struct {
	ui       http.Handler
	form     *taskform.Form
	client   *taskapi.Client
	apiCalls atomic.Int64
	writes   atomic.Int64
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	log := logger.NewDiscard()
	h := &harness{}

	apiHandler := api.NewHandler(config.TaskTracker{
		Logger:  log,
		Handler: web.HandlerOptions{CORSOrigins: []string{"*"}},
		Repositories: config.Repositories{
			Tasks: tasksrepo.NewRepository(log, tasksmemstore.NewStore(log)),
		},
		Telemetry: telemetry.NewTelemetry(),
	})
	apiSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h.apiCalls.Add(1)
		if r.Method != http.MethodGet {
			h.writes.Add(1)
		}
		apiHandler.ServeHTTP(w, r)
	}))
	t.Cleanup(apiSrv.Close)

	h.client = taskapi.New(apiSrv.URL + "/api")
	h.form = taskform.New(log, h.client)

	wh := web.NewWebHandler(web.HandlerOptions{}, web.WithLogging(log))
	if err := ui.AddHandlers(wh, ui.Config{Log: log, Form: h.form}); err != nil {
		t.Fatalf("AddHandlers failed: %v", err)
	}
	h.ui = wh

	return h
}

func (h *harness) post(t *testing.T, path string, form url.Values) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ui.ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("Expected status 303 from %s, got %d", path, rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/" {
		t.Errorf("Expected redirect to /, got %s", loc)
	}
}

func (h *harness) get(t *testing.T) string {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ui.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}
	return rec.Body.String()
}

func TestUI_CreateEditDelete(t *testing.T) {
	h := newHarness(t)

	page := h.get(t)
	if !strings.Contains(page, "Todo List") || strings.Contains(page, "popOverForm") {
		t.Fatal("Expected the list with the form closed")
	}

	h.post(t, "/form/open", nil)
	page = h.get(t)
	if !strings.Contains(page, "Add Todo List</h2>") || !strings.Contains(page, "What To Do?") {
		t.Fatal("Expected the add form to be shown")
	}

	h.post(t, "/form/submit", url.Values{"title": {"Buy milk"}, "desc": {"2%"}, "status": {"Pending"}})
	page = h.get(t)
	if !strings.Contains(page, "Buy milk") || !strings.Contains(page, "status-pending") {
		t.Fatalf("Expected the new task in the table, got %s", page)
	}
	if strings.Contains(page, "popOverForm") {
		t.Error("Expected the form to close after submit")
	}

	tasks := h.form.Snapshot().Tasks
	if len(tasks) != 1 {
		t.Fatalf("Expected 1 task, got %d", len(tasks))
	}
	id := tasks[0].ID

	h.post(t, "/tasks/"+id+"/edit", nil)
	page = h.get(t)
	if !strings.Contains(page, "Edit Todo List") || !strings.Contains(page, `value="Buy milk"`) {
		t.Fatal("Expected the edit form pre-populated")
	}
	if !strings.Contains(page, `name="task_id" value="`+id+`"`) {
		t.Fatal("Expected the edit form to carry the task id")
	}

	h.post(t, "/form/submit", url.Values{"task_id": {id}, "title": {"Buy oat milk"}, "desc": {"1L"}, "status": {"In Progress"}})
	page = h.get(t)
	if !strings.Contains(page, "Buy oat milk") || !strings.Contains(page, "status-in-progress") {
		t.Fatal("Expected the updated task in the table")
	}

	h.post(t, "/tasks/"+id+"/delete", nil)
	page = h.get(t)
	if strings.Contains(page, "Buy oat milk") || !strings.Contains(page, "emptyList") {
		t.Error("Expected the task to be gone")
	}
}

func TestUI_EditSubmitAfterAnotherPageOpensAdd(t *testing.T) {
	h := newHarness(t)

	h.post(t, "/form/open", nil)
	h.post(t, "/form/submit", url.Values{"title": {"X"}, "desc": {"first"}})
	id := h.form.Snapshot().Tasks[0].ID

	// Page A opens the edit form, then page B opens the add form.
	h.post(t, "/tasks/"+id+"/edit", nil)
	h.get(t)
	h.post(t, "/form/open", nil)

	h.post(t, "/form/submit", url.Values{"task_id": {id}, "title": {"X edited"}, "desc": {"first"}, "status": {"Completed"}})

	h.get(t)
	tasks := h.form.Snapshot().Tasks
	if len(tasks) != 1 {
		t.Fatalf("Expected the edit to update the task, got %d tasks", len(tasks))
	}
	if tasks[0].ID != id || tasks[0].Title != "X edited" || tasks[0].Status != taskapi.StatusCompleted {
		t.Errorf("Expected %s updated to 'X edited'/Completed, got %+v", id, tasks[0])
	}
}

func TestUI_AddSubmitAfterAnotherPageOpensEdit(t *testing.T) {
	h := newHarness(t)

	h.post(t, "/form/open", nil)
	h.post(t, "/form/submit", url.Values{"title": {"X"}, "desc": {"first"}})
	id := h.form.Snapshot().Tasks[0].ID

	// Page A opens the add form, then page B opens the edit form.
	h.post(t, "/form/open", nil)
	h.post(t, "/tasks/"+id+"/edit", nil)

	h.post(t, "/form/submit", url.Values{"title": {"Y"}, "desc": {"second"}})

	h.get(t)
	tasks := h.form.Snapshot().Tasks
	if len(tasks) != 2 {
		t.Fatalf("Expected a second task, got %d tasks", len(tasks))
	}
	if tasks[0].Title != "X" || tasks[1].Title != "Y" {
		t.Errorf("Expected X untouched and Y created, got %+v", tasks)
	}
}

func TestUI_RenderShowsTasksCreatedElsewhere(t *testing.T) {
	h := newHarness(t)
	h.get(t)

	if _, err := h.client.Create(context.Background(), taskapi.TaskInput{Title: "From the API", Desc: "direct"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if page := h.get(t); !strings.Contains(page, "From the API") {
		t.Error("Expected the next render to show the task")
	}
}

func TestUI_EmptyTitleSendsNothing(t *testing.T) {
	h := newHarness(t)
	h.get(t)

	h.post(t, "/form/open", nil)
	h.post(t, "/form/submit", url.Values{"title": {""}, "desc": {"no title"}})

	if n := h.writes.Load(); n != 0 {
		t.Errorf("Expected no write calls to the API, got %d", n)
	}
	if n := len(h.form.Snapshot().Tasks); n != 0 {
		t.Errorf("Expected the task list to be unchanged, got %d tasks", n)
	}
	if h.form.LastResult().OK() {
		t.Error("Expected the last result to be a failure")
	}
}

func TestUI_Cancel(t *testing.T) {
	h := newHarness(t)

	h.post(t, "/form/open", nil)
	h.post(t, "/form/cancel", url.Values{"title": {"draft"}})

	if h.form.Snapshot().State != taskform.Closed {
		t.Error("Expected the form to be closed")
	}
	if n := h.apiCalls.Load(); n != 0 {
		t.Errorf("Expected no API calls, got %d", n)
	}
}

func TestUI_Static(t *testing.T) {
	h := newHarness(t)

	rec := httptest.NewRecorder()
	h.ui.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/static/style.css", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), ".status-in-progress") {
		t.Error("Expected the stylesheet")
	}
}
