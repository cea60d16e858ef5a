// Package ui serves the task list and its add/edit form as server rendered
// HTML. Every action is a form post answered with a redirect back to the
// list.
//
// One taskform.Form backs every open page. Each render of the list reloads
// it from the API, unless a submit is in flight, so changes made from other
// pages or straight through the API show up on the next render. Between
// renders the Form patches its copy by id after each successful call.
package ui

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/jrazmi/tasktracker/bridge/scaffolding/errs"
	"github.com/jrazmi/tasktracker/core/taskform"
	"github.com/jrazmi/tasktracker/infrastructure/web"
	"github.com/jrazmi/tasktracker/sdk/logger"
	"github.com/jrazmi/tasktracker/sdk/taskapi"
	"github.com/jrazmi/tasktracker/sdk/validation"
)

//go:embed templates/*.html
var templateFiles embed.FS

//go:embed static
var staticFiles embed.FS

var funcs = template.FuncMap{
	"statusClass": func(s taskapi.Status) string {
		return validation.Slugify(string(s.OrDefault()))
	},
	"inc": func(i int) int {
		return i + 1
	},
}

// Config holds what the UI handlers need.
type Config struct {
	Log  *logger.Logger
	Form *taskform.Form
}

type handlers struct {
	log  *logger.Logger
	form *taskform.Form
	tmpl *template.Template
}

// page is the data the index template renders.
type page struct {
	taskform.View
	Statuses []taskapi.Status
}

func (p page) Open() bool {
	return p.State != taskform.Closed
}

func (p page) Editing() bool {
	return p.State == taskform.OpenForEdit
}

// AddHandlers registers the UI routes and static assets.
func AddHandlers(wh *web.WebHandler, cfg Config) error {
	tmpl, err := template.New("index.html").Funcs(funcs).ParseFS(templateFiles, "templates/index.html")
	if err != nil {
		return fmt.Errorf("parsing templates: %w", err)
	}

	h := &handlers{
		log:  cfg.Log,
		form: cfg.Form,
		tmpl: tmpl,
	}

	wh.GET("/{$}", h.index)
	wh.POST("/form/open", h.openCreate)
	wh.POST("/form/submit", h.submit)
	wh.POST("/form/cancel", h.cancel)
	wh.POST("/tasks/{task_id}/edit", h.openEdit)
	wh.POST("/tasks/{task_id}/delete", h.delete)

	if err := wh.FileServer(staticFiles, "static", "/static/"); err != nil {
		return fmt.Errorf("static files: %w", err)
	}

	return nil
}

// index reloads the list, then renders.
func (h *handlers) index(ctx context.Context, r *http.Request) web.Encoder {
	if !h.form.Snapshot().InFlight {
		h.form.Load(ctx)
	}

	var buf bytes.Buffer
	data := page{
		View:     h.form.Snapshot(),
		Statuses: taskapi.Statuses,
	}
	if err := h.tmpl.Execute(&buf, data); err != nil {
		return errs.New(errs.Internal, err)
	}

	return web.NewHTMLResponse(buf.Bytes())
}

func (h *handlers) openCreate(ctx context.Context, r *http.Request) web.Encoder {
	h.form.OpenCreate()
	return web.NewRedirect("/")
}

func (h *handlers) openEdit(ctx context.Context, r *http.Request) web.Encoder {
	taskID := web.Param(r, "task_id")
	if !h.form.OpenEdit(taskID) {
		h.log.InfoContext(ctx, "edit of unlisted task", "task_id", taskID)
	}
	return web.NewRedirect("/")
}

// submit sends the posted form for the task id it was rendered with. The
// form state is shared by every open page, so the post is authoritative.
func (h *handlers) submit(ctx context.Context, r *http.Request) web.Encoder {
	fields := taskform.Fields{
		Title:  web.FormValue(r, taskform.FieldTitle),
		Desc:   web.FormValue(r, taskform.FieldDesc),
		Status: taskapi.Status(web.FormValue(r, taskform.FieldStatus)),
	}

	h.form.SubmitFor(ctx, web.FormValue(r, "task_id"), fields)
	return web.NewRedirect("/")
}

func (h *handlers) cancel(ctx context.Context, r *http.Request) web.Encoder {
	h.form.Cancel()
	return web.NewRedirect("/")
}

func (h *handlers) delete(ctx context.Context, r *http.Request) web.Encoder {
	h.form.Delete(ctx, web.Param(r, "task_id"))
	return web.NewRedirect("/")
}
