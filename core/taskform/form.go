// Package taskform holds the state of the task list view and its add/edit
// form. The Form owns the client-side copy of the task list: it replaces it
// wholesale on load and patches it by id after each successful mutation.
package taskform

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/jrazmi/tasktracker/sdk/logger"
	"github.com/jrazmi/tasktracker/sdk/taskapi"
)

// Client is the subset of the task API the form calls.
type Client interface {
	List(ctx context.Context) ([]taskapi.Task, error)
	Create(ctx context.Context, in taskapi.TaskInput) (taskapi.Task, error)
	Update(ctx context.Context, id string, in taskapi.TaskInput) (taskapi.Task, error)
	Delete(ctx context.Context, id string) error
}

// State is the form's visibility and mode.
type State int

const (
	Closed State = iota
	OpenForCreate
	OpenForEdit
)

func (s State) String() string {
	switch s {
	case OpenForCreate:
		return "open_for_create"
	case OpenForEdit:
		return "open_for_edit"
	default:
		return "closed"
	}
}

// Field names accepted by SetField.
const (
	FieldTitle  = "title"
	FieldDesc   = "desc"
	FieldStatus = "status"
)

// Fields are the staged form inputs.
type Fields struct {
	Title  string
	Desc   string
	Status taskapi.Status
}

func emptyFields() Fields {
	return Fields{Status: taskapi.DefaultStatus}
}

// View is a point-in-time copy of the form for rendering.
type View struct {
	State    State
	EditID   string
	Fields   Fields
	Tasks    []taskapi.Task
	InFlight bool
	Last     Result
}

// Form is safe for concurrent use. Its mutex is never held across a call
// to the Client.
type Form struct {
	log    *logger.Logger
	client Client

	mu       sync.Mutex
	tasks    []taskapi.Task
	state    State
	editID   string
	fields   Fields
	inFlight bool
	session  uint64
	last     Result
}

// New creates a closed Form with an empty task list.
func New(log *logger.Logger, client Client) *Form {
	return &Form{
		log:    log,
		client: client,
		tasks:  []taskapi.Task{},
		fields: emptyFields(),
	}
}

// Snapshot returns a copy of the current state.
func (f *Form) Snapshot() View {
	f.mu.Lock()
	defer f.mu.Unlock()

	return View{
		State:    f.state,
		EditID:   f.editID,
		Fields:   f.fields,
		Tasks:    slices.Clone(f.tasks),
		InFlight: f.inFlight,
		Last:     f.last,
	}
}

// LastResult returns the outcome of the most recent operation.
func (f *Form) LastResult() Result {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.last
}

// Load fetches every task and replaces the local list on success. On
// failure the list is left as it was.
func (f *Form) Load(ctx context.Context) Result {
	tasks, err := f.client.List(ctx)

	f.mu.Lock()
	defer f.mu.Unlock()

	if err != nil {
		return f.fail(ctx, OpList, err)
	}

	f.tasks = slices.Clone(tasks)
	if f.tasks == nil {
		f.tasks = []taskapi.Task{}
	}
	return f.record(success(OpList, taskapi.Task{}))
}

// OpenCreate resets the fields and opens the form for a new task.
func (f *Form) OpenCreate() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.fields = emptyFields()
	f.editID = ""
	f.state = OpenForCreate
	f.session++
}

// OpenEdit pre-populates the form from the task with id and opens it. It
// reports false, changing nothing, when no such task is listed.
func (f *Form) OpenEdit(id string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	i := slices.IndexFunc(f.tasks, func(t taskapi.Task) bool { return t.ID == id })
	if i < 0 {
		return false
	}

	task := f.tasks[i]
	f.fields = Fields{
		Title:  task.Title,
		Desc:   task.Desc,
		Status: task.Status.OrDefault(),
	}
	f.editID = id
	f.state = OpenForEdit
	f.session++
	return true
}

// SetField stages one input while the form is open.
func (f *Form) SetField(name, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state == Closed {
		return ErrNotOpen
	}

	switch name {
	case FieldTitle:
		f.fields.Title = value
	case FieldDesc:
		f.fields.Desc = value
	case FieldStatus:
		status := taskapi.Status(value).OrDefault()
		if !status.Valid() {
			return fmt.Errorf("%w: %q", ErrInvalidStatus, value)
		}
		f.fields.Status = status
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	return nil
}

// Cancel closes the form. Staged fields and the bound id are kept until the
// form is opened again.
func (f *Form) Cancel() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.state = Closed
}

// Submit sends the staged fields. A bound id updates that task, otherwise a
// new task is created. Nothing is sent when title or desc is empty, when the
// form is closed, or while another submit is in flight.
func (f *Form) Submit(ctx context.Context) Result {
	f.mu.Lock()
	return f.submitLocked(ctx)
}

// SubmitFor stages fields bound to id, or unbound when id is empty, and
// submits them in one step. The form's current mode is replaced, so a page
// that posts back the id it was rendered for updates that task even if the
// form was reopened in between.
func (f *Form) SubmitFor(ctx context.Context, id string, fields Fields) Result {
	f.mu.Lock()

	if !f.inFlight {
		if err := f.stage(id, fields); err != nil {
			op := OpCreate
			if id != "" {
				op = OpUpdate
			}
			r := f.fail(ctx, op, err)
			f.mu.Unlock()
			return r
		}
	}

	return f.submitLocked(ctx)
}

// stage opens the form for id with fields. Callers hold f.mu.
func (f *Form) stage(id string, fields Fields) error {
	status := fields.Status.OrDefault()
	if !status.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, fields.Status)
	}
	fields.Status = status

	f.fields = fields
	f.editID = id
	f.state = OpenForCreate
	if id != "" {
		f.state = OpenForEdit
	}
	f.session++
	return nil
}

// submitLocked is entered holding f.mu and releases it before calling the
// Client.
func (f *Form) submitLocked(ctx context.Context) Result {
	op, id, session, input, err := f.beginSubmit()
	if err != nil {
		r := f.fail(ctx, op, err)
		f.mu.Unlock()
		return r
	}
	f.mu.Unlock()

	var task taskapi.Task
	if op == OpUpdate {
		task, err = f.client.Update(ctx, id, input)
	} else {
		task, err = f.client.Create(ctx, input)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.inFlight = false
	if err != nil {
		return f.fail(ctx, op, err)
	}

	if op == OpUpdate {
		f.replace(task)
	} else {
		f.tasks = append(f.tasks, task)
	}

	// The form may have been reopened while the call ran.
	if f.session == session {
		f.fields = emptyFields()
		f.editID = ""
		f.state = Closed
	}

	return f.record(success(op, task))
}

// Delete removes the task with id and drops it from the local list.
func (f *Form) Delete(ctx context.Context, id string) Result {
	err := f.client.Delete(ctx, id)

	f.mu.Lock()
	defer f.mu.Unlock()

	if err != nil {
		return f.fail(ctx, OpDelete, err)
	}

	f.tasks = slices.DeleteFunc(f.tasks, func(t taskapi.Task) bool { return t.ID == id })
	return f.record(success(OpDelete, taskapi.Task{ID: id}))
}

// beginSubmit checks the gate and marks a submit in flight. Callers hold
// f.mu.
func (f *Form) beginSubmit() (Op, string, uint64, taskapi.TaskInput, error) {
	op := OpCreate
	if f.editID != "" {
		op = OpUpdate
	}

	if f.state == Closed {
		return op, "", 0, taskapi.TaskInput{}, ErrNotOpen
	}
	if f.inFlight {
		return op, "", 0, taskapi.TaskInput{}, ErrSubmitInFlight
	}

	input := taskapi.TaskInput{
		Title:  f.fields.Title,
		Desc:   f.fields.Desc,
		Status: f.fields.Status.OrDefault(),
	}
	if err := input.CheckRequired(); err != nil {
		return op, "", 0, taskapi.TaskInput{}, err
	}

	f.inFlight = true
	return op, f.editID, f.session, input, nil
}

// replace swaps in task by id. Callers hold f.mu.
func (f *Form) replace(task taskapi.Task) {
	for i := range f.tasks {
		if f.tasks[i].ID == task.ID {
			f.tasks[i] = task
			return
		}
	}
}

// fail logs err and records it. Callers hold f.mu.
func (f *Form) fail(ctx context.Context, op Op, err error) Result {
	f.log.ErrorContext(ctx, "task form", "op", op, "err", err)
	return f.record(failure(op, err))
}

func (f *Form) record(r Result) Result {
	f.last = r
	return r
}
