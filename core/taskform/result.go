package taskform

import (
	"errors"

	"github.com/jrazmi/tasktracker/sdk/taskapi"
)

// Set of errors a Result can carry without a network call being made.
var (
	ErrNotOpen        = errors.New("form is not open")
	ErrSubmitInFlight = errors.New("a submit is already in flight")
	ErrUnknownField   = errors.New("unknown field")
	ErrInvalidStatus  = errors.New("invalid status")
)

// Op names the call a Result describes.
type Op string

const (
	OpList   Op = "list"
	OpCreate Op = "create"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
)

// Result is the outcome of one form operation. Err is nil on success; Task
// holds the affected record for create and update.
type Result struct {
	Op   Op
	Task taskapi.Task
	Err  error
}

func success(op Op, task taskapi.Task) Result {
	return Result{Op: op, Task: task}
}

func failure(op Op, err error) Result {
	return Result{Op: op, Err: err}
}

// OK reports whether the operation succeeded.
func (r Result) OK() bool {
	return r.Err == nil
}
