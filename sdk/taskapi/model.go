// Package taskapi holds the JSON shapes exchanged over the task REST API and
// a typed client for it. The server bridge and the form UI both build on
// these types.
package taskapi

import (
	"github.com/jrazmi/tasktracker/sdk/validation"
)

// Status is the progress state of a task.
type Status string

const (
	StatusPending    Status = "Pending"
	StatusInProgress Status = "In Progress"
	StatusCompleted  Status = "Completed"
)

// DefaultStatus applies whenever a task or payload carries no status.
const DefaultStatus = StatusPending

// Statuses lists every status in display order.
var Statuses = []Status{StatusPending, StatusInProgress, StatusCompleted}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

// OrDefault returns s, or DefaultStatus when s is empty.
func (s Status) OrDefault() Status {
	if s == "" {
		return DefaultStatus
	}
	return s
}

// Task is a persisted to-do item as returned by the API.
type Task struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Desc   string `json:"desc"`
	Status Status `json:"status"`
}

// TaskInput is the request body for create and update. Any id in the body
// is ignored by the server.
type TaskInput struct {
	Title  string `json:"title"`
	Desc   string `json:"desc"`
	Status Status `json:"status,omitempty"`
}

// CheckRequired is the client-side submission gate: title and desc must
// both be non-empty. The server does not enforce it.
func (in TaskInput) CheckRequired() error {
	return validation.Check(
		validation.Required("title", in.Title),
		validation.Required("desc", in.Desc),
	)
}

// DeletedMessage is the fixed confirmation returned by every delete.
const DeletedMessage = "Task deleted"

// MessageResponse is the body of a delete confirmation.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the body of every non-2xx API response.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// HealthResponse is the body of the health endpoint.
type HealthResponse struct {
	Status string `json:"status"`
}
