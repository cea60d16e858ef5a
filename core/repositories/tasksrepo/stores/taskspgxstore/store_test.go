package taskspgxstore

import (
	"context"
	"errors"
	"testing"

	"github.com/jrazmi/tasktracker/core/repositories"
	"github.com/jrazmi/tasktracker/core/repositories/tasksrepo"
	"github.com/jrazmi/tasktracker/sdk/logger"
)

func TestMalformedIDIsNotFound(t *testing.T) {
	// Malformed ids are rejected before a query is sent.
	s := NewStore(logger.NewDiscard(), nil)

	if _, err := s.Update(context.Background(), "12", tasksrepo.UpdateTask{Title: "x"}); !errors.Is(err, repositories.ErrNotFound) {
		t.Errorf("Expected ErrNotFound from Update, got %v", err)
	}
	if err := s.Delete(context.Background(), "12"); !errors.Is(err, repositories.ErrNotFound) {
		t.Errorf("Expected ErrNotFound from Delete, got %v", err)
	}
}
