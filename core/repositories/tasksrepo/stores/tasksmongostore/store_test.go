package tasksmongostore

import (
	"context"
	"errors"
	"testing"

	"github.com/jrazmi/tasktracker/core/repositories"
	"github.com/jrazmi/tasktracker/core/repositories/tasksrepo"
	"github.com/jrazmi/tasktracker/sdk/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestUpdateDocument(t *testing.T) {
	set := updateDocument(tasksrepo.UpdateTask{Title: "t", Desc: "d"})["$set"].(bson.M)
	if _, ok := set["status"]; ok {
		t.Error("Expected status to be left out of $set when nil")
	}
	if set["title"] != "t" || set["desc"] != "d" {
		t.Errorf("Expected title and desc in $set, got %v", set)
	}

	status := "Completed"
	set = updateDocument(tasksrepo.UpdateTask{Title: "t", Desc: "d", Status: &status})["$set"].(bson.M)
	if set["status"] != "Completed" {
		t.Errorf("Expected status 'Completed', got %v", set["status"])
	}
}

func TestToTasks(t *testing.T) {
	id := primitive.NewObjectID()
	tasks := toTasks([]document{{ID: id, Title: "Buy milk", Desc: "2L", Status: "Pending"}})

	if len(tasks) != 1 {
		t.Fatalf("Expected 1 task, got %d", len(tasks))
	}
	if tasks[0].TaskID != id.Hex() {
		t.Errorf("Expected id %s, got %s", id.Hex(), tasks[0].TaskID)
	}
	if tasks[0].Desc != "2L" {
		t.Errorf("Expected desc '2L', got '%s'", tasks[0].Desc)
	}

	if got := toTasks(nil); got == nil || len(got) != 0 {
		t.Errorf("Expected empty non-nil slice, got %v", got)
	}
}

func TestMalformedIDIsNotFound(t *testing.T) {
	// Malformed ids are rejected before the collection is touched.
	s := NewStore(logger.NewDiscard(), nil)

	if _, err := s.Update(context.Background(), "not-an-object-id", tasksrepo.UpdateTask{}); !errors.Is(err, repositories.ErrNotFound) {
		t.Errorf("Expected ErrNotFound from Update, got %v", err)
	}
	if err := s.Delete(context.Background(), "not-an-object-id"); !errors.Is(err, repositories.ErrNotFound) {
		t.Errorf("Expected ErrNotFound from Delete, got %v", err)
	}
}
