package tasksmongostore

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/jrazmi/tasktracker/core/repositories/tasksrepo/stores/storetest"
	"github.com/jrazmi/tasktracker/infrastructure/mongodb"
	"github.com/jrazmi/tasktracker/sdk/logger"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Set TASKTRACKER_TEST_MONGO_URI to run against a live server. Each run uses
// its own collection and drops it afterwards.
func TestStore_Mongo(t *testing.T) {
	uri := os.Getenv("TASKTRACKER_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("TASKTRACKER_TEST_MONGO_URI not set")
	}

	ctx := context.Background()
	log := logger.NewDiscard()

	db, err := mongodb.New(ctx, mongodb.Options{},
		mongodb.WithLogger(log.Logger),
		mongodb.WithURI(uri),
		mongodb.WithDatabase("tasktracker_test"),
		mongodb.WithCollection(fmt.Sprintf("tasks_%d", time.Now().UnixNano())),
		mongodb.WithConnectTimeout(5*time.Second),
	)
	if err != nil {
		t.Fatalf("connecting: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Collection.Drop(ctx); err != nil {
			t.Errorf("dropping collection: %v", err)
		}
		db.Close(ctx)
	})

	storetest.Run(t, NewStore(log, db), primitive.NewObjectID().Hex())
}
