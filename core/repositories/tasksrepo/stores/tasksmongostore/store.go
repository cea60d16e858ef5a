// Package tasksmongostore stores tasks as documents in a MongoDB collection.
package tasksmongostore

import (
	"context"
	"errors"
	"fmt"

	"github.com/jrazmi/tasktracker/core/repositories"
	"github.com/jrazmi/tasktracker/core/repositories/tasksrepo"
	"github.com/jrazmi/tasktracker/infrastructure/mongodb"
	"github.com/jrazmi/tasktracker/sdk/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// document is the stored shape of a task.
type document struct {
	ID     primitive.ObjectID `bson:"_id,omitempty"`
	Title  string             `bson:"title"`
	Desc   string             `bson:"desc"`
	Status string             `bson:"status"`
}

type Store struct {
	log *logger.Logger
	db  *mongodb.Database
}

func NewStore(log *logger.Logger, db *mongodb.Database) *Store {
	return &Store{
		log: log,
		db:  db,
	}
}

func (s *Store) List(ctx context.Context) ([]tasksrepo.Task, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})

	cursor, err := s.db.Collection.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find tasks: %w", err)
	}

	var docs []document
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode tasks: %w", err)
	}

	return toTasks(docs), nil
}

func (s *Store) Create(ctx context.Context, input tasksrepo.CreateTask) (tasksrepo.Task, error) {
	doc := document{
		ID:     primitive.NewObjectID(),
		Title:  input.Title,
		Desc:   input.Desc,
		Status: input.Status,
	}

	if _, err := s.db.Collection.InsertOne(ctx, doc); err != nil {
		return tasksrepo.Task{}, fmt.Errorf("insert task: %w", err)
	}

	return toTask(doc), nil
}

func (s *Store) Update(ctx context.Context, taskID string, input tasksrepo.UpdateTask) (tasksrepo.Task, error) {
	id, err := primitive.ObjectIDFromHex(taskID)
	if err != nil {
		return tasksrepo.Task{}, repositories.ErrNotFound
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc document
	err = s.db.Collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, updateDocument(input), opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return tasksrepo.Task{}, repositories.ErrNotFound
		}
		return tasksrepo.Task{}, fmt.Errorf("update task: %w", err)
	}

	return toTask(doc), nil
}

func (s *Store) Delete(ctx context.Context, taskID string) error {
	id, err := primitive.ObjectIDFromHex(taskID)
	if err != nil {
		return repositories.ErrNotFound
	}

	res, err := s.db.Collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if res.DeletedCount == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

func (s *Store) Check(ctx context.Context) error {
	if err := s.db.StatusCheck(ctx); err != nil {
		return fmt.Errorf("%w: %w", repositories.ErrUnavailable, err)
	}
	return nil
}

// updateDocument builds the $set for an update. Status is left alone when nil.
func updateDocument(input tasksrepo.UpdateTask) bson.M {
	set := bson.M{
		"title": input.Title,
		"desc":  input.Desc,
	}
	if input.Status != nil {
		set["status"] = *input.Status
	}
	return bson.M{"$set": set}
}

func toTask(doc document) tasksrepo.Task {
	return tasksrepo.Task{
		TaskID: doc.ID.Hex(),
		Title:  doc.Title,
		Desc:   doc.Desc,
		Status: doc.Status,
	}
}

func toTasks(docs []document) []tasksrepo.Task {
	tasks := make([]tasksrepo.Task, len(docs))
	for i, doc := range docs {
		tasks[i] = toTask(doc)
	}
	return tasks
}
