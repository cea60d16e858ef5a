// Package tasksrepobridge exposes the task repository over HTTP.
package tasksrepobridge

import (
	"context"
	"errors"
	"net/http"

	"github.com/jrazmi/tasktracker/bridge/scaffolding/errs"
	"github.com/jrazmi/tasktracker/core/repositories"
	"github.com/jrazmi/tasktracker/core/repositories/tasksrepo"
	"github.com/jrazmi/tasktracker/infrastructure/web"
	"github.com/jrazmi/tasktracker/sdk/logger"
	"github.com/jrazmi/tasktracker/sdk/taskapi"
)

// Config holds configuration for the Task bridge
type Config struct {
	Log        *logger.Logger
	Repository *tasksrepo.Repository
	Middleware []web.Middleware
}

// AddHttpRoutes registers all HTTP routes for Task
func AddHttpRoutes(group *web.RouteGroup, cfg Config) {
	b := newBridge(cfg.Log, cfg.Repository)

	group.GET("/tasks", b.httpList, cfg.Middleware...)
	group.POST("/tasks", b.httpCreate, cfg.Middleware...)
	group.PUT("/tasks/{task_id}", b.httpUpdate, cfg.Middleware...)
	group.DELETE("/tasks/{task_id}", b.httpDelete, cfg.Middleware...)
	group.GET("/health", b.httpHealth, cfg.Middleware...)
}

func (b *bridge) httpList(ctx context.Context, r *http.Request) web.Encoder {
	records, err := b.taskRepository.List(ctx)
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	return web.NewJSONResponse(MarshalListToBridge(records))
}

func (b *bridge) httpCreate(ctx context.Context, r *http.Request) web.Encoder {
	var input taskapi.TaskInput
	if err := web.Decode(r, &input); err != nil {
		return errs.Newf(errs.InvalidArgument, "decode: %s", err)
	}

	record, err := b.taskRepository.Create(ctx, MarshalCreateToRepository(input))
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	return web.NewJSONResponse(MarshalToBridge(record))
}

func (b *bridge) httpUpdate(ctx context.Context, r *http.Request) web.Encoder {
	taskID := web.Param(r, "task_id")

	var input taskapi.TaskInput
	if err := web.Decode(r, &input); err != nil {
		return errs.Newf(errs.InvalidArgument, "decode: %s", err)
	}

	record, err := b.taskRepository.Update(ctx, taskID, MarshalUpdateToRepository(input))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return errs.Newf(errs.NotFound, "task %s not found", taskID)
		}
		return errs.New(errs.Internal, err)
	}

	return web.NewJSONResponse(MarshalToBridge(record))
}

// httpDelete confirms every delete of an absent task the same way as a
// real one.
func (b *bridge) httpDelete(ctx context.Context, r *http.Request) web.Encoder {
	taskID := web.Param(r, "task_id")

	if err := b.taskRepository.Delete(ctx, taskID); err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return errs.New(errs.Internal, err)
	}

	return web.NewJSONResponse(taskapi.MessageResponse{Message: taskapi.DeletedMessage})
}

func (b *bridge) httpHealth(ctx context.Context, r *http.Request) web.Encoder {
	if err := b.taskRepository.Check(ctx); err != nil {
		b.log.WarnContext(ctx, "health check failed", "err", err)
		return errs.Newf(errs.Unavailable, "storage unavailable")
	}

	return web.NewJSONResponse(taskapi.HealthResponse{Status: "ok"})
}
