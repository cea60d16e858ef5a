package tasksrepobridge

import (
	"github.com/jrazmi/tasktracker/core/repositories/tasksrepo"
	"github.com/jrazmi/tasktracker/sdk/taskapi"
	"github.com/jrazmi/tasktracker/sdk/validation"
)

func MarshalToBridge(task tasksrepo.Task) taskapi.Task {
	return taskapi.Task{
		ID:     task.TaskID,
		Title:  task.Title,
		Desc:   task.Desc,
		Status: taskapi.Status(task.Status).OrDefault(),
	}
}

func MarshalListToBridge(tasks []tasksrepo.Task) []taskapi.Task {
	out := make([]taskapi.Task, len(tasks))
	for i, task := range tasks {
		out[i] = MarshalToBridge(task)
	}
	return out
}

func MarshalCreateToRepository(input taskapi.TaskInput) tasksrepo.CreateTask {
	return tasksrepo.CreateTask{
		Title:  input.Title,
		Desc:   input.Desc,
		Status: string(input.Status.OrDefault()),
	}
}

// MarshalUpdateToRepository leaves Status nil when the body omits it so the
// stored status is kept.
func MarshalUpdateToRepository(input taskapi.TaskInput) tasksrepo.UpdateTask {
	return tasksrepo.UpdateTask{
		Title:  input.Title,
		Desc:   input.Desc,
		Status: validation.StringPtrIfNotEmpty(string(input.Status)),
	}
}
