package tasksrepo

// Task is a stored to-do item. Title and Desc are stored as given; the
// repository performs no validation on them.
type Task struct {
	TaskID string `db:"task_id"`
	Title  string `db:"title"`
	Desc   string `db:"description"`
	Status string `db:"status"`
}

// CreateTask contains fields for creating a new task.
type CreateTask struct {
	Title  string
	Desc   string
	Status string
}

// UpdateTask replaces the mutable fields of a task. A nil Status keeps the
// stored status.
type UpdateTask struct {
	Title  string
	Desc   string
	Status *string
}

// DefaultStatus is stored when a task is created without a status.
const DefaultStatus = "Pending"
