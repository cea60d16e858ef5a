package commands

import (
	"context"
	"testing"

	"github.com/jrazmi/tasktracker/core/repositories/tasksrepo"
	"github.com/jrazmi/tasktracker/core/repositories/tasksrepo/stores/tasksmemstore"
	"github.com/jrazmi/tasktracker/sdk/logger"
)

func TestSeed_CountsTasks(t *testing.T) {
	tests := []struct {
		name string
		n    int
		want []string
	}{
		{name: "none", n: 0, want: []string{}},
		{name: "fewer than the set", n: 2, want: []string{"Buy milk", "Water the plants"}},
		{name: "wraps around", n: 5, want: []string{"Buy milk", "Water the plants", "File taxes", "Buy milk", "Water the plants"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := logger.NewDiscard()
			repo := tasksrepo.NewRepository(log, tasksmemstore.NewStore(log))

			if err := seed(context.Background(), log, repo, tt.n); err != nil {
				t.Fatalf("seed failed: %v", err)
			}

			tasks, err := repo.List(context.Background())
			if err != nil {
				t.Fatalf("List failed: %v", err)
			}
			if len(tasks) != len(tt.want) {
				t.Fatalf("Expected %d tasks, got %d", len(tt.want), len(tasks))
			}
			for i, title := range tt.want {
				if tasks[i].Title != title {
					t.Errorf("Task %d: expected title %q, got %q", i, title, tasks[i].Title)
				}
			}
		})
	}
}

func TestSeed_RejectsNegativeCount(t *testing.T) {
	err := Seed(context.Background(), logger.NewDiscard(), []string{"-n=-1"}, nil)
	if err == nil {
		t.Error("Expected an error for a negative count")
	}
}
