package validation_test

import (
	"errors"
	"testing"

	"github.com/jrazmi/tasktracker/sdk/validation"
)

func TestCheck(t *testing.T) {
	tests := []struct {
		name   string
		title  string
		desc   string
		fields []string
	}{
		{name: "both set", title: "Buy milk", desc: "2%"},
		{name: "whitespace counts", title: " ", desc: " "},
		{name: "empty title", title: "", desc: "2%", fields: []string{"title"}},
		{name: "both empty", fields: []string{"title", "desc"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validation.Check(
				validation.Required("title", tt.title),
				validation.Required("desc", tt.desc),
			)
			if len(tt.fields) == 0 {
				if err != nil {
					t.Fatalf("Expected no error, got %v", err)
				}
				return
			}

			var fe validation.FieldErrors
			if !errors.As(err, &fe) {
				t.Fatalf("Expected FieldErrors, got %v", err)
			}
			got := fe.Fields()
			if len(got) != len(tt.fields) {
				t.Fatalf("Expected fields %v, got %v", tt.fields, got)
			}
			for i := range got {
				if got[i] != tt.fields[i] {
					t.Errorf("Expected field %s at %d, got %s", tt.fields[i], i, got[i])
				}
			}
		})
	}
}

func TestSlugify(t *testing.T) {
	tests := map[string]string{
		"In Progress":   "in-progress",
		"Pending":       "pending",
		"  Déjà  vu__ ": "deja-vu",
		"":              "",
	}
	for in, want := range tests {
		if got := validation.Slugify(in); got != want {
			t.Errorf("Slugify(%q): expected %q, got %q", in, want, got)
		}
	}
}
