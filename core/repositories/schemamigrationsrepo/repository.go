// Package schemamigrationsrepo reports which schema migrations a database
// has applied.
package schemamigrationsrepo

import (
	"context"
	"fmt"

	"github.com/jrazmi/tasktracker/sdk/logger"
)

// Storer defines the data storage interface for SchemaMigration.
type Storer interface {
	List(ctx context.Context) ([]SchemaMigration, error)
}

// Repository provides access to schemaMigration storage.
type Repository struct {
	log    *logger.Logger
	storer Storer
}

// NewRepository creates a new SchemaMigration repository
func NewRepository(log *logger.Logger, storer Storer) *Repository {
	return &Repository{
		log:    log,
		storer: storer,
	}
}

// List returns applied migrations ordered by version.
func (r *Repository) List(ctx context.Context) ([]SchemaMigration, error) {
	records, err := r.storer.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("schema migrations list: %w", err)
	}
	return records, nil
}

// Status reports every version in files alongside its applied record.
// Applied versions with no matching file are appended at the end.
func (r *Repository) Status(ctx context.Context, files []string) ([]Status, error) {
	applied, err := r.List(ctx)
	if err != nil {
		return nil, err
	}

	byVersion := make(map[string]SchemaMigration, len(applied))
	for _, m := range applied {
		byVersion[m.Version] = m
	}

	out := make([]Status, 0, len(files))
	for _, f := range files {
		s := Status{Version: f}
		if m, ok := byVersion[f]; ok {
			s.Applied = &m
			delete(byVersion, f)
		}
		out = append(out, s)
	}

	for _, m := range applied {
		if _, orphan := byVersion[m.Version]; orphan {
			r.log.WarnContext(ctx, "applied migration has no file", "version", m.Version)
			out = append(out, Status{Version: m.Version, Applied: &m})
		}
	}

	return out, nil
}
