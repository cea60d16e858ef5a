package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jrazmi/tasktracker/core/repositories/schemamigrationsrepo"
	"github.com/jrazmi/tasktracker/core/repositories/schemamigrationsrepo/stores/schemamigrationspgxstore"
	"github.com/jrazmi/tasktracker/infrastructure/postgresdb"
	"github.com/jrazmi/tasktracker/schema"
	"github.com/jrazmi/tasktracker/sdk/logger"
)

// MigrateStatus prints every embedded migration and whether it is applied.
func MigrateStatus(ctx context.Context, log *logger.Logger, pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	files, err := postgresdb.MigrationFiles(schema.MigrationsFS, schema.MigrationsDir)
	if err != nil {
		return fmt.Errorf("list migration files: %w", err)
	}

	repo := schemamigrationsrepo.NewRepository(log, schemamigrationspgxstore.NewStore(log, pool))

	status, err := repo.Status(ctx, files)
	switch {
	case errors.Is(err, postgresdb.ErrUndefinedTable):
		log.InfoContext(ctx, "no migrations have been applied")
		status = make([]schemamigrationsrepo.Status, len(files))
		for i, f := range files {
			status[i].Version = f
		}
	case err != nil:
		return fmt.Errorf("migration status: %w", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "VERSION\tSTATUS\tAPPLIED AT")
	for _, s := range status {
		if s.Applied == nil {
			fmt.Fprintf(w, "%s\tpending\t-\n", s.Version)
			continue
		}
		fmt.Fprintf(w, "%s\tapplied\t%s\n", s.Version, s.Applied.AppliedAt.Format(time.RFC3339))
	}
	return w.Flush()
}
