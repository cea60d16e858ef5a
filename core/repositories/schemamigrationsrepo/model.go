package schemamigrationsrepo

import "time"

// SchemaMigration is one applied migration file.
type SchemaMigration struct {
	Version   string    `db:"version"`
	Checksum  string    `db:"checksum"`
	AppliedAt time.Time `db:"applied_at"`
}

// Status pairs a known migration file with its applied record, if any.
type Status struct {
	Version string
	Applied *SchemaMigration
}
