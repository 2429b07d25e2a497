package testutil

import (
	"database/sql"

	"github.com/pressly/goose/v3"

	"github.com/nehanema2025/trip-booking/migrations"
)

// NewProvider builds a goose provider over the embedded migration files for
// the given database. Shared by TestMain setup in repo tests and the
// migration round-trip test so they can never disagree on dialect or source.
func NewProvider(db *sql.DB) (*goose.Provider, error) {
	return goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
}
