package postgre

import (
	"database/sql"
	"fmt"

	"guest-response-agent/internal/inquiry/repository"
	"guest-response-agent/pkg/log"
)

type implRepository struct {
	db *sql.DB
	l  log.Logger
}

// New creates a PostgreSQL-backed RecordRepository for property and
// reservation lookups.
func New(db *sql.DB, l log.Logger) repository.RecordRepository {
	if db == nil {
		panic("inquiry/repository/postgre: db is required")
	}
	return &implRepository{db: db, l: l}
}

// dsn is a helper to return a method-scoped context string for logging.
func (r *implRepository) dsn(method string) string {
	return fmt.Sprintf("inquiry/repository/postgre.%s", method)
}
