package db

import (
	"context"
	"database/sql"

	"github.com/kri-sh27/s3transcribe/internal/server/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context) error
	Conn() *sql.DB
	Users() users.Repository
}
