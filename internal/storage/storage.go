package storage

import (
	"context"
	"errors"

	"mailtriage/internal/models"
)

// ErrNotFound is returned when a get or update targets an unknown id.
var ErrNotFound = errors.New("email not found")

// Storage persists classified emails. Save inserts when the email has no id
// yet, assigning id and timestamps in place; otherwise it updates the
// existing row and fails with ErrNotFound if the id is unknown. List returns
// the most recently created records first.
type Storage interface {
	Save(ctx context.Context, email *models.Email) error
	Get(ctx context.Context, id int64) (*models.Email, error)
	List(ctx context.Context) ([]*models.Email, error)
	Close() error
}

type DatabaseConfig struct {
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	UseInMemory bool
}
