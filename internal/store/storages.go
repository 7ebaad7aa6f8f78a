package store

import (
	"context"

	"github.com/mfedotov/credvault/internal/config"
	"github.com/mfedotov/credvault/internal/logger"
)

// Storages bundles every repository the service layer depends on.
type Storages struct {
	Users       UserRepository
	Clients     ClientRepository
	Resources   ResourceRepository
	Credentials CredentialRepository

	// DB is exposed so the startup path can run migrations over the same
	// connection the repositories use.
	DB *DB
}

// NewStorages connects to PostgreSQL and constructs all repositories over
// the shared connection.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	db, err := NewConnectPostgres(ctx, cfg.DB, log)
	if err != nil {
		return nil, err
	}

	return &Storages{
		Users:       NewUserRepository(db, log),
		Clients:     NewClientRepository(db, log),
		Resources:   NewResourceRepository(db, log),
		Credentials: NewCredentialRepository(db, log),
		DB:          db,
	}, nil
}
