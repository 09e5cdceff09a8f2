package store

import (
	"context"
	"fmt"

	"github.com/powergrid-apps/billkeeper/internal/config"
	"github.com/powergrid-apps/billkeeper/internal/logger"
)

// Storages aggregates every repository the service layer depends on.
type Storages struct {
	ConsumerRepository ConsumerRepository
	BillRepository     BillRepository
}

// NewStorages connects to the configured database backend, runs pending
// migrations, and wires the repositories.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	db, err := connect(ctx, cfg.DB, log)
	if err != nil {
		return nil, fmt.Errorf("error connecting storage backend: %w", err)
	}

	if err := db.Migrate(); err != nil {
		return nil, fmt.Errorf("error migrating database: %w", err)
	}

	return &Storages{
		ConsumerRepository: NewConsumerRepository(db, log),
		BillRepository:     NewBillRepository(db, log),
	}, nil
}

func connect(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	switch cfg.Driver {
	case "sqlite3":
		return NewConnectSQLite(ctx, cfg, log)
	default:
		return NewConnectPostgres(ctx, cfg, log)
	}
}
