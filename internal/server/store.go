package server

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/yukikurage/taskboard-api/internal/config"
	"github.com/yukikurage/taskboard-api/internal/database"
	"github.com/yukikurage/taskboard-api/internal/repository"
)

// OpenStore builds the store selected by cfg.StorageDriver.
// The returned func releases it.
func OpenStore(cfg *config.Config, log zerolog.Logger) (repository.Store, func() error, error) {
	switch cfg.StorageDriver {
	case config.StorageMemory, "":
		return repository.NewMemoryStore(), func() error { return nil }, nil
	case config.StorageSQLite:
		db, err := database.Open(cfg.SQLiteDSN, log)
		if err != nil {
			return nil, nil, err
		}
		return repository.NewGormStore(db), func() error { return database.Close(db) }, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}
