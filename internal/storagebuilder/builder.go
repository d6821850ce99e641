package storagebuilder

import (
	"context"
	"fmt"
	"time"

	"github.com/jmhodges/clock"
	"github.com/lomoval/reminder/internal/storage"
	memorystorage "github.com/lomoval/reminder/internal/storage/memory"
	sqlstorage "github.com/lomoval/reminder/internal/storage/sql"
	log "github.com/sirupsen/logrus"
)

const connectTimeout = 15 * time.Second

type Config struct {
	StorageType string
	Database    sqlstorage.Config
}

// New creates storage of the configured type, connects it and prepares the schema.
func New(ctx context.Context, config Config, clk clock.Clock) (storage.Storage, error) {
	var s storage.Storage
	switch config.StorageType {
	case "memory":
		loc, err := storage.LoadLocation(config.Database.Timezone)
		if err != nil {
			return nil, err
		}
		s = memorystorage.New(clk, loc)
	case "sql":
		sqlStorage, err := sqlstorage.New(config.Database, clk)
		if err != nil {
			return nil, err
		}
		s = sqlStorage
	default:
		return nil, fmt.Errorf("unknown storage type %s", config.StorageType)
	}

	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := s.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database %s: %w", config.Database.Driver, err)
	}
	if err := s.Init(ctx); err != nil {
		if closeErr := s.Close(ctx); closeErr != nil {
			log.Errorf("failed to close storage: %v", closeErr)
		}
		return nil, fmt.Errorf("failed to init storage: %w", err)
	}
	return s, nil
}
