package datastore

import (
	"context"
	"errors"

	"github.com/aleister1102/figmabot/internal/common"
	"github.com/aleister1102/figmabot/internal/config"
	"github.com/aleister1102/figmabot/internal/models"
	"github.com/rs/zerolog"
)

// SubscriptionReader lists stored subscriptions.
type SubscriptionReader interface {
	GetAllSubscriptions(ctx context.Context) ([]models.SubscriptionRecord, error)
}

// Store is a writable subscription and token backend.
type Store interface {
	SubscriptionReader
	SaveSubscription(ctx context.Context, record models.SubscriptionRecord) error
	GetAccessTokenForUser(ctx context.Context, userID string) (*models.AccessToken, error)
	SaveAccessToken(ctx context.Context, token models.AccessToken) error
	Close() error
}

// Backend is what the configured driver serves: where subscriptions are
// read from and the writable store that holds tokens.
type Backend struct {
	Subscriptions SubscriptionReader
	Store         Store
}

// Close closes the underlying store.
func (b *Backend) Close() error {
	if b.Store == nil {
		return nil
	}
	return b.Store.Close()
}

// Open builds the backend selected by cfg.Driver.
func Open(ctx context.Context, cfg config.StorageConfig, logger zerolog.Logger) (*Backend, error) {
	switch cfg.Driver {
	case "postgres":
		store, err := NewPostgresStore(ctx, cfg.PostgresDSN, logger)
		if err != nil {
			return nil, err
		}
		return &Backend{Subscriptions: store, Store: store}, nil
	case "parquet":
		store, err := NewSQLiteStore(cfg.SQLitePath, logger)
		if err != nil {
			return nil, err
		}
		snapshot := NewParquetSnapshot(cfg.ParquetPath, cfg.CompressionCodec, logger)
		return &Backend{Subscriptions: snapshot, Store: store}, nil
	case "sqlite", "":
		store, err := NewSQLiteStore(cfg.SQLitePath, logger)
		if err != nil {
			return nil, err
		}
		return &Backend{Subscriptions: store, Store: store}, nil
	default:
		return nil, common.NewConfigurationError("storage_config", "driver", "unknown storage driver '"+cfg.Driver+"'")
	}
}

// CopySubscriptions saves every record from src into dst and returns how many were copied.
func CopySubscriptions(ctx context.Context, src SubscriptionReader, dst Store) (int, error) {
	records, err := src.GetAllSubscriptions(ctx)
	if err != nil {
		return 0, common.WrapError(err, "failed to read source subscriptions")
	}

	var errs []error
	copied := 0
	for _, record := range records {
		if err := dst.SaveSubscription(ctx, record); err != nil {
			errs = append(errs, err)
			continue
		}
		copied++
	}
	return copied, errors.Join(errs...)
}
