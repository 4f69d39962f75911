package datastore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aleister1102/figmabot/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// PostgresStore keeps subscriptions and tokens in PostgreSQL for shared deployments.
type PostgresStore struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewPostgresStore connects to dsn and ensures the schema.
func NewPostgresStore(ctx context.Context, dsn string, logger zerolog.Logger) (*PostgresStore, error) {
	logger = logger.With().Str("module", "PostgresStore").Logger()

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	store := &PostgresStore{pool: pool, logger: logger}
	if err := store.initSchema(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	logger.Info().Msg("Postgres store initialized and schema verified")
	return store, nil
}

func (s *PostgresStore) initSchema(ctx context.Context) error {
	query := `
	CREATE TABLE IF NOT EXISTS subscriptions (
		seq BIGSERIAL,
		id TEXT PRIMARY KEY,
		watcher_id TEXT NOT NULL DEFAULT '',
		room_data JSONB NOT NULL DEFAULT '[]'::jsonb,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	CREATE TABLE IF NOT EXISTS user_tokens (
		user_id TEXT PRIMARY KEY,
		token TEXT NOT NULL,
		expires_at TIMESTAMPTZ
	);
	`
	_, err := s.pool.Exec(ctx, query)
	return err
}

// Close releases the pool.
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

// GetAllSubscriptions returns every valid subscription in insertion order.
func (s *PostgresStore) GetAllSubscriptions(ctx context.Context) ([]models.SubscriptionRecord, error) {
	rows, err := s.pool.Query(ctx, `SELECT id, watcher_id, room_data FROM subscriptions ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("failed to query subscriptions: %w", err)
	}
	defer rows.Close()

	var records []models.SubscriptionRecord
	for rows.Next() {
		var id, watcherID string
		var roomData []byte
		if err := rows.Scan(&id, &watcherID, &roomData); err != nil {
			return nil, fmt.Errorf("failed to scan subscription row: %w", err)
		}
		records = appendValid(records, s.logger, id, watcherID, roomData)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate subscriptions: %w", err)
	}
	return records, nil
}

// SaveSubscription inserts or replaces a subscription.
func (s *PostgresStore) SaveSubscription(ctx context.Context, record models.SubscriptionRecord) error {
	if err := validateRecord(record); err != nil {
		return err
	}
	roomData, err := encodeRoomData(record.RoomData)
	if err != nil {
		return err
	}

	_, err = s.pool.Exec(ctx, `INSERT INTO subscriptions (id, watcher_id, room_data) VALUES ($1, $2, $3::jsonb)
		ON CONFLICT (id) DO UPDATE SET watcher_id = EXCLUDED.watcher_id, room_data = EXCLUDED.room_data, updated_at = now()`,
		record.ID, record.WatcherID, string(roomData))
	if err != nil {
		return fmt.Errorf("failed to save subscription %s: %w", record.ID, err)
	}
	return nil
}

// GetAccessTokenForUser returns the stored token, or nil when the user has none.
func (s *PostgresStore) GetAccessTokenForUser(ctx context.Context, userID string) (*models.AccessToken, error) {
	var token models.AccessToken
	var expiresAt *time.Time
	err := s.pool.QueryRow(ctx, `SELECT user_id, token, expires_at FROM user_tokens WHERE user_id = $1`, userID).
		Scan(&token.UserID, &token.Token, &expiresAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query token for user %s: %w", userID, err)
	}
	if expiresAt != nil {
		token.ExpiresAt = *expiresAt
	}
	return &token, nil
}

// SaveAccessToken stores or replaces a user's token.
func (s *PostgresStore) SaveAccessToken(ctx context.Context, token models.AccessToken) error {
	var expiresAt *time.Time
	if !token.ExpiresAt.IsZero() {
		t := token.ExpiresAt.UTC()
		expiresAt = &t
	}
	_, err := s.pool.Exec(ctx, `INSERT INTO user_tokens (user_id, token, expires_at) VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE SET token = EXCLUDED.token, expires_at = EXCLUDED.expires_at`,
		token.UserID, token.Token, expiresAt)
	if err != nil {
		return fmt.Errorf("failed to save token for user %s: %w", token.UserID, err)
	}
	return nil
}
