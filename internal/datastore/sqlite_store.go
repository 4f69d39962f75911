package datastore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aleister1102/figmabot/internal/models"
	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"
)

// SQLiteStore keeps subscriptions and user tokens in a local SQLite file.
type SQLiteStore struct {
	db     *sql.DB
	logger zerolog.Logger
}

// NewSQLiteStore opens the database at path and ensures the schema.
func NewSQLiteStore(path string, logger zerolog.Logger) (*SQLiteStore, error) {
	logger = logger.With().Str("module", "SQLiteStore").Logger()
	logger.Info().Str("db_path", path).Msg("Initializing subscription database connection")

	dbDir := filepath.Dir(path)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		logger.Error().Err(err).Str("directory", dbDir).Msg("Failed to create database directory")
		return nil, fmt.Errorf("failed to create database directory %s: %w", dbDir, err)
	}

	dbInstance, err := sql.Open("sqlite", path)
	if err != nil {
		logger.Error().Err(err).Str("db_path", path).Msg("Failed to open subscription database")
		return nil, fmt.Errorf("sql.Open failed for %s: %w", path, err)
	}

	store := &SQLiteStore{db: dbInstance, logger: logger}
	if err := store.initSchema(); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	logger.Info().Str("path", path).Msg("Database initialized and schema verified")
	return store, nil
}

func (s *SQLiteStore) initSchema() error {
	query := `
	CREATE TABLE IF NOT EXISTS subscriptions (
		id TEXT PRIMARY KEY,
		watcher_id TEXT NOT NULL DEFAULT '',
		room_data TEXT NOT NULL DEFAULT '[]',
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE TABLE IF NOT EXISTS user_tokens (
		user_id TEXT PRIMARY KEY,
		token TEXT NOT NULL,
		expires_at DATETIME
	);
	`
	if _, err := s.db.Exec(query); err != nil {
		s.logger.Error().Err(err).Msg("Failed to initialize schema")
		return err
	}
	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// GetAllSubscriptions returns every valid subscription in insertion order.
func (s *SQLiteStore) GetAllSubscriptions(ctx context.Context) ([]models.SubscriptionRecord, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, watcher_id, room_data FROM subscriptions ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("failed to query subscriptions: %w", err)
	}
	defer rows.Close()

	var records []models.SubscriptionRecord
	for rows.Next() {
		var id, watcherID, roomData string
		if err := rows.Scan(&id, &watcherID, &roomData); err != nil {
			return nil, fmt.Errorf("failed to scan subscription row: %w", err)
		}
		records = appendValid(records, s.logger, id, watcherID, []byte(roomData))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate subscriptions: %w", err)
	}

	s.logger.Debug().Int("count", len(records)).Msg("Loaded subscriptions")
	return records, nil
}

// SaveSubscription inserts or replaces a subscription, keeping its original position.
func (s *SQLiteStore) SaveSubscription(ctx context.Context, record models.SubscriptionRecord) error {
	if err := validateRecord(record); err != nil {
		return err
	}
	roomData, err := encodeRoomData(record.RoomData)
	if err != nil {
		return err
	}

	query := `INSERT INTO subscriptions (id, watcher_id, room_data) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET watcher_id = excluded.watcher_id, room_data = excluded.room_data, updated_at = CURRENT_TIMESTAMP`
	if _, err := s.db.ExecContext(ctx, query, record.ID, record.WatcherID, string(roomData)); err != nil {
		s.logger.Error().Err(err).Str("subscription_id", record.ID).Msg("Failed to save subscription")
		return fmt.Errorf("failed to save subscription %s: %w", record.ID, err)
	}
	return nil
}

// GetAccessTokenForUser returns the stored token, or nil when the user has none.
func (s *SQLiteStore) GetAccessTokenForUser(ctx context.Context, userID string) (*models.AccessToken, error) {
	var token models.AccessToken
	var expiresAt sql.NullTime
	err := s.db.QueryRowContext(ctx, `SELECT user_id, token, expires_at FROM user_tokens WHERE user_id = ?`, userID).
		Scan(&token.UserID, &token.Token, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query token for user %s: %w", userID, err)
	}
	if expiresAt.Valid {
		token.ExpiresAt = expiresAt.Time
	}
	return &token, nil
}

// SaveAccessToken stores or replaces a user's token.
func (s *SQLiteStore) SaveAccessToken(ctx context.Context, token models.AccessToken) error {
	var expiresAt sql.NullTime
	if !token.ExpiresAt.IsZero() {
		expiresAt = sql.NullTime{Time: token.ExpiresAt.UTC(), Valid: true}
	}
	query := `INSERT INTO user_tokens (user_id, token, expires_at) VALUES (?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET token = excluded.token, expires_at = excluded.expires_at`
	if _, err := s.db.ExecContext(ctx, query, token.UserID, token.Token, expiresAt); err != nil {
		return fmt.Errorf("failed to save token for user %s: %w", token.UserID, err)
	}
	s.logger.Info().Str("user_id", token.UserID).Msg("Saved access token")
	return nil
}
