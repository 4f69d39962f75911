package datastore

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/aleister1102/figmabot/internal/models"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Set FIGMABOT_TEST_POSTGRES_DSN to run against a real server.
func newTestPostgresStore(t *testing.T) *PostgresStore {
	t.Helper()
	dsn := os.Getenv("FIGMABOT_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("FIGMABOT_TEST_POSTGRES_DSN not set")
	}

	store, err := NewPostgresStore(context.Background(), dsn, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestPostgresStore_Subscriptions(t *testing.T) {
	ctx := context.Background()
	store := newTestPostgresStore(t)

	prefix := uuid.NewString()
	records := sampleRecords()
	for i := range records {
		records[i].ID = prefix + "-" + records[i].ID
		require.NoError(t, store.SaveSubscription(ctx, records[i]))
	}

	got, err := store.GetAllSubscriptions(ctx)
	require.NoError(t, err)

	var ours []models.SubscriptionRecord
	for _, r := range got {
		if len(r.ID) > len(prefix) && r.ID[:len(prefix)] == prefix {
			ours = append(ours, r)
		}
	}
	assert.Equal(t, records, ours)
}

func TestPostgresStore_Tokens(t *testing.T) {
	ctx := context.Background()
	store := newTestPostgresStore(t)
	userID := uuid.NewString()

	missing, err := store.GetAccessTokenForUser(ctx, userID)
	require.NoError(t, err)
	assert.Nil(t, missing)

	expires := time.Now().Add(time.Hour).UTC().Truncate(time.Second)
	require.NoError(t, store.SaveAccessToken(ctx, models.AccessToken{UserID: userID, Token: "tok", ExpiresAt: expires}))

	got, err := store.GetAccessTokenForUser(ctx, userID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "tok", got.Token)
	assert.True(t, expires.Equal(got.ExpiresAt))
}
