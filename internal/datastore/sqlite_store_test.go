package datastore

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/aleister1102/figmabot/internal/common"
	"github.com/aleister1102/figmabot/internal/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "nested", "figmabot.db"), zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func sampleRecords() []models.SubscriptionRecord {
	return []models.SubscriptionRecord{
		{ID: "s1", WatcherID: "w1", RoomData: []models.RoomFileBinding{{RoomID: "R1", FileIDs: []string{"x", "y"}}}},
		{ID: "s2", WatcherID: "w2", RoomData: []models.RoomFileBinding{{RoomID: "R2", FileIDs: []string{"z"}}, {RoomID: "R1"}}},
	}
}

func TestSQLiteStore_Subscriptions(t *testing.T) {
	ctx := context.Background()
	store := newTestSQLiteStore(t)

	empty, err := store.GetAllSubscriptions(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty)

	for _, record := range sampleRecords() {
		require.NoError(t, store.SaveSubscription(ctx, record))
	}

	got, err := store.GetAllSubscriptions(ctx)
	require.NoError(t, err)
	assert.Equal(t, sampleRecords(), got)
}

func TestSQLiteStore_UpsertKeepsPosition(t *testing.T) {
	ctx := context.Background()
	store := newTestSQLiteStore(t)
	for _, record := range sampleRecords() {
		require.NoError(t, store.SaveSubscription(ctx, record))
	}

	updated := sampleRecords()[0]
	updated.RoomData = []models.RoomFileBinding{{RoomID: "R3", FileIDs: []string{"q"}}}
	require.NoError(t, store.SaveSubscription(ctx, updated))

	got, err := store.GetAllSubscriptions(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "s1", got[0].ID)
	assert.Equal(t, "R3", got[0].RoomData[0].RoomID)
}

func TestSQLiteStore_RejectsInvalidRecord(t *testing.T) {
	store := newTestSQLiteStore(t)

	err := store.SaveSubscription(context.Background(), models.SubscriptionRecord{
		ID:       "s1",
		RoomData: []models.RoomFileBinding{{RoomID: ""}},
	})
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestSQLiteStore_SkipsMalformedRows(t *testing.T) {
	ctx := context.Background()
	store := newTestSQLiteStore(t)
	require.NoError(t, store.SaveSubscription(ctx, sampleRecords()[0]))

	_, err := store.db.Exec(`INSERT INTO subscriptions (id, watcher_id, room_data) VALUES ('bad', '', '{not json')`)
	require.NoError(t, err)
	_, err = store.db.Exec(`INSERT INTO subscriptions (room_data, id, watcher_id) VALUES ('[{"room_id":"R1"}]', '', 'w9')`)
	require.NoError(t, err)

	got, err := store.GetAllSubscriptions(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "s1", got[0].ID)
}

func TestSQLiteStore_PrunesEmptyBindings(t *testing.T) {
	ctx := context.Background()
	store := newTestSQLiteStore(t)

	_, err := store.db.Exec(`INSERT INTO subscriptions (id, watcher_id, room_data) VALUES ('s1', 'w1', '[{"room_id":"R1","file_ids":["x",""]},{"room_id":"","file_ids":["q"]},{"room_id":"R2","file_ids":["z"]}]')`)
	require.NoError(t, err)

	got, err := store.GetAllSubscriptions(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, []models.RoomFileBinding{
		{RoomID: "R1", FileIDs: []string{"x"}},
		{RoomID: "R2", FileIDs: []string{"z"}},
	}, got[0].RoomData)
	assert.Equal(t, []string{"z"}, got[0].FileIDsForRoom("R2"))
}

func TestSQLiteStore_Tokens(t *testing.T) {
	ctx := context.Background()
	store := newTestSQLiteStore(t)

	missing, err := store.GetAccessTokenForUser(ctx, "U1")
	require.NoError(t, err)
	assert.Nil(t, missing)

	expires := time.Date(2030, 5, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, store.SaveAccessToken(ctx, models.AccessToken{UserID: "U1", Token: "first", ExpiresAt: expires}))
	require.NoError(t, store.SaveAccessToken(ctx, models.AccessToken{UserID: "U1", Token: "second", ExpiresAt: expires}))
	require.NoError(t, store.SaveAccessToken(ctx, models.AccessToken{UserID: "U2", Token: "forever"}))

	got, err := store.GetAccessTokenForUser(ctx, "U1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "second", got.Token)
	assert.True(t, expires.Equal(got.ExpiresAt))

	forever, err := store.GetAccessTokenForUser(ctx, "U2")
	require.NoError(t, err)
	require.NotNil(t, forever)
	assert.True(t, forever.ExpiresAt.IsZero())
}
