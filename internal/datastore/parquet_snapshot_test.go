package datastore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/aleister1102/figmabot/internal/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParquetSnapshot_RoundTrip(t *testing.T) {
	for _, codec := range []string{"zstd", "snappy", "gzip", "none"} {
		t.Run(codec, func(t *testing.T) {
			ctx := context.Background()
			snapshot := NewParquetSnapshot(filepath.Join(t.TempDir(), "snap", "subs.parquet"), codec, zerolog.Nop())

			require.NoError(t, snapshot.WriteSnapshot(ctx, sampleRecords()))

			got, err := snapshot.GetAllSubscriptions(ctx)
			require.NoError(t, err)
			assert.Equal(t, sampleRecords(), got)
		})
	}
}

func TestParquetSnapshot_MissingFile(t *testing.T) {
	snapshot := NewParquetSnapshot(filepath.Join(t.TempDir(), "absent.parquet"), "zstd", zerolog.Nop())

	got, err := snapshot.GetAllSubscriptions(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestParquetSnapshot_OverwritesPrevious(t *testing.T) {
	ctx := context.Background()
	snapshot := NewParquetSnapshot(filepath.Join(t.TempDir(), "subs.parquet"), "zstd", zerolog.Nop())

	require.NoError(t, snapshot.WriteSnapshot(ctx, sampleRecords()))
	require.NoError(t, snapshot.WriteSnapshot(ctx, sampleRecords()[:1]))

	got, err := snapshot.GetAllSubscriptions(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "s1", got[0].ID)
}

func TestParquetSnapshot_RejectsInvalidRecord(t *testing.T) {
	snapshot := NewParquetSnapshot(filepath.Join(t.TempDir(), "subs.parquet"), "zstd", zerolog.Nop())

	err := snapshot.WriteSnapshot(context.Background(), []models.SubscriptionRecord{{ID: ""}})
	assert.Error(t, err)
}
