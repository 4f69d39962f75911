package datastore

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/aleister1102/figmabot/internal/common"
	"github.com/aleister1102/figmabot/internal/models"
	"github.com/parquet-go/parquet-go"
	"github.com/rs/zerolog"
)

// ParquetSubscription is the on-disk row of a subscription snapshot.
// Room bindings are stored as a JSON string.
type ParquetSubscription struct {
	ID           string `parquet:"id"`
	WatcherID    string `parquet:"watcher_id"`
	RoomDataJSON string `parquet:"room_data_json"`
}

const snapshotReadBatch = 100

// ParquetSnapshot serves subscriptions from a Parquet file. It is written by
// the export command and read as a SubscriptionStore.
type ParquetSnapshot struct {
	path   string
	codec  string
	logger zerolog.Logger
}

// NewParquetSnapshot creates a snapshot bound to path. codec is one of zstd, snappy, gzip or none.
func NewParquetSnapshot(path, codec string, logger zerolog.Logger) *ParquetSnapshot {
	return &ParquetSnapshot{
		path:   path,
		codec:  codec,
		logger: logger.With().Str("module", "ParquetSnapshot").Logger(),
	}
}

// GetAllSubscriptions reads the snapshot. A missing file yields no subscriptions.
func (p *ParquetSnapshot) GetAllSubscriptions(ctx context.Context) ([]models.SubscriptionRecord, error) {
	file, err := os.Open(p.path)
	if errors.Is(err, os.ErrNotExist) {
		p.logger.Warn().Str("file_path", p.path).Msg("Snapshot file does not exist, returning empty list")
		return nil, nil
	}
	if err != nil {
		return nil, common.WrapError(err, "failed to open snapshot file: "+p.path)
	}
	defer file.Close()

	reader := parquet.NewGenericReader[ParquetSubscription](file)
	defer reader.Close()

	var records []models.SubscriptionRecord
	batch := make([]ParquetSubscription, snapshotReadBatch)
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		n, err := reader.Read(batch)
		for _, row := range batch[:n] {
			records = appendValid(records, p.logger, row.ID, row.WatcherID, []byte(row.RoomDataJSON))
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, common.WrapError(err, "failed to read snapshot rows")
		}
	}

	p.logger.Debug().Int("records_read", len(records)).Str("file_path", p.path).Msg("Loaded subscription snapshot")
	return records, nil
}

// WriteSnapshot replaces the snapshot file with records.
func (p *ParquetSnapshot) WriteSnapshot(ctx context.Context, records []models.SubscriptionRecord) error {
	rows := make([]ParquetSubscription, 0, len(records))
	for _, record := range records {
		if err := validateRecord(record); err != nil {
			return err
		}
		roomData, err := encodeRoomData(record.RoomData)
		if err != nil {
			return err
		}
		rows = append(rows, ParquetSubscription{ID: record.ID, WatcherID: record.WatcherID, RoomDataJSON: string(roomData)})
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	dir := filepath.Dir(p.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return common.WrapError(err, "failed to create snapshot directory: "+dir)
	}

	tmp, err := os.CreateTemp(dir, ".snapshot-*.parquet")
	if err != nil {
		return common.WrapError(err, "failed to create temporary snapshot file")
	}
	defer os.Remove(tmp.Name())

	writer := parquet.NewGenericWriter[ParquetSubscription](tmp, p.compressionOption())
	if _, err := writer.Write(rows); err != nil {
		_ = writer.Close()
		_ = tmp.Close()
		return common.WrapError(err, "failed to write snapshot rows")
	}
	if err := writer.Close(); err != nil {
		_ = tmp.Close()
		return common.WrapError(err, "failed to finalize snapshot")
	}
	if err := tmp.Close(); err != nil {
		return common.WrapError(err, "failed to close snapshot file")
	}
	if err := os.Rename(tmp.Name(), p.path); err != nil {
		return common.WrapError(err, "failed to move snapshot into place")
	}

	p.logger.Info().Str("file_path", p.path).Int("records_written", len(rows)).Str("codec", p.codec).Msg("Wrote subscription snapshot")
	return nil
}

func (p *ParquetSnapshot) compressionOption() parquet.WriterOption {
	switch strings.ToLower(p.codec) {
	case "snappy":
		return parquet.Compression(&parquet.Snappy)
	case "gzip":
		return parquet.Compression(&parquet.Gzip)
	case "zstd", "":
		return parquet.Compression(&parquet.Zstd)
	case "none", "uncompressed":
		return parquet.Compression(&parquet.Uncompressed)
	default:
		p.logger.Warn().Str("codec", p.codec).Msg("Unsupported compression codec, defaulting to zstd")
		return parquet.Compression(&parquet.Zstd)
	}
}
