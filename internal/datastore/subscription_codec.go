package datastore

import (
	"encoding/json"

	"github.com/aleister1102/figmabot/internal/common"
	"github.com/aleister1102/figmabot/internal/models"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

var recordValidator = validator.New()

func encodeRoomData(bindings []models.RoomFileBinding) ([]byte, error) {
	if bindings == nil {
		bindings = []models.RoomFileBinding{}
	}
	data, err := json.Marshal(bindings)
	if err != nil {
		return nil, common.WrapError(err, "failed to encode room data")
	}
	return data, nil
}

// decodeRecord rebuilds a stored row, prunes empty bindings and file ids, and
// validates what is left. dropped counts the pruned entries.
func decodeRecord(id, watcherID string, roomData []byte) (record models.SubscriptionRecord, dropped int, err error) {
	record = models.SubscriptionRecord{ID: id, WatcherID: watcherID}
	if len(roomData) > 0 {
		if err := json.Unmarshal(roomData, &record.RoomData); err != nil {
			return models.SubscriptionRecord{}, 0, common.WrapErrorf(err, "failed to decode room data for subscription '%s'", id)
		}
	}
	record.RoomData, dropped = pruneBindings(record.RoomData)
	if err := validateRecord(record); err != nil {
		return models.SubscriptionRecord{}, dropped, err
	}
	return record, dropped, nil
}

// pruneBindings removes empty file ids and bindings without a room, keeping
// every other binding in order.
func pruneBindings(bindings []models.RoomFileBinding) ([]models.RoomFileBinding, int) {
	dropped := 0
	kept := bindings[:0]
	for _, binding := range bindings {
		if binding.RoomID == "" {
			dropped++
			continue
		}
		ids := binding.FileIDs[:0]
		for _, fileID := range binding.FileIDs {
			if fileID == "" {
				dropped++
				continue
			}
			ids = append(ids, fileID)
		}
		if len(binding.FileIDs) > 0 && len(ids) == 0 {
			ids = nil
		}
		binding.FileIDs = ids
		kept = append(kept, binding)
	}
	return kept, dropped
}

func validateRecord(record models.SubscriptionRecord) error {
	if err := recordValidator.Struct(record); err != nil {
		return common.NewValidationError("subscription", record.ID, err.Error())
	}
	return nil
}

// appendValid decodes a row and appends it, logging and skipping rows that
// cannot be decoded so one bad record does not hide every room's files.
func appendValid(records []models.SubscriptionRecord, logger zerolog.Logger, id, watcherID string, roomData []byte) []models.SubscriptionRecord {
	record, dropped, err := decodeRecord(id, watcherID, roomData)
	if err != nil {
		logger.Warn().Err(err).Str("subscription_id", id).Msg("Skipping malformed subscription record")
		return records
	}
	if dropped > 0 {
		logger.Warn().Str("subscription_id", id).Int("dropped", dropped).Msg("Dropped empty room bindings or file ids")
	}
	return append(records, record)
}
