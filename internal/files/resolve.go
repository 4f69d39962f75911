package files

import "github.com/aleister1102/figmabot/internal/models"

// Dedupe returns ids with repeats removed, keeping first-occurrence order.
func Dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	unique := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	return unique
}

// ResolveRoomFiles flattens the file ids bound to roomID across all records,
// in record order then binding order. The result may contain duplicates.
func ResolveRoomFiles(records []models.SubscriptionRecord, roomID string) []string {
	var ids []string
	for _, record := range records {
		ids = append(ids, record.FileIDsForRoom(roomID)...)
	}
	return ids
}

// BuildEntries maps fetched metadata to presentation entries, one per item.
func BuildEntries(metas []models.RemoteFileMetadata) []models.PresentationEntry {
	entries := make([]models.PresentationEntry, 0, len(metas))
	for _, meta := range metas {
		entries = append(entries, models.PresentationEntry{ID: meta.ID, Name: meta.Name})
	}
	return entries
}
