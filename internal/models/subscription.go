package models

// RoomFileBinding associates a chat room with the design files watched in it.
type RoomFileBinding struct {
	RoomID  string   `json:"room_id" yaml:"room_id" validate:"required"`
	FileIDs []string `json:"file_ids,omitempty" yaml:"file_ids,omitempty" validate:"dive,required"`
}

// SubscriptionRecord is a stored watcher subscription. The pipeline only reads it.
type SubscriptionRecord struct {
	ID        string            `json:"id" yaml:"id" validate:"required"`
	WatcherID string            `json:"watcher_id" yaml:"watcher_id"`
	RoomData  []RoomFileBinding `json:"room_data" yaml:"room_data" validate:"dive"`
}

// FileIDsForRoom returns the file ids of every binding to roomID, in binding order.
func (s SubscriptionRecord) FileIDsForRoom(roomID string) []string {
	var ids []string
	for _, binding := range s.RoomData {
		if binding.RoomID == roomID && len(binding.FileIDs) > 0 {
			ids = append(ids, binding.FileIDs...)
		}
	}
	return ids
}
