package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSubscriptionRecord_FileIDsForRoom(t *testing.T) {
	record := SubscriptionRecord{
		ID: "sub-1",
		RoomData: []RoomFileBinding{
			{RoomID: "R1", FileIDs: []string{"x", "y"}},
			{RoomID: "R2", FileIDs: []string{"z"}},
			{RoomID: "R1"},
			{RoomID: "R1", FileIDs: []string{"w"}},
		},
	}

	assert.Equal(t, []string{"x", "y", "w"}, record.FileIDsForRoom("R1"))
	assert.Equal(t, []string{"z"}, record.FileIDsForRoom("R2"))
	assert.Empty(t, record.FileIDsForRoom("R3"))
}

func TestAccessToken_Expired(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	assert.False(t, AccessToken{Token: "t"}.Expired(now))
	assert.False(t, AccessToken{Token: "t", ExpiresAt: now.Add(time.Hour)}.Expired(now))
	assert.True(t, AccessToken{Token: "t", ExpiresAt: now.Add(-time.Hour)}.Expired(now))
}
