package models

// RemoteFileMetadata is the part of a remote design file the bot cares about.
type RemoteFileMetadata struct {
	ID   string `json:"id" validate:"required"`
	Name string `json:"name"`
}

// PresentationEntry is one file rendered in the room message.
type PresentationEntry struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
