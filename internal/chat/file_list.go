package chat

import (
	"strings"

	"github.com/aleister1102/figmabot/internal/models"
)

const (
	FileListHeader = "Files in this room"

	FileActionsBlockID = "file_actions"
	ActionComment      = "comment"
	ActionOpenFile     = "open_file"

	labelComment  = "Comment"
	labelOpenFile = "Open file"
)

// FileURL interpolates a file key into the web URL base.
func FileURL(fileURLBase, fileID string) string {
	return strings.TrimRight(fileURLBase, "/") + "/" + fileID
}

// BuildFileListPayload renders one quoted entry and one actions block per file, under a header.
func BuildFileListPayload(entries []models.PresentationEntry, fileURLBase string) Payload {
	b := NewPayloadBuilder().
		WithText(FileListHeader).
		AddHeader(FileListHeader)

	for _, entry := range entries {
		b.AddMarkdownSection("> "+entry.Name).
			AddActions(FileActionsBlockID,
				NewButton(labelComment, ActionComment, entry.ID, ""),
				NewButton(labelOpenFile, ActionOpenFile, entry.ID, FileURL(fileURLBase, entry.ID)),
			)
	}
	return b.Build()
}
