// Package chat builds block payloads and delivers them to the chat platform webhook.
package chat

// Payload kinds understood by the chat webhook.
const (
	KindMessage      = "message"
	KindNotification = "notification"
)

// Block types and text formats.
const (
	BlockTypeSection = "section"
	BlockTypeActions = "actions"

	TextPlain    = "plain_text"
	TextMarkdown = "mrkdwn"

	ElementButton = "button"
)

// Payload is the JSON document posted to the chat webhook. Messages are
// visible to the whole room; notifications only to UserID.
type Payload struct {
	Kind      string  `json:"kind"`
	RoomID    string  `json:"room_id"`
	RoomName  string  `json:"room_name,omitempty"`
	UserID    string  `json:"user_id,omitempty"`
	Username  string  `json:"username,omitempty"`   // Bot display name override
	AvatarURL string  `json:"avatar_url,omitempty"` // Bot avatar override
	Text      string  `json:"text,omitempty"`
	Blocks    []Block `json:"blocks,omitempty"`
}

// Block is one layout element of a message.
type Block struct {
	Type     string          `json:"type"`
	BlockID  string          `json:"block_id,omitempty"`
	Text     *TextObject     `json:"text,omitempty"`
	Elements []ButtonElement `json:"elements,omitempty"`
}

// TextObject is rendered either verbatim or as markdown.
type TextObject struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// ButtonElement is an interactive button. URL makes it a link button.
type ButtonElement struct {
	Type     string     `json:"type"`
	Text     TextObject `json:"text"`
	ActionID string     `json:"action_id"`
	Value    string     `json:"value,omitempty"`
	URL      string     `json:"url,omitempty"`
}
