package chat

// PayloadBuilder helps in constructing Payload objects.
type PayloadBuilder struct {
	payload Payload
}

// NewPayloadBuilder creates a builder for a room message.
func NewPayloadBuilder() *PayloadBuilder {
	return &PayloadBuilder{
		payload: Payload{Kind: KindMessage},
	}
}

// WithKind sets the payload kind.
func (b *PayloadBuilder) WithKind(kind string) *PayloadBuilder {
	b.payload.Kind = kind
	return b
}

// WithText sets the fallback text.
func (b *PayloadBuilder) WithText(text string) *PayloadBuilder {
	b.payload.Text = text
	return b
}

// WithUsername sets the bot display name.
func (b *PayloadBuilder) WithUsername(username string) *PayloadBuilder {
	b.payload.Username = username
	return b
}

// WithAvatarURL sets the bot avatar.
func (b *PayloadBuilder) WithAvatarURL(avatarURL string) *PayloadBuilder {
	b.payload.AvatarURL = avatarURL
	return b
}

// AddHeader appends a plain-text section.
func (b *PayloadBuilder) AddHeader(text string) *PayloadBuilder {
	return b.addSection(TextPlain, text)
}

// AddMarkdownSection appends a markdown section.
func (b *PayloadBuilder) AddMarkdownSection(text string) *PayloadBuilder {
	return b.addSection(TextMarkdown, text)
}

func (b *PayloadBuilder) addSection(format, text string) *PayloadBuilder {
	b.payload.Blocks = append(b.payload.Blocks, Block{
		Type: BlockTypeSection,
		Text: &TextObject{Type: format, Text: text},
	})
	return b
}

// AddActions appends an actions block holding buttons.
func (b *PayloadBuilder) AddActions(blockID string, buttons ...ButtonElement) *PayloadBuilder {
	b.payload.Blocks = append(b.payload.Blocks, Block{
		Type:     BlockTypeActions,
		BlockID:  blockID,
		Elements: buttons,
	})
	return b
}

// Build returns the constructed Payload.
func (b *PayloadBuilder) Build() Payload {
	return b.payload
}

// NewButton creates a button carrying value. Pass a non-empty url for a link button.
func NewButton(label, actionID, value, url string) ButtonElement {
	return ButtonElement{
		Type:     ElementButton,
		Text:     TextObject{Type: TextPlain, Text: label},
		ActionID: actionID,
		Value:    value,
		URL:      url,
	}
}
