package chat

import (
	"context"
	"encoding/json"
	"io"
	"sync"
	"time"

	"github.com/aleister1102/figmabot/internal/common"
	"github.com/aleister1102/figmabot/internal/config"
	"github.com/aleister1102/figmabot/internal/httpclient"
	"github.com/aleister1102/figmabot/internal/models"
	"github.com/rs/zerolog"
)

// JSONPoster posts a JSON document. *httpclient.HTTPClient satisfies it.
type JSONPoster interface {
	PostJSON(ctx context.Context, url string, payload any, headers map[string]string) (*httpclient.HTTPResponse, error)
}

// Messenger delivers room messages and private notifications to the chat webhook.
type Messenger struct {
	client JSONPoster
	cfg    config.NotificationConfig
	logger zerolog.Logger
}

// NewMessenger creates a webhook messenger.
func NewMessenger(client JSONPoster, cfg config.NotificationConfig, logger zerolog.Logger) *Messenger {
	return &Messenger{
		client: client,
		cfg:    cfg,
		logger: logger.With().Str("module", "ChatMessenger").Logger(),
	}
}

// Present posts payload to the room as a public message.
func (m *Messenger) Present(ctx context.Context, room models.Room, payload Payload) error {
	payload.Kind = KindMessage
	payload.RoomID = room.ID
	payload.RoomName = room.Name
	m.applyIdentity(&payload)
	return m.send(ctx, payload)
}

// Notify posts text to the room, visible only to user.
func (m *Messenger) Notify(ctx context.Context, room models.Room, user models.User, text string) error {
	payload := NewPayloadBuilder().
		WithKind(KindNotification).
		WithText(text).
		WithUsername(m.cfg.Username).
		WithAvatarURL(m.cfg.AvatarURL).
		Build()
	payload.RoomID = room.ID
	payload.RoomName = room.Name
	payload.UserID = user.ID
	return m.send(ctx, payload)
}

func (m *Messenger) applyIdentity(p *Payload) {
	if p.Username == "" {
		p.Username = m.cfg.Username
	}
	if p.AvatarURL == "" {
		p.AvatarURL = m.cfg.AvatarURL
	}
}

func (m *Messenger) send(ctx context.Context, payload Payload) error {
	if m.cfg.WebhookURL == "" {
		return common.NewConfigurationError("notification_config", "webhook_url", "chat webhook URL is not set")
	}

	if m.cfg.TimeoutSecs > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(m.cfg.TimeoutSecs)*time.Second)
		defer cancel()
	}

	resp, err := m.client.PostJSON(ctx, m.cfg.WebhookURL, payload, nil)
	if err != nil {
		m.logger.Error().Err(err).Str("kind", payload.Kind).Str("room_id", payload.RoomID).Msg("Failed to send chat payload")
		return common.WrapError(err, "failed to send chat payload")
	}
	if !resp.IsSuccess() {
		m.logger.Error().Int("status_code", resp.StatusCode).Str("response_body", string(resp.Body)).Msg("Chat webhook rejected payload")
		return common.NewHTTPErrorWithURL(resp.StatusCode, string(resp.Body), m.cfg.WebhookURL)
	}

	m.logger.Debug().Str("kind", payload.Kind).Str("room_id", payload.RoomID).Int("status_code", resp.StatusCode).Msg("Chat payload sent")
	return nil
}

// WriterMessenger prints payloads as JSON lines. Used by the CLI when no webhook is configured.
type WriterMessenger struct {
	mu  sync.Mutex
	enc *json.Encoder
	cfg config.NotificationConfig
}

// NewWriterMessenger writes indented JSON payloads to w.
func NewWriterMessenger(w io.Writer, cfg config.NotificationConfig) *WriterMessenger {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return &WriterMessenger{enc: enc, cfg: cfg}
}

// Present writes a room message.
func (m *WriterMessenger) Present(_ context.Context, room models.Room, payload Payload) error {
	payload.Kind = KindMessage
	payload.RoomID = room.ID
	payload.RoomName = room.Name
	payload.Username = m.cfg.Username
	payload.AvatarURL = m.cfg.AvatarURL
	return m.write(payload)
}

// Notify writes a private notification.
func (m *WriterMessenger) Notify(_ context.Context, room models.Room, user models.User, text string) error {
	return m.write(Payload{
		Kind:     KindNotification,
		RoomID:   room.ID,
		RoomName: room.Name,
		UserID:   user.ID,
		Username: m.cfg.Username,
		Text:     text,
	})
}

func (m *WriterMessenger) write(p Payload) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.enc.Encode(p)
}
