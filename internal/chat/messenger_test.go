package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aleister1102/figmabot/internal/common"
	"github.com/aleister1102/figmabot/internal/config"
	"github.com/aleister1102/figmabot/internal/httpclient"
	"github.com/aleister1102/figmabot/internal/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMessenger(t *testing.T, handler http.HandlerFunc) *Messenger {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	hc, err := httpclient.NewHTTPClientBuilder(zerolog.Nop()).Build()
	require.NoError(t, err)

	cfg := config.NewDefaultNotificationConfig()
	cfg.WebhookURL = server.URL
	cfg.AvatarURL = "https://example.com/figma.png"
	return NewMessenger(hc, cfg, zerolog.Nop())
}

func decodePayload(t *testing.T, r *http.Request) Payload {
	t.Helper()
	var p Payload
	require.NoError(t, json.NewDecoder(r.Body).Decode(&p))
	return p
}

func TestMessenger_Present(t *testing.T) {
	var got Payload
	m := newTestMessenger(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		got = decodePayload(t, r)
		w.WriteHeader(http.StatusNoContent)
	})

	payload := BuildFileListPayload([]models.PresentationEntry{{ID: "x", Name: "Foo"}}, "https://www.figma.com/file")
	err := m.Present(context.Background(), models.Room{ID: "R1", Name: "design"}, payload)
	require.NoError(t, err)

	assert.Equal(t, KindMessage, got.Kind)
	assert.Equal(t, "R1", got.RoomID)
	assert.Empty(t, got.UserID)
	assert.Equal(t, "Figma", got.Username)
	assert.Equal(t, "https://example.com/figma.png", got.AvatarURL)
	assert.Len(t, got.Blocks, 3)
}

func TestMessenger_Notify(t *testing.T) {
	var got Payload
	m := newTestMessenger(t, func(w http.ResponseWriter, r *http.Request) {
		got = decodePayload(t, r)
	})

	err := m.Notify(context.Background(), models.Room{ID: "R1"}, models.User{ID: "U1"}, "There was an error")
	require.NoError(t, err)

	assert.Equal(t, KindNotification, got.Kind)
	assert.Equal(t, "U1", got.UserID)
	assert.Equal(t, "There was an error", got.Text)
	assert.Equal(t, "Figma", got.Username)
	assert.Equal(t, "https://example.com/figma.png", got.AvatarURL)
}

func TestMessenger_RejectedPayload(t *testing.T) {
	m := newTestMessenger(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad room", http.StatusBadRequest)
	})

	err := m.Notify(context.Background(), models.Room{ID: "R1"}, models.User{ID: "U1"}, "hi")
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, common.StatusCodeOf(err))
}

func TestMessenger_NoWebhook(t *testing.T) {
	hc, err := httpclient.NewHTTPClientBuilder(zerolog.Nop()).Build()
	require.NoError(t, err)
	m := NewMessenger(hc, config.NewDefaultNotificationConfig(), zerolog.Nop())

	err = m.Notify(context.Background(), models.Room{ID: "R1"}, models.User{ID: "U1"}, "hi")
	assert.ErrorIs(t, err, common.ErrInvalidConfiguration)
}

func TestWriterMessenger(t *testing.T) {
	var buf bytes.Buffer
	m := NewWriterMessenger(&buf, config.NewDefaultNotificationConfig())

	require.NoError(t, m.Notify(context.Background(), models.Room{ID: "R1"}, models.User{ID: "U1"}, "hello"))

	var got Payload
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, KindNotification, got.Kind)
	assert.Equal(t, "hello", got.Text)
	assert.Equal(t, "Figma", got.Username)
}
