package server

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aleister1102/figmabot/internal/config"
	"github.com/aleister1102/figmabot/internal/files"
	"github.com/aleister1102/figmabot/internal/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLister struct {
	mu      sync.Mutex
	rooms   []models.Room
	users   []models.User
	outcome files.Outcome
}

func (f *fakeLister) ListRoomFiles(ctx context.Context, room models.Room, user models.User) files.Report {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rooms = append(f.rooms, room)
	f.users = append(f.users, user)
	return files.Report{Outcome: f.outcome}
}

func newTestServer(lister RoomFileLister) *Server {
	return New(config.NewDefaultServerConfig(), lister, zerolog.Nop())
}

func TestListRoomFiles_Accepted(t *testing.T) {
	lister := &fakeLister{outcome: files.OutcomePresented}
	srv := newTestServer(lister)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/rooms/R1/files",
		strings.NewReader(`{"user_id":"U1","username":"ana","room_name":"design"}`))
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, req)

	require.Equal(t, http.StatusAccepted, rec.Code)

	var resp listFilesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "presented", resp.Outcome)
	assert.NotEmpty(t, resp.RequestID)
	assert.Equal(t, resp.RequestID, rec.Header().Get("X-Request-ID"))

	require.Len(t, lister.rooms, 1)
	assert.Equal(t, models.Room{ID: "R1", Name: "design"}, lister.rooms[0])
	assert.Equal(t, models.User{ID: "U1", Username: "ana"}, lister.users[0])
}

func TestListRoomFiles_BadRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"user_id":`},
		{"missing user", `{"username":"ana"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lister := &fakeLister{}
			srv := newTestServer(lister)

			rec := httptest.NewRecorder()
			srv.Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/rooms/R1/files", strings.NewReader(tt.body)))

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Empty(t, lister.rooms)
		})
	}
}

func TestHealthAndMetrics(t *testing.T) {
	srv := newTestServer(&fakeLister{})
	h := srv.Routes()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "figmabot_http_requests_total")
}

func TestRun_ShutsDownOnCancel(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	cfg := config.NewDefaultServerConfig()
	cfg.ListenAddress = addr
	srv := New(cfg, &fakeLister{}, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr + "/health/live")
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
