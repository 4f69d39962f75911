package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/aleister1102/figmabot/internal/files"
	"github.com/aleister1102/figmabot/internal/models"
	"github.com/go-chi/chi/v5"
)

const maxCommandBodyBytes = 64 * 1024

type listFilesRequest struct {
	UserID   string `json:"user_id" validate:"required"`
	Username string `json:"username"`
	RoomName string `json:"room_name"`
}

type listFilesResponse struct {
	RequestID string `json:"request_id"`
	Outcome   string `json:"outcome"`
}

type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

// handleListRoomFiles runs the pipeline for the room in the path. The result
// is delivered to the chat room, so the response only reports the outcome.
func (s *Server) handleListRoomFiles(w http.ResponseWriter, r *http.Request) {
	reqID := requestIDFrom(r.Context())

	var body listFilesRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxCommandBodyBytes))
	if err := dec.Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body", RequestID: reqID})
		return
	}
	if err := s.validate.Struct(body); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "user_id is required", RequestID: reqID})
		return
	}

	room := models.Room{ID: chi.URLParam(r, "roomID"), Name: body.RoomName}
	user := models.User{ID: body.UserID, Username: body.Username}

	// Delivery to chat must finish even if the caller hangs up.
	ctx := context.WithoutCancel(r.Context())
	if s.cfg.CommandTimeoutSecs > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(s.cfg.CommandTimeoutSecs)*time.Second)
		defer cancel()
	}

	report := s.lister.ListRoomFiles(ctx, room, user)

	writeJSON(w, http.StatusAccepted, listFilesResponse{RequestID: reqID, Outcome: string(report.Outcome)})
}

func (s *Server) handleLive(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

var _ RoomFileLister = (*files.Service)(nil)
